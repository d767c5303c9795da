package models

// TeacherDashboard summarises a teacher's classes and pending work.
type TeacherDashboard struct {
	ClassCount         int     `json:"classCount"`
	StudentCount       int     `json:"studentCount"`
	PendingAssessments int     `json:"pendingAssessments"`
	UpcomingQuizzes    []Quiz  `json:"upcomingQuizzes,omitempty"`
	Classes            []Class `json:"classes,omitempty"`
}

// DirectorDashboard is the school-wide view for directors.
type DirectorDashboard struct {
	TeacherCount      int     `json:"teacherCount"`
	StudentCount      int     `json:"studentCount"`
	ClassCount        int     `json:"classCount"`
	AttendanceRate    float64 `json:"attendanceRate"`
	OutstandingAlerts int     `json:"outstandingAlerts"`
}

// StudentDashboard summarises a student's schedule and open assessments.
type StudentDashboard struct {
	ClassName       string `json:"className"`
	OpenAssessments []Quiz `json:"openAssessments,omitempty"`
	CompletedCount  int    `json:"completedCount"`
	AverageScore    int    `json:"averageScore"`
}

// Class is a school class as seen by teachers and directors.
type Class struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Subject      string `json:"subject,omitempty"`
	StudentCount int    `json:"studentCount"`
}
