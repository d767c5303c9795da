package models

import "time"

// Quiz question types supported by the CBT builder.
const (
	QuestionTypeMultipleChoice = "multiple_choice"
	QuestionTypeTrueFalse      = "true_false"
	QuestionTypeShortAnswer    = "short_answer"
)

// Quiz is a computer-based-test assessment owned by a teacher.
type Quiz struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Subject         string     `json:"subject"`
	ClassID         string     `json:"classId"`
	DurationMinutes int        `json:"durationMinutes"`
	TotalQuestions  int        `json:"totalQuestions"`
	TotalMarks      int        `json:"totalMarks"`
	Published       bool       `json:"published"`
	StartsAt        *time.Time `json:"startsAt,omitempty"`
	EndsAt          *time.Time `json:"endsAt,omitempty"`
	CreatedAt       *time.Time `json:"createdAt,omitempty"`
}

// QuizQuestion is a single question within a quiz. Options are empty for
// short-answer questions.
type QuizQuestion struct {
	ID            string   `json:"id"`
	QuizID        string   `json:"quizId"`
	Text          string   `json:"text"`
	Type          string   `json:"type"`
	Options       []string `json:"options,omitempty"`
	CorrectOption int      `json:"correctOption,omitempty"`
	Marks         int      `json:"marks"`
	Position      int      `json:"position"`
}

// QuizAttemptResult is the graded outcome of a student's quiz submission.
type QuizAttemptResult struct {
	AttemptID    string `json:"attemptId"`
	QuizID       string `json:"quizId"`
	Score        int    `json:"score"`
	TotalMarks   int    `json:"totalMarks"`
	CorrectCount int    `json:"correctCount"`
	Graded       bool   `json:"graded"`
}
