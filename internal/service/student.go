package service

import (
	"context"
	"net/http"

	"github.com/classpilot/classpilot-go/internal/api"
	"github.com/classpilot/classpilot-go/internal/models"
)

// StudentService covers student-facing operations.
type StudentService struct {
	client *api.Client
}

// NewStudentService creates a StudentService on the shared client.
func NewStudentService(client *api.Client) *StudentService {
	return &StudentService{client: client}
}

// Dashboard fetches the student's dashboard summary.
func (s *StudentService) Dashboard(ctx context.Context) (*api.Result[models.StudentDashboard], error) {
	return api.Do[models.StudentDashboard](ctx, s.client, api.Request{
		Endpoint: "/students/dashboard",
		Method:   http.MethodGet,
	})
}

// Assessments lists the assessments currently open to the student.
func (s *StudentService) Assessments(ctx context.Context) (*api.Result[[]models.Quiz], error) {
	return api.Do[[]models.Quiz](ctx, s.client, api.Request{
		Endpoint: "/students/assessments",
		Method:   http.MethodGet,
	})
}
