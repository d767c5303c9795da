package service

import (
	"context"
	"net/http"
	"net/url"

	"github.com/classpilot/classpilot-go/internal/api"
	"github.com/classpilot/classpilot-go/internal/models"
)

// TeacherService covers teacher-facing operations.
type TeacherService struct {
	client *api.Client
}

// NewTeacherService creates a TeacherService on the shared client.
func NewTeacherService(client *api.Client) *TeacherService {
	return &TeacherService{client: client}
}

// Dashboard fetches the teacher's dashboard summary.
func (s *TeacherService) Dashboard(ctx context.Context) (*api.Result[models.TeacherDashboard], error) {
	return api.Do[models.TeacherDashboard](ctx, s.client, api.Request{
		Endpoint: "/teachers/dashboard",
		Method:   http.MethodGet,
	})
}

// Classes lists the teacher's classes.
func (s *TeacherService) Classes(ctx context.Context) (*api.Result[[]models.Class], error) {
	return api.Do[[]models.Class](ctx, s.client, api.Request{
		Endpoint: "/teachers/classes",
		Method:   http.MethodGet,
	})
}

// ProcessMaterialForChat asks the backend to ingest a topic material so it
// can back an AI chat. Ingestion is asynchronous; observe it with
// AIChatService.ProcessingStatus or a jobs.Tracker.
func (s *TeacherService) ProcessMaterialForChat(ctx context.Context, materialID string) (*api.Result[models.ProcessingStatus], error) {
	return api.Do[models.ProcessingStatus](ctx, s.client, api.Request{
		Endpoint: "/teachers/topics/process-for-chat/" + url.PathEscape(materialID),
		Method:   http.MethodPost,
	})
}
