package service

import (
	"context"
	"net/http"

	"github.com/classpilot/classpilot-go/internal/api"
	"github.com/classpilot/classpilot-go/internal/models"
)

// DirectorService covers school-director operations.
type DirectorService struct {
	client *api.Client
}

// NewDirectorService creates a DirectorService on the shared client.
func NewDirectorService(client *api.Client) *DirectorService {
	return &DirectorService{client: client}
}

// Dashboard fetches the school-wide dashboard.
func (s *DirectorService) Dashboard(ctx context.Context) (*api.Result[models.DirectorDashboard], error) {
	return api.Do[models.DirectorDashboard](ctx, s.client, api.Request{
		Endpoint: "/director/dashboard",
		Method:   http.MethodGet,
	})
}

// Teachers lists the school's teachers.
func (s *DirectorService) Teachers(ctx context.Context) (*api.Result[[]models.UserRecord], error) {
	return api.Do[[]models.UserRecord](ctx, s.client, api.Request{
		Endpoint: "/director/teachers",
		Method:   http.MethodGet,
	})
}
