package service

import (
	"context"
	"net/http"

	"github.com/classpilot/classpilot-go/internal/api"
	"github.com/classpilot/classpilot-go/internal/models"
)

// UserService covers the authenticated user's own profile.
type UserService struct {
	client *api.Client
}

// NewUserService creates a UserService on the shared client.
func NewUserService(client *api.Client) *UserService {
	return &UserService{client: client}
}

// Profile fetches the current user's profile and refreshes the cached copy in
// the session store.
func (s *UserService) Profile(ctx context.Context) (*api.Result[models.UserRecord], error) {
	result, err := api.Do[models.UserRecord](ctx, s.client, api.Request{
		Endpoint: "/user/profile",
		Method:   http.MethodGet,
	})
	if err != nil {
		return nil, err
	}

	if result.Success && result.Data.ID != "" {
		user := result.Data
		s.client.Store().StoreUser(&user)
	}
	return result, nil
}

// UpdateProfileRequest carries the editable profile fields.
type UpdateProfileRequest struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// UpdateProfile updates the current user's profile.
func (s *UserService) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*api.Result[models.UserRecord], error) {
	return api.Do[models.UserRecord](ctx, s.client, api.Request{
		Endpoint: "/user/profile",
		Method:   http.MethodPatch,
		Body:     req,
	})
}

// ChangePasswordRequest carries the old and replacement passwords.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePassword changes the current user's password.
func (s *UserService) ChangePassword(ctx context.Context, req ChangePasswordRequest) (*api.Result[struct{}], error) {
	return api.Do[struct{}](ctx, s.client, api.Request{
		Endpoint: "/user/change-password",
		Method:   http.MethodPost,
		Body:     req,
	})
}
