package service

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/classpilot/classpilot-go/internal/api"
	"github.com/classpilot/classpilot-go/internal/models"
	"github.com/classpilot/classpilot-go/internal/session"
)

// AuthService covers sign-in, OTP verification, logout and the account
// recovery endpoints. Sign-in, OTP, password-reset and email-verification
// calls are unauthenticated; logout requires a session.
type AuthService struct {
	client *api.Client
}

// NewAuthService creates an AuthService on the shared client.
func NewAuthService(client *api.Client) *AuthService {
	return &AuthService{client: client}
}

// SignInRequest is the sign-in payload.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInOutcome reports which of the two sign-in paths the backend took.
// Authenticated means tokens and user are persisted; RequiresOTP means the
// profile was stored as the pending user and a verification code was sent.
type SignInOutcome struct {
	Authenticated bool
	RequiresOTP   bool
	User          *models.UserRecord
}

// tokenGrant is the payload shape of every endpoint that issues tokens.
type tokenGrant struct {
	AccessToken  string             `json:"accessToken"`
	RefreshToken string             `json:"refreshToken"`
	ExpiresIn    int64              `json:"expiresIn"`
	User         *models.UserRecord `json:"user"`
}

// SignIn authenticates with email and password. The backend returns one of
// two payload shapes on the same endpoint: a token grant (login complete) or
// a bare profile (an OTP step is required). The branch is on presence of the
// access token, not on a status code.
func (s *AuthService) SignIn(ctx context.Context, req SignInRequest) (*SignInOutcome, error) {
	envelope, err := s.client.Do(ctx, api.Request{
		Endpoint: "/auth/sign-in",
		Method:   http.MethodPost,
		Body:     req,
		SkipAuth: true,
	})
	if err != nil {
		return nil, err
	}

	var grant tokenGrant
	if len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, &grant); err != nil {
			return nil, &api.Error{
				StatusCode: http.StatusInternalServerError,
				Message:    "Network error: failed to decode response data",
				Data:       envelope.Data,
			}
		}
	}

	if grant.AccessToken != "" {
		s.persistGrant(&grant)
		return &SignInOutcome{Authenticated: true, User: grant.User}, nil
	}

	// No token: the payload is the profile itself, pending OTP verification.
	var pending models.UserRecord
	if err := json.Unmarshal(envelope.Data, &pending); err != nil || pending.ID == "" {
		return nil, &api.Error{
			StatusCode: http.StatusInternalServerError,
			Message:    "Network error: unexpected sign-in response",
			Data:       envelope.Data,
		}
	}

	s.client.Store().StorePendingUser(&pending)
	log.Debug().Str("email", pending.Email).Msg("sign-in pending OTP verification")

	return &SignInOutcome{RequiresOTP: true, User: &pending}, nil
}

// VerifyOTPRequest is the login OTP payload.
type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// VerifyLoginOTP completes a pending login. On success the token grant is
// persisted and the pending user cleared.
func (s *AuthService) VerifyLoginOTP(ctx context.Context, req VerifyOTPRequest) (*models.UserRecord, error) {
	result, err := api.Do[tokenGrant](ctx, s.client, api.Request{
		Endpoint: "/auth/director-verify-login-otp",
		Method:   http.MethodPost,
		Body:     req,
		SkipAuth: true,
	})
	if err != nil {
		return nil, err
	}
	if result.Data.AccessToken == "" {
		return nil, &api.Error{
			StatusCode: http.StatusInternalServerError,
			Message:    "Network error: OTP verification returned no tokens",
		}
	}

	s.persistGrant(&result.Data)
	s.client.Store().ClearPendingUser()

	return result.Data.User, nil
}

// Logout ends the session server-side, best effort, then unconditionally
// clears the local session. A failed server call is logged and swallowed:
// local logout must succeed even when the network does not.
func (s *AuthService) Logout(ctx context.Context) {
	defer s.client.Store().ClearTokens()

	_, err := s.client.Do(ctx, api.Request{
		Endpoint: "/auth/logout",
		Method:   http.MethodPost,
	})
	if err != nil {
		log.Warn().Err(err).Msg("server-side logout failed, clearing local session anyway")
	}
}

// RequestPasswordResetOTP asks the backend to email a reset code.
func (s *AuthService) RequestPasswordResetOTP(ctx context.Context, email string) (*api.Result[struct{}], error) {
	return api.Do[struct{}](ctx, s.client, api.Request{
		Endpoint: "/auth/request-password-reset-otp",
		Method:   http.MethodPost,
		Body:     map[string]string{"email": email},
		SkipAuth: true,
	})
}

// ResetPasswordRequest carries the reset code and the replacement password.
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

// VerifyOTPAndResetPassword redeems a reset code for a new password.
func (s *AuthService) VerifyOTPAndResetPassword(ctx context.Context, req ResetPasswordRequest) (*api.Result[struct{}], error) {
	return api.Do[struct{}](ctx, s.client, api.Request{
		Endpoint: "/auth/verify-otp-and-reset-password",
		Method:   http.MethodPost,
		Body:     req,
		SkipAuth: true,
	})
}

// ResendVerificationEmail re-sends the account verification email.
func (s *AuthService) ResendVerificationEmail(ctx context.Context, email string) (*api.Result[struct{}], error) {
	return api.Do[struct{}](ctx, s.client, api.Request{
		Endpoint: "/auth/resend-verification-email",
		Method:   http.MethodPost,
		Body:     map[string]string{"email": email},
		SkipAuth: true,
	})
}

// VerifyEmail redeems an email verification token.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) (*api.Result[struct{}], error) {
	return api.Do[struct{}](ctx, s.client, api.Request{
		Endpoint: "/auth/verify-email",
		Method:   http.MethodPost,
		Body:     map[string]string{"token": token},
		SkipAuth: true,
	})
}

func (s *AuthService) persistGrant(grant *tokenGrant) {
	store := s.client.Store()
	store.StoreTokens(grant.AccessToken, grant.RefreshToken, session.ResolveTTL(grant.AccessToken, grant.ExpiresIn))
	if grant.User != nil {
		store.StoreUser(grant.User)
	}
}
