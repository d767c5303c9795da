package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classpilot/classpilot-go/internal/api"
	"github.com/classpilot/classpilot-go/internal/models"
	"github.com/classpilot/classpilot-go/internal/session"
)

func testUser(id, email string) *models.UserRecord {
	return &models.UserRecord{ID: id, Email: email}
}

func newTestServices(t *testing.T, handler http.Handler) (*Services, *session.Store, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := session.NewStore(session.NewMemoryBackend())
	client := api.New(api.Config{BaseURL: server.URL}, store)
	return New(client), store, server
}

func writeEnvelope(t *testing.T, w http.ResponseWriter, status int, envelope map[string]any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(envelope))
}

func TestAuthService_SignIn(t *testing.T) {
	t.Run("token grant completes the login", func(t *testing.T) {
		var gotAuth string
		services, store, _ := newTestServices(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/auth/sign-in", r.URL.Path)
			gotAuth = r.Header.Get("Authorization")
			writeEnvelope(t, w, http.StatusOK, map[string]any{
				"success": true,
				"data": map[string]any{
					"accessToken":  "AT1",
					"refreshToken": "RT1",
					"expiresIn":    3600,
					"user":         map[string]any{"id": "u1", "email": "t@example.com", "role": "teacher"},
				},
			})
		}))

		outcome, err := services.Auth.SignIn(context.Background(), SignInRequest{
			Email:    "t@example.com",
			Password: "pw",
		})
		require.NoError(t, err)

		assert.True(t, outcome.Authenticated)
		assert.False(t, outcome.RequiresOTP)
		require.NotNil(t, outcome.User)
		assert.Equal(t, "u1", outcome.User.ID)

		// Sign-in is unauthenticated.
		assert.Empty(t, gotAuth)

		assert.Equal(t, "AT1", store.AccessToken())
		assert.Equal(t, "RT1", store.RefreshToken())
		assert.False(t, store.IsTokenExpired())
		require.NotNil(t, store.User())
		assert.Equal(t, "u1", store.User().ID)
		assert.Nil(t, store.PendingUser())
	})

	t.Run("bare profile means OTP verification is pending", func(t *testing.T) {
		services, store, _ := newTestServices(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(t, w, http.StatusOK, map[string]any{
				"success": true,
				"data":    map[string]any{"id": "d1", "email": "d@example.com", "role": "director"},
			})
		}))

		outcome, err := services.Auth.SignIn(context.Background(), SignInRequest{
			Email:    "d@example.com",
			Password: "pw",
		})
		require.NoError(t, err)

		assert.False(t, outcome.Authenticated)
		assert.True(t, outcome.RequiresOTP)

		// No tokens were stored; the profile waits as the pending user.
		assert.Empty(t, store.AccessToken())
		assert.Empty(t, store.RefreshToken())
		pending := store.PendingUser()
		require.NotNil(t, pending)
		assert.Equal(t, "d1", pending.ID)
		assert.Equal(t, "d@example.com", pending.Email)
	})

	t.Run("bad credentials propagate the transport error", func(t *testing.T) {
		services, _, _ := newTestServices(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(t, w, http.StatusBadRequest, map[string]any{
				"success": false,
				"message": "Invalid email or password",
			})
		}))

		_, err := services.Auth.SignIn(context.Background(), SignInRequest{Email: "x", Password: "y"})
		require.Error(t, err)

		apiErr, ok := api.AsError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.Equal(t, "Invalid email or password", apiErr.Message)
	})
}

func TestAuthService_VerifyLoginOTP(t *testing.T) {
	services, store, _ := newTestServices(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/director-verify-login-otp", r.URL.Path)
		writeEnvelope(t, w, http.StatusOK, map[string]any{
			"success": true,
			"data": map[string]any{
				"accessToken":  "AT1",
				"refreshToken": "RT1",
				"expiresIn":    3600,
				"user":         map[string]any{"id": "d1", "email": "d@example.com", "role": "director"},
			},
		})
	}))

	store.StorePendingUser(testUser("d1", "d@example.com"))

	user, err := services.Auth.VerifyLoginOTP(context.Background(), VerifyOTPRequest{
		Email: "d@example.com",
		OTP:   "123456",
	})
	require.NoError(t, err)
	assert.Equal(t, "d1", user.ID)

	assert.Equal(t, "AT1", store.AccessToken())
	assert.Equal(t, "RT1", store.RefreshToken())
	assert.Nil(t, store.PendingUser())
	require.NotNil(t, store.User())
	assert.Equal(t, "d1", store.User().ID)
}

func TestAuthService_Logout(t *testing.T) {
	t.Run("clears the session even when the server call fails", func(t *testing.T) {
		services, store, _ := newTestServices(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(t, w, http.StatusInternalServerError, map[string]any{
				"success": false,
				"message": "logout unavailable",
			})
		}))

		store.StoreTokens("AT1", "RT1", time.Hour)
		store.StoreUser(testUser("u1", "t@example.com"))
		store.StorePendingUser(testUser("u2", "p@example.com"))

		services.Auth.Logout(context.Background())

		assert.Empty(t, store.AccessToken())
		assert.Empty(t, store.RefreshToken())
		assert.Nil(t, store.User())
		assert.Nil(t, store.PendingUser())
	})

	t.Run("calls the server before clearing on the happy path", func(t *testing.T) {
		var gotAuth string
		services, store, _ := newTestServices(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/auth/logout", r.URL.Path)
			gotAuth = r.Header.Get("Authorization")
			writeEnvelope(t, w, http.StatusOK, map[string]any{"success": true})
		}))

		store.StoreTokens("AT1", "RT1", time.Hour)

		services.Auth.Logout(context.Background())

		assert.Equal(t, "Bearer AT1", gotAuth)
		assert.Empty(t, store.AccessToken())
	})

	t.Run("clears local state when no session exists at all", func(t *testing.T) {
		services, store, _ := newTestServices(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected without a usable token")
		}))

		services.Auth.Logout(context.Background())
		assert.Empty(t, store.AccessToken())
	})
}

func TestAuthService_PasswordReset(t *testing.T) {
	var paths []string
	var auths []string
	services, _, _ := newTestServices(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		auths = append(auths, r.Header.Get("Authorization"))
		writeEnvelope(t, w, http.StatusOK, map[string]any{
			"success": true,
			"message": "OTP sent",
		})
	}))

	result, err := services.Auth.RequestPasswordResetOTP(context.Background(), "t@example.com")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "OTP sent", result.Message)

	_, err = services.Auth.VerifyOTPAndResetPassword(context.Background(), ResetPasswordRequest{
		Email:       "t@example.com",
		OTP:         "123456",
		NewPassword: "new-pw",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"/auth/request-password-reset-otp", "/auth/verify-otp-and-reset-password"}, paths)
	for _, auth := range auths {
		assert.Empty(t, auth, "password reset endpoints are unauthenticated")
	}
}
