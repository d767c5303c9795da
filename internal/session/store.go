package session

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/classpilot/classpilot-go/internal/models"
)

// Persisted keys. All values are plain strings; JSON fields round-trip
// through encoding/json.
const (
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
	keyTokenExpiry  = "token_expiry"
	keyUserData     = "user_data"
	keyPendingUser  = "pending_user"
)

// DefaultTokenTTL is assumed when the backend response carries no expiresIn
// and the access token carries no exp claim. A long window avoids forcing a
// premature logout; the server still rejects genuinely stale tokens.
const DefaultTokenTTL = 7 * 24 * time.Hour

// Store holds the client's authentication state: token pair, expiry, cached
// user and the transient pending user from multi-step OTP login.
//
// Reads never fail: any backend error is logged and a zero value returned.
// Writes are best-effort; callers must not assume persistence succeeded, only
// that the call completed.
type Store struct {
	backend Backend
	now     func() time.Time
}

// NewStore creates a Store over the given backend.
func NewStore(backend Backend) *Store {
	return &Store{backend: backend, now: time.Now}
}

// AccessToken returns the stored access token, or "" if none is stored or the
// backend read fails.
func (s *Store) AccessToken() string {
	return s.get(keyAccessToken)
}

// RefreshToken returns the stored refresh token, or "".
func (s *Store) RefreshToken() string {
	return s.get(keyRefreshToken)
}

// StoreTokens persists the token pair and an absolute expiry in one write.
// The expiry is now+ttl verbatim; callers that have no server-provided TTL
// should derive one with ResolveTTL first.
func (s *Store) StoreTokens(access, refresh string, ttl time.Duration) {
	expiresAt := s.now().Add(ttl)

	err := s.backend.SetMulti(map[string]string{
		keyAccessToken:  access,
		keyRefreshToken: refresh,
		keyTokenExpiry:  strconv.FormatInt(expiresAt.UnixMilli(), 10),
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to persist tokens")
		return
	}

	log.Debug().Time("expiresAt", expiresAt).Msg("tokens stored")
}

// IsTokenExpired returns true when no expiry is stored or the stored expiry
// is not in the future. A token whose expiry equals the current instant is
// already expired. Unreadable state counts as expired, which forces a refresh
// attempt rather than risking a stale token.
func (s *Store) IsTokenExpired() bool {
	raw := s.get(keyTokenExpiry)
	if raw == "" {
		return true
	}
	millis, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		log.Warn().Str("value", raw).Msg("invalid token expiry in session store")
		return true
	}
	return !s.now().Before(time.UnixMilli(millis))
}

// ClearTokens removes the whole session: token pair, expiry, cached user and
// pending user. Safe to call when nothing is stored.
func (s *Store) ClearTokens() {
	err := s.backend.DeleteMulti(
		keyAccessToken,
		keyRefreshToken,
		keyTokenExpiry,
		keyUserData,
		keyPendingUser,
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to clear session")
		return
	}
	log.Debug().Msg("session cleared")
}

// StoreUser caches the authenticated user's profile.
func (s *Store) StoreUser(user *models.UserRecord) {
	s.setJSON(keyUserData, user)
}

// User returns the cached profile, or nil.
func (s *Store) User() *models.UserRecord {
	return s.getJSON(keyUserData)
}

// StorePendingUser records a profile awaiting OTP verification.
func (s *Store) StorePendingUser(user *models.UserRecord) {
	s.setJSON(keyPendingUser, user)
}

// PendingUser returns the profile awaiting OTP verification, or nil.
func (s *Store) PendingUser() *models.UserRecord {
	return s.getJSON(keyPendingUser)
}

// ClearPendingUser removes the pending user only.
func (s *Store) ClearPendingUser() {
	if err := s.backend.DeleteMulti(keyPendingUser); err != nil {
		log.Error().Err(err).Msg("failed to clear pending user")
	}
}

func (s *Store) get(key string) string {
	v, ok, err := s.backend.Get(key)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("session read failed")
		return ""
	}
	if !ok {
		return ""
	}
	return v
}

func (s *Store) getJSON(key string) *models.UserRecord {
	raw := s.get(key)
	if raw == "" {
		return nil
	}
	var user models.UserRecord
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to decode stored user")
		return nil
	}
	return &user
}

func (s *Store) setJSON(key string, user *models.UserRecord) {
	data, err := json.Marshal(user)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to encode user")
		return
	}
	if err := s.backend.SetMulti(map[string]string{key: string(data)}); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to persist user")
	}
}

// ResolveTTL picks the lifetime for an access token. A positive
// expiresInSeconds from the server wins; otherwise the token's own exp claim
// is used when it parses as a JWT; otherwise DefaultTokenTTL. The long
// default window avoids forcing a premature logout; the server still rejects
// genuinely stale tokens.
func ResolveTTL(accessToken string, expiresInSeconds int64) time.Duration {
	if expiresInSeconds > 0 {
		return time.Duration(expiresInSeconds) * time.Second
	}
	if exp, ok := jwtExpiry(accessToken); ok {
		if remaining := time.Until(exp); remaining > 0 {
			return remaining
		}
	}
	return DefaultTokenTTL
}

// jwtExpiry extracts the exp claim from an access token without verifying the
// signature. The client is not the token authority; the claim is only a hint
// for when to refresh.
func jwtExpiry(accessToken string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
