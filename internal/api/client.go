package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gregjones/httpcache"
	"github.com/rs/zerolog"

	"github.com/classpilot/classpilot-go/internal/session"
)

// DefaultTimeout bounds every request, including the refresh call.
const DefaultTimeout = 10 * time.Second

const refreshEndpoint = "/auth/refresh"

// Config holds client construction parameters.
type Config struct {
	// BaseURL is the API root, e.g. https://api.classpilot.app/api/v1.
	BaseURL string
	// Timeout per request. Zero means DefaultTimeout.
	Timeout time.Duration
	// EnableCaching routes requests through an in-memory HTTP cache so
	// read-heavy GETs (dashboards) honour Cache-Control headers.
	EnableCaching bool
	// Logger for request tracing. Zero value disables client logging.
	Logger zerolog.Logger
}

// Request describes one outbound call. Requests are authenticated unless
// SkipAuth is set (sign-in, OTP, password-reset and email-verification
// endpoints).
type Request struct {
	Endpoint string
	Method   string
	Body     any
	SkipAuth bool
}

// Envelope is the backend's uniform response shape, with Data left raw for
// the caller to decode.
type Envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data,omitempty"`
	Message    string          `json:"message,omitempty"`
	ErrorText  string          `json:"error,omitempty"`
	StatusCode int             `json:"statusCode,omitempty"`
}

// Result is a decoded envelope.
type Result[T any] struct {
	Success    bool
	Data       T
	Message    string
	StatusCode int
}

// Client issues HTTP requests against the backend, attaching bearer tokens
// and transparently refreshing an expired access token before the real call.
// All failures surface as *Error.
//
// Concurrent requests that each observe an expired token each trigger their
// own refresh call. Every successful refresh writes an internally consistent
// (access token, same refresh token) pair, so redundant refreshes are
// wasteful but harmless.
type Client struct {
	baseURL string
	http    *http.Client
	store   *session.Store
	timeout time.Duration
	logger  zerolog.Logger
}

// New creates a client sharing the given session store.
func New(cfg Config, store *session.Store) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	httpClient := &http.Client{}
	if cfg.EnableCaching {
		httpClient.Transport = httpcache.NewTransport(httpcache.NewMemoryCache())
	}

	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		http:    httpClient,
		store:   store,
		timeout: timeout,
		logger:  cfg.Logger,
	}
}

// Store exposes the underlying session store.
func (c *Client) Store() *session.Store {
	return c.store
}

// Do performs one call and returns the parsed response envelope.
//
// A 401 response clears the whole session before the error is returned; the
// caller is expected to route the user back to authentication.
func (c *Client) Do(ctx context.Context, req Request) (*Envelope, error) {
	var token string
	if !req.SkipAuth {
		if c.store.IsTokenExpired() {
			token = c.refreshAccessToken(ctx)
		} else {
			token = c.store.AccessToken()
		}
		if token == "" {
			return nil, &Error{StatusCode: http.StatusUnauthorized, Message: "Authentication required"}
		}
	}

	requestID := uuid.NewString()
	started := time.Now()

	resp, body, err := c.roundTrip(ctx, req.Method, req.Endpoint, req.Body, token, requestID)
	if err != nil {
		c.logger.Debug().
			Str("requestId", requestID).
			Str("method", req.Method).
			Str("endpoint", req.Endpoint).
			Dur("duration", time.Since(started)).
			Err(err).
			Msg("request failed")
		return nil, err
	}

	c.logger.Debug().
		Str("requestId", requestID).
		Str("method", req.Method).
		Str("endpoint", req.Endpoint).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(started)).
		Msg("request complete")

	var envelope Envelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &Error{
			StatusCode: http.StatusInternalServerError,
			Message:    "Network error: invalid response body",
			Data:       body,
		}
	}
	if envelope.StatusCode == 0 {
		envelope.StatusCode = resp.StatusCode
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return &envelope, nil

	case resp.StatusCode == http.StatusUnauthorized:
		c.store.ClearTokens()
		return nil, &Error{
			StatusCode: http.StatusUnauthorized,
			Message:    "Session expired. Please login again.",
			Data:       body,
		}

	default:
		message := envelope.Message
		if message == "" {
			message = envelope.ErrorText
		}
		if message == "" {
			message = "An error occurred"
		}
		return nil, &Error{StatusCode: resp.StatusCode, Message: message, Data: body}
	}
}

// Do performs a call on c and decodes the envelope's data field into T.
func Do[T any](ctx context.Context, c *Client, req Request) (*Result[T], error) {
	envelope, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	result := &Result[T]{
		Success:    envelope.Success,
		Message:    envelope.Message,
		StatusCode: envelope.StatusCode,
	}
	if len(envelope.Data) > 0 && string(envelope.Data) != "null" {
		if err := json.Unmarshal(envelope.Data, &result.Data); err != nil {
			return nil, &Error{
				StatusCode: http.StatusInternalServerError,
				Message:    "Network error: failed to decode response data",
				Data:       envelope.Data,
			}
		}
	}
	return result, nil
}

// roundTrip issues a single HTTP call with the configured timeout and maps
// transport failures into *Error.
func (c *Client) roundTrip(ctx context.Context, method, endpoint string, body any, token, requestID string) (*http.Response, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, nil, &Error{
				StatusCode: http.StatusInternalServerError,
				Message:    fmt.Sprintf("Network error: failed to encode request body: %v", err),
			}
		}
		reader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return nil, nil, &Error{
			StatusCode: http.StatusInternalServerError,
			Message:    fmt.Sprintf("Network error: %v", err),
		}
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-Id", requestID)
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		if isTimeout(err) {
			return nil, nil, &Error{StatusCode: http.StatusRequestTimeout, Message: "Request timeout"}
		}
		return nil, nil, &Error{
			StatusCode: http.StatusInternalServerError,
			Message:    fmt.Sprintf("Network error: %v", err),
		}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return nil, nil, &Error{StatusCode: http.StatusRequestTimeout, Message: "Request timeout"}
		}
		return nil, nil, &Error{
			StatusCode: http.StatusInternalServerError,
			Message:    fmt.Sprintf("Network error: %v", err),
		}
	}

	return resp, data, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}

// refreshData is the refresh endpoint's data payload.
type refreshData struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// refreshAccessToken exchanges the stored refresh token for a new access
// token. The refresh token is sent both as a bearer header and in the body;
// the backend accepts either. Refresh tokens are not rotated, so a success
// persists the new access token with the same refresh token.
//
// Any failure clears the whole session and returns "" so the caller fails
// with an authentication error instead of operating on uncertain state.
func (c *Client) refreshAccessToken(ctx context.Context) string {
	refresh := c.store.RefreshToken()
	if refresh == "" {
		return ""
	}

	resp, body, err := c.roundTrip(ctx, http.MethodPost, refreshEndpoint,
		map[string]string{"refreshToken": refresh}, refresh, uuid.NewString())
	if err != nil {
		c.logger.Warn().Err(err).Msg("token refresh failed")
		c.store.ClearTokens()
		return ""
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn().Int("status", resp.StatusCode).Msg("token refresh rejected")
		c.store.ClearTokens()
		return ""
	}

	var envelope Envelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		c.logger.Warn().Err(err).Msg("token refresh response unreadable")
		c.store.ClearTokens()
		return ""
	}

	var data refreshData
	if len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, &data); err != nil {
			c.logger.Warn().Err(err).Msg("token refresh payload unreadable")
			c.store.ClearTokens()
			return ""
		}
	}
	if !envelope.Success || data.AccessToken == "" {
		c.logger.Warn().Msg("token refresh returned no access token")
		c.store.ClearTokens()
		return ""
	}

	c.store.StoreTokens(data.AccessToken, refresh, session.ResolveTTL(data.AccessToken, data.ExpiresIn))
	c.logger.Debug().Msg("access token refreshed")

	return data.AccessToken
}
