package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error is the single error type the client surfaces. StatusCode carries the
// HTTP status for live responses, or a synthesized code for client-side
// failures: 401 when no usable token exists, 408 on timeout, 500 on transport
// or decode failure. Data holds the raw response body when one was received.
type Error struct {
	StatusCode int
	Message    string
	Data       json.RawMessage
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// AsError unwraps err into an *Error when possible.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsAuth reports whether err is an authentication failure the caller should
// resolve by re-authenticating.
func IsAuth(err error) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.StatusCode == http.StatusUnauthorized
}

// IsTimeout reports whether err is a client-side request timeout.
func IsTimeout(err error) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.StatusCode == http.StatusRequestTimeout
}
