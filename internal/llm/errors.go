package llm

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the LLM returned content that does not
// conform to the requested schema, or no usable content at all. Path is
// the JSON pointer of the first field that broke the schema, if known.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Path    string
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("invalid LLM response at %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded indicates the response was truncated because it
// hit the MaxTokens limit.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}

// ErrCredentialRejected indicates the backend refused the configured API
// key: unauthorized, forbidden, invalid, or "Requested entity was not
// found." for a key that no longer exists. It is never retried.
type ErrCredentialRejected struct {
	StatusCode int
	Err        error
}

func (e *ErrCredentialRejected) Error() string {
	return fmt.Sprintf("API credential rejected (status %d): %v", e.StatusCode, e.Err)
}

func (e *ErrCredentialRejected) Unwrap() error { return e.Err }

// credentialRejectionMarkers are message fragments some backends use for
// a bad key behind a generic status code.
var credentialRejectionMarkers = []string{
	"Requested entity was not found",
	"API key not valid",
	"API_KEY_INVALID",
	"invalid x-api-key",
	"Incorrect API key",
}

// isCredentialRejection reports whether an HTTP status plus message from a
// provider means the API key itself was refused.
func isCredentialRejection(status int, msg string) bool {
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return true
	}
	if status == http.StatusNotFound || status == http.StatusBadRequest {
		for _, m := range credentialRejectionMarkers {
			if strings.Contains(msg, m) {
				return true
			}
		}
	}
	return false
}
