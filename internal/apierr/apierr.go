// Package apierr classifies pipeline failures into the client-facing taxonomy.
package apierr

import (
	"errors"
	"net/http"

	"newsgate/internal/models"
	"newsgate/internal/provider"
	"newsgate/internal/validator"
)

// Kind is one of the fixed error classes a caller can observe.
type Kind int

// Kinds in classification precedence order.
const (
	KindValidation Kind = iota
	KindUpstreamAuth
	KindUpstreamRateLimit
	KindUpstream
	KindInternal
)

// String returns the wire name of k.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation_error"
	case KindUpstreamAuth:
		return "upstream_auth_error"
	case KindUpstreamRateLimit:
		return "upstream_rate_limit_error"
	case KindUpstream:
		return "upstream_error"
	default:
		return "internal_error"
	}
}

// HTTPStatus returns the response status for k.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindUpstreamAuth:
		return http.StatusUnauthorized
	case KindUpstreamRateLimit:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Client-facing messages. Nothing from the provider reaches the caller.
const (
	msgInvalidQuery = "Invalid query parameters"
	msgAuth         = "News provider rejected the configured credentials"
	msgRateLimit    = "News provider rate limit exceeded, try again later"
)

var fetchMessages = map[models.Operation]string{
	models.OpSearch:    "Failed to fetch articles",
	models.OpHeadlines: "Failed to fetch headlines",
	models.OpSources:   "Failed to fetch sources",
}

// Error is the classified form of a pipeline failure. Cause keeps the full
// detail for logging and is never serialized.
type Error struct {
	Cause      error                 `json:"-"`
	Kind       Kind                  `json:"-"`
	Message    string                `json:"error"`
	Violations []validator.Violation `json:"violations,omitempty"`
}

// Error implements error with the client-safe message.
func (e *Error) Error() string {
	return e.Kind.String() + ": " + e.Message
}

// Unwrap exposes the original failure.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Status returns the HTTP status for the error.
func (e *Error) Status() int {
	return e.Kind.HTTPStatus()
}

// Classify maps err raised while serving op onto the taxonomy.
// An *Error passes through unchanged; nil stays nil.
func Classify(op models.Operation, err error) *Error {
	if err == nil {
		return nil
	}

	var classified *Error
	if errors.As(err, &classified) {
		return classified
	}

	var verr *validator.ValidationError
	if errors.As(err, &verr) {
		return &Error{
			Cause:      err,
			Kind:       KindValidation,
			Message:    msgInvalidQuery,
			Violations: verr.Violations,
		}
	}

	switch {
	case errors.Is(err, provider.ErrUnauthorized):
		return &Error{Cause: err, Kind: KindUpstreamAuth, Message: msgAuth}
	case errors.Is(err, provider.ErrRateLimited):
		return &Error{Cause: err, Kind: KindUpstreamRateLimit, Message: msgRateLimit}
	case errors.Is(err, provider.ErrUpstream):
		return &Error{Cause: err, Kind: KindUpstream, Message: fetchMessage(op)}
	default:
		return &Error{Cause: err, Kind: KindInternal, Message: fetchMessage(op)}
	}
}

func fetchMessage(op models.Operation) string {
	if msg, ok := fetchMessages[op]; ok {
		return msg
	}

	return "Internal server error"
}
