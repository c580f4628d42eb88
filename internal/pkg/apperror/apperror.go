// FILE: internal/pkg/apperror/apperror.go
package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an error so the HTTP layer can pick a status code
// without inspecting message strings.
type Kind int

const (
	KindValidation Kind = iota // malformed or missing input
	KindConflict               // duplicate resource (e.g. email already registered)
	KindUnauthorized
	KindNotFound
	KindRateLimited
	KindUpstreamBadRequest
	KindUpstreamAuth
	KindUpstreamRateLimited
	KindUpstreamTimeout
	KindUpstreamEmpty
	KindUpstreamUnknown
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindRateLimited:
		return "rate_limited"
	case KindUpstreamBadRequest:
		return "upstream_bad_request"
	case KindUpstreamAuth:
		return "upstream_auth"
	case KindUpstreamRateLimited:
		return "upstream_rate_limited"
	case KindUpstreamTimeout:
		return "upstream_timeout"
	case KindUpstreamEmpty:
		return "upstream_empty"
	case KindUpstreamUnknown:
		return "upstream_unknown"
	default:
		return "internal"
	}
}

// IsUpstream reports whether the error originated from the AI provider.
func (k Kind) IsUpstream() bool {
	return k >= KindUpstreamBadRequest && k <= KindUpstreamUnknown
}

// AppError is the single error type services return to controllers.
type AppError struct {
	Kind    Kind
	Message string // safe to show to the end user
	Details string // diagnostic detail (upstream body, field errors)
	// RetryAfterSeconds is set for rate-limited errors so handlers can
	// emit a Retry-After hint.
	RetryAfterSeconds int
	Err               error // wrapped cause, never serialized
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

func Validation(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

func Conflict(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

func Unauthorized(message string) *AppError {
	return &AppError{Kind: KindUnauthorized, Message: message}
}

func NotFound(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

func RateLimited(message string, retryAfterSeconds int) *AppError {
	return &AppError{Kind: KindRateLimited, Message: message, RetryAfterSeconds: retryAfterSeconds}
}

func Upstream(kind Kind, message, details string) *AppError {
	return &AppError{Kind: kind, Message: message, Details: details}
}

func Internal(err error) *AppError {
	return &AppError{Kind: KindInternal, Message: "Server error.", Err: err}
}

// From extracts an *AppError from err, wrapping unknown errors as internal.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

// KindOf returns the kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	return From(err).Kind
}
