package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTokenInvalid covers malformed, tampered and expired tokens. The
	// sub-cause is attached for logging but never surfaced to clients.
	ErrTokenInvalid = errors.New("invalid or expired token")

	ErrForbidden    = errors.New("access forbidden")
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already exists")
)

// FieldError aggregates all constraint violations for a single input field.
type FieldError struct {
	Path     string   `json:"path"`
	Messages []string `json:"messages"`
}

// ValidationError collects every failing field of a request payload rather
// than stopping at the first.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Path, strings.Join(f.Messages, ", ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
