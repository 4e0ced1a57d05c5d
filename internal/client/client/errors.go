package client

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrUnavailable        = errors.New("server unavailable")
	ErrUnexpectedResponse = errors.New("unexpected response")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
)

// ValidationError is a 4xx answer carrying per-field messages, e.g.
// {"email": ["user with this email already exists."]}. A bare string or
// list body is kept under the "detail" key.
type ValidationError struct {
	Status int
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("validation failed (%d)", e.Status)
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], ", "))
	}
	return fmt.Sprintf("validation failed (%d): %s", e.Status, strings.Join(parts, "; "))
}

// ServerError is any other non-2xx answer. Body is truncated.
type ServerError struct {
	Status int
	Body   string
}

func (e *ServerError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("server error (%d)", e.Status)
	}
	return fmt.Sprintf("server error (%d): %s", e.Status, e.Body)
}
