package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/authshell/internal/client/client"
)

// describeError turns a command error into a message for the user.
func describeError(err error) string {
	var (
		verr *client.ValidationError
		serr *client.ServerError
	)

	switch {
	case errors.Is(err, context.Canceled):
		return "Cancelled."
	case errors.Is(err, context.DeadlineExceeded):
		return "The server took too long to answer."
	case errors.Is(err, client.ErrInvalidCredentials):
		return "Invalid email or password."
	case errors.Is(err, client.ErrUnauthorized):
		return "The server rejected the stored token."
	case errors.Is(err, client.ErrUnavailable):
		return "Server is unavailable, try again later."
	case errors.Is(err, client.ErrUnexpectedResponse):
		return "Unexpected answer from the server."
	case errors.Is(err, ErrUnknownRoute):
		return fmt.Sprintf("%s. Type 'nav' to see the pages.", capitalize(err.Error()))
	case errors.As(err, &verr):
		return describeValidation(verr)
	case errors.As(err, &serr):
		return fmt.Sprintf("Server error (%d).", serr.Status)
	default:
		return capitalize(err.Error())
	}
}

func describeValidation(e *client.ValidationError) string {
	if len(e.Fields) == 0 {
		return "The server rejected the request."
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("The server rejected the request:")
	for _, k := range keys {
		fmt.Fprintf(&b, "\n  %s: %s", k, strings.Join(e.Fields[k], " "))
	}
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
