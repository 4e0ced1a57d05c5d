package client

import (
	"context"

	"github.com/dmitrijs2005/authshell/internal/client/models"
)

// AuthResult is the {user, token} envelope returned by registration.
type AuthResult struct {
	User  *models.UserRecord `json:"user"`
	Token string             `json:"token"`
}

type Client interface {
	// Register creates an account and returns the {user, token} envelope.
	Register(ctx context.Context, creds models.Credentials) (*AuthResult, error)
	// Login authenticates and returns the whole response body as the user
	// record.
	Login(ctx context.Context, creds models.Credentials) (*models.UserRecord, error)
	// Logout revokes token on the server.
	Logout(ctx context.Context, token string) error
	// Ping reports whether the backend answers HTTP at all.
	Ping(ctx context.Context) error
	Close() error
}
