// Package services contains application services for the authshell client.
// This file defines the authentication service: the register, login and
// logout flows, plus the liveness probe used by the shell.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/authshell/internal/client/client"
	"github.com/dmitrijs2005/authshell/internal/client/models"
	"github.com/dmitrijs2005/authshell/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/authshell/internal/client/session"
	"github.com/dmitrijs2005/authshell/internal/common"
)

// AuthService defines the authentication flows the shell can run.
//
// Contract:
//   - Register: create the account, persist the issued token, set the session.
//   - Login: authenticate, set the session to the returned user record.
//   - Logout: revoke the persisted token (if any), delete it, clear the session.
//   - HasStoredToken: report whether a token is persisted.
//   - StoredItems: describe what durable storage holds, without values.
//   - Forget: wipe durable storage and clear the session without contacting
//     the server.
//   - Ping: check backend liveness.
//   - Close: release client resources.
//
// On any error the session and durable storage are left as they were.
// If ctx is cancelled while a request is in flight the result is dropped.
type AuthService interface {
	Register(ctx context.Context, email string, password []byte) (*models.UserRecord, error)
	Login(ctx context.Context, email string, password []byte) (*models.UserRecord, error)
	Logout(ctx context.Context) error
	HasStoredToken(ctx context.Context) (bool, error)
	StoredItems(ctx context.Context) ([]metadata.Item, error)
	Forget(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Option tweaks an authService.
type Option func(*authService)

// WithLoginEnvelope makes Login decode the {user, token} envelope like
// Register does and persist the token. By default the whole login body is
// the user record and no token is stored.
func WithLoginEnvelope(enabled bool) Option {
	return func(a *authService) {
		a.unwrapLoginEnvelope = enabled
	}
}

type authService struct {
	client              client.Client
	storage             metadata.Repository
	session             session.Setter
	unwrapLoginEnvelope bool
}

// NewAuthService wires the API client, the durable storage and the write side
// of the session store. The service never reads the session.
func NewAuthService(c client.Client, storage metadata.Repository, setter session.Setter, opts ...Option) AuthService {
	a := &authService{client: c, storage: storage, session: setter}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Register calls the registration endpoint, stores the token under
// common.TokenStorageKey and publishes the user.
func (a *authService) Register(ctx context.Context, email string, password []byte) (*models.UserRecord, error) {
	res, err := a.client.Register(ctx, models.Credentials{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	if err := a.saveToken(ctx, res.Token); err != nil {
		return nil, err
	}
	a.session.Set(res.User)
	return res.User, nil
}

// Login calls the login endpoint and publishes the returned body as the
// user. See WithLoginEnvelope for the alternative contract.
func (a *authService) Login(ctx context.Context, email string, password []byte) (*models.UserRecord, error) {
	user, err := a.client.Login(ctx, models.Credentials{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	if a.unwrapLoginEnvelope {
		res, err := client.DecodeAuthResult(user.Raw())
		if err != nil {
			return nil, fmt.Errorf("login: %w", err)
		}
		if err := a.saveToken(ctx, res.Token); err != nil {
			return nil, err
		}
		user = res.User
	}

	a.session.Set(user)
	return user, nil
}

// Logout revokes the stored token on the server. A token the server no
// longer accepts is still removed locally. Without a stored token only the
// session is cleared.
func (a *authService) Logout(ctx context.Context) error {
	token, err := a.storage.Get(ctx, common.TokenStorageKey)
	if err != nil {
		return fmt.Errorf("read token: %w", err)
	}

	if len(token) > 0 {
		if err := a.client.Logout(ctx, string(token)); err != nil && !errors.Is(err, client.ErrUnauthorized) {
			return fmt.Errorf("logout: %w", err)
		}
		if err := a.storage.Delete(ctx, common.TokenStorageKey); err != nil {
			return fmt.Errorf("delete token: %w", err)
		}
	}

	a.session.Set(nil)
	return nil
}

func (a *authService) HasStoredToken(ctx context.Context) (bool, error) {
	token, err := a.storage.Get(ctx, common.TokenStorageKey)
	if err != nil {
		return false, fmt.Errorf("read token: %w", err)
	}
	return len(token) > 0, nil
}

func (a *authService) StoredItems(ctx context.Context) ([]metadata.Item, error) {
	items, err := a.storage.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list storage: %w", err)
	}
	return items, nil
}

// Forget is the offline counterpart of Logout: the server keeps the token
// valid until it is revoked there.
func (a *authService) Forget(ctx context.Context) error {
	if err := a.storage.Clear(ctx); err != nil {
		return fmt.Errorf("clear storage: %w", err)
	}
	a.session.Set(nil)
	return nil
}

func (a *authService) saveToken(ctx context.Context, token string) error {
	if err := a.storage.Set(ctx, common.TokenStorageKey, []byte(token)); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
