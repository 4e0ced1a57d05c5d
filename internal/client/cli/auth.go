package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/authshell/internal/client/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

type registrar interface {
	Register(ctx context.Context, email string, password []byte) (*models.UserRecord, error)
}

type authenticator interface {
	Login(ctx context.Context, email string, password []byte) (*models.UserRecord, error)
}

// readCredentials prompts for an email and a password. The caller wipes the
// returned credentials.
func readCredentials(reader *bufio.Reader, w io.Writer) (models.Credentials, error) {
	email, err := getSimpleText(reader, "Enter email", w)
	if err != nil {
		return models.Credentials{}, err
	}

	password, err := getPassword(w)
	if err != nil {
		return models.Credentials{}, err
	}

	return models.Credentials{Email: email, Password: password}, nil
}

// registerView is the "/" page: a registration form. The pair is sent as
// typed, without client-side checks.
type registerView struct {
	auth   registrar
	reader *bufio.Reader
	out    io.Writer
}

func (v *registerView) Render(ctx context.Context) error {
	fmt.Fprintln(v.out, "== Register ==")

	creds, err := readCredentials(v.reader, v.out)
	if err != nil {
		return err
	}
	defer creds.Wipe()

	user, err := v.auth.Register(ctx, creds.Email, creds.Password)
	if err != nil {
		return err
	}

	fmt.Fprintf(v.out, "Registered as %s\n", displayName(user))
	return nil
}

// loginView is the "/login" page.
type loginView struct {
	auth   authenticator
	reader *bufio.Reader
	out    io.Writer
}

func (v *loginView) Render(ctx context.Context) error {
	fmt.Fprintln(v.out, "== Log In ==")

	creds, err := readCredentials(v.reader, v.out)
	if err != nil {
		return err
	}
	defer creds.Wipe()

	user, err := v.auth.Login(ctx, creds.Email, creds.Password)
	if err != nil {
		return err
	}

	fmt.Fprintf(v.out, "Logged in as %s\n", displayName(user))
	return nil
}

// Logout revokes the stored token and clears the session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// Forget drops local state when the server cannot be reached for a proper
// logout.
func (a *App) Forget(ctx context.Context) error {
	if err := a.authService.Forget(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Local storage cleared")
	return nil
}

// Storage lists what durable storage holds. Values are not printed.
func (a *App) Storage(ctx context.Context) error {
	items, err := a.authService.StoredItems(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, "Local storage is empty")
		return nil
	}
	for _, it := range items {
		fmt.Fprintf(a.out, " - %s (%d bytes, saved %s)\n", it.Key, it.Size, it.UpdatedAt.Format(time.DateTime))
	}
	return nil
}

// displayName prefers the email and falls back to the masked record.
func displayName(u *models.UserRecord) string {
	if email := u.Email(); email != "" {
		return email
	}
	return u.String()
}
