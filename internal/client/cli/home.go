package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/authshell/internal/client/session"
)

type tokenChecker interface {
	HasStoredToken(ctx context.Context) (bool, error)
}

// homeView is the "/home" landing page. It only reads the session.
type homeView struct {
	session session.Getter
	tokens  tokenChecker
	out     io.Writer
}

func (v *homeView) Render(ctx context.Context) error {
	fmt.Fprintln(v.out, "== Home ==")

	s := v.session.Get()
	if s.Authenticated() {
		fmt.Fprintf(v.out, "Signed in as %s\n", displayName(s.User))
		fmt.Fprintf(v.out, "User: %s\n", s.User)
		return nil
	}

	fmt.Fprintln(v.out, "You are not signed in.")

	// the token is never used to restore a session; point at logout instead
	stored, err := v.tokens.HasStoredToken(ctx)
	if err != nil {
		return err
	}
	if stored {
		fmt.Fprintln(v.out, "A token from an earlier registration is stored. Use 'logout' to revoke it.")
	}
	return nil
}
