package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

const (
	RouteRegister = "/"
	RouteLogin    = "/login"
	RouteHome     = "/home"
)

var ErrUnknownRoute = errors.New("unknown route")

// view is one page of the shell. Render runs until the page's form is
// submitted (or immediately for read-only pages). The context is cancelled
// once the shell leaves the page.
type view interface {
	Render(ctx context.Context) error
}

type link struct {
	Path  string
	Title string
}

// navLinks is the navigation bar, printed above every page.
var navLinks = []link{
	{Path: RouteRegister, Title: "Register"},
	{Path: RouteLogin, Title: "Log In"},
	{Path: RouteHome, Title: "Home"},
}

// router is a static path table. It knows nothing about the session.
type router struct {
	views   map[string]view
	current string
}

func newRouter(views map[string]view) *router {
	return &router{views: views, current: RouteRegister}
}

// resolve normalizes p ("login", "/login/" and "/login" are the same page)
// and returns its view.
func (r *router) resolve(p string) (string, view, error) {
	p = strings.TrimSpace(p)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	p = path.Clean(p)

	v, ok := r.views[p]
	if !ok {
		return "", nil, fmt.Errorf("%w: %s", ErrUnknownRoute, p)
	}
	return p, v, nil
}

func printNav(w io.Writer, current string) {
	parts := make([]string, 0, len(navLinks))
	for _, l := range navLinks {
		item := fmt.Sprintf("%s (%s)", l.Title, l.Path)
		if l.Path == current {
			item = "[" + item + "]"
		}
		parts = append(parts, item)
	}
	fmt.Fprintln(w, strings.Join(parts, " | "))
}
