package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/authshell/internal/client/client"
	"github.com/dmitrijs2005/authshell/internal/client/config"
	"github.com/dmitrijs2005/authshell/internal/client/models"
	"github.com/dmitrijs2005/authshell/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/authshell/internal/client/services"
	"github.com/dmitrijs2005/authshell/internal/client/session"
	"github.com/dmitrijs2005/authshell/internal/logging"
)

type Mode string

const (
	ModeUnknown Mode = ""
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// pingTimeout bounds a single connectivity probe.
const pingTimeout = 3 * time.Second

type App struct {
	config      *config.Config
	authService services.AuthService
	session     *session.Store
	router      *router
	reader      *bufio.Reader
	out         io.Writer
	logger      logging.Logger
	db          io.Closer

	mu   sync.RWMutex
	mode Mode
}

// NewApp opens local storage, builds the API client and wires the views
// around a fresh, empty session.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.DatabaseFile)
	if err != nil {
		logger.Error(ctx, "error initializing database", "file", c.DatabaseFile, "error", err)
		return nil, err
	}

	apiClient, err := client.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	store := session.NewStore()
	as := services.NewAuthService(apiClient, metadata.NewSQLiteRepository(db), store,
		services.WithLoginEnvelope(c.UnwrapLoginEnvelope))

	a := newApp(c, as, store, os.Stdin, os.Stdout, logger)
	a.db = db
	return a, nil
}

// newApp wires an App from already built parts. The session store is the
// only place the session lives: register and login get write access through
// the auth service, the home view gets read access.
func newApp(c *config.Config, as services.AuthService, store *session.Store, in io.Reader, out io.Writer, logger logging.Logger) *App {
	a := &App{
		config:      c,
		authService: as,
		session:     store,
		reader:      bufio.NewReader(in),
		out:         out,
		logger:      logger,
	}

	a.router = newRouter(map[string]view{
		RouteRegister: &registerView{auth: as, reader: a.reader, out: out},
		RouteLogin:    &loginView{auth: as, reader: a.reader, out: out},
		RouteHome:     &homeView{session: store, tokens: as, out: out},
	})

	store.Subscribe(func(s models.Session) {
		// String masks credentials the record may carry
		logger.Info(context.Background(), "session changed",
			"authenticated", s.Authenticated(), "email", s.User.Email(), "user", s.User.String())
	})

	return a
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(ctx, "switched mode", "mode", mode)
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.Get().Authenticated()
}

// Navigate switches to the page at p and renders it. The session is not
// touched by navigation itself.
func (a *App) Navigate(ctx context.Context, p string) error {
	route, v, err := a.router.resolve(p)
	if err != nil {
		return err
	}
	a.router.current = route

	printNav(a.out, route)

	viewCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := v.Render(viewCtx); err != nil {
		a.logger.Warn(ctx, "page failed", "route", route, "error", err)
		return err
	}
	return nil
}

// PrintNav shows the navigation bar with the current page marked.
func (a *App) PrintNav() {
	printNav(a.out, a.router.current)
}

func (a *App) getStatus() string {
	s := ""
	if u := a.session.Get().User; u != nil {
		s = displayName(u) + " "
	}
	if m := a.Mode(); m != ModeUnknown {
		s = s + string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s) ", s)
	}
	return s + a.router.current
}

// Run starts the connectivity watcher and the REPL. It returns when the user
// exits, stdin is closed or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.close(ctx)

	if a.config.OnlineCheckInterval > 0 {
		go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}

	fmt.Fprintln(a.out, "Welcome to authshell (type 'help' for commands)")
	a.PrintNav()

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) close(ctx context.Context) {
	if err := a.authService.Close(ctx); err != nil {
		a.logger.Warn(ctx, "error closing api client", "error", err)
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn(ctx, "error closing database", "error", err)
		}
	}
}

// StartOnlineStatusWatcher pings the backend every interval until ctx is
// done and keeps the mode shown in the prompt up to date.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	a.checkOnline(ctx)

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := a.authService.Ping(pingCtx)
	cancel()

	if ctx.Err() != nil {
		return
	}

	if err != nil {
		a.logger.Debug(ctx, "ping failed", "error", err)
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}
