package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/authshell/internal/client/models"
	"github.com/dmitrijs2005/authshell/internal/logging"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	method string
	path   string
	header http.Header
	body   []byte
}

type recorder struct {
	mu    sync.Mutex
	calls []recorded
}

func (r *recorder) add(req *http.Request) {
	b, _ := io.ReadAll(req.Body)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, recorded{method: req.Method, path: req.URL.Path, header: req.Header.Clone(), body: b})
}

func (r *recorder) all() []recorded {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]recorded(nil), r.calls...)
}

// fakeBackend answers every request with status/body and records what it got.
func fakeBackend(t *testing.T, status int, body string) (*httptest.Server, *recorder) {
	t.Helper()
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.add(r)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func newTestClient(t *testing.T, baseURL string) *HTTPClient {
	t.Helper()
	c, err := NewHTTPClient(baseURL, 2*time.Second, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func creds() models.Credentials {
	return models.Credentials{Email: "a@b.com", Password: []byte("pw")}
}

func TestNewHTTPClient_RejectsBadBaseURL(t *testing.T) {
	for _, u := range []string{"", "127.0.0.1:8000", "ftp://host", "http://", "::bad"} {
		_, err := NewHTTPClient(u, time.Second, logging.Discard())
		assert.Error(t, err, u)
	}
}

func TestRegister_PostsCredentialsOnce(t *testing.T) {
	srv, calls := fakeBackend(t, http.StatusOK, `{"user":{"id":1,"email":"a@b.com"},"token":"abc"}`)
	c := newTestClient(t, srv.URL)

	res, err := c.Register(context.Background(), creds())
	require.NoError(t, err)

	require.Len(t, calls.all(), 1)
	call := calls.all()[0]
	assert.Equal(t, http.MethodPost, call.method)
	assert.Equal(t, RegisterPath, call.path)
	assert.Equal(t, "application/json", call.header.Get("Content-Type"))
	assert.JSONEq(t, `{"email":"a@b.com","password":"pw"}`, string(call.body))

	_, err = uuid.Parse(call.header.Get("X-Request-ID"))
	assert.NoError(t, err)

	assert.Equal(t, "abc", res.Token)
	assert.JSONEq(t, `{"id":1,"email":"a@b.com"}`, string(res.User.Raw()))
}

func TestRegister_UnexpectedShapes(t *testing.T) {
	bodies := []string{
		`null`,
		`{"token":"abc"}`,
		`{"user":{"id":1}}`,
		`{"user":null,"token":"abc"}`,
		`{"user":{"id":1},"token":42}`,
		`<html>oops</html>`,
	}
	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			srv, _ := fakeBackend(t, http.StatusOK, body)
			c := newTestClient(t, srv.URL)

			_, err := c.Register(context.Background(), creds())
			require.ErrorIs(t, err, ErrUnexpectedResponse)
		})
	}
}

func TestRegister_ValidationError(t *testing.T) {
	srv, _ := fakeBackend(t, http.StatusBadRequest, `{"email":["user with this email already exists."],"password":"too short"}`)
	c := newTestClient(t, srv.URL)

	_, err := c.Register(context.Background(), creds())

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, http.StatusBadRequest, verr.Status)
	assert.Equal(t, []string{"user with this email already exists."}, verr.Fields["email"])
	assert.Equal(t, []string{"too short"}, verr.Fields["password"])
	assert.Equal(t, "validation failed (400): email: user with this email already exists.; password: too short", verr.Error())
}

func TestRegister_ServerError(t *testing.T) {
	srv, _ := fakeBackend(t, http.StatusInternalServerError, `IntegrityError`)
	c := newTestClient(t, srv.URL)

	_, err := c.Register(context.Background(), creds())

	var serr *ServerError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusInternalServerError, serr.Status)
	assert.Equal(t, "IntegrityError", serr.Body)
}

func TestRegister_DoesNotUseCookieJar(t *testing.T) {
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.add(r)
		switch r.URL.Path {
		case LoginPath:
			http.SetCookie(w, &http.Cookie{Name: "sessionid", Value: "s1", Path: "/"})
			_, _ = io.WriteString(w, `{"id":2}`)
		case RegisterPath:
			_, _ = io.WriteString(w, `{"user":{"id":3},"token":"t"}`)
		}
	}))
	defer srv.Close()
	c := newTestClient(t, srv.URL)

	_, err := c.Login(context.Background(), creds())
	require.NoError(t, err)
	require.Len(t, c.Cookies(), 1)

	_, err = c.Register(context.Background(), creds())
	require.NoError(t, err)

	calls := rec.all()
	require.Len(t, calls, 2)
	assert.Equal(t, RegisterPath, calls[1].path)
	assert.Empty(t, calls[1].header.Get("Cookie"))
}

func TestLogin_ReturnsWholeBody(t *testing.T) {
	srv, calls := fakeBackend(t, http.StatusOK, `{"id":2,"email":"c@d.com"}`)
	c := newTestClient(t, srv.URL)

	user, err := c.Login(context.Background(), creds())
	require.NoError(t, err)

	assert.JSONEq(t, `{"id":2,"email":"c@d.com"}`, string(user.Raw()))
	require.Len(t, calls.all(), 1)
	assert.Equal(t, LoginPath, calls.all()[0].path)
	assert.JSONEq(t, `{"email":"a@b.com","password":"pw"}`, string(calls.all()[0].body))
}

func TestLogin_KeepsEnvelopeAsUserRecord(t *testing.T) {
	srv, _ := fakeBackend(t, http.StatusOK, `{"user":{"email":"c@d.com"},"token":"t"}`)
	c := newTestClient(t, srv.URL)

	user, err := c.Login(context.Background(), creds())
	require.NoError(t, err)
	assert.JSONEq(t, `{"user":{"email":"c@d.com"},"token":"t"}`, string(user.Raw()))
}

func TestLogin_CookiesAreStoredAndReplayed(t *testing.T) {
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.add(r)
		switch r.URL.Path {
		case LoginPath:
			http.SetCookie(w, &http.Cookie{Name: "sessionid", Value: "s1", Path: "/"})
			_, _ = io.WriteString(w, `{"id":2}`)
		case LogoutPath:
			_, _ = io.WriteString(w, `null`)
		}
	}))
	defer srv.Close()
	c := newTestClient(t, srv.URL)

	_, err := c.Login(context.Background(), creds())
	require.NoError(t, err)
	require.NoError(t, c.Logout(context.Background(), "tok"))

	calls := rec.all()
	require.Len(t, calls, 2)
	assert.Equal(t, "sessionid=s1", calls[1].header.Get("Cookie"))
}

func TestLogin_EmptyBodyIsInvalidCredentials(t *testing.T) {
	// Response(None) from the REST framework renders as a 200 with no body
	srv, _ := fakeBackend(t, http.StatusOK, "")
	c := newTestClient(t, srv.URL)

	_, err := c.Login(context.Background(), creds())
	require.ErrorIs(t, err, ErrInvalidCredentials)
	require.NotErrorIs(t, err, ErrUnexpectedResponse)
}

func TestLogin_NullBodyIsInvalidCredentials(t *testing.T) {
	srv, _ := fakeBackend(t, http.StatusOK, "null\n")
	c := newTestClient(t, srv.URL)

	_, err := c.Login(context.Background(), creds())
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name: "401", status: http.StatusUnauthorized, body: `{"detail":"nope"}`,
			check: func(t *testing.T, err error) { require.ErrorIs(t, err, ErrInvalidCredentials) },
		},
		{
			name: "403", status: http.StatusForbidden, body: ``,
			check: func(t *testing.T, err error) { require.ErrorIs(t, err, ErrInvalidCredentials) },
		},
		{
			name: "empty 200", status: http.StatusOK, body: ``,
			check: func(t *testing.T, err error) { require.ErrorIs(t, err, ErrInvalidCredentials) },
		},
		{
			name: "whitespace 200", status: http.StatusOK, body: " \n",
			check: func(t *testing.T, err error) { require.ErrorIs(t, err, ErrInvalidCredentials) },
		},
		{
			name: "html 200", status: http.StatusOK, body: `<html></html>`,
			check: func(t *testing.T, err error) { require.ErrorIs(t, err, ErrUnexpectedResponse) },
		},
		{
			name: "422 list body", status: http.StatusUnprocessableEntity, body: `["bad email","bad password"]`,
			check: func(t *testing.T, err error) {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, []string{"bad email", "bad password"}, verr.Fields["detail"])
			},
		},
		{
			name: "502", status: http.StatusBadGateway, body: ``,
			check: func(t *testing.T, err error) {
				var serr *ServerError
				require.ErrorAs(t, err, &serr)
				assert.Equal(t, "server error (502)", serr.Error())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := fakeBackend(t, tt.status, tt.body)
			c := newTestClient(t, srv.URL)

			_, err := c.Login(context.Background(), creds())
			tt.check(t, err)
		})
	}
}

func TestNetworkFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := newTestClient(t, url)

	_, err := c.Register(context.Background(), creds())
	require.ErrorIs(t, err, ErrUnavailable)

	_, err = c.Login(context.Background(), creds())
	require.ErrorIs(t, err, ErrUnavailable)

	require.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)
}

func TestCancelledContextIsNotUnavailable(t *testing.T) {
	srv, _ := fakeBackend(t, http.StatusOK, `{}`)
	c := newTestClient(t, srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Login(ctx, creds())
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, errors.Is(err, ErrUnavailable))
}

func TestLogout_SendsTokenHeader(t *testing.T) {
	srv, calls := fakeBackend(t, http.StatusOK, `null`)
	c := newTestClient(t, srv.URL)

	require.NoError(t, c.Logout(context.Background(), "abc"))

	require.Len(t, calls.all(), 1)
	assert.Equal(t, LogoutPath, calls.all()[0].path)
	assert.Equal(t, "Token abc", calls.all()[0].header.Get("Authorization"))
	assert.Empty(t, calls.all()[0].body)
}

func TestLogout_RejectedToken(t *testing.T) {
	srv, _ := fakeBackend(t, http.StatusUnauthorized, `{"detail":"Invalid token."}`)
	c := newTestClient(t, srv.URL)

	require.ErrorIs(t, c.Logout(context.Background(), "abc"), ErrUnauthorized)
}

func TestPing_AnyStatusIsReachable(t *testing.T) {
	srv, calls := fakeBackend(t, http.StatusNotFound, ``)
	c := newTestClient(t, srv.URL)

	require.NoError(t, c.Ping(context.Background()))
	assert.Equal(t, http.MethodHead, calls.all()[0].method)
}

func TestDecodeAuthResult(t *testing.T) {
	res, err := DecodeAuthResult([]byte(`{"user":"opaque","token":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, "x", res.Token)

	raw, err := json.Marshal(res.User)
	require.NoError(t, err)
	assert.Equal(t, `"opaque"`, string(raw))
}
