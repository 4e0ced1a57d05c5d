package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/dmitrijs2005/authshell/internal/client/models"
	"github.com/dmitrijs2005/authshell/internal/common"
	"github.com/dmitrijs2005/authshell/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"
)

const (
	RegisterPath = "/api/users/register/"
	LoginPath    = "/api/users/login/"
	LogoutPath   = "/api/users/logout/"

	maxResponseBody = 1 << 20
	maxErrorBody    = 512
)

// HTTPClient talks JSON to the authentication API.
//
// It keeps two http.Clients over one transport: "anonymous" has no cookie
// jar and is used for registration and pings, "session" carries the jar and
// is used for login and logout so cookies set by the backend on login are
// replayed later.
type HTTPClient struct {
	baseURL   *url.URL
	transport *http.Transport
	anonymous *http.Client
	session   *http.Client
	logger    logging.Logger
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient validates baseURL (scheme://host[:port]) and prepares the
// transport. timeout bounds each request; zero means no limit.
func NewHTTPClient(baseURL string, timeout time.Duration, logger logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be http(s)://host[:port]", baseURL)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()

	return &HTTPClient{
		baseURL:   u,
		transport: transport,
		anonymous: &http.Client{Transport: transport, Timeout: timeout},
		session:   &http.Client{Transport: transport, Timeout: timeout, Jar: jar},
		logger:    logger,
	}, nil
}

type credentialsPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func newCredentialsPayload(creds models.Credentials) credentialsPayload {
	return credentialsPayload{Email: creds.Email, Password: string(creds.Password)}
}

// Register posts the credentials without cookies and decodes the
// {user, token} envelope.
func (c *HTTPClient) Register(ctx context.Context, creds models.Credentials) (*AuthResult, error) {
	status, body, err := c.do(ctx, c.anonymous, http.MethodPost, RegisterPath, newCredentialsPayload(creds), nil)
	if err != nil {
		return nil, err
	}
	if !isSuccess(status) {
		return nil, statusError(status, body, ErrUnauthorized)
	}
	return DecodeAuthResult(body)
}

// Login posts the credentials through the cookie jar. The whole body is the
// user record. An empty or JSON null 2xx body means the backend refused the
// credentials (a REST framework Response(None) renders as an empty body).
func (c *HTTPClient) Login(ctx context.Context, creds models.Credentials) (*models.UserRecord, error) {
	status, body, err := c.do(ctx, c.session, http.MethodPost, LoginPath, newCredentialsPayload(creds), nil)
	if err != nil {
		return nil, err
	}
	if !isSuccess(status) {
		return nil, statusError(status, body, ErrInvalidCredentials)
	}

	body = bytes.TrimSpace(body)
	switch {
	case len(body) == 0, bytes.Equal(body, []byte("null")):
		return nil, ErrInvalidCredentials
	case !json.Valid(body):
		return nil, fmt.Errorf("%w: body is not JSON", ErrUnexpectedResponse)
	}
	return models.NewUserRecord(body), nil
}

// Logout asks the backend to revoke token.
func (c *HTTPClient) Logout(ctx context.Context, token string) error {
	h := http.Header{}
	h.Set("Authorization", common.AuthorizationScheme+" "+token)

	status, body, err := c.do(ctx, c.session, http.MethodPost, LogoutPath, nil, h)
	if err != nil {
		return err
	}
	if !isSuccess(status) {
		return statusError(status, body, ErrUnauthorized)
	}
	return nil
}

// Ping sends HEAD to the base URL. Any HTTP answer counts as reachable.
func (c *HTTPClient) Ping(ctx context.Context) error {
	_, _, err := c.do(ctx, c.anonymous, http.MethodHead, "/", nil, nil)
	return err
}

// Cookies returns the cookies the jar would send to the backend.
func (c *HTTPClient) Cookies() []*http.Cookie {
	return c.session.Jar.Cookies(c.baseURL)
}

func (c *HTTPClient) Close() error {
	c.transport.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) do(ctx context.Context, hc *http.Client, method, path string, payload any, header http.Header) (int, []byte, error) {
	var reqBody io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	endpoint := c.baseURL.JoinPath(path)
	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	requestID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, requestID)

	log := c.logger.With("request_id", requestID, "method", method, "path", path)
	start := time.Now()

	resp, err := hc.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, nil, ctxErr
		}
		log.Debug(ctx, "api request failed", "error", err, "elapsed", time.Since(start))
		return 0, nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, nil, ctxErr
		}
		return 0, nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	log.Debug(ctx, "api request done", "status", resp.StatusCode, "elapsed", time.Since(start))
	return resp.StatusCode, body, nil
}

// DecodeAuthResult parses a {user, token} envelope. Both fields must be
// present; the user record itself is not inspected.
func DecodeAuthResult(body []byte) (*AuthResult, error) {
	var res AuthResult
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
	}
	if res.User == nil {
		return nil, fmt.Errorf("%w: missing user", ErrUnexpectedResponse)
	}
	if res.Token == "" {
		return nil, fmt.Errorf("%w: missing token", ErrUnexpectedResponse)
	}
	return &res, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// statusError classifies a non-2xx answer. authErr is returned for 401/403.
func statusError(status int, body []byte, authErr error) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return authErr
	case status >= 400 && status < 500:
		return &ValidationError{Status: status, Fields: parseFieldErrors(body)}
	default:
		b := bytes.TrimSpace(body)
		if len(b) > maxErrorBody {
			b = b[:maxErrorBody]
		}
		return &ServerError{Status: status, Body: string(b)}
	}
}

// parseFieldErrors understands the usual REST framework error bodies:
// {"field": ["msg", ...]}, {"field": "msg"}, "msg" and ["msg", ...].
func parseFieldErrors(body []byte) map[string][]string {
	fields := make(map[string][]string)

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err == nil {
		for k, raw := range obj {
			if msgs := decodeMessages(raw); len(msgs) > 0 {
				fields[k] = msgs
			}
		}
		return fields
	}

	if msgs := decodeMessages(body); len(msgs) > 0 {
		fields["detail"] = msgs
	}
	return fields
}

func decodeMessages(raw []byte) []string {
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil && single != "" {
		return []string{single}
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	return []string{string(raw)}
}
