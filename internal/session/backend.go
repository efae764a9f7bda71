package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Backend endpoints.
const (
	MePath      = "/me"
	SignOutPath = "/sign-out"
	SignInPath  = "/sign-in"
)

// DefaultTimeout bounds a single backend call.
const DefaultTimeout = 10 * time.Second

// Credentials carry the browser session to the backend.
type Credentials struct {
	Cookies []*http.Cookie
	// SetCookie, when set, receives cookies issued by backend responses so
	// they can be relayed to the browser.
	SetCookie func(*http.Cookie)
}

// CredentialsFromRequest forwards the cookies of an incoming request and
// relays backend cookies to w.
func CredentialsFromRequest(w http.ResponseWriter, r *http.Request) Credentials {
	return Credentials{
		Cookies: r.Cookies(),
		SetCookie: func(c *http.Cookie) {
			http.SetCookie(w, c)
		},
	}
}

// BackendConfig configures a Backend.
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
	Client  *http.Client
	Logger  *slog.Logger
}

// Backend is the HTTP client for the authentication backend.
type Backend struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewBackend creates a Backend client.
func NewBackend(cfg BackendConfig) *Backend {
	client := cfg.Client
	if client == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Backend{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  client,
		logger:  logger,
	}
}

// Me fetches the signed-in user. A 401 or 403 yields ErrNotSignedIn.
func (b *Backend) Me(ctx context.Context, creds Credentials) (*User, error) {
	resp, err := b.do(ctx, http.MethodGet, MePath, nil, creds)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrNotSignedIn
	case resp.StatusCode != http.StatusOK:
		return nil, statusError(resp)
	}

	var fields map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&fields); err != nil {
		return nil, fmt.Errorf("%w: decode user: %v", ErrBackend, err)
	}
	if len(fields) == 0 {
		return nil, ErrNotSignedIn
	}

	user := &User{Fields: fields}
	if id, ok := fields["id"]; ok && id != nil {
		user.ID = fmt.Sprintf("%v", id)
	}
	return user, nil
}

// SignOut posts an empty payload to the sign-out endpoint.
// The response body is not consumed.
func (b *Backend) SignOut(ctx context.Context, creds Credentials) error {
	resp, err := b.do(ctx, http.MethodPost, SignOutPath, map[string]any{}, creds)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp)
	}
	return nil
}

// SignIn posts username and password to the sign-in endpoint.
func (b *Backend) SignIn(ctx context.Context, username, password string, creds Credentials) error {
	payload := map[string]string{"username": username, "password": password}
	resp, err := b.do(ctx, http.MethodPost, SignInPath, payload, creds)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrNotSignedIn
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return statusError(resp)
	}
	return nil
}

func (b *Backend) do(ctx context.Context, method, path string, payload any, creds Credentials) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range creds.Cookies {
		req.AddCookie(c)
	}

	b.logger.Debug("backend request", "method", method, "path", path)
	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrBackend, method, path, err)
	}

	if creds.SetCookie != nil {
		for _, c := range resp.Cookies() {
			creds.SetCookie(c)
		}
	}
	return resp, nil
}

func statusError(resp *http.Response) error {
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("%w: %s %s: status %d: %s",
		ErrBackend, resp.Request.Method, resp.Request.URL.Path, resp.StatusCode, strings.TrimSpace(string(msg)))
}
