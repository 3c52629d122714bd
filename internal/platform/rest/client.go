package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// TokenSource supplies the bearer credential for outgoing requests. An
// empty string means no credential is attached.
type TokenSource interface {
	Token(ctx context.Context) string
}

// UnauthorizedHook is invoked when an authenticated call comes back 401,
// so the session holder can discard the dead token before the error
// propagates. Login and register calls never trigger it.
type UnauthorizedHook func(ctx context.Context)

// Client issues requests against the upstream parts backend. It attaches
// the bearer token, classifies failures and never retries.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         TokenSource
	onUnauthorized UnauthorizedHook
	logger         *slog.Logger
}

// NewClient constructs a backend client. A zero timeout disables the
// client-side deadline.
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, hook UnauthorizedHook, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		httpClient:     &http.Client{Timeout: timeout},
		tokens:         tokens,
		onUnauthorized: hook,
		logger:         logger,
	}
}

// Get issues a GET and decodes the JSON response into out when non-nil.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out, true)
}

// Post issues a POST with a JSON body. Plain strings and integers are
// marshalled as bare JSON scalars, which the backend requires for
// category and product-type names and warehouse quantities.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out, true)
}

// PostAnonymous issues a POST without a bearer token and without the
// unauthorized hook. Used for login and register so a 401 surfaces as
// bad credentials instead of session expiry.
func (c *Client) PostAnonymous(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out, false)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out, true)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, true)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, authenticated bool) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if authenticated && c.tokens != nil {
		if token := c.tokens.Token(ctx); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if urlErr, ok := err.(*url.Error); ok && ctx.Err() == nil {
			c.logger.Warn("backend unreachable", slog.String("path", path), slog.Any("error", urlErr))
			return &Error{Kind: ErrNetwork, Message: urlErr.Err.Error()}
		}
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 400 {
		return c.classify(ctx, resp, path, authenticated)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	return nil
}

func (c *Client) classify(ctx context.Context, resp *http.Response, path string, authenticated bool) error {
	message := readErrorMessage(resp.Body)
	apiErr := &Error{Status: resp.StatusCode, Message: message}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		apiErr.Kind = ErrUnauthenticated
		if authenticated && c.onUnauthorized != nil {
			c.onUnauthorized(ctx)
		}
	case resp.StatusCode == http.StatusForbidden:
		apiErr.Kind = ErrForbidden
		c.logger.Error("backend access forbidden", slog.String("path", path))
	case resp.StatusCode == http.StatusNotFound:
		apiErr.Kind = ErrNotFound
	case resp.StatusCode >= 500:
		apiErr.Kind = ErrUpstream
		c.logger.Error("backend server error", slog.String("path", path), slog.Int("status", resp.StatusCode))
	default:
		apiErr.Kind = ErrValidation
	}
	return apiErr
}

// readErrorMessage extracts the backend's message text from an error
// response. The backend is not consistent about its error envelope, so
// the known field names are probed before falling back to the raw body.
func readErrorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Detail  string `json:"detail"`
		Title   string `json:"title"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		for _, candidate := range []string{envelope.Message, envelope.Error, envelope.Detail, envelope.Title} {
			if candidate != "" {
				return candidate
			}
		}
	}
	var plain string
	if err := json.Unmarshal(raw, &plain); err == nil {
		return plain
	}
	return strings.TrimSpace(string(raw))
}
