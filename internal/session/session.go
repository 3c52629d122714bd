// Package session holds the upstream credential and user profile for a
// dashboard browser session, backed by Redis.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// State tags the session lifecycle. The only valid transitions are
// anonymous -> verifying (a token exists and is being checked),
// verifying -> authenticated (profile fetch succeeded), verifying ->
// anonymous (token discarded), authenticated -> verifying (re-check on
// app start) and any -> anonymous (logout or unauthorized response).
type State string

const (
	StateAnonymous     State = "anonymous"
	StateVerifying     State = "verifying"
	StateAuthenticated State = "authenticated"
)

// ErrInvalidTransition indicates a lifecycle change outside the allowed set.
var ErrInvalidTransition = errors.New("session: invalid state transition")

// Profile is the minimal user snapshot persisted alongside the token.
type Profile struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Session is the per-request view of a browser session.
type Session struct {
	ID    string
	state State
	token string
	user  *Profile
	isNew bool
	dirty bool
}

type sessionPayload struct {
	State State    `json:"state"`
	Token string   `json:"token"`
	User  *Profile `json:"user,omitempty"`
}

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Token returns the upstream bearer credential, empty when anonymous.
func (s *Session) Token() string { return s.token }

// User returns the persisted profile snapshot, nil unless authenticated.
func (s *Session) User() *Profile { return s.user }

// BeginVerify records a token and marks the session as being verified
// against the backend. Allowed from anonymous (login, app start) and
// from authenticated (profile refresh); re-entering verification is a
// no-op transition.
func (s *Session) BeginVerify(token string) error {
	if token == "" {
		return ErrInvalidTransition
	}
	s.state = StateVerifying
	s.token = token
	s.dirty = true
	return nil
}

// Authenticate completes verification with a fresh profile snapshot.
func (s *Session) Authenticate(profile Profile) error {
	if s.state != StateVerifying {
		return ErrInvalidTransition
	}
	s.state = StateAuthenticated
	s.user = &profile
	s.dirty = true
	return nil
}

// Reset drops the token and profile and returns to anonymous. Valid from
// every state; used by logout, failed verification and the transport
// client's unauthorized hook.
func (s *Session) Reset() {
	if s.state == StateAnonymous && s.token == "" && s.user == nil {
		return
	}
	s.state = StateAnonymous
	s.token = ""
	s.user = nil
	s.dirty = true
}

// Manager loads and persists sessions keyed by a cookie.
type Manager struct {
	client     *redis.Client
	cookieName string
	ttl        time.Duration
	secure     bool
}

// NewManager constructs a Manager.
func NewManager(client *redis.Client, cookieName string, ttl time.Duration, secure bool) *Manager {
	return &Manager{
		client:     client,
		cookieName: cookieName,
		ttl:        ttl,
		secure:     secure,
	}
}

// Load reads the session identified by the request cookie, or creates a
// fresh anonymous one.
func (m *Manager) Load(ctx context.Context, r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return m.newSession(), nil
		}
		return nil, err
	}

	payload, err := m.client.Get(ctx, m.redisKey(cookie.Value)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			sess := m.newSession()
			sess.ID = cookie.Value
			return sess, nil
		}
		return nil, err
	}

	var stored sessionPayload
	if err := json.Unmarshal(payload, &stored); err != nil {
		return nil, err
	}
	if stored.State == "" {
		stored.State = StateAnonymous
	}
	return &Session{
		ID:    cookie.Value,
		state: stored.State,
		token: stored.Token,
		user:  stored.User,
	}, nil
}

// Commit persists the session when changed and writes the cookie header.
// Writes are whole-payload, so a logout racing a login resolves to
// whichever commit lands last.
func (m *Manager) Commit(ctx context.Context, w http.ResponseWriter, sess *Session) error {
	if sess == nil {
		return nil
	}
	if sess.dirty || sess.isNew {
		payload := sessionPayload{State: sess.state, Token: sess.token, User: sess.user}
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		if err := m.client.Set(ctx, m.redisKey(sess.ID), data, m.ttl).Err(); err != nil {
			return err
		}
		sess.dirty = false
		sess.isNew = false
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteStrictMode,
		Expires:  time.Now().Add(m.ttl),
	})
	return nil
}

// TTL exposes the configured session lifetime.
func (m *Manager) TTL() time.Duration { return m.ttl }

// CookieName returns the cookie identifier used for sessions.
func (m *Manager) CookieName() string { return m.cookieName }

// Token implements the transport client's TokenSource against the
// session carried in the request context.
func (m *Manager) Token(ctx context.Context) string {
	if sess := FromContext(ctx); sess != nil {
		return sess.Token()
	}
	return ""
}

// ResetFromContext is the transport client's unauthorized hook: it
// discards the dead token so a later page load does not retry with it.
func (m *Manager) ResetFromContext(ctx context.Context) {
	if sess := FromContext(ctx); sess != nil {
		sess.Reset()
	}
}

// New returns a fresh anonymous session with a generated id.
func New() *Session {
	return &Session{
		ID:    uuid.NewString(),
		state: StateAnonymous,
		isNew: true,
		dirty: true,
	}
}

func (m *Manager) newSession() *Session {
	return New()
}

func (m *Manager) redisKey(id string) string {
	return "session:" + id
}
