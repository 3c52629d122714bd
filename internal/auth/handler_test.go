package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/partsdesk/partsdesk/internal/platform/rest"
	"github.com/partsdesk/partsdesk/internal/session"
)

// fakeUsersBackend mimics the upstream user endpoints: login issues a
// token and /Users/me only answers for that token.
func fakeUsersBackend(t *testing.T, upstreamCalls *atomic.Int64) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /Users/login", func(w http.ResponseWriter, r *http.Request) {
		if upstreamCalls != nil {
			upstreamCalls.Add(1)
		}
		var creds Credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			http.Error(w, `{"message":"malformed body"}`, http.StatusBadRequest)
			return
		}
		if creds.Name != "ada" || creds.Password != "correct horse" {
			http.Error(w, `{"message":"invalid credentials"}`, http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"token":"tok-live"}`))
	})
	mux.HandleFunc("POST /Users/register", func(w http.ResponseWriter, r *http.Request) {
		if upstreamCalls != nil {
			upstreamCalls.Add(1)
		}
		w.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("GET /Users/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-live" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"id":7,"name":"ada","email":"ada@example.com"}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newAuthRouter(t *testing.T, backendURL string) chi.Router {
	t.Helper()
	manager := session.NewManager(nil, "partsdesk_session", time.Hour, false)
	client := rest.NewClient(backendURL, 5*time.Second, manager, manager.ResetFromContext, nil)
	handler := NewHandler(nil, NewService(client))
	r := chi.NewRouter()
	handler.MountRoutes(r)
	return r
}

func serveWithSession(router http.Handler, sess *session.Session, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(session.NewContext(req.Context(), sess))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestLoginAuthenticatesSession(t *testing.T) {
	backend := fakeUsersBackend(t, nil)
	router := newAuthRouter(t, backend.URL)
	sess := session.New()

	rec := serveWithSession(router, sess, http.MethodPost, "/login",
		`{"name":"ada","password":"correct horse"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"ada"`)
	require.Equal(t, session.StateAuthenticated, sess.State())
	require.Equal(t, "tok-live", sess.Token())
	require.Equal(t, int64(7), sess.User().ID)
}

func TestLoginAcceptsUsernameField(t *testing.T) {
	backend := fakeUsersBackend(t, nil)
	router := newAuthRouter(t, backend.URL)
	sess := session.New()

	rec := serveWithSession(router, sess, http.MethodPost, "/login",
		`{"username":"ada","password":"correct horse"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, session.StateAuthenticated, sess.State())
}

func TestLoginBadCredentialsLeavesSessionAnonymous(t *testing.T) {
	backend := fakeUsersBackend(t, nil)
	router := newAuthRouter(t, backend.URL)
	sess := session.New()

	rec := serveWithSession(router, sess, http.MethodPost, "/login",
		`{"name":"ada","password":"wrong"}`)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "invalid credentials")
	require.Equal(t, session.StateAnonymous, sess.State())
	require.Empty(t, sess.Token())
}

func TestLoginMissingFieldsRejectedLocally(t *testing.T) {
	var upstreamCalls atomic.Int64
	backend := fakeUsersBackend(t, &upstreamCalls)
	router := newAuthRouter(t, backend.URL)
	sess := session.New()

	rec := serveWithSession(router, sess, http.MethodPost, "/login", `{"name":"ada"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Zero(t, upstreamCalls.Load())
}

func TestMeWithDeadTokenResetsSession(t *testing.T) {
	backend := fakeUsersBackend(t, nil)
	router := newAuthRouter(t, backend.URL)

	sess := session.New()
	require.NoError(t, sess.BeginVerify("tok-dead"))

	rec := serveWithSession(router, sess, http.MethodGet, "/me", "")

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, session.StateAnonymous, sess.State())
	require.Empty(t, sess.Token())
}

func TestMeWithLiveTokenRefreshesProfile(t *testing.T) {
	backend := fakeUsersBackend(t, nil)
	router := newAuthRouter(t, backend.URL)

	sess := session.New()
	require.NoError(t, sess.BeginVerify("tok-live"))

	rec := serveWithSession(router, sess, http.MethodGet, "/me", "")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, session.StateAuthenticated, sess.State())
	require.Equal(t, "ada", sess.User().Name)
}

func TestMeWithoutTokenIsUnauthorized(t *testing.T) {
	backend := fakeUsersBackend(t, nil)
	router := newAuthRouter(t, backend.URL)
	sess := session.New()

	rec := serveWithSession(router, sess, http.MethodGet, "/me", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutResetsSession(t *testing.T) {
	backend := fakeUsersBackend(t, nil)
	router := newAuthRouter(t, backend.URL)

	sess := session.New()
	require.NoError(t, sess.BeginVerify("tok-live"))
	require.NoError(t, sess.Authenticate(session.Profile{ID: 7, Name: "ada"}))

	rec := serveWithSession(router, sess, http.MethodPost, "/logout", "")

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, session.StateAnonymous, sess.State())
	require.Nil(t, sess.User())
}

func TestRegisterValidatesPasswordLength(t *testing.T) {
	var upstreamCalls atomic.Int64
	backend := fakeUsersBackend(t, &upstreamCalls)
	router := newAuthRouter(t, backend.URL)
	sess := session.New()

	rec := serveWithSession(router, sess, http.MethodPost, "/register",
		`{"name":"ada","email":"ada@example.com","password":"short"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Zero(t, upstreamCalls.Load())

	rec = serveWithSession(router, sess, http.MethodPost, "/register",
		`{"name":"ada","email":"ada@example.com","password":"long enough"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, int64(1), upstreamCalls.Load())
}
