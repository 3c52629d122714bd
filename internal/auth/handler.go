package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/partsdesk/partsdesk/internal/platform/httpx"
	"github.com/partsdesk/partsdesk/internal/session"
)

// Handler wires the JSON endpoints for the auth flows.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:    logger,
		service:   service,
		validator: validator.New(),
	}
}

// MountRoutes registers auth routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/login", h.handleLogin)
	r.Post("/register", h.handleRegister)
	r.Post("/logout", h.handleLogout)
	r.Get("/me", h.handleMe)
	r.Delete("/account", h.handleDeleteAccount)
}

type loginRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	// The dashboard has historically sent either field name.
	if req.Name == "" {
		req.Name = req.Username
	}
	creds := Credentials{Name: req.Name, Password: req.Password}
	if err := h.validator.Struct(creds); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "name and password are required")
		return
	}

	sess := session.FromContext(r.Context())
	if sess == nil {
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	token, err := h.service.Login(r.Context(), creds)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := sess.BeginVerify(token); err != nil {
		h.logger.Error("begin verify after login", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	profile, err := h.service.Me(r.Context())
	if err != nil {
		sess.Reset()
		httpx.RespondError(w, err)
		return
	}
	if err := sess.Authenticate(profile); err != nil {
		h.logger.Error("authenticate session", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"user": profile})
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var reg Registration
	if err := httpx.DecodeJSON(r, &reg); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validator.Struct(reg); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	if err := h.service.Register(r.Context(), reg); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if sess := session.FromContext(r.Context()); sess != nil {
		sess.Reset()
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleMe verifies the persisted token on app start and refreshes the
// profile snapshot. A dead token is discarded so the next load does not
// retry with it.
func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	if sess == nil || sess.Token() == "" {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthenticated", "")
		return
	}
	if err := sess.BeginVerify(sess.Token()); err != nil {
		h.logger.Error("begin verify", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	profile, err := h.service.Me(r.Context())
	if err != nil {
		sess.Reset()
		httpx.RespondError(w, err)
		return
	}
	if err := sess.Authenticate(profile); err != nil {
		h.logger.Error("authenticate session", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"user": profile})
}

func (h *Handler) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteAccount(r.Context()); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if sess := session.FromContext(r.Context()); sess != nil {
		sess.Reset()
	}
	w.WriteHeader(http.StatusNoContent)
}
