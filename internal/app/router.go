package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/partsdesk/partsdesk/internal/auth"
	"github.com/partsdesk/partsdesk/internal/catalog"
	"github.com/partsdesk/partsdesk/internal/expenses"
	"github.com/partsdesk/partsdesk/internal/profit"
	"github.com/partsdesk/partsdesk/internal/sales"
	"github.com/partsdesk/partsdesk/internal/session"
	"github.com/partsdesk/partsdesk/internal/warehouse"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	SessionManager   *session.Manager
	AuthHandler      *auth.Handler
	CatalogHandler   *catalog.Handler
	WarehouseHandler *warehouse.Handler
	SalesHandler     *sales.Handler
	ExpensesHandler  *expenses.Handler
	ProfitHandler    *profit.Handler
}

// NewRouter constructs the chi.Router with gateway defaults.
func NewRouter(params RouterParams) http.Handler {
	if params.Logger == nil {
		params.Logger = slog.Default()
	}
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", params.AuthHandler.MountRoutes)

	// Every resource route needs a live session token; the check runs
	// before any upstream call is attempted.
	r.Route("/api", func(r chi.Router) {
		r.Use(RequireAuth)
		params.CatalogHandler.MountRoutes(r)
		params.WarehouseHandler.MountRoutes(r)
		params.SalesHandler.MountRoutes(r)
		params.ExpensesHandler.MountRoutes(r)
		params.ProfitHandler.MountRoutes(r)
	})

	return r
}
