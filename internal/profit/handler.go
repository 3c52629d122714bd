package profit

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/partsdesk/partsdesk/internal/platform/httpx"
)

// Handler exposes the profit summary to the dashboard.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers the profit route on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/profit/summary", h.summary)
}

// summary serves GET /profit/summary?mode=day|month&day=&month=&year=.
// Omitted month/year default to the current calendar month.
func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	now := time.Now()

	year := queryInt(query.Get("year"), now.Year())
	month := time.Month(queryInt(query.Get("month"), int(now.Month())))

	var (
		window Window
		err    error
	)
	if query.Get("mode") == "day" {
		day := queryInt(query.Get("day"), now.Day())
		window, err = DayWindow(year, month, day)
	} else {
		window, err = MonthWindow(year, month)
	}
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	summary, err := h.service.Summary(r.Context(), window)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}

func queryInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
