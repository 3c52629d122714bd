package httpx

import (
	"errors"
	"net/http"

	"github.com/partsdesk/partsdesk/internal/platform/rest"
)

// RespondError maps classified backend errors to gateway responses. The
// backend's message text travels verbatim in the detail field; upstream
// 5xx and network failures both surface as 502 because the gateway
// itself is healthy.
func RespondError(w http.ResponseWriter, err error) {
	detail := ""
	var apiErr *rest.Error
	if errors.As(err, &apiErr) {
		detail = apiErr.Message
	}
	switch {
	case errors.Is(err, rest.ErrValidation):
		Problem(w, http.StatusBadRequest, "Validation Failed", detail)
	case errors.Is(err, rest.ErrUnauthenticated):
		Problem(w, http.StatusUnauthorized, "Unauthenticated", detail)
	case errors.Is(err, rest.ErrForbidden):
		Problem(w, http.StatusForbidden, "Forbidden", detail)
	case errors.Is(err, rest.ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", detail)
	case errors.Is(err, rest.ErrNetwork):
		Problem(w, http.StatusBadGateway, "Backend Unreachable", detail)
	case errors.Is(err, rest.ErrUpstream):
		Problem(w, http.StatusBadGateway, "Backend Error", detail)
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
