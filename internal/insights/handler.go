package insights

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/salespulse/salespulse/internal/platform/httpx"
)

// Handler exposes the AI insights endpoint.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs the insights HTTP handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes attaches the insights routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/analytics/ai-insights", h.handleInsights)
}

func (h *Handler) handleInsights(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.GetInsights(r.Context())
	if err != nil {
		h.logger.Error("ai insights", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}
