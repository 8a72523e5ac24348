package status

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/salespulse/salespulse/internal/platform/httpx"
)

// Handler exposes the status check endpoints.
type Handler struct {
	logger   *slog.Logger
	repo     Repository
	validate *validator.Validate
	now      func() time.Time
}

// NewHandler constructs the status HTTP handler.
func NewHandler(logger *slog.Logger, repo Repository) *Handler {
	return &Handler{
		logger:   logger,
		repo:     repo,
		validate: validator.New(),
		now:      time.Now,
	}
}

// MountRoutes attaches the status routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/status", h.handleCreate)
	r.Get("/status", h.handleList)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateCheckRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}

	check := Check{
		ID:         uuid.NewString(),
		ClientName: req.ClientName,
		Timestamp:  h.now().UTC(),
	}
	if err := h.repo.Insert(r.Context(), check); err != nil {
		h.logger.Error("insert status check", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, check)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	checks, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("list status checks", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if checks == nil {
		checks = []Check{}
	}
	httpx.JSON(w, http.StatusOK, checks)
}
