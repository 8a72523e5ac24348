package reporthttp

import (
	"github.com/go-chi/chi/v5"
)

// MountRoutes attaches the reporting API routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/generate-sample-data", h.handleGenerate)
	r.Get("/analytics/sales", h.handleSales)
	r.Get("/analytics/customers", h.handleCustomers)
	r.Get("/analytics/products", h.handleProducts)
	r.Get("/analytics/seasonal", h.handleSeasonal)
	r.Get("/analytics/dashboard", h.handleDashboard)
	r.Get("/export/sales-report", h.handleExport)
}
