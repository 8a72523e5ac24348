// Package reporthttp exposes the reporting API consumed by the dashboard
// frontend.
package reporthttp

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"github.com/salespulse/salespulse/internal/analytics"
	"github.com/salespulse/salespulse/internal/analytics/export"
	"github.com/salespulse/salespulse/internal/platform/httpx"
	"github.com/salespulse/salespulse/internal/sales"
	"github.com/salespulse/salespulse/internal/sample"
)

// ReportService defines the report data contract used by the handler.
type ReportService interface {
	GetSalesReport(ctx context.Context, filter analytics.SalesFilter) (analytics.SalesReport, error)
	GetCustomerReport(ctx context.Context) (analytics.CustomerReport, error)
	GetProductReport(ctx context.Context) (analytics.ProductReport, error)
	GetSeasonalReport(ctx context.Context) (analytics.SeasonalReport, error)
}

// SampleDataService triggers the one-shot synthetic data load.
type SampleDataService interface {
	GenerateSampleData(ctx context.Context) (sample.GenerationResult, error)
}

// RecordFinder reads raw records for the export endpoints.
type RecordFinder interface {
	Find(ctx context.Context, filter sales.Filter) ([]sales.Transaction, error)
}

// Handler coordinates HTTP requests for the reporting API.
type Handler struct {
	logger    *slog.Logger
	service   ReportService
	generator SampleDataService
	records   RecordFinder
	validate  *validator.Validate
	bufPool   sync.Pool
	now       func() time.Time
}

// NewHandler constructs the reporting HTTP handler.
func NewHandler(logger *slog.Logger, service ReportService, generator SampleDataService, records RecordFinder) *Handler {
	h := &Handler{
		logger:    logger,
		service:   service,
		generator: generator,
		records:   records,
		validate:  validator.New(),
		now:       time.Now,
	}
	h.bufPool.New = func() interface{} { return new(bytes.Buffer) }
	return h
}

// WithNow overrides the handler clock for testing.
func (h *Handler) WithNow(fn func() time.Time) {
	if fn != nil {
		h.now = fn
	}
}

// salesQuery carries the optional sales report filters.
type salesQuery struct {
	StartDate string `validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `validate:"omitempty,datetime=2006-01-02"`
	Region    string `validate:"omitempty,max=100"`
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	result, err := h.generator.GenerateSampleData(r.Context())
	if err != nil {
		h.logger.Error("generate sample data", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) handleSales(w http.ResponseWriter, r *http.Request) {
	query := salesQuery{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
		Region:    r.URL.Query().Get("region"),
	}
	if err := h.validate.Struct(query); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}

	report, err := h.service.GetSalesReport(r.Context(), analytics.SalesFilter{
		StartDate: query.StartDate,
		EndDate:   query.EndDate,
		Region:    query.Region,
	})
	if err != nil {
		h.logger.Error("sales report", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) handleCustomers(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.GetCustomerReport(r.Context())
	if err != nil {
		h.logger.Error("customer report", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) handleProducts(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.GetProductReport(r.Context())
	if err != nil {
		h.logger.Error("product report", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) handleSeasonal(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.GetSeasonalReport(r.Context())
	if err != nil {
		h.logger.Error("seasonal report", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

// dashboardPayload bundles all four reports for the landing view.
type dashboardPayload struct {
	Sales     analytics.SalesReport    `json:"sales"`
	Customers analytics.CustomerReport `json:"customers"`
	Products  analytics.ProductReport  `json:"products"`
	Seasonal  analytics.SeasonalReport `json:"seasonal"`
}

// handleDashboard computes the four reports concurrently; the calculators
// are pure reads, so they need no coordination beyond the errgroup.
func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	var payload dashboardPayload

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		report, err := h.service.GetSalesReport(ctx, analytics.SalesFilter{})
		payload.Sales = report
		return err
	})
	g.Go(func() error {
		report, err := h.service.GetCustomerReport(ctx)
		payload.Customers = report
		return err
	})
	g.Go(func() error {
		report, err := h.service.GetProductReport(ctx)
		payload.Products = report
		return err
	})
	g.Go(func() error {
		report, err := h.service.GetSeasonalReport(ctx)
		payload.Seasonal = report
		return err
	})
	if err := g.Wait(); err != nil {
		h.logger.Error("dashboard", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, payload)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	query := salesQuery{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}
	if err := h.validate.Struct(query); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "xlsx"
	}
	if format != "xlsx" && format != "csv" {
		httpx.Problem(w, http.StatusBadRequest, "Unsupported Format", "use 'xlsx' or 'csv'")
		return
	}

	filter := sales.Filter{}
	if query.StartDate != "" && query.EndDate != "" {
		filter.StartDate = query.StartDate
		filter.EndDate = query.EndDate
	}
	records, err := h.records.Find(r.Context(), filter)
	if err != nil {
		h.logger.Error("export find records", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if len(records) == 0 {
		httpx.RespondError(w, sales.ErrNoData)
		return
	}

	buf := h.bufPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer h.bufPool.Put(buf)

	filename := "sales_report_" + h.now().UTC().Format("20060102")
	switch format {
	case "xlsx":
		if err := export.WriteXLSX(buf, records); err != nil {
			h.logger.Error("export xlsx", slog.Any("error", err))
			httpx.RespondError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename=`+filename+`.xlsx`)
	case "csv":
		if err := export.WriteCSV(buf, records); err != nil {
			h.logger.Error("export csv", slog.Any("error", err))
			httpx.RespondError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename=`+filename+`.csv`)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
