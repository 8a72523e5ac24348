package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/salespulse/salespulse/internal/analytics"
	"github.com/salespulse/salespulse/internal/sales"
)

// ReportWarmupJob pre-populates the report caches so the first dashboard
// request after an invalidation does not pay the full computation cost.
type ReportWarmupJob struct {
	Analytics *analytics.Service
	Logger    *slog.Logger
	clock     func() time.Time
}

// NewReportWarmupJob wires dependencies for the warmup handler.
func NewReportWarmupJob(analyticsSvc *analytics.Service, logger *slog.Logger) *ReportWarmupJob {
	return &ReportWarmupJob{
		Analytics: analyticsSvc,
		Logger:    logger,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle processes report warmup tasks.
func (j *ReportWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Analytics == nil {
		return errors.New("report warmup: handler not configured")
	}
	var payload ReportWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.Scope == "" {
		payload.Scope = "all"
	}

	logger := j.logger().With(slog.String("scope", payload.Scope))
	logger.Info("starting report warmup")

	warmCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	start := j.now()
	warmers := []func(context.Context) error{
		func(ctx context.Context) error {
			_, err := j.Analytics.GetSalesReport(ctx, analytics.SalesFilter{})
			return err
		},
		func(ctx context.Context) error {
			_, err := j.Analytics.GetCustomerReport(ctx)
			return err
		},
		func(ctx context.Context) error {
			_, err := j.Analytics.GetProductReport(ctx)
			return err
		},
		func(ctx context.Context) error {
			_, err := j.Analytics.GetSeasonalReport(ctx)
			return err
		},
	}
	for _, warm := range warmers {
		if err := warm(warmCtx); err != nil {
			if errors.Is(err, sales.ErrNoData) {
				logger.Info("no data to warm, skipping")
				return nil
			}
			logger.Error("warm report", slog.Any("error", err))
			return err
		}
	}

	logger.Info("completed report warmup", slog.Duration("duration", time.Since(start)))
	return nil
}

func (j *ReportWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskTypeReportWarmup))
	}
	return slog.Default().With(slog.String("job", TaskTypeReportWarmup))
}

func (j *ReportWarmupJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}
