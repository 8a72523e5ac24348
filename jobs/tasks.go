// Package jobs hosts the background workers for report cache warmup.
package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeReportWarmup is the task type for report cache warmup.
	TaskTypeReportWarmup = "report:warmup"
)

// ReportWarmupPayload selects which report families to warm.
type ReportWarmupPayload struct {
	Scope string `json:"scope"`
}

// NewReportWarmupTask constructs a report warmup task.
func NewReportWarmupTask(scope string) (*asynq.Task, error) {
	data, err := json.Marshal(ReportWarmupPayload{Scope: scope})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeReportWarmup, data), nil
}
