package eventlog

import (
	"context"
	"time"

	"github.com/osse101/ProvablyFair_Go/internal/logger"
)

// CleanupJob prunes the audit log on a schedule. It satisfies worker.Job.
type CleanupJob struct {
	service       Service
	retentionDays int
}

// NewCleanupJob returns a job keeping retentionDays of events. A
// non-positive retention disables pruning.
func NewCleanupJob(service Service, retentionDays int) *CleanupJob {
	return &CleanupJob{service: service, retentionDays: retentionDays}
}

func (j *CleanupJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)
	if j.retentionDays <= 0 {
		log.Debug(LogMsgCleanupJobDisabled)
		return nil
	}

	start := time.Now()
	deleted, err := j.service.CleanupOldEvents(ctx, j.retentionDays)
	if err != nil {
		log.Error(LogMsgCleanupJobFailed, "error", err, "retention_days", j.retentionDays, "duration", time.Since(start))
		return err
	}

	log.Info(LogMsgCleanupJobCompleted, "deleted", deleted, "retention_days", j.retentionDays, "duration", time.Since(start))
	return nil
}
