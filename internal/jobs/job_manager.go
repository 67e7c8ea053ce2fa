package jobs

import (
	"fmt"

	"go.uber.org/zap"
)

// Job is a scheduled background task.
type Job interface {
	Start() error
	Stop()
}

// JobManager starts and stops every scheduled job of the service.
type JobManager struct {
	jobs   []Job
	logger *zap.Logger
}

// NewJobManager creates a manager for the price refresh job. Extra jobs are
// started after it in the given order.
func NewJobManager(refresher PriceRefresher, schedule string, logger *zap.Logger, extra ...Job) *JobManager {
	jobs := append([]Job{NewPriceRefreshJob(refresher, schedule, logger)}, extra...)
	return &JobManager{jobs: jobs, logger: logger}
}

// StartAll starts the jobs in order. When one fails, the ones already
// started are stopped.
func (jm *JobManager) StartAll() error {
	for i, job := range jm.jobs {
		if err := job.Start(); err != nil {
			for _, started := range jm.jobs[:i] {
				started.Stop()
			}
			return fmt.Errorf("failed to start job %d: %w", i, err)
		}
	}
	return nil
}

// StopAll stops the jobs in reverse start order.
func (jm *JobManager) StopAll() {
	for i := len(jm.jobs) - 1; i >= 0; i-- {
		jm.jobs[i].Stop()
	}
	jm.logger.Info("all jobs stopped")
}
