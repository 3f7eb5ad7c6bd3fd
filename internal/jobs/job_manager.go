package jobs

import (
	"fmt"
)

// JobManager starts and stops the scheduled jobs together.
type JobManager struct {
	stalePendingOrdersJob *StalePendingOrdersJob
}

func NewJobManager(stalePendingOrdersJob *StalePendingOrdersJob) *JobManager {
	return &JobManager{stalePendingOrdersJob: stalePendingOrdersJob}
}

// StartAll returns the first start failure.
func (jm *JobManager) StartAll() error {
	if err := jm.stalePendingOrdersJob.Start(); err != nil {
		return fmt.Errorf("failed to start stale pending orders job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.stalePendingOrdersJob.Stop()
}
