package jobs

import (
	"fmt"
	"log/slog"
)

// Schedules holds the cron expressions of the background jobs.
type Schedules struct {
	Matching  string
	Movement  string
	MaxOrders int
}

// JobManager starts and stops the background jobs together.
type JobManager struct {
	matching *MatchingJob
	movement *MovementJob
}

func NewJobManager(
	matchingHandler RunMatchingHandler,
	moveHandler MoveDriversHandler,
	schedules Schedules,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		matching: NewMatchingJob(matchingHandler, schedules.Matching, schedules.MaxOrders, logger),
		movement: NewMovementJob(moveHandler, schedules.Movement, logger),
	}
}

// StartAll starts every job. If one fails, the ones already started are stopped.
func (jm *JobManager) StartAll() error {
	if err := jm.matching.Start(); err != nil {
		return fmt.Errorf("failed to start matching job: %w", err)
	}

	if err := jm.movement.Start(); err != nil {
		jm.matching.Stop()
		return fmt.Errorf("failed to start movement job: %w", err)
	}

	return nil
}

func (jm *JobManager) StopAll() {
	jm.movement.Stop()
	jm.matching.Stop()
}
