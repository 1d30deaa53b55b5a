package jobs

import (
	"context"
	"errors"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

// RunMatchingHandler executes one matching run.
type RunMatchingHandler interface {
	Handle(ctx context.Context, cmd commands.RunMatchingCommand) error
}

// MatchingJob runs a batch matching on a cron schedule. Each tick is a fresh run
// with its own id.
type MatchingJob struct {
	handler   RunMatchingHandler
	schedule  string
	maxOrders int
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewMatchingJob creates the job. schedule is a six-field cron expression;
// maxOrders caps the orders per run, 0 meaning no cap.
func NewMatchingJob(handler RunMatchingHandler, schedule string, maxOrders int, logger *slog.Logger) *MatchingJob {
	return &MatchingJob{
		handler:   handler,
		schedule:  schedule,
		maxOrders: maxOrders,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "matching_job"),
	}
}

// Start registers the tick and starts the scheduler.
func (j *MatchingJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.tick(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Matching job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running tick to finish.
func (j *MatchingJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Matching job stopped")
}

func (j *MatchingJob) tick(ctx context.Context) {
	cmd, err := commands.NewRunMatchingCommand(kernel.NewUUID(), j.maxOrders)
	if err != nil {
		j.logger.ErrorContext(ctx, "Matching job misconfigured", "error", err)
		return
	}

	if err := j.handler.Handle(ctx, cmd); err != nil {
		// nothing to match is the normal idle state
		if errors.Is(err, commands.ErrNoOrderFound) || errors.Is(err, commands.ErrNoFreeDriversFound) {
			return
		}
		j.logger.ErrorContext(ctx, "Matching job failed", "run_id", cmd.RunID().String(), "error", err)
	}
}
