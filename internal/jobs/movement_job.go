package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// MoveDriversHandler advances busy drivers by one tick.
type MoveDriversHandler interface {
	Handle(ctx context.Context, cmd commands.MoveDriversCommand) error
}

// MovementJob moves busy drivers on a cron schedule and completes deliveries.
type MovementJob struct {
	handler  MoveDriversHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewMovementJob(handler MoveDriversHandler, schedule string, logger *slog.Logger) *MovementJob {
	return &MovementJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "movement_job"),
	}
}

func (j *MovementJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.tick(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Movement job started", "schedule", j.schedule)
	return nil
}

func (j *MovementJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Movement job stopped")
}

func (j *MovementJob) tick(ctx context.Context) {
	if err := j.handler.Handle(ctx, commands.NewMoveDriversCommand()); err != nil {
		j.logger.ErrorContext(ctx, "Movement job failed", "error", err)
	}
}
