package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/run"
	"dispatch/internal/core/domain/services"
)

var (
	ErrNoFreeDriversFound = errors.New("no free drivers found")
	ErrNoOrderFound       = errors.New("no order found")
)

// MatchingObserver receives the outcome of every matching attempt.
type MatchingObserver interface {
	// RunRecorded is called after a run was committed.
	RunRecorded(r *run.Run, elapsed time.Duration)
	// RunFailed is called when a run could not be committed, err being the cause.
	RunFailed(err error)
}

// RunMatchingCommandHandler loads free drivers and waiting orders, solves the
// assignment and stores both the changed aggregates and the run record in one
// transaction.
//
// Example:
//
//	handler := NewRunMatchingCommandHandler(uowFactory, dispatcher, observer)
//	cmd, _ := NewRunMatchingCommand(kernel.NewUUID(), 0)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return err
//	}
type RunMatchingCommandHandler struct {
	uowFactory UoWFactory
	dispatcher *services.BatchDispatcher
	observer   MatchingObserver
}

func NewRunMatchingCommandHandler(
	uowFactory UoWFactory,
	dispatcher *services.BatchDispatcher,
	observer MatchingObserver,
) RunMatchingCommandHandler {
	return RunMatchingCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		observer:   observer,
	}
}

// Handle runs one matching. It returns ErrNoFreeDriversFound or ErrNoOrderFound
// when there is nothing to match; no run is recorded then.
func (h RunMatchingCommandHandler) Handle(ctx context.Context, cmd RunMatchingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	started := time.Now()
	r, err := h.handle(ctx, cmd, started)
	if err != nil {
		if !errors.Is(err, ErrNoFreeDriversFound) && !errors.Is(err, ErrNoOrderFound) {
			h.observer.RunFailed(err)
		}
		return err
	}

	h.observer.RunRecorded(r, time.Since(started))
	return nil
}

func (h RunMatchingCommandHandler) handle(ctx context.Context, cmd RunMatchingCommand, now time.Time) (*run.Run, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	driverRepo := uow.DriverRepository()
	orderRepo := uow.OrderRepository()

	drivers, err := driverRepo.GetAllFree(ctx)
	if err != nil {
		return nil, err
	}
	if len(drivers) == 0 {
		return nil, ErrNoFreeDriversFound
	}

	orders, err := orderRepo.GetAllInCreatedStatus(ctx, cmd.MaxOrders())
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, ErrNoOrderFound
	}

	plan, err := h.dispatcher.Dispatch(cmd.RunID(), now, drivers, orders)
	if err != nil {
		return nil, err
	}

	for _, p := range plan.Result.Pairs() {
		if err = driverRepo.Update(ctx, plan.Drivers[p.Driver]); err != nil {
			return nil, err
		}
		if err = orderRepo.Update(ctx, plan.Orders[p.Order-1]); err != nil {
			return nil, err
		}
	}

	if err = uow.RunRepository().Add(ctx, plan.Run); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return plan.Run, nil
}
