package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrRunMatchingCommandIsNotConstructed = errors.New(
	"RunMatchingCommand must be created via NewRunMatchingCommand constructor",
)

var ErrMaxOrdersIsInvalid = errors.New("max orders must not be negative")

// RunMatchingCommand assigns all free drivers to waiting orders in one batch so
// that the total profit is maximal. MaxOrders caps how many of the oldest
// waiting orders take part; 0 means all of them.
//
// Example:
//
//	cmd, _ := NewRunMatchingCommand(kernel.NewUUID(), 0)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrNoOrderFound), errors.Is(err, ErrNoFreeDriversFound):
//	    // nothing to do this tick
//	case err != nil:
//	    return err
//	}
type RunMatchingCommand struct {
	runID     kernel.UUID
	maxOrders int

	guard guard.ConstructorGuard
}

func NewRunMatchingCommand(runID kernel.UUID, maxOrders int) (RunMatchingCommand, error) {
	if err := runID.Validate(); err != nil {
		return RunMatchingCommand{}, err
	}
	if maxOrders < 0 {
		return RunMatchingCommand{}, ErrMaxOrdersIsInvalid
	}

	return RunMatchingCommand{
		runID:     runID,
		maxOrders: maxOrders,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c *RunMatchingCommand) Validate() error {
	return c.guard.Validate(ErrRunMatchingCommandIsNotConstructed)
}

// RunID is the identifier the recorded run will get.
func (c *RunMatchingCommand) RunID() kernel.UUID {
	return c.runID
}

func (c *RunMatchingCommand) MaxOrders() int {
	return c.maxOrders
}
