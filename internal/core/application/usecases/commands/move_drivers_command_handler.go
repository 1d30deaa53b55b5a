package commands

import (
	"context"
	"fmt"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/order"
)

// MoveDriversCommandHandler moves the driver of every assigned order one tick
// along its route: to the origin first, then to the destination. Orders whose
// driver arrived at the destination are completed and the driver is freed.
type MoveDriversCommandHandler struct {
	uowFactory UoWFactory
}

func NewMoveDriversCommandHandler(uowFactory UoWFactory) MoveDriversCommandHandler {
	return MoveDriversCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle runs one tick for all assigned orders in a single transaction.
func (h *MoveDriversCommandHandler) Handle(ctx context.Context, cmd MoveDriversCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	driverRepo := uow.DriverRepository()
	orderRepo := uow.OrderRepository()

	orders, err := orderRepo.GetAllInAssignedStatus(ctx)
	if err != nil {
		return err
	}

	for _, o := range orders {
		driverID := o.Driver()
		if driverID == nil {
			return fmt.Errorf("order %s is assigned without a driver", o.ID())
		}

		d, driverErr := driverRepo.Get(ctx, *driverID)
		if driverErr != nil {
			return driverErr
		}

		delivered, moveErr := advance(d, o)
		if moveErr != nil {
			return moveErr
		}

		if delivered {
			if err = orderRepo.Update(ctx, o); err != nil {
				return err
			}
		}

		if err = driverRepo.Update(ctx, d); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

func advance(d *driver.Driver, o *order.Order) (bool, error) {
	delivered, err := d.Advance(o)
	if err != nil || !delivered {
		return false, err
	}

	if err = o.Complete(); err != nil {
		return false, err
	}

	if err = d.CompleteOrder(o.ID()); err != nil {
		return false, err
	}

	return true, nil
}
