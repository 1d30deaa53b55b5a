package commands

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
)

// CreateDriverCommandHandler persists a new free driver.
type CreateDriverCommandHandler struct {
	uowFactory DriverUoWFactory
	locations  LocationSource
}

func NewCreateDriverCommandHandler(uowFactory DriverUoWFactory, locations LocationSource) CreateDriverCommandHandler {
	return CreateDriverCommandHandler{
		uowFactory: uowFactory,
		locations:  locations,
	}
}

// Handle creates the driver. Without a requested location one is drawn from the
// location source before the transaction starts.
func (h *CreateDriverCommandHandler) Handle(ctx context.Context, cmd CreateDriverCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	location, ok := cmd.Location()
	if !ok {
		var err error
		if location, err = h.locations.Location(); err != nil {
			return err
		}
	}

	d, err := driver.NewDriver(cmd.DriverID(), cmd.Name(), cmd.Speed(), location)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.DriverRepository().Add(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
