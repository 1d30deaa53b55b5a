package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateDriverCommandIsNotConstructed = errors.New(
		"CreateDriverCommand must be created via NewCreateDriverCommand constructor",
	)
	ErrNameIsRequired = errors.New("name is required")
	ErrSpeedIsInvalid = errors.New("speed must be greater than 0")
)

// CreateDriverCommand registers a new driver. A nil location places the driver
// on a random cell centre.
//
// Example:
//
//	loc, _ := kernel.NewLocation(2.5, 7.5)
//	cmd, err := NewCreateDriverCommand(kernel.NewUUID(), "Alice", 2, &loc)
//	if err != nil {
//	    return fmt.Errorf("invalid driver data: %w", err)
//	}
//	err = handler.Handle(ctx, cmd)
type CreateDriverCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID
	name     string
	speed    int
	location *kernel.Location

	guard guard.ConstructorGuard
}

func NewCreateDriverCommand(
	driverID kernel.UUID,
	name string,
	speed int,
	location *kernel.Location,
) (CreateDriverCommand, error) {
	command := CreateDriverCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setDriverID(driverID),
		command.setName(name),
		command.setSpeed(speed),
		command.setLocation(location),
	); err != nil {
		return CreateDriverCommand{}, err
	}

	return command, nil
}

func (c CreateDriverCommand) Validate() error {
	return c.guard.Validate(ErrCreateDriverCommandIsNotConstructed)
}

func (c CreateDriverCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c CreateDriverCommand) Name() string {
	return c.name
}

func (c CreateDriverCommand) Speed() int {
	return c.speed
}

// Location returns the requested start position and false when none was given.
func (c CreateDriverCommand) Location() (kernel.Location, bool) {
	if c.location == nil {
		return kernel.Location{}, false
	}
	return *c.location, true
}

func (c *CreateDriverCommand) setDriverID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.driverID = id
	return nil
}

func (c *CreateDriverCommand) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *CreateDriverCommand) setSpeed(speed int) error {
	if speed <= 0 {
		return ErrSpeedIsInvalid
	}
	c.speed = speed
	return nil
}

func (c *CreateDriverCommand) setLocation(location *kernel.Location) error {
	if location == nil {
		return nil
	}
	if err := location.Validate(); err != nil {
		return err
	}
	loc := *location
	c.location = &loc
	return nil
}
