package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

// MoveDriversCommand advances every busy driver by one movement tick.
type MoveDriversCommand struct {
	guard guard.ConstructorGuard
}

var ErrMoveDriversCommandIsNotConstructed = errors.New(
	"MoveDriversCommand must be created via NewMoveDriversCommand constructor",
)

func NewMoveDriversCommand() MoveDriversCommand {
	return MoveDriversCommand{
		guard: guard.NewConstructorGuard(),
	}
}

func (c *MoveDriversCommand) Validate() error {
	return c.guard.Validate(ErrMoveDriversCommandIsNotConstructed)
}
