package commands

import (
	"errors"

	"broker/internal/pkg/guard"
)

var ErrSweepExpiredCommandIsNotConstructed = errors.New(
	"SweepExpiredCommand must be created via NewSweepExpiredCommand constructor",
)

// SweepExpiredCommand triggers one pass of TTL enforcement: every pending
// quote and offer whose expiry has passed is removed and its removal
// broadcast. Normally invoked by the cron job, but callable directly.
type SweepExpiredCommand struct {
	guard guard.ConstructorGuard
}

// NewSweepExpiredCommand creates a new command to trigger an expiry sweep.
// This is a parameterless command; the cutoff instant is taken at handle time.
func NewSweepExpiredCommand() SweepExpiredCommand {
	return SweepExpiredCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *SweepExpiredCommand) Validate() error {
	return c.guard.Validate(ErrSweepExpiredCommandIsNotConstructed)
}
