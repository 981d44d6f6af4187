package commands

import (
	"errors"
	"time"

	"ordering/internal/pkg/guard"
)

var (
	ErrCancelStaleOrdersCommandIsNotConstructed = errors.New(
		"CancelStaleOrdersCommand must be created via NewCancelStaleOrdersCommand constructor",
	)
	ErrMaxAgeIsInvalid = errors.New("max age must be greater than 0")
)

// CancelStaleOrdersCommand triggers cancellation of all pending orders older
// than the given age. This batch operation keeps abandoned carts from
// accumulating and is typically run by a scheduler.
//
// Example:
//
//	cmd, _ := NewCancelStaleOrdersCommand(24 * time.Hour)
//	handler := NewCancelStaleOrdersCommandHandler(uowFactory, publisher)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("Stale order cleanup failed: %v", err)
//	}
type CancelStaleOrdersCommand struct { //nolint:recvcheck //using for validation
	maxAge time.Duration

	guard guard.ConstructorGuard
}

// NewCancelStaleOrdersCommand creates a command to cancel pending orders that
// have not progressed within maxAge.
func NewCancelStaleOrdersCommand(maxAge time.Duration) (CancelStaleOrdersCommand, error) {
	command := CancelStaleOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setMaxAge(maxAge); err != nil {
		return CancelStaleOrdersCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCancelStaleOrdersCommandIsNotConstructed if validation fails.
func (c CancelStaleOrdersCommand) Validate() error {
	return c.guard.Validate(ErrCancelStaleOrdersCommandIsNotConstructed)
}

// MaxAge returns the age threshold beyond which a pending order is cancelled.
func (c CancelStaleOrdersCommand) MaxAge() time.Duration {
	return c.maxAge
}

func (c *CancelStaleOrdersCommand) setMaxAge(maxAge time.Duration) error {
	if maxAge <= 0 {
		return ErrMaxAgeIsInvalid
	}

	c.maxAge = maxAge
	return nil
}
