package commands_test

import (
	"testing"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChangeShippingAddressCommand_ValidInput(t *testing.T) {
	orderID := kernel.NewUUID()
	address := testAddress(t)

	cmd, err := commands.NewChangeShippingAddressCommand(orderID, address)

	require.NoError(t, err)
	assert.Equal(t, orderID, cmd.OrderID())
	assert.True(t, cmd.NewAddress().IsEqual(address))
}

func TestNewChangeShippingAddressCommand_InvalidAddress(t *testing.T) {
	var address kernel.ShippingAddress

	_, err := commands.NewChangeShippingAddressCommand(kernel.NewUUID(), address)

	require.Error(t, err)
}

func TestChangeShippingAddressCommand_Validate_NotConstructed(t *testing.T) {
	var cmd commands.ChangeShippingAddressCommand

	err := cmd.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrChangeShippingAddressCommandIsNotConstructed)
}
