package commands_test

import (
	"testing"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	orderID := kernel.NewUUID()
	branchID := kernel.NewUUID()

	cmd, err := commands.NewCreateOrderCommand(orderID, branchID)

	require.NoError(t, err)
	assert.True(t, cmd.OrderID().IsEqual(orderID))
	assert.True(t, cmd.BranchID().IsEqual(branchID))
	assert.NoError(t, cmd.Validate())
}

func TestNewCreateOrderCommand_InvalidOrderID(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.UUID{}, kernel.NewUUID())

	require.Error(t, err)
}

func TestNewCreateOrderCommand_InvalidBranchID(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.UUID{})

	require.Error(t, err)
}

func TestCreateOrderCommand_Validate_ZeroValue(t *testing.T) {
	var cmd commands.CreateOrderCommand

	err := cmd.Validate()

	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
}
