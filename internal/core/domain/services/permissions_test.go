package services_test

import (
	"testing"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermissionPredicates(t *testing.T) {
	testCases := []struct {
		name      string
		predicate func(order.Status) bool
		allowed   []order.Status
	}{
		{"CanEditItems", services.CanEditItems, []order.Status{order.New}},
		{"CanSend", services.CanSend, []order.Status{order.New}},
		{"CanPay", services.CanPay, []order.Status{order.Ready, order.Served}},
		{"CanVoid", services.CanVoid, []order.Status{order.New, order.Sent, order.InKitchen}},
		{"CanDiscount", services.CanDiscount, []order.Status{order.New, order.Sent}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			allowed := make(map[order.Status]bool, len(tc.allowed))
			for _, status := range tc.allowed {
				allowed[status] = true
			}

			for _, status := range allStatuses {
				assert.Equal(t, allowed[status], tc.predicate(status),
					"%s(%s)", tc.name, status)
			}
		})
	}
}

func TestValidateOperation(t *testing.T) {
	t.Run("permitted_operation_passes", func(t *testing.T) {
		require.NoError(t, services.ValidateOperation(services.OperationEditItems, order.New))
		require.NoError(t, services.ValidateOperation(services.OperationRegisterPayment, order.Served))
	})

	t.Run("blocked_operation_names_operation_and_status", func(t *testing.T) {
		err := services.ValidateOperation(services.OperationEditItems, order.Sent)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot edit items while order is Sent")
	})

	t.Run("payment_blocked_outside_ready_and_served", func(t *testing.T) {
		for _, status := range []order.Status{order.New, order.Sent, order.InKitchen, order.Voided, order.Closed} {
			err := services.ValidateOperation(services.OperationRegisterPayment, status)

			require.Error(t, err, "status %s", status)
		}
	})

	t.Run("unknown_operation_is_rejected", func(t *testing.T) {
		err := services.ValidateOperation("reheat", order.New)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a known order operation")
	})
}
