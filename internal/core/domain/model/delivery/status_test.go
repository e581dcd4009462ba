package delivery_test

import (
	"testing"

	"broker/internal/core/domain/model/delivery"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Next(t *testing.T) {
	t.Run("should follow the linear progression", func(t *testing.T) {
		testCases := []struct {
			from delivery.Status
			to   delivery.Status
		}{
			{delivery.Assigned, delivery.PickedUp},
			{delivery.PickedUp, delivery.InTransit},
			{delivery.InTransit, delivery.Delivered},
			{delivery.Delivered, delivery.Paid},
		}

		for _, tc := range testCases {
			next, err := tc.from.Next()
			require.NoError(t, err)
			assert.Equal(t, tc.to, next)
		}
	})

	t.Run("should have no successor for paid and cancelled", func(t *testing.T) {
		_, err := delivery.Paid.Next()
		assert.Error(t, err)

		_, err = delivery.Cancelled.Next()
		assert.Error(t, err)

		_, err = delivery.Unknown.Next()
		assert.Error(t, err)
	})
}

func TestStatus_CanCancel(t *testing.T) {
	assert.True(t, delivery.Assigned.CanCancel())
	assert.True(t, delivery.PickedUp.CanCancel())
	assert.True(t, delivery.InTransit.CanCancel())
	assert.False(t, delivery.Delivered.CanCancel())
	assert.False(t, delivery.Paid.CanCancel())
	assert.False(t, delivery.Cancelled.CanCancel())
}

func TestStatusFromString(t *testing.T) {
	t.Run("should parse every wire name", func(t *testing.T) {
		for _, s := range []delivery.Status{
			delivery.Assigned, delivery.PickedUp, delivery.InTransit,
			delivery.Delivered, delivery.Paid, delivery.Cancelled,
		} {
			parsed, err := delivery.StatusFromString(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		_, err := delivery.StatusFromString("teleported")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "teleported")
	})
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "picked_up", delivery.PickedUp.String())
	assert.Equal(t, "in_transit", delivery.InTransit.String())
	assert.Equal(t, "unknown", delivery.Status(99).String())
}
