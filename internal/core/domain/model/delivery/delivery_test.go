package delivery_test

import (
	"testing"
	"time"

	"broker/internal/core/domain/model/delivery"
	"broker/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDetails() delivery.Details {
	return delivery.Details{
		PickupAddress:   "100 Origin Way",
		DeliveryAddress: "200 Target Blvd",
		CategoryID:      kernel.NewUUID(),
		Description:     "small parcel",
	}
}

func mustPrice(t *testing.T, amount int64) kernel.Price {
	t.Helper()
	price, err := kernel.NewPrice(amount)
	require.NoError(t, err)
	return price
}

func newAssignedDelivery(t *testing.T, now time.Time) *delivery.Delivery {
	t.Helper()
	d, err := delivery.NewDelivery(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		validDetails(), mustPrice(t, 4500), nil, now)
	require.NoError(t, err)
	return d
}

func TestNewDelivery(t *testing.T) {
	now := time.Now().UTC()

	t.Run("should create delivery in assigned state", func(t *testing.T) {
		id := kernel.NewUUID()
		clientID := kernel.NewUUID()
		courierID := kernel.NewUUID()
		correlationID := kernel.NewUUID()

		d, err := delivery.NewDelivery(id, clientID, courierID, correlationID, validDetails(), mustPrice(t, 4500), nil, now)

		require.NoError(t, err)
		require.NoError(t, d.Validate())
		assert.True(t, d.ID().IsEqual(id))
		assert.True(t, d.ClientID().IsEqual(clientID))
		assert.True(t, d.CourierID().IsEqual(courierID))
		assert.True(t, d.CorrelationID().IsEqual(correlationID))
		assert.Equal(t, delivery.Assigned, d.Status())
		assert.Equal(t, now, d.UpdatedAt())
		assert.Nil(t, d.CompletedAt())
		assert.Nil(t, d.CancelledAt())
	})

	t.Run("should fail with zero correlation id", func(t *testing.T) {
		_, err := delivery.NewDelivery(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.UUID{},
			validDetails(), mustPrice(t, 4500), nil, now)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "correlationID")
	})

	t.Run("should fail with missing details", func(t *testing.T) {
		_, err := delivery.NewDelivery(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			delivery.Details{}, mustPrice(t, 4500), nil, now)

		require.Error(t, err)
	})
}

func TestDelivery_Validate(t *testing.T) {
	t.Run("should fail for nil delivery", func(t *testing.T) {
		var d *delivery.Delivery

		assert.Equal(t, delivery.ErrDeliveryIsNotConstructed, d.Validate())
	})

	t.Run("should fail for zero value delivery", func(t *testing.T) {
		var d delivery.Delivery

		assert.Equal(t, delivery.ErrDeliveryIsNotConstructed, d.Validate())
	})
}

func TestDelivery_Advance(t *testing.T) {
	now := time.Now().UTC()

	t.Run("should walk the linear progression to paid", func(t *testing.T) {
		d := newAssignedDelivery(t, now)
		expected := []delivery.Status{delivery.PickedUp, delivery.InTransit, delivery.Delivered, delivery.Paid}

		for i, want := range expected {
			tick := now.Add(time.Duration(i+1) * time.Minute)
			got, err := d.Advance(tick)

			require.NoError(t, err)
			assert.Equal(t, want, got)
			assert.Equal(t, want, d.Status())
			assert.Equal(t, tick, d.UpdatedAt())
		}
	})

	t.Run("should stamp completedAt on the transition to delivered", func(t *testing.T) {
		d := newAssignedDelivery(t, now)
		_, _ = d.Advance(now.Add(time.Minute))
		_, _ = d.Advance(now.Add(2 * time.Minute))

		deliveredAt := now.Add(3 * time.Minute)
		_, err := d.Advance(deliveredAt)

		require.NoError(t, err)
		require.NotNil(t, d.CompletedAt())
		assert.Equal(t, deliveredAt, *d.CompletedAt())

		// Advancing on to paid leaves the completion timestamp alone.
		_, err = d.Advance(now.Add(4 * time.Minute))
		require.NoError(t, err)
		assert.Equal(t, deliveredAt, *d.CompletedAt())
	})

	t.Run("should fail from paid", func(t *testing.T) {
		d := newAssignedDelivery(t, now)
		for range 4 {
			_, err := d.Advance(now)
			require.NoError(t, err)
		}

		_, err := d.Advance(now)

		require.Error(t, err)
		assert.Equal(t, delivery.Paid, d.Status())
	})

	t.Run("should fail from cancelled", func(t *testing.T) {
		d := newAssignedDelivery(t, now)
		require.NoError(t, d.Cancel(now))

		_, err := d.Advance(now)

		require.Error(t, err)
		assert.Equal(t, delivery.Cancelled, d.Status())
	})
}

func TestDelivery_Cancel(t *testing.T) {
	now := time.Now().UTC()

	t.Run("should cancel before delivery and stamp cancelledAt", func(t *testing.T) {
		d := newAssignedDelivery(t, now)
		_, _ = d.Advance(now.Add(time.Minute)) // picked_up

		cancelledAt := now.Add(2 * time.Minute)
		err := d.Cancel(cancelledAt)

		require.NoError(t, err)
		assert.Equal(t, delivery.Cancelled, d.Status())
		require.NotNil(t, d.CancelledAt())
		assert.Equal(t, cancelledAt, *d.CancelledAt())
		assert.Nil(t, d.CompletedAt())
	})

	t.Run("should refuse cancellation once delivered", func(t *testing.T) {
		d := newAssignedDelivery(t, now)
		for range 3 {
			_, err := d.Advance(now)
			require.NoError(t, err)
		}
		require.Equal(t, delivery.Delivered, d.Status())

		err := d.Cancel(now)

		require.Error(t, err)
		assert.Equal(t, delivery.Delivered, d.Status())
		assert.Nil(t, d.CancelledAt())
	})

	t.Run("should refuse double cancellation", func(t *testing.T) {
		d := newAssignedDelivery(t, now)
		require.NoError(t, d.Cancel(now))

		assert.Error(t, d.Cancel(now.Add(time.Minute)))
		assert.Equal(t, now, *d.CancelledAt())
	})
}

func TestDelivery_SetStatus(t *testing.T) {
	now := time.Now().UTC()

	t.Run("should jump to an arbitrary known state", func(t *testing.T) {
		d := newAssignedDelivery(t, now)

		err := d.SetStatus(delivery.InTransit, now.Add(time.Minute))

		require.NoError(t, err)
		assert.Equal(t, delivery.InTransit, d.Status())
	})

	t.Run("should stamp completedAt only on first entry into delivered", func(t *testing.T) {
		d := newAssignedDelivery(t, now)
		firstDelivered := now.Add(time.Minute)

		require.NoError(t, d.SetStatus(delivery.Delivered, firstDelivered))
		require.NotNil(t, d.CompletedAt())
		assert.Equal(t, firstDelivered, *d.CompletedAt())

		// Administrative rewind and redelivery keeps the original stamp.
		require.NoError(t, d.SetStatus(delivery.InTransit, now.Add(2*time.Minute)))
		require.NoError(t, d.SetStatus(delivery.Delivered, now.Add(3*time.Minute)))
		assert.Equal(t, firstDelivered, *d.CompletedAt())
	})

	t.Run("should reject unknown target", func(t *testing.T) {
		d := newAssignedDelivery(t, now)

		assert.Error(t, d.SetStatus(delivery.Status(99), now))
		assert.Error(t, d.SetStatus(delivery.Unknown, now))
	})

	t.Run("should enforce cancellation rules for the cancelled target", func(t *testing.T) {
		d := newAssignedDelivery(t, now)
		require.NoError(t, d.SetStatus(delivery.Delivered, now))

		err := d.SetStatus(delivery.Cancelled, now)

		require.Error(t, err)
		assert.Equal(t, delivery.Delivered, d.Status())
	})
}

func TestRestoreDelivery(t *testing.T) {
	now := time.Now().UTC()
	completedAt := now.Add(time.Hour)

	t.Run("should preserve status and timestamps", func(t *testing.T) {
		d, err := delivery.RestoreDelivery(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			validDetails(), mustPrice(t, 4500), nil,
			delivery.Delivered, now, completedAt, &completedAt, nil)

		require.NoError(t, err)
		assert.Equal(t, delivery.Delivered, d.Status())
		require.NotNil(t, d.CompletedAt())
		assert.Equal(t, completedAt, *d.CompletedAt())
		assert.Nil(t, d.CancelledAt())
	})

	t.Run("should fail with unknown status", func(t *testing.T) {
		_, err := delivery.RestoreDelivery(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			validDetails(), mustPrice(t, 4500), nil,
			delivery.Status(99), now, now, nil, nil)

		require.Error(t, err)
	})
}
