package offer_test

import (
	"testing"
	"time"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/core/domain/model/offer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPrice(t *testing.T, amount int64) kernel.Price {
	t.Helper()
	price, err := kernel.NewPrice(amount)
	require.NoError(t, err)
	return price
}

func newPendingOffer(t *testing.T, now time.Time) *offer.Offer {
	t.Helper()
	o, err := offer.NewOffer(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		mustPrice(t, 4500), nil, nil, now, now.Add(4*time.Minute))
	require.NoError(t, err)
	return o
}

func TestNewOffer(t *testing.T) {
	now := time.Now().UTC()

	t.Run("should create pending offer", func(t *testing.T) {
		id := kernel.NewUUID()
		courierID := kernel.NewUUID()
		quoteID := kernel.NewUUID()
		duration := 15 * time.Minute
		vehicleID := kernel.NewUUID()

		o, err := offer.NewOffer(id, courierID, quoteID, mustPrice(t, 4500), &duration, &vehicleID, now, now.Add(4*time.Minute))

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.True(t, o.CourierID().IsEqual(courierID))
		assert.True(t, o.QuoteID().IsEqual(quoteID))
		assert.Equal(t, offer.Pending, o.Status())
		assert.Equal(t, duration, *o.EstimatedDuration())
		assert.True(t, o.VehicleID().IsEqual(vehicleID))
		assert.Equal(t, now, o.UpdatedAt())
	})

	t.Run("should accept omitted duration and vehicle", func(t *testing.T) {
		o := newPendingOffer(t, now)

		assert.Nil(t, o.EstimatedDuration())
		assert.Nil(t, o.VehicleID())
	})

	t.Run("should fail with non-positive duration", func(t *testing.T) {
		duration := -time.Minute

		_, err := offer.NewOffer(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			mustPrice(t, 4500), &duration, nil, now, now.Add(4*time.Minute))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "estimatedDuration")
	})

	t.Run("should fail with zero courier id", func(t *testing.T) {
		_, err := offer.NewOffer(
			kernel.NewUUID(), kernel.UUID{}, kernel.NewUUID(),
			mustPrice(t, 4500), nil, nil, now, now.Add(4*time.Minute))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "courierID")
	})

	t.Run("should fail when expiry does not lie after creation", func(t *testing.T) {
		_, err := offer.NewOffer(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			mustPrice(t, 4500), nil, nil, now, now)

		require.Error(t, err)
	})
}

func TestOffer_Validate(t *testing.T) {
	t.Run("should fail for nil offer", func(t *testing.T) {
		var o *offer.Offer

		assert.Equal(t, offer.ErrOfferIsNotConstructed, o.Validate())
	})

	t.Run("should fail for zero value offer", func(t *testing.T) {
		var o offer.Offer

		assert.Equal(t, offer.ErrOfferIsNotConstructed, o.Validate())
	})
}

func TestOffer_UpdateBid(t *testing.T) {
	now := time.Now().UTC()

	t.Run("should replace price, duration, and vehicle in place", func(t *testing.T) {
		o := newPendingOffer(t, now)
		newDuration := 20 * time.Minute
		newVehicle := kernel.NewUUID()
		later := now.Add(time.Minute)

		err := o.UpdateBid(mustPrice(t, 3900), &newDuration, &newVehicle, later)

		require.NoError(t, err)
		assert.Equal(t, int64(3900), o.ProposedPrice().Amount())
		assert.Equal(t, newDuration, *o.EstimatedDuration())
		assert.True(t, o.VehicleID().IsEqual(newVehicle))
		assert.Equal(t, later, o.UpdatedAt())
		assert.Equal(t, offer.Pending, o.Status())
	})

	t.Run("should refuse update of a resolved offer", func(t *testing.T) {
		o := newPendingOffer(t, now)
		require.NoError(t, o.Accept())

		err := o.UpdateBid(mustPrice(t, 3900), nil, nil, now)

		require.Error(t, err)
		assert.Equal(t, int64(4500), o.ProposedPrice().Amount())
	})
}

func TestOffer_Transitions(t *testing.T) {
	now := time.Now().UTC()

	t.Run("should accept pending offer", func(t *testing.T) {
		o := newPendingOffer(t, now)

		require.NoError(t, o.Accept())
		assert.Equal(t, offer.Accepted, o.Status())
	})

	t.Run("should reject pending offer", func(t *testing.T) {
		o := newPendingOffer(t, now)

		require.NoError(t, o.Reject())
		assert.Equal(t, offer.Rejected, o.Status())
	})

	t.Run("should expire pending offer", func(t *testing.T) {
		o := newPendingOffer(t, now)

		require.NoError(t, o.Expire())
		assert.Equal(t, offer.Expired, o.Status())
	})

	t.Run("should refuse transitions from terminal states", func(t *testing.T) {
		o := newPendingOffer(t, now)
		require.NoError(t, o.Reject())

		assert.Error(t, o.Accept())
		assert.Error(t, o.Reject())
		assert.Error(t, o.Expire())
		assert.Equal(t, offer.Rejected, o.Status())
	})
}

func TestOffer_ExtendExpiration(t *testing.T) {
	now := time.Now().UTC()

	t.Run("should add minutes on top of a future expiry", func(t *testing.T) {
		o := newPendingOffer(t, now)
		originalExpiry := o.ExpiresAt()

		require.NoError(t, o.ExtendExpiration(now, 3))
		assert.Equal(t, originalExpiry.Add(3*time.Minute), o.ExpiresAt())
	})

	t.Run("should extend from now when the expiry already lapsed", func(t *testing.T) {
		o := newPendingOffer(t, now)
		later := now.Add(time.Hour)

		require.NoError(t, o.ExtendExpiration(later, 3))
		assert.Equal(t, later.Add(3*time.Minute), o.ExpiresAt())
	})

	t.Run("should reject non-positive minutes", func(t *testing.T) {
		o := newPendingOffer(t, now)

		assert.Error(t, o.ExtendExpiration(now, 0))
	})

	t.Run("should refuse to extend a resolved offer", func(t *testing.T) {
		o := newPendingOffer(t, now)
		require.NoError(t, o.Expire())

		assert.Error(t, o.ExtendExpiration(now, 3))
	})
}

func TestOffer_IsExpired(t *testing.T) {
	now := time.Now().UTC()
	o := newPendingOffer(t, now)

	assert.False(t, o.IsExpired(now.Add(3*time.Minute)))
	assert.True(t, o.IsExpired(now.Add(4*time.Minute)))
	assert.True(t, o.IsExpired(now.Add(5*time.Minute)))
}
