package kernel_test

import (
	"testing"
	"time"

	"broker/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTTLPolicy(t *testing.T) {
	t.Run("should build policy from positive minutes", func(t *testing.T) {
		policy, err := kernel.NewTTLPolicy(10, 4)
		require.NoError(t, err)

		now := time.Now().UTC()
		assert.Equal(t, now.Add(10*time.Minute), policy.QuoteExpiry(now))
		assert.Equal(t, now.Add(4*time.Minute), policy.OfferExpiry(now))
	})

	t.Run("should reject non-positive quote TTL", func(t *testing.T) {
		_, err := kernel.NewTTLPolicy(0, 4)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "quoteMinutes")
	})

	t.Run("should reject non-positive offer TTL", func(t *testing.T) {
		_, err := kernel.NewTTLPolicy(10, -1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "offerMinutes")
	})
}

func TestDefaultTTLPolicy(t *testing.T) {
	policy := kernel.DefaultTTLPolicy()
	now := time.Now().UTC()

	assert.Equal(t, now.Add(kernel.DefaultQuoteTTLMinutes*time.Minute), policy.QuoteExpiry(now))
	assert.Equal(t, now.Add(kernel.DefaultOfferTTLMinutes*time.Minute), policy.OfferExpiry(now))
}

func TestExtendedExpiry(t *testing.T) {
	now := time.Now().UTC()

	t.Run("should add on top of a future expiry", func(t *testing.T) {
		current := now.Add(5 * time.Minute)

		extended := kernel.ExtendedExpiry(current, now, 10)

		assert.Equal(t, current.Add(10*time.Minute), extended)
	})

	t.Run("should add on top of now when the expiry lies in the past", func(t *testing.T) {
		current := now.Add(-5 * time.Minute)

		extended := kernel.ExtendedExpiry(current, now, 10)

		assert.Equal(t, now.Add(10*time.Minute), extended)
	})

	t.Run("should treat an expiry equal to now as still current", func(t *testing.T) {
		extended := kernel.ExtendedExpiry(now, now, 10)

		assert.Equal(t, now.Add(10*time.Minute), extended)
	})
}
