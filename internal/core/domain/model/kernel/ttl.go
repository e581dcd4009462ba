package kernel

import (
	"fmt"
	"time"

	"broker/internal/pkg/errs"
)

// Default lifetimes for pending quotes and offers, applied when the caller
// does not supply an explicit expiry.
const (
	DefaultQuoteTTLMinutes = 10
	DefaultOfferTTLMinutes = 4
)

// TTLPolicy computes default expiry timestamps for quotes and offers. It is
// a pure value: no clock is captured, callers pass "now" explicitly, which
// keeps expiry arithmetic deterministic under test.
type TTLPolicy struct {
	quoteTTL time.Duration
	offerTTL time.Duration
}

// NewTTLPolicy builds a policy from TTLs expressed in minutes. Non-positive
// values are rejected; use DefaultTTLPolicy for the standard lifetimes.
func NewTTLPolicy(quoteMinutes, offerMinutes int) (TTLPolicy, error) {
	if quoteMinutes <= 0 {
		return TTLPolicy{}, errs.NewValueIsInvalidErrorWithCause(
			"quoteMinutes", fmt.Errorf("%d is not greater than 0", quoteMinutes))
	}
	if offerMinutes <= 0 {
		return TTLPolicy{}, errs.NewValueIsInvalidErrorWithCause(
			"offerMinutes", fmt.Errorf("%d is not greater than 0", offerMinutes))
	}

	return TTLPolicy{
		quoteTTL: time.Duration(quoteMinutes) * time.Minute,
		offerTTL: time.Duration(offerMinutes) * time.Minute,
	}, nil
}

// DefaultTTLPolicy returns the policy with the standard 10-minute quote and
// 4-minute offer lifetimes.
func DefaultTTLPolicy() TTLPolicy {
	policy, _ := NewTTLPolicy(DefaultQuoteTTLMinutes, DefaultOfferTTLMinutes)
	return policy
}

// QuoteExpiry returns the default expiry for a quote created at now.
func (p TTLPolicy) QuoteExpiry(now time.Time) time.Time {
	return now.Add(p.quoteTTL)
}

// OfferExpiry returns the default expiry for an offer created at now.
func (p TTLPolicy) OfferExpiry(now time.Time) time.Time {
	return now.Add(p.offerTTL)
}

// ExtendedExpiry computes the new expiry when a pending quote or offer is
// extended: minutes are added on top of the current expiry, or on top of now
// when the current expiry already lies in the past.
func ExtendedExpiry(current, now time.Time, minutes int) time.Time {
	base := current
	if base.Before(now) {
		base = now
	}
	return base.Add(time.Duration(minutes) * time.Minute)
}
