package ports

import (
	"fmt"

	"broker/internal/core/domain/model/kernel"
)

// Event is the envelope pushed to realtime subscribers. Data must already be
// a serialization-safe payload: publishers snapshot entity state before any
// row deletion, so subscribers never observe half-deleted aggregates.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Realtime event types.
const (
	EventQuoteCreated          = "quote_created"
	EventQuoteAccepted         = "quote_accepted"
	EventQuoteExpired          = "quote_expired"
	EventOfferMade             = "offer_made"
	EventOfferUpdated          = "offer_updated"
	EventOfferRejected         = "offer_rejected"
	EventOfferAccepted         = "offer_accepted"
	EventOfferExpired          = "offer_expired"
	EventDeliveryCreated       = "delivery_created"
	EventDeliveryAssigned      = "delivery_assigned"
	EventDeliveryStatusChanged = "delivery_status_changed"
	EventDeliveryCancelled     = "delivery_cancelled"
	EventInitialQuotes         = "initial_quotes"
	EventPersonStats           = "person_stats"
)

// GroupNewQuotes is the global feed of open quotes. It carries quote-level
// events only, never offer payloads: couriers watching the feed must not see
// competitors' bids.
const GroupNewQuotes = "new_quotes"

// GroupQuote addresses subscribers of one quote (the owning client's view,
// offers included).
func GroupQuote(id kernel.UUID) string {
	return fmt.Sprintf("quote:%s", id)
}

// GroupDelivery addresses subscribers of one delivery.
func GroupDelivery(id kernel.UUID) string {
	return fmt.Sprintf("delivery:%s", id)
}

// GroupUserQuotes addresses one user's private quote feed.
func GroupUserQuotes(userID kernel.UUID) string {
	return fmt.Sprintf("user_quotes:%s", userID)
}

// GroupUserDeliveries addresses one user's private delivery feed.
func GroupUserDeliveries(userID kernel.UUID) string {
	return fmt.Sprintf("user_deliveries:%s", userID)
}

// GroupCourierStats addresses one courier's aggregated stats feed.
func GroupCourierStats(courierID kernel.UUID) string {
	return fmt.Sprintf("courier_stats:%s", courierID)
}

// Broadcaster is the fan-out primitive used by every lifecycle command.
// Publish delivers the event to every connection currently subscribed to
// the group; it is a no-op without subscribers and must never block the
// caller on a slow consumer. Publish failures are an observability concern,
// not a correctness one. They never roll back the mutation that already
// committed, which is why Publish returns nothing.
type Broadcaster interface {
	Publish(group string, event Event)
}
