package ws_test

import (
	"io"
	"log/slog"
	"testing"

	"broker/internal/adapters/in/ws"
	"broker/internal/core/domain/model/kernel"
	"broker/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub() *ws.Hub {
	return ws.NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHub_PublishReachesAllGroupSubscribers(t *testing.T) {
	hub := newTestHub()
	group := ports.GroupQuote(kernel.NewUUID())

	first := hub.Join(group)
	defer first.Close()
	second := hub.Join(group)
	defer second.Close()
	bystander := hub.Join(ports.GroupNewQuotes)
	defer bystander.Close()

	event := ports.Event{Type: ports.EventOfferMade, Data: "payload"}
	hub.Publish(group, event)

	assert.Equal(t, event, <-first.Events())
	assert.Equal(t, event, <-second.Events())
	assert.Empty(t, bystander.Events(), "Other groups must not receive the event")
}

func TestHub_PublishWithoutSubscribersIsNoOp(t *testing.T) {
	hub := newTestHub()

	hub.Publish("quote:nobody-home", ports.Event{Type: ports.EventQuoteCreated})

	assert.Equal(t, 0, hub.SubscriberCount("quote:nobody-home"))
}

func TestHub_SlowSubscriberLosesOverflowWithoutBlocking(t *testing.T) {
	hub := newTestHub()
	group := ports.GroupNewQuotes

	slow := hub.Join(group)
	defer slow.Close()

	// Publish well past the buffer without draining. Publish must return
	// every time; the overflow is simply gone.
	for i := range 100 {
		hub.Publish(group, ports.Event{Type: ports.EventQuoteCreated, Data: i})
	}

	delivered := 0
	for range len(slow.Events()) {
		<-slow.Events()
		delivered++
	}
	require.Less(t, delivered, 100)
	require.Greater(t, delivered, 0)
}

func TestHub_CloseRemovesSubscription(t *testing.T) {
	hub := newTestHub()
	group := ports.GroupDelivery(kernel.NewUUID())

	subscription := hub.Join(group)
	require.Equal(t, 1, hub.SubscriberCount(group))

	subscription.Close()
	assert.Equal(t, 0, hub.SubscriberCount(group))

	// Closing again is safe.
	subscription.Close()

	hub.Publish(group, ports.Event{Type: ports.EventDeliveryCancelled})
	assert.Empty(t, subscription.Events())
}
