// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: a validated,
// constructor-guarded command value object and a handler that owns the
// transaction, appends history, and publishes realtime events only after
// the mutation has committed.
package commands

import (
	"context"

	"broker/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. Narrow flavors keep each handler's dependency surface honest:
// a handler that only touches quotes and offers cannot reach deliveries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// QuoteRepoFactory provides access to the quote repository within a transaction.
	QuoteRepoFactory interface {
		QuoteRepository() ports.QuoteRepository
	}

	// OfferRepoFactory provides access to the offer repository within a transaction.
	OfferRepoFactory interface {
		OfferRepository() ports.OfferRepository
	}

	// DeliveryRepoFactory provides access to the delivery repository within a transaction.
	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	// HistoryRepoFactory provides access to the history repository within a transaction.
	HistoryRepoFactory interface {
		HistoryRepository() ports.HistoryRepository
	}

	// QuoteUoW manages transactions for quote-side operations. Quote
	// mutations cascade over sibling offers and always leave a history
	// trail, so offers and history travel with every quote transaction.
	QuoteUoW interface {
		TxManager
		QuoteRepoFactory
		OfferRepoFactory
		HistoryRepoFactory
	}

	// QuoteUoWFactory creates new quote unit of work instances.
	QuoteUoWFactory interface {
		Create() QuoteUoW
	}

	// DeliveryUoW manages transactions for delivery state machine operations.
	DeliveryUoW interface {
		TxManager
		DeliveryRepoFactory
		HistoryRepoFactory
	}

	// DeliveryUoWFactory creates new delivery unit of work instances.
	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}

	// UoW manages transactions across every aggregate. Used by the accept
	// operation (quote + offers + delivery + history must move together)
	// and the expiration sweeper.
	UoW interface {
		TxManager
		QuoteRepoFactory
		OfferRepoFactory
		DeliveryRepoFactory
		HistoryRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
