// Package delivery contains the Delivery aggregate: the binding job created
// when an offer is accepted. It inherits the correlation id of its
// originating quote and advances through a fixed linear lifecycle
// (assigned, picked_up, in_transit, delivered, paid) with cancellation
// reachable from any state before delivery.
package delivery
