// Package quote contains the Quote aggregate: a client's open request for
// delivery, inviting competing offers from couriers.
//
// A quote is born pending with a correlation identifier that outlives it.
// Pending is the only state from which anything can happen: acceptance,
// cancellation, and expiration are all terminal, and a terminal quote is
// eligible for deletion; its narrative continues in the history log and,
// when accepted, in the Delivery that inherits the correlation id.
package quote
