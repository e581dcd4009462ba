// Package kernel contains the shared value objects of the domain model:
// identifiers, money amounts, and the time-to-live policy for short-lived
// entities. Everything here is immutable and safe for concurrent use.
//
// Value objects follow the same construction discipline as the aggregates:
// the zero value is invalid and constructors validate their inputs, so a
// value that exists is a value that holds.
package kernel
