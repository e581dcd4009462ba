// Package offer contains the Offer aggregate: a courier's bid against a
// specific quote. A courier holds at most one live offer per quote; a
// resubmission updates the existing pending offer instead of creating a
// duplicate. Like quotes, offers carry their own TTL and every state after
// Pending is terminal.
package offer
