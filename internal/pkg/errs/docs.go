// Package errs provides the standardized error taxonomy for the brokerage
// application. It implements a consistent pattern for error creation,
// formatting, and unwrapping that is used throughout the application.
//
// The taxonomy maps directly onto what callers may do about a failure:
//   - ValueIsRequiredError / ValueIsInvalidError / ValueIsOutOfRangeError:
//     bad input, surfaced to the caller, never retried
//   - InvalidStateError: the entity is not in the state the action requires;
//     the caller must re-fetch current state
//   - ConflictError: the caller lost a race against a concurrent operation
//   - ObjectNotFoundError: the entity does not exist or is not visible
//   - UnauthorizedError: ownership or role check failed
//   - UnavailableError: a dependency failed; a retry with backoff may help
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrConflict)
//   - A struct type with fields for error details
//   - Constructor functions, with and without cause where a cause makes sense
//   - Error() for formatting and Unwrap() so errors.Is classification works
package errs
