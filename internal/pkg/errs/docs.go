// Package errs provides standardized error types for the atelier application.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// The package covers two groups of errors:
//
// Validation errors shared by all layers:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value is invalid
//   - ObjectNotFoundError: an entity is absent or soft-deleted
//
// Lifecycle errors raised by the stage transition engine and its callers:
//   - InvalidTransitionError: the requested stage is not an edge of the state machine
//   - GuardFailedError: the edge exists but its precondition does not hold
//   - PreconditionFailedError: an operation-specific precondition does not hold
//   - UpstreamFailureError: a carrier or notification integration call failed
//   - StageConflictError: a concurrent transition won the optimistic commit race
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrGuardFailed)
//   - A struct type with fields for error details
//   - Constructor functions, with and without cause where a cause makes sense
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is can classify against the sentinel
//
// The sentinels are the contract: callers branch on errors.Is(err, errs.ErrX)
// and never parse messages.
package errs
