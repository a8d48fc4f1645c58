package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrObjectNotFound indicates that a requested entity is absent or soft-deleted.
	ErrObjectNotFound = errors.New("object not found")

	// ErrValueIsInvalid indicates that a supplied value failed validation.
	ErrValueIsInvalid = errors.New("value is invalid")

	// ErrValueIsRequired indicates that a required value was not supplied.
	ErrValueIsRequired = errors.New("value is required")

	// ErrInvalidTransition indicates that a requested stage change is not an
	// edge of the work order state machine.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrGuardFailed indicates that a stage change is a recognized edge but its
	// precondition does not hold.
	ErrGuardFailed = errors.New("transition guard failed")

	// ErrPreconditionFailed indicates that an operation-specific precondition
	// does not hold (for example booking a shipment out of stage).
	ErrPreconditionFailed = errors.New("precondition failed")

	// ErrUpstreamFailure indicates that an external integration call failed.
	ErrUpstreamFailure = errors.New("upstream failure")

	// ErrStageConflict indicates that a concurrent transition won the commit
	// race; the caller may re-read and retry.
	ErrStageConflict = errors.New("stage conflict")
)

// sanitize strips newlines from values embedded in error messages so that a
// single log line always holds the whole error.
func sanitize(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", " ")
}

// ObjectNotFoundError is returned when an entity cannot be found by its
// identifier, including soft-deleted entities.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError without an underlying cause.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping an underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError is returned when a supplied value fails validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError without an underlying cause.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping an underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName))
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsRequiredError is returned when a required value is missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError without an underlying cause.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping an underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName))
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// InvalidTransitionError is returned when the requested stage is not reachable
// from the current stage in the adjacency table. Arbitrary jumps are rejected
// even when no guard would otherwise block them.
type InvalidTransitionError struct {
	From string
	To   string
}

// NewInvalidTransitionError creates an InvalidTransitionError for the edge (from, to).
func NewInvalidTransitionError(from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To))
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// GuardFailedError is returned when a recognized edge's precondition does not
// hold. ReasonCode is machine-readable so a client can explain the refusal;
// Reason is the human-readable form.
type GuardFailedError struct {
	From       string
	To         string
	ReasonCode string
	Reason     string
}

// NewGuardFailedError creates a GuardFailedError for the edge (from, to).
func NewGuardFailedError(from, to, reasonCode, reason string) *GuardFailedError {
	return &GuardFailedError{From: from, To: to, ReasonCode: reasonCode, Reason: reason}
}

func (e *GuardFailedError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s -> %s: %s", ErrGuardFailed, e.From, e.To, e.Reason))
}

func (e *GuardFailedError) Unwrap() error {
	return ErrGuardFailed
}

// PreconditionFailedError is returned when an operation-specific precondition
// does not hold.
type PreconditionFailedError struct {
	Operation string
	Reason    string
}

// NewPreconditionFailedError creates a PreconditionFailedError for the named operation.
func NewPreconditionFailedError(operation, reason string) *PreconditionFailedError {
	return &PreconditionFailedError{Operation: operation, Reason: reason}
}

func (e *PreconditionFailedError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s: %s", ErrPreconditionFailed, e.Operation, e.Reason))
}

func (e *PreconditionFailedError) Unwrap() error {
	return ErrPreconditionFailed
}

// UpstreamFailureError is returned when a call to an external integration
// (carrier, notification channel) fails or times out.
type UpstreamFailureError struct {
	Integration string
	Cause       error
}

// NewUpstreamFailureError creates an UpstreamFailureError for the named integration.
func NewUpstreamFailureError(integration string, cause error) *UpstreamFailureError {
	return &UpstreamFailureError{Integration: integration, Cause: cause}
}

func (e *UpstreamFailureError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrUpstreamFailure, e.Integration, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrUpstreamFailure, e.Integration))
}

func (e *UpstreamFailureError) Unwrap() error {
	return ErrUpstreamFailure
}

// StageConflictError is returned when an optimistic stage commit affected zero
// rows because another transition committed first.
type StageConflictError struct {
	WorkOrderID string
	Expected    string
}

// NewStageConflictError creates a StageConflictError for the given work order.
func NewStageConflictError(workOrderID, expected string) *StageConflictError {
	return &StageConflictError{WorkOrderID: workOrderID, Expected: expected}
}

func (e *StageConflictError) Error() string {
	return sanitize(fmt.Sprintf("%s: work order %s no longer in stage %s",
		ErrStageConflict, e.WorkOrderID, e.Expected))
}

func (e *StageConflictError) Unwrap() error {
	return ErrStageConflict
}
