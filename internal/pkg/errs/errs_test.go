package errs_test

import (
	"errors"
	"testing"

	"atelier/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("workOrderId", "123")

		assert.Equal(t, "workOrderId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("workOrderId", "123", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: workOrderId, ID is: 123 (cause: database connection failed)",
			err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("priority")

		assert.Equal(t, "priority", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: priority", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("priority", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: priority (cause: invalid format)", err.Error())
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("customerName")

		assert.Equal(t, "customerName", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: customerName", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})
}

func TestInvalidTransitionError(t *testing.T) {
	err := errs.NewInvalidTransitionError("intake_pending", "completed")

	assert.Equal(t, "intake_pending", err.From)
	assert.Equal(t, "completed", err.To)
	assert.Equal(t, "invalid transition: intake_pending -> completed", err.Error())
	assert.Equal(t, errs.ErrInvalidTransition, err.Unwrap())
}

func TestGuardFailedError(t *testing.T) {
	err := errs.NewGuardFailedError(
		"in_production", "in_qc",
		"tasks_incomplete", "3 tasks incomplete",
	)

	assert.Equal(t, "tasks_incomplete", err.ReasonCode)
	assert.Equal(t, "transition guard failed: in_production -> in_qc: 3 tasks incomplete", err.Error())
	assert.Equal(t, errs.ErrGuardFailed, err.Unwrap())
}

func TestPreconditionFailedError(t *testing.T) {
	err := errs.NewPreconditionFailedError("book_shipment", "work order not ready to ship")

	assert.Equal(t, "book_shipment", err.Operation)
	assert.Equal(t, "precondition failed: book_shipment: work order not ready to ship", err.Error())
	assert.Equal(t, errs.ErrPreconditionFailed, err.Unwrap())
}

func TestUpstreamFailureError(t *testing.T) {
	t.Run("with_cause", func(t *testing.T) {
		cause := errors.New("context deadline exceeded")
		err := errs.NewUpstreamFailureError("aramex", cause)

		assert.Equal(t, "aramex", err.Integration)
		assert.Equal(t, "upstream failure: aramex (cause: context deadline exceeded)", err.Error())
		assert.Equal(t, errs.ErrUpstreamFailure, err.Unwrap())
	})

	t.Run("without_cause", func(t *testing.T) {
		err := errs.NewUpstreamFailureError("brevo", nil)
		assert.Equal(t, "upstream failure: brevo", err.Error())
	})
}

func TestStageConflictError(t *testing.T) {
	err := errs.NewStageConflictError("wo-1", "ready_to_ship")

	assert.Equal(t, "wo-1", err.WorkOrderID)
	assert.Equal(t, "stage conflict: work order wo-1 no longer in stage ready_to_ship", err.Error())
	assert.Equal(t, errs.ErrStageConflict, err.Unwrap())
}

func TestSentinelErrors(t *testing.T) {
	t.Run("error messages match expectations", func(t *testing.T) {
		assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
		assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
		assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
		assert.Equal(t, "invalid transition", errs.ErrInvalidTransition.Error())
		assert.Equal(t, "transition guard failed", errs.ErrGuardFailed.Error())
		assert.Equal(t, "precondition failed", errs.ErrPreconditionFailed.Error())
		assert.Equal(t, "upstream failure", errs.ErrUpstreamFailure.Error())
		assert.Equal(t, "stage conflict", errs.ErrStageConflict.Error())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works with custom errors", func(t *testing.T) {
		require.ErrorIs(t, errs.NewObjectNotFoundError("workOrderId", "123"), errs.ErrObjectNotFound)
		require.ErrorIs(t, errs.NewValueIsInvalidError("priority"), errs.ErrValueIsInvalid)
		require.ErrorIs(t, errs.NewValueIsRequiredError("customerName"), errs.ErrValueIsRequired)
		require.ErrorIs(t,
			errs.NewInvalidTransitionError("in_qc", "completed"), errs.ErrInvalidTransition)
		require.ErrorIs(t,
			errs.NewGuardFailedError("in_production", "in_qc", "tasks_incomplete", "1 task incomplete"),
			errs.ErrGuardFailed)
		require.ErrorIs(t,
			errs.NewPreconditionFailedError("book_shipment", "not ready"), errs.ErrPreconditionFailed)
		require.ErrorIs(t, errs.NewUpstreamFailureError("aramex", nil), errs.ErrUpstreamFailure)
		require.ErrorIs(t, errs.NewStageConflictError("wo-1", "in_qc"), errs.ErrStageConflict)
	})

	t.Run("sanitize strips newlines", func(t *testing.T) {
		err := errs.NewPreconditionFailedError("book_shipment", "line one\nline two")
		assert.Contains(t, err.Error(), "line one line two")
		assert.NotContains(t, err.Error(), "\n")
	})
}
