package errs_test

import (
	"errors"
	"testing"

	"github.com/edwode/flowserve-ops-sub001/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", "123")

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("orderId", "123", cause)

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: orderId, ID is: 123 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("amount")

		assert.Equal(t, "amount", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: amount", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("split total does not match order total")
		err := errs.NewValueIsInvalidErrorWithCause("amount", cause)

		assert.Equal(t, "amount", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: amount (cause: split total does not match order total)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("quantity", 150, 1, 120)

		assert.Equal(t, "quantity", err.ParamName)
		assert.Equal(t, 150, err.Value)
		assert.Equal(t, 1, err.Min)
		assert.Equal(t, 120, err.Max)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: 150 is quantity, min value is 1, max value is 120", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("notes", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("guestName")

		assert.Equal(t, "guestName", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: guestName", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("missing required field")
		err := errs.NewValueIsRequiredErrorWithCause("guestName", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is required: guestName (cause: missing required field)", err.Error())
	})
}

func TestStateConflictError(t *testing.T) {
	t.Run("NewStateConflictError", func(t *testing.T) {
		err := errs.NewStateConflictError("order item is not pending or dispatched")

		require.NoError(t, err.Cause)
		assert.Equal(t, "state conflict: order item is not pending or dispatched", err.Error())
		assert.Equal(t, errs.ErrStateConflict, err.Unwrap())
	})

	t.Run("NewStateConflictErrorWithCause", func(t *testing.T) {
		cause := errors.New("status changed concurrently")
		err := errs.NewStateConflictErrorWithCause("order item", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "state conflict: order item (cause: status changed concurrently)", err.Error())
	})
}

func TestScopeError(t *testing.T) {
	err := errs.NewScopeError("zone")

	assert.Equal(t, "scope denied: zone", err.Error())
	assert.Equal(t, errs.ErrScopeDenied, err.Unwrap())
}

func TestConsistencyError(t *testing.T) {
	cause := errors.New("increment missing for transfer")
	err := errs.NewConsistencyErrorWithCause("inventory transfer", cause)

	assert.Equal(t, cause, err.Cause)
	assert.Equal(t, "inconsistent state: inventory transfer (cause: increment missing for transfer)", err.Error())
	assert.Equal(t, errs.ErrInconsistentState, err.Unwrap())
}

func TestUnavailableError(t *testing.T) {
	err := errs.NewUnavailableError("notification channel")

	assert.Equal(t, "dependency unavailable: notification channel", err.Error())
	assert.Equal(t, errs.ErrUnavailable, err.Unwrap())
}

func TestSentinelErrors(t *testing.T) {
	t.Run("error messages match expectations", func(t *testing.T) {
		assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
		assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
		assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
		assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
		assert.Equal(t, "state conflict", errs.ErrStateConflict.Error())
		assert.Equal(t, "scope denied", errs.ErrScopeDenied.Error())
		assert.Equal(t, "inconsistent state", errs.ErrInconsistentState.Error())
		assert.Equal(t, "dependency unavailable", errs.ErrUnavailable.Error())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works with custom errors", func(t *testing.T) {
		require.ErrorIs(t, errs.NewObjectNotFoundError("orderId", "123"), errs.ErrObjectNotFound)
		require.ErrorIs(t, errs.NewValueIsInvalidError("amount"), errs.ErrValueIsInvalid)
		require.ErrorIs(t, errs.NewValueIsOutOfRangeError("qty", 150, 0, 120), errs.ErrValueIsOutOfRange)
		require.ErrorIs(t, errs.NewValueIsRequiredError("guestName"), errs.ErrValueIsRequired)
		require.ErrorIs(t, errs.NewStateConflictError("order"), errs.ErrStateConflict)
		require.ErrorIs(t, errs.NewScopeError("zone"), errs.ErrScopeDenied)
		require.ErrorIs(t, errs.NewConsistencyError("transfer"), errs.ErrInconsistentState)
		require.ErrorIs(t, errs.NewUnavailableError("store"), errs.ErrUnavailable)
	})
}
