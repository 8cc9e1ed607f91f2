// Package errs provides standardized error types for the fulfillment engine.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// Error families:
//   - ValueIsRequiredError / ValueIsInvalidError / ValueIsOutOfRangeError: malformed
//     or out-of-range input, always surfaced before any write
//   - ObjectNotFoundError: the targeted entity does not exist (or is out of tenant scope)
//   - StateConflictError: the entity is not in a status that permits the transition;
//     recoverable by re-reading current state
//   - ScopeError: the caller lacks zone/role scope for the target; always fail-closed
//   - ConsistencyError: a multi-row operation was observed partially applied and needs
//     operator remediation or compensation
//   - UnavailableError: the store or notification channel did not answer in time;
//     retryable, but the caller must re-query before retrying non-idempotent writes
//
// Each error type follows one pattern: a sentinel error variable, a struct with the
// error details, constructors with and without cause, an Error() method, and an
// Unwrap() method so errors.Is can classify any wrapped error against the sentinel.
package errs
