package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for classification via errors.Is.
var (
	ErrValueIsRequired   = errors.New("value is required")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrObjectNotFound    = errors.New("object not found")
	ErrStateConflict     = errors.New("state conflict")
	ErrScopeDenied       = errors.New("scope denied")
	ErrInconsistentState = errors.New("inconsistent state")
	ErrUnavailable       = errors.New("dependency unavailable")
)

// sanitize flattens multi-line values so error messages stay single-line in logs.
func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}

// ValueIsRequiredError indicates a required value was not provided.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError for the named parameter.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping an underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError indicates a provided value failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError for the named parameter.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping an underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError indicates a value lies outside its permitted bounds.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError creates a ValueIsOutOfRangeError describing the violated bounds.
func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

// NewValueIsOutOfRangeErrorWithCause creates a ValueIsOutOfRangeError wrapping an underlying cause.
func NewValueIsOutOfRangeErrorWithCause(paramName string, value, minValue, maxValue any, cause error) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, e.Min, e.Max)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %s)", msg, e.Cause)
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ObjectNotFoundError indicates the referenced object does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError for the given identifier.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping an underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %v (cause: %s)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// StateConflictError indicates the target entity is not in a status that permits
// the requested transition. The caller should refresh state and re-evaluate; the
// operation had no effect.
type StateConflictError struct {
	ParamName string
	Cause     error
}

// NewStateConflictError creates a StateConflictError for the named entity or transition.
func NewStateConflictError(paramName string) *StateConflictError {
	return &StateConflictError{ParamName: paramName}
}

// NewStateConflictErrorWithCause creates a StateConflictError wrapping an underlying cause.
func NewStateConflictErrorWithCause(paramName string, cause error) *StateConflictError {
	return &StateConflictError{ParamName: paramName, Cause: cause}
}

func (e *StateConflictError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrStateConflict, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrStateConflict, e.ParamName)
}

func (e *StateConflictError) Unwrap() error {
	return ErrStateConflict
}

// ScopeError indicates the caller has no zone/role scope over the target entity.
// Handlers must treat this as fail-closed: deny or return empty, never leak data.
type ScopeError struct {
	ParamName string
	Cause     error
}

// NewScopeError creates a ScopeError for the named resource.
func NewScopeError(paramName string) *ScopeError {
	return &ScopeError{ParamName: paramName}
}

// NewScopeErrorWithCause creates a ScopeError wrapping an underlying cause.
func NewScopeErrorWithCause(paramName string, cause error) *ScopeError {
	return &ScopeError{ParamName: paramName, Cause: cause}
}

func (e *ScopeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrScopeDenied, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrScopeDenied, e.ParamName)
}

func (e *ScopeError) Unwrap() error {
	return ErrScopeDenied
}

// ConsistencyError indicates a multi-row operation was observed partially applied,
// for example a zone transfer whose decrement landed without the matching increment.
// It is not locally recoverable and must be escalated for compensation.
type ConsistencyError struct {
	ParamName string
	Cause     error
}

// NewConsistencyError creates a ConsistencyError for the named operation.
func NewConsistencyError(paramName string) *ConsistencyError {
	return &ConsistencyError{ParamName: paramName}
}

// NewConsistencyErrorWithCause creates a ConsistencyError wrapping an underlying cause.
func NewConsistencyErrorWithCause(paramName string, cause error) *ConsistencyError {
	return &ConsistencyError{ParamName: paramName, Cause: cause}
}

func (e *ConsistencyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrInconsistentState, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrInconsistentState, e.ParamName)
}

func (e *ConsistencyError) Unwrap() error {
	return ErrInconsistentState
}

// UnavailableError indicates the durable store or notification channel did not
// respond within its bound. The outcome of the attempted write is unknown.
type UnavailableError struct {
	ParamName string
	Cause     error
}

// NewUnavailableError creates an UnavailableError for the named dependency.
func NewUnavailableError(paramName string) *UnavailableError {
	return &UnavailableError{ParamName: paramName}
}

// NewUnavailableErrorWithCause creates an UnavailableError wrapping an underlying cause.
func NewUnavailableErrorWithCause(paramName string, cause error) *UnavailableError {
	return &UnavailableError{ParamName: paramName, Cause: cause}
}

func (e *UnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrUnavailable, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrUnavailable, e.ParamName)
}

func (e *UnavailableError) Unwrap() error {
	return ErrUnavailable
}
