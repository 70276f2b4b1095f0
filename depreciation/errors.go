/*
errors.go - Centralized error types for the depreciation engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Callers (register, api) classify errors with the helpers below instead
  of matching strings.

ERROR CATEGORIES:
  1. Validation errors - malformed or missing calculation input,
     wrong asset status for execution
  2. Not-found errors  - asset id does not resolve
  3. Arithmetic errors - undefined rate derivation (reported, never a panic)

USAGE:
  if depreciation.IsClientError(err) {
      // 4xx-equivalent, no state change happened
  }
*/
package depreciation

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidInput is the root of all validation failures.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAssetNotFound is returned when an asset id does not resolve.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrInvalidStatus is returned when execution is attempted on an asset
	// whose status does not permit it.
	ErrInvalidStatus = errors.New("asset status does not permit depreciation")

	// ErrArithmetic is returned when a rate derivation is undefined for the
	// given inputs (e.g. zero cost in the geometric rate). Reported as an
	// internal error, never allowed to crash the process.
	ErrArithmetic = errors.New("arithmetic error")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InputError reports a field-level validation failure.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *InputError) Unwrap() error { return ErrInvalidInput }

// StatusError reports an execution attempt against the wrong asset status.
type StatusError struct {
	Current Status
}

func (e *StatusError) Error() string {
	return fmt.Sprintf(`asset status must be "Ready to Use", current status: %s`, e.Current)
}

func (e *StatusError) Unwrap() error { return ErrInvalidStatus }

// ArithmeticError reports an undefined calculation.
type ArithmeticError struct {
	Op     string
	Detail string
}

func (e *ArithmeticError) Error() string {
	return fmt.Sprintf("arithmetic error in %s: %s", e.Op, e.Detail)
}

func (e *ArithmeticError) Unwrap() error { return ErrArithmetic }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrInvalidStatus)
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrAssetNotFound)
}
