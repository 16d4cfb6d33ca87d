/*
errors.go - Centralized error types for the engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  The booking package wraps these with domain context.

ERROR CATEGORIES:
  1. Input errors    - Malformed dates or documents (usually normalized away
                       before reaching the engine)
  2. Upstream errors - The booking store could not be read
  3. Config errors   - An invalid policy document at startup

Policy violations (a stay breaking house rules) are NOT errors. They are
reported as values on the stay rule result.

USAGE:
  if errors.Is(err, generic.ErrUpstreamUnavailable) {
      // 503, nothing to degrade to
  }

SEE ALSO:
  - booking/engine.go: Wraps store failures in UpstreamError
  - api/handlers.go: Maps errors to HTTP status
*/
package generic

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrUpstreamUnavailable is returned when existing stays cannot be read.
	// The engine never guesses occupancy.
	ErrUpstreamUnavailable = errors.New("booking store unavailable")

	// ErrInvalidDate is returned when a date is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidConfig is returned when a policy document fails validation.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNotFound is returned when a referenced record doesn't exist.
	ErrNotFound = errors.New("not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// UpstreamError records which store operation failed.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Op, ErrUpstreamUnavailable, e.Err)
}

func (e *UpstreamError) Unwrap() []error {
	return []error{ErrUpstreamUnavailable, e.Err}
}

// DateError provides the rejected input.
type DateError struct {
	Input string
	Err   error
}

func (e *DateError) Error() string {
	return fmt.Sprintf("invalid date %q (use YYYY-MM-DD)", e.Input)
}

func (e *DateError) Unwrap() []error {
	return []error{ErrInvalidDate, e.Err}
}

// ConfigError names the offending field of a policy document.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsUpstream returns true if the error came from the booking store.
func IsUpstream(err error) bool {
	return errors.Is(err, ErrUpstreamUnavailable)
}

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidDate)
}

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
