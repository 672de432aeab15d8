// Package schedule implements the division schedule and conflict-resolution engine:
// week-sequence planning, facility double-booking detection, game mutation validation,
// per-team load counting, and the read models the dashboards consume.
//
// The package is deliberately persistence-agnostic. All database access goes through
// the Store interface (store.go); season state (current week, completion, progress) is
// recomputed on every read from a snapshot of weeks and games rather than cached.
package schedule

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain rule violations. Callers use errors.Is to map these to
// HTTP statuses; they are rule violations, not system failures.
var (
	// ErrGameLocked is returned when any field of a completed game is mutated
	// through the general edit path. Completed games are immutable here; the
	// dedicated result-entry flow is a separate subsystem.
	ErrGameLocked = errors.New("game is completed and locked")

	// ErrConfirmationRequired is returned by delete when the request did not carry
	// an explicit confirmed flag. The caller is expected to have already warned the
	// operator; this engine only accepts or rejects the flag.
	ErrConfirmationRequired = errors.New("delete requires explicit confirmation")

	// ErrNotFound is returned when a division, team, or game id does not resolve.
	ErrNotFound = errors.New("not found")
)

// ValidationError reports a missing or malformed field on a proposed mutation.
// It is rejected before any write happens.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// BatchResult is the outcome of a non-atomic batch mutation. Each item in a batch is
// an independent unit of work: a failure on one item never rolls back the others.
// Partial success is a normal, structured result — not an exception — so callers can
// surface exactly which named games failed.
type BatchResult struct {
	Succeeded int      // Number of games created or updated
	Failures  []string // Display names of the games that failed
}

// PartialFailure reports whether at least one item in the batch failed.
func (r *BatchResult) PartialFailure() bool {
	return len(r.Failures) > 0
}
