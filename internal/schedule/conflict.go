package schedule

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/tgalloway/courtside/internal/models"
)

// ConflictResult is the outcome of a facility double-booking check. HasConflict is
// informational, never an error: callers surface it as a warning string and the save
// proceeds regardless.
type ConflictResult struct {
	HasConflict           bool
	ConflictingDivision   string    // Display name of the division already holding the slot
	ConflictingDivisionID uuid.UUID // Zero when HasConflict is false
}

// Warning renders the result as the advisory message shown to operators.
// Returns "" when there is no conflict.
func (r ConflictResult) Warning() string {
	if !r.HasConflict {
		return ""
	}
	return fmt.Sprintf("this time slot overlaps with %s at the same facility and day", r.ConflictingDivision)
}

// CheckConflict scans the given divisions for a booking that collides with the proposed
// (location, day, [start, end)) slot. Two bookings conflict iff they share the same
// location and day and their time ranges overlap as half-open intervals — a booking
// ending exactly when another starts is NOT a conflict.
//
// exclude is the id of the division being updated, so its own current record does not
// report a self-conflict; pass uuid.Nil when creating a new division.
func CheckConflict(divisions []models.Division, location, day, start, end string, exclude uuid.UUID) (ConflictResult, error) {
	s, err := parseClock(start)
	if err != nil {
		return ConflictResult{}, &ValidationError{Field: "startTime", Message: err.Error()}
	}
	e, err := parseClock(end)
	if err != nil {
		return ConflictResult{}, &ValidationError{Field: "endTime", Message: err.Error()}
	}
	if e <= s {
		return ConflictResult{}, &ValidationError{Field: "endTime", Message: "must be after startTime"}
	}

	for _, d := range divisions {
		if d.ID == exclude {
			continue
		}
		if !strings.EqualFold(d.Location, location) || !strings.EqualFold(d.Day, day) {
			continue
		}
		ds, err := parseClock(d.StartTime)
		if err != nil {
			// A stored booking with an unparseable time can't be compared; skip it
			// rather than failing the whole advisory check.
			continue
		}
		de, err := parseClock(d.EndTime)
		if err != nil {
			continue
		}
		if overlaps(s, e, ds, de) {
			return ConflictResult{
				HasConflict:           true,
				ConflictingDivision:   d.Name,
				ConflictingDivisionID: d.ID,
			}, nil
		}
	}
	return ConflictResult{}, nil
}

// overlaps reports whether the half-open intervals [s1,e1) and [s2,e2) intersect.
func overlaps(s1, e1, s2, e2 int) bool {
	return s1 < e2 && s2 < e1
}

// parseClock converts a 24h "HH:MM" string to minutes since midnight.
func parseClock(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q, want HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return h*60 + m, nil
}
