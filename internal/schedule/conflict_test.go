package schedule

import (
	"testing"

	"github.com/google/uuid"
	"github.com/tgalloway/courtside/internal/models"
)

func TestCheckConflict(t *testing.T) {
	mondayID := uuid.New()
	monday := models.Division{
		ID:        mondayID,
		Name:      "Monday Rec",
		Location:  "Eastside Fieldhouse",
		Day:       "Monday",
		StartTime: "18:00",
		EndTime:   "20:00",
	}
	divisions := []models.Division{monday}

	tests := map[string]struct {
		location   string
		day        string
		start, end string
		exclude    uuid.UUID
		exConflict bool
	}{
		"overlapping slot conflicts": {
			location: "Eastside Fieldhouse", day: "Monday",
			start: "19:00", end: "21:00", exConflict: true,
		},
		"proposed slot containing the booking conflicts": {
			location: "Eastside Fieldhouse", day: "Monday",
			start: "17:00", end: "21:00", exConflict: true,
		},
		"back to back is not a conflict": {
			// Half-open intervals: ending exactly when the other starts is fine.
			location: "Eastside Fieldhouse", day: "Monday",
			start: "16:00", end: "18:00", exConflict: false,
		},
		"starting at the booking's end is not a conflict": {
			location: "Eastside Fieldhouse", day: "Monday",
			start: "20:00", end: "22:00", exConflict: false,
		},
		"different day": {
			location: "Eastside Fieldhouse", day: "Tuesday",
			start: "18:00", end: "20:00", exConflict: false,
		},
		"different facility": {
			location: "Westview Gym", day: "Monday",
			start: "18:00", end: "20:00", exConflict: false,
		},
		"updating the division excludes its own booking": {
			location: "Eastside Fieldhouse", day: "Monday",
			start: "18:00", end: "20:00", exclude: mondayID, exConflict: false,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := CheckConflict(divisions, tc.location, tc.day, tc.start, tc.end, tc.exclude)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.HasConflict != tc.exConflict {
				t.Errorf("HasConflict = %v, want %v", got.HasConflict, tc.exConflict)
			}
			if tc.exConflict && got.ConflictingDivision != "Monday Rec" {
				t.Errorf("conflicting division = %q, want Monday Rec", got.ConflictingDivision)
			}
			if !tc.exConflict && got.Warning() != "" {
				t.Errorf("no conflict should carry no warning, got %q", got.Warning())
			}
		})
	}
}

func TestCheckConflictSymmetric(t *testing.T) {
	a := models.Division{ID: uuid.New(), Name: "A", Location: "Gym", Day: "Friday", StartTime: "17:00", EndTime: "19:00"}
	b := models.Division{ID: uuid.New(), Name: "B", Location: "Gym", Day: "Friday", StartTime: "18:30", EndTime: "20:30"}

	ab, err := CheckConflict([]models.Division{a}, b.Location, b.Day, b.StartTime, b.EndTime, b.ID)
	if err != nil {
		t.Fatal(err)
	}
	ba, err := CheckConflict([]models.Division{b}, a.Location, a.Day, a.StartTime, a.EndTime, a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !ab.HasConflict || !ba.HasConflict {
		t.Errorf("conflict must be symmetric, got a-vs-b=%v b-vs-a=%v", ab.HasConflict, ba.HasConflict)
	}
}

func TestCheckConflictBadTimes(t *testing.T) {
	tests := map[string]struct {
		start, end string
	}{
		"not a clock":          {start: "6pm", end: "20:00"},
		"minute out of range":  {start: "18:75", end: "20:00"},
		"hour out of range":    {start: "24:00", end: "25:00"},
		"end not after start":  {start: "20:00", end: "20:00"},
		"end before start":     {start: "20:00", end: "18:00"},
		"missing minute field": {start: "18", end: "20:00"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := CheckConflict(nil, "Gym", "Monday", tc.start, tc.end, uuid.Nil)
			if !IsValidationError(err) {
				t.Errorf("expected a validation error, got %v", err)
			}
		})
	}
}
