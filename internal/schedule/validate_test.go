package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/tgalloway/courtside/internal/models"
)

func TestCombineDateTime(t *testing.T) {
	got, err := CombineDateTime("2025-01-06", "18:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ex := time.Date(2025, 1, 6, 18, 30, 0, 0, time.Local)
	if !got.Equal(ex) {
		t.Errorf("got %v, want %v", got, ex)
	}

	if _, err := CombineDateTime("01/06/2025", "18:30"); !IsValidationError(err) {
		t.Errorf("bad date should be a validation error, got %v", err)
	}
	if _, err := CombineDateTime("2025-01-06", "6:30pm"); !IsValidationError(err) {
		t.Errorf("bad time should be a validation error, got %v", err)
	}
}

func TestNewGame(t *testing.T) {
	division := uuid.New()
	home := uuid.New()
	away := uuid.New()

	valid := GameDraft{Name: "Mavs vs Pistons", Date: "2025-01-06", Time: "18:00", HomeTeamID: home, AwayTeamID: away}

	tests := map[string]struct {
		mutate  func(*GameDraft)
		exField string
	}{
		"missing name":        {mutate: func(d *GameDraft) { d.Name = "" }, exField: "gameName"},
		"missing date":        {mutate: func(d *GameDraft) { d.Date = "" }, exField: "date"},
		"missing time":        {mutate: func(d *GameDraft) { d.Time = "" }, exField: "time"},
		"missing home team":   {mutate: func(d *GameDraft) { d.HomeTeamID = uuid.Nil }, exField: "homeTeam"},
		"missing away team":   {mutate: func(d *GameDraft) { d.AwayTeamID = uuid.Nil }, exField: "awayTeam"},
		"same team both side": {mutate: func(d *GameDraft) { d.AwayTeamID = d.HomeTeamID }, exField: "awayTeam"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			draft := valid
			tc.mutate(&draft)
			_, err := NewGame(division, 1, models.WeekTypeRegular, draft)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if ve.Field != tc.exField {
				t.Errorf("failed field = %s, want %s", ve.Field, tc.exField)
			}
		})
	}

	t.Run("valid draft builds a published game", func(t *testing.T) {
		g, err := NewGame(division, 7, models.WeekTypeRegular, valid)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !g.Published {
			t.Error("created games must be forced published")
		}
		if g.Week != 7 || g.WeekType != models.WeekTypeRegular || g.DivisionID != division {
			t.Errorf("game placement wrong: %+v", g)
		}
		ex := time.Date(2025, 1, 6, 18, 0, 0, 0, time.Local)
		if !g.StartsAt.Equal(ex) {
			t.Errorf("StartsAt = %v, want %v", g.StartsAt, ex)
		}
	})

	t.Run("bad week and week type", func(t *testing.T) {
		if _, err := NewGame(division, 0, models.WeekTypeRegular, valid); !IsValidationError(err) {
			t.Errorf("week 0 should fail, got %v", err)
		}
		if _, err := NewGame(division, 1, models.WeekType("preseason"), valid); !IsValidationError(err) {
			t.Errorf("unknown week type should fail, got %v", err)
		}
	})
}

func editableGame() models.Game {
	return models.Game{
		ID:         uuid.New(),
		Name:       "Mavs vs Pistons",
		StartsAt:   time.Date(2025, 1, 6, 18, 0, 0, 0, time.Local),
		HomeTeamID: uuid.New(),
		AwayTeamID: uuid.New(),
		Week:       1,
		WeekType:   models.WeekTypeRegular,
		Published:  true,
	}
}

func TestApplyPatchLocked(t *testing.T) {
	// A completed game rejects every patch, including one that only moves the time.
	newTime := "19:00"
	newName := "Renamed"
	score := 21

	patches := map[string]GamePatch{
		"time only":  {Time: &newTime},
		"name only":  {Name: &newName},
		"score only": {HomeScore: &score},
	}

	for name, patch := range patches {
		t.Run(name, func(t *testing.T) {
			g := editableGame()
			g.Completed = true
			if err := ApplyPatch(&g, patch); !errors.Is(err, ErrGameLocked) {
				t.Errorf("expected ErrGameLocked, got %v", err)
			}
		})
	}
}

func TestApplyPatchRecombinesDateAndTime(t *testing.T) {
	t.Run("time only keeps the date", func(t *testing.T) {
		g := editableGame()
		newTime := "20:15"
		if err := ApplyPatch(&g, GamePatch{Time: &newTime}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		ex := time.Date(2025, 1, 6, 20, 15, 0, 0, time.Local)
		if !g.StartsAt.Equal(ex) {
			t.Errorf("StartsAt = %v, want %v", g.StartsAt, ex)
		}
	})

	t.Run("date only keeps the time", func(t *testing.T) {
		g := editableGame()
		newDate := "2025-02-10"
		if err := ApplyPatch(&g, GamePatch{Date: &newDate}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		ex := time.Date(2025, 2, 10, 18, 0, 0, 0, time.Local)
		if !g.StartsAt.Equal(ex) {
			t.Errorf("StartsAt = %v, want %v", g.StartsAt, ex)
		}
	})
}

func TestApplyPatchRules(t *testing.T) {
	t.Run("published forced true on every edit", func(t *testing.T) {
		g := editableGame()
		g.Published = false
		newName := "Rescheduled"
		if err := ApplyPatch(&g, GamePatch{Name: &newName}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !g.Published {
			t.Error("update must force published back to true")
		}
	})

	t.Run("teams must stay distinct", func(t *testing.T) {
		g := editableGame()
		same := g.HomeTeamID
		if err := ApplyPatch(&g, GamePatch{AwayTeamID: &same}); !IsValidationError(err) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("negative scores rejected", func(t *testing.T) {
		g := editableGame()
		bad := -3
		if err := ApplyPatch(&g, GamePatch{HomeScore: &bad}); !IsValidationError(err) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("forward transitions only", func(t *testing.T) {
		g := editableGame()
		g.Started = true
		f := false
		if err := ApplyPatch(&g, GamePatch{Started: &f}); !IsValidationError(err) {
			t.Errorf("un-starting a live game should fail, got %v", err)
		}
		if err := ApplyPatch(&g, GamePatch{Completed: &f}); !IsValidationError(err) {
			t.Errorf("completed=false should fail, got %v", err)
		}

		done := true
		if err := ApplyPatch(&g, GamePatch{Completed: &done}); err != nil {
			t.Fatalf("finalizing a live game should work, got %v", err)
		}
		if g.State() != models.GameStateFinal {
			t.Errorf("state = %s, want final", g.State())
		}
	})
}

func TestCheckDelete(t *testing.T) {
	if err := CheckDelete(false); !errors.Is(err, ErrConfirmationRequired) {
		t.Errorf("expected ErrConfirmationRequired, got %v", err)
	}
	if err := CheckDelete(true); err != nil {
		t.Errorf("confirmed delete should pass, got %v", err)
	}
}
