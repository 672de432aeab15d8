package schedule

import (
	"time"

	"github.com/google/uuid"
	"github.com/tgalloway/courtside/internal/models"
)

// The game state machine is SCHEDULED → LIVE → FINAL, derived from the Started and
// Completed booleans on models.Game. This file validates the mutations that move a
// game through that machine: create, edit, and delete. Everything here is pure — the
// service layer decides when to hit the Store.

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// GameDraft is a proposed new game. Date and Time arrive as independent fields from
// the caller and are recombined into one timestamp by CombineDateTime.
type GameDraft struct {
	Name       string
	Date       string // "YYYY-MM-DD"
	Time       string // 24h "HH:MM"
	HomeTeamID uuid.UUID
	AwayTeamID uuid.UUID
}

// GamePatch carries the fields an edit may change. Nil pointers mean "leave as is".
// Completed may only be set to true here (finalizing); a game that is already final
// rejects every patch with ErrGameLocked.
type GamePatch struct {
	Name       *string
	Date       *string // "YYYY-MM-DD"; recombined with the existing time-of-day if Time is absent
	Time       *string // "HH:MM"; recombined with the existing date if Date is absent
	HomeTeamID *uuid.UUID
	AwayTeamID *uuid.UUID
	HomeScore  *int
	AwayScore  *int
	Started    *bool
	Completed  *bool
}

// GameUpdate pairs a game id with its patch, for batch updates.
type GameUpdate struct {
	GameID uuid.UUID
	Patch  GamePatch
}

// CombineDateTime builds a single timestamp from a calendar date and a time-of-day.
// The two arrive as independent fields, so the recombination is explicit: year, month,
// and day come from date; hour and minute from clock; the location is local time.
func CombineDateTime(date, clock string) (time.Time, error) {
	d, err := time.ParseInLocation(dateLayout, date, time.Local)
	if err != nil {
		return time.Time{}, &ValidationError{Field: "date", Message: "must be in YYYY-MM-DD format"}
	}
	c, err := time.Parse(clockLayout, clock)
	if err != nil {
		return time.Time{}, &ValidationError{Field: "time", Message: "must be in HH:MM format"}
	}
	return time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), 0, 0, time.Local), nil
}

// NewGame validates a draft and builds the Game row for a (division, week) pair.
// Published is forced to true: there is no draft state reachable through this API.
func NewGame(divisionID uuid.UUID, week int, weekType models.WeekType, draft GameDraft) (*models.Game, error) {
	if draft.Name == "" {
		return nil, &ValidationError{Field: "gameName", Message: "is required"}
	}
	if draft.Date == "" {
		return nil, &ValidationError{Field: "date", Message: "is required"}
	}
	if draft.Time == "" {
		return nil, &ValidationError{Field: "time", Message: "is required"}
	}
	if draft.HomeTeamID == uuid.Nil {
		return nil, &ValidationError{Field: "homeTeam", Message: "is required"}
	}
	if draft.AwayTeamID == uuid.Nil {
		return nil, &ValidationError{Field: "awayTeam", Message: "is required"}
	}
	if draft.HomeTeamID == draft.AwayTeamID {
		return nil, &ValidationError{Field: "awayTeam", Message: "must differ from homeTeam"}
	}
	if week < 1 {
		return nil, &ValidationError{Field: "week", Message: "must be at least 1"}
	}
	switch weekType {
	case models.WeekTypeRegular, models.WeekTypeQuarterfinal, models.WeekTypeSemifinal, models.WeekTypeFinal:
	default:
		return nil, &ValidationError{Field: "weekType", Message: "is not a known week type"}
	}

	startsAt, err := CombineDateTime(draft.Date, draft.Time)
	if err != nil {
		return nil, err
	}

	return &models.Game{
		DivisionID: divisionID,
		Name:       draft.Name,
		StartsAt:   startsAt,
		HomeTeamID: draft.HomeTeamID,
		AwayTeamID: draft.AwayTeamID,
		Week:       week,
		WeekType:   weekType,
		Published:  true,
	}, nil
}

// ApplyPatch validates a patch against the game's current state and applies it in
// place. A completed game rejects any patch — even a lone time change — with
// ErrGameLocked. Published is forced back to true on every successful edit.
func ApplyPatch(g *models.Game, p GamePatch) error {
	if g.Completed {
		return ErrGameLocked
	}

	if p.Name != nil {
		if *p.Name == "" {
			return &ValidationError{Field: "gameName", Message: "must not be empty"}
		}
		g.Name = *p.Name
	}

	// Date and time are independent caller fields over one stored timestamp: a patch
	// carrying only one of them keeps the other component of the existing value.
	if p.Date != nil || p.Time != nil {
		date := g.StartsAt.Format(dateLayout)
		clock := g.StartsAt.Format(clockLayout)
		if p.Date != nil {
			date = *p.Date
		}
		if p.Time != nil {
			clock = *p.Time
		}
		startsAt, err := CombineDateTime(date, clock)
		if err != nil {
			return err
		}
		g.StartsAt = startsAt
	}

	if p.HomeTeamID != nil {
		if *p.HomeTeamID == uuid.Nil {
			return &ValidationError{Field: "homeTeam", Message: "is required"}
		}
		g.HomeTeamID = *p.HomeTeamID
	}
	if p.AwayTeamID != nil {
		if *p.AwayTeamID == uuid.Nil {
			return &ValidationError{Field: "awayTeam", Message: "is required"}
		}
		g.AwayTeamID = *p.AwayTeamID
	}
	if g.HomeTeamID == g.AwayTeamID {
		return &ValidationError{Field: "awayTeam", Message: "must differ from homeTeam"}
	}

	if p.HomeScore != nil {
		if *p.HomeScore < 0 {
			return &ValidationError{Field: "homeScore", Message: "must not be negative"}
		}
		g.HomeScore = *p.HomeScore
	}
	if p.AwayScore != nil {
		if *p.AwayScore < 0 {
			return &ValidationError{Field: "awayScore", Message: "must not be negative"}
		}
		g.AwayScore = *p.AwayScore
	}

	// Forward transitions only: SCHEDULED → LIVE → FINAL. Un-starting or un-finalizing
	// a game is not reachable through this path.
	if p.Started != nil {
		if !*p.Started && g.Started {
			return &ValidationError{Field: "started", Message: "cannot be unset once live"}
		}
		g.Started = *p.Started
	}
	if p.Completed != nil {
		if !*p.Completed {
			return &ValidationError{Field: "completed", Message: "cannot be unset"}
		}
		g.Completed = true
	}

	g.Published = true
	return nil
}

// CheckDelete enforces the delete contract: an explicit confirmed flag must accompany
// the request. Warning the operator about published or completed targets happens
// before this point, in the UI; the engine only honors the flag.
func CheckDelete(confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	return nil
}
