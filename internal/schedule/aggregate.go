package schedule

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/tgalloway/courtside/internal/models"
)

// Read models for the dashboards. Everything here is derived on every call from a
// fresh snapshot of the division's weeks and games — nothing is cached, so the views
// can never drift from the stored games. Under concurrent writes a view may be
// slightly stale by the time it renders; both views are advisory, so that is fine.

// WeekView is one week of the single-division schedule, with its games embedded.
type WeekView struct {
	Week
	Games      []models.Game
	IsComplete bool // ≥1 game and all of them final
	IsCurrent  bool
	IsPast     bool // The week's calendar date is behind the clock
}

// DivisionSchedule is the full read model for one division's schedule page.
// TeamLoad and DoubleBooked describe the current week only.
type DivisionSchedule struct {
	Division     models.Division
	Teams        []models.Team
	Weeks        []WeekView
	CurrentWeek  int
	TotalWeeks   int
	TeamLoad     map[uuid.UUID]int
	DoubleBooked []uuid.UUID
}

// DivisionProgress summarizes one division on the multi-division overview.
type DivisionProgress struct {
	Division       models.Division
	ScheduledWeeks int    // Weeks with at least one game
	TotalWeeks     int
	Status         string // "not-started", "in-progress", or "complete"
	CurrentWeek    int
	NextGame       *models.Game // Earliest unplayed game by date/time; nil when none remain
	Underway       bool         // The season start date is behind the clock
}

// LocationGroup holds the divisions booked at one facility.
type LocationGroup struct {
	Location  string
	Divisions []DivisionProgress
}

// OverviewStats aggregates across every division on the overview.
type OverviewStats struct {
	TotalDivisions int
	NeedsAttention int // Divisions still in progress
	FullyScheduled int
	TotalTeams     int
}

// Overview is the multi-division read model, grouped by facility.
type Overview struct {
	Locations []LocationGroup
	Stats     OverviewStats
}

// Progress statuses for the overview.
const (
	StatusNotStarted = "not-started"
	StatusInProgress = "in-progress"
	StatusComplete   = "complete"
)

// GetDivisionSchedule builds the single-division schedule view: the planned week
// sequence populated with games, the current week, and team-load counts for the
// current week.
func (s *Service) GetDivisionSchedule(ctx context.Context, divisionID uuid.UUID) (*DivisionSchedule, error) {
	division, err := s.store.Division(ctx, divisionID)
	if err != nil {
		return nil, fmt.Errorf("loading division: %w", err)
	}
	teams, err := s.store.TeamsByDivision(ctx, divisionID)
	if err != nil {
		return nil, fmt.Errorf("loading teams: %w", err)
	}
	games, err := s.store.GamesByDivision(ctx, divisionID)
	if err != nil {
		return nil, fmt.Errorf("loading games: %w", err)
	}

	weeks := PlanWeeks(s.policy, division.StartDate, division.TeamCount)
	byWeek := GroupGamesByWeek(games)
	current := CurrentWeek(weeks, byWeek)
	now := s.clock.Now()

	views := make([]WeekView, 0, len(weeks))
	for _, w := range weeks {
		weekGames := byWeek[w.Number]
		views = append(views, WeekView{
			Week:       w,
			Games:      weekGames,
			IsComplete: WeekComplete(weekGames),
			IsCurrent:  w.Number == current,
			IsPast:     w.Date.Before(now),
		})
	}

	load := CountGamesPerTeam(byWeek[current])
	return &DivisionSchedule{
		Division:     *division,
		Teams:        teams,
		Weeks:        views,
		CurrentWeek:  current,
		TotalWeeks:   len(weeks),
		TeamLoad:     load,
		DoubleBooked: DoubleBookedTeams(load),
	}, nil
}

// GetScheduleOverview builds the multi-division overview, grouped by facility and
// optionally filtered to one location. Per-division progress is derived from how many
// planned weeks already have games.
func (s *Service) GetScheduleOverview(ctx context.Context, location string) (*Overview, error) {
	divisions, err := s.store.Divisions(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("loading divisions: %w", err)
	}

	now := s.clock.Now()
	groups := make(map[string][]DivisionProgress)
	stats := OverviewStats{TotalDivisions: len(divisions)}

	for _, d := range divisions {
		games, err := s.store.GamesByDivision(ctx, d.ID)
		if err != nil {
			return nil, fmt.Errorf("loading games for %s: %w", d.Name, err)
		}

		weeks := PlanWeeks(s.policy, d.StartDate, d.TeamCount)
		byWeek := GroupGamesByWeek(games)

		scheduled := 0
		for _, w := range weeks {
			if len(byWeek[w.Number]) > 0 {
				scheduled++
			}
		}

		progress := DivisionProgress{
			Division:       d,
			ScheduledWeeks: scheduled,
			TotalWeeks:     len(weeks),
			Status:         progressStatus(scheduled, len(weeks)),
			CurrentWeek:    CurrentWeek(weeks, byWeek),
			NextGame:       nextGame(games),
			Underway:       d.StartDate.Before(now),
		}
		groups[d.Location] = append(groups[d.Location], progress)

		switch progress.Status {
		case StatusInProgress:
			stats.NeedsAttention++
		case StatusComplete:
			stats.FullyScheduled++
		}
		stats.TotalTeams += d.TeamCount
	}

	locations := make([]LocationGroup, 0, len(groups))
	for loc, divs := range groups {
		locations = append(locations, LocationGroup{Location: loc, Divisions: divs})
	}
	sort.Slice(locations, func(i, j int) bool { return locations[i].Location < locations[j].Location })

	return &Overview{Locations: locations, Stats: stats}, nil
}

// progressStatus maps scheduled-vs-total week counts onto the overview status:
// nothing scheduled ⇒ not-started, everything ⇒ complete, anything between ⇒ in-progress.
func progressStatus(scheduled, total int) string {
	switch {
	case scheduled == 0:
		return StatusNotStarted
	case scheduled < total:
		return StatusInProgress
	default:
		return StatusComplete
	}
}

// nextGame returns the earliest game that is not yet final, by start time with the
// week number as a tiebreaker. Returns nil when every game is final or none exist.
func nextGame(games []models.Game) *models.Game {
	var next *models.Game
	for i := range games {
		g := &games[i]
		if g.Completed {
			continue
		}
		if next == nil ||
			g.StartsAt.Before(next.StartsAt) ||
			(g.StartsAt.Equal(next.StartsAt) && g.Week < next.Week) {
			next = g
		}
	}
	if next == nil {
		return nil
	}
	// Copy so callers can't mutate the snapshot slice through the pointer.
	out := *next
	return &out
}
