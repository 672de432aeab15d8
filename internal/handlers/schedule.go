// This file handles the schedule read endpoints: the single-division schedule view,
// per-week team game counts, the multi-division overview, and the advisory conflict
// probe used by the division form while the operator is typing.
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/tgalloway/courtside/internal/schedule"
)

// WeekResponse is one week of the schedule view, games embedded.
type WeekResponse struct {
	WeekNumber int            `json:"week_number"`
	WeekType   string         `json:"week_type"`
	Label      string         `json:"label"`
	Date       string         `json:"date"` // "YYYY-MM-DD"
	IsRegular  bool           `json:"is_regular"`
	IsPlayoff  bool           `json:"is_playoff"`
	IsComplete bool           `json:"is_complete"`
	IsCurrent  bool           `json:"is_current"`
	IsPast     bool           `json:"is_past"`
	Games      []GameResponse `json:"games"`
}

// ScheduleResponse is the full single-division schedule view.
type ScheduleResponse struct {
	Division     DivisionResponse `json:"division"`
	Teams        []TeamResponse   `json:"teams"`
	Weeks        []WeekResponse   `json:"weeks"`
	CurrentWeek  int              `json:"current_week"`
	TotalWeeks   int              `json:"total_weeks"`
	TeamLoad     map[string]int   `json:"team_load"`     // Current week: team id -> games
	DoubleBooked []string         `json:"double_booked"` // Teams with >1 game in the current week; advisory
}

// GetDivisionSchedule returns a handler for GET /api/v1/divisions/:id/schedule.
func GetDivisionSchedule(svc *schedule.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid division id",
			})
		}

		view, err := svc.GetDivisionSchedule(c.Context(), id)
		if err != nil {
			return domainError(c, err)
		}

		weeks := make([]WeekResponse, 0, len(view.Weeks))
		for _, w := range view.Weeks {
			weeks = append(weeks, WeekResponse{
				WeekNumber: w.Number,
				WeekType:   string(w.Type),
				Label:      w.Label,
				Date:       w.Date.Format("2006-01-02"),
				IsRegular:  w.IsRegular(),
				IsPlayoff:  w.IsPlayoff(),
				IsComplete: w.IsComplete,
				IsCurrent:  w.IsCurrent,
				IsPast:     w.IsPast,
				Games:      gameResponses(w.Games),
			})
		}

		load := make(map[string]int, len(view.TeamLoad))
		for id, n := range view.TeamLoad {
			load[id.String()] = n
		}
		doubleBooked := make([]string, 0, len(view.DoubleBooked))
		for _, id := range view.DoubleBooked {
			doubleBooked = append(doubleBooked, id.String())
		}

		return c.JSON(ScheduleResponse{
			Division:     divisionResponse(view.Division),
			Teams:        teamResponses(view.Teams),
			Weeks:        weeks,
			CurrentWeek:  view.CurrentWeek,
			TotalWeeks:   view.TotalWeeks,
			TeamLoad:     load,
			DoubleBooked: doubleBooked,
		})
	}
}

// GetTeamCounts returns a handler for GET /api/v1/divisions/:id/weeks/:week/team-counts.
// Backs the "games this week" widget; a count above 1 is the UI's cue to flag a
// double-scheduled team.
func GetTeamCounts(svc *schedule.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid division id",
			})
		}
		week, err := c.ParamsInt("week")
		if err != nil || week < 1 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid week number",
			})
		}

		counts, err := svc.GetTeamCountsForWeek(c.Context(), id, week)
		if err != nil {
			return domainError(c, err)
		}

		response := make(map[string]int, len(counts))
		for teamID, n := range counts {
			response[teamID.String()] = n
		}
		return c.JSON(fiber.Map{"week": week, "counts": response})
	}
}

// DivisionProgressResponse is one division's row on the overview.
type DivisionProgressResponse struct {
	Division       DivisionResponse `json:"division"`
	ScheduledWeeks int              `json:"scheduled_weeks"`
	TotalWeeks     int              `json:"total_weeks"`
	Status         string           `json:"status"` // "not-started", "in-progress", "complete"
	CurrentWeek    int              `json:"current_week"`
	NextGame       *GameResponse    `json:"next_game"` // Earliest unplayed game; null when none remain
	Underway       bool             `json:"underway"`
}

// OverviewResponse is the multi-division overview grouped by facility.
type OverviewResponse struct {
	Locations []LocationGroupResponse `json:"locations"`
	Stats     OverviewStatsResponse   `json:"stats"`
}

type LocationGroupResponse struct {
	Location  string                     `json:"location"`
	Divisions []DivisionProgressResponse `json:"divisions"`
}

type OverviewStatsResponse struct {
	TotalDivisions int `json:"total_divisions"`
	NeedsAttention int `json:"needs_attention"`
	FullyScheduled int `json:"fully_scheduled"`
	TotalTeams     int `json:"total_teams"`
}

// GetScheduleOverview returns a handler for GET /api/v1/schedule/overview.
// Optional query param: ?location=<facility> to limit the overview to one facility.
func GetScheduleOverview(svc *schedule.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		overview, err := svc.GetScheduleOverview(c.Context(), c.Query("location"))
		if err != nil {
			return domainError(c, err)
		}

		locations := make([]LocationGroupResponse, 0, len(overview.Locations))
		for _, group := range overview.Locations {
			divisions := make([]DivisionProgressResponse, 0, len(group.Divisions))
			for _, p := range group.Divisions {
				row := DivisionProgressResponse{
					Division:       divisionResponse(p.Division),
					ScheduledWeeks: p.ScheduledWeeks,
					TotalWeeks:     p.TotalWeeks,
					Status:         p.Status,
					CurrentWeek:    p.CurrentWeek,
					Underway:       p.Underway,
				}
				if p.NextGame != nil {
					next := gameResponse(*p.NextGame)
					row.NextGame = &next
				}
				divisions = append(divisions, row)
			}
			locations = append(locations, LocationGroupResponse{
				Location:  group.Location,
				Divisions: divisions,
			})
		}

		return c.JSON(OverviewResponse{
			Locations: locations,
			Stats: OverviewStatsResponse{
				TotalDivisions: overview.Stats.TotalDivisions,
				NeedsAttention: overview.Stats.NeedsAttention,
				FullyScheduled: overview.Stats.FullyScheduled,
				TotalTeams:     overview.Stats.TotalTeams,
			},
		})
	}
}

// CheckConflict returns a handler for GET /api/v1/schedule/conflicts.
// Query params: location, day, start, end, and optionally exclude (division id).
// The division form polls this while the operator edits the time slot; the result
// is informational and never blocks a save.
func CheckConflict(svc *schedule.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		exclude := uuid.Nil
		if raw := c.Query("exclude"); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "invalid exclude id",
				})
			}
			exclude = id
		}

		result, err := svc.CheckLocationConflict(
			c.Context(),
			c.Query("location"),
			c.Query("day"),
			c.Query("start"),
			c.Query("end"),
			exclude,
		)
		if err != nil {
			return domainError(c, err)
		}

		return c.JSON(fiber.Map{
			"has_conflict":         result.HasConflict,
			"conflicting_division": result.ConflictingDivision,
			"warning":              result.Warning(),
		})
	}
}
