package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tgalloway/courtside/internal/models"
	"github.com/tgalloway/courtside/internal/schedule"
)

// respond.go — response structs shared across handlers, plus error-to-status mapping.
//
// The wire format keeps the legacy field names the clients already parse. The most
// important translation: the JSON field "status" is the completed flag (true means
// the game is final), while the honest model field is Game.Completed. The derived
// three-state lifecycle is exposed alongside it as "state".

// GameResponse is what we send back for a single game.
type GameResponse struct {
	ID         string `json:"id"`
	DivisionID string `json:"division_id"`
	GameName   string `json:"game_name"`
	Date       string `json:"date"` // "YYYY-MM-DD", split back out of the stored timestamp
	Time       string `json:"time"` // 24h "HH:MM"
	HomeTeamID string `json:"home_team_id"`
	AwayTeamID string `json:"away_team_id"`
	HomeScore  int    `json:"home_score"`
	AwayScore  int    `json:"away_score"`
	Week       int    `json:"week"`
	WeekType   string `json:"week_type"`
	Published  bool   `json:"published"`
	Started    bool   `json:"started"`
	Status     bool   `json:"status"` // Legacy name: true = completed/final
	State      string `json:"state"`  // "scheduled", "live", or "final"
}

func gameResponse(g models.Game) GameResponse {
	return GameResponse{
		ID:         g.ID.String(),
		DivisionID: g.DivisionID.String(),
		GameName:   g.Name,
		Date:       g.StartsAt.Format("2006-01-02"),
		Time:       g.StartsAt.Format("15:04"),
		HomeTeamID: g.HomeTeamID.String(),
		AwayTeamID: g.AwayTeamID.String(),
		HomeScore:  g.HomeScore,
		AwayScore:  g.AwayScore,
		Week:       g.Week,
		WeekType:   string(g.WeekType),
		Published:  g.Published,
		Started:    g.Started,
		Status:     g.Completed,
		State:      string(g.State()),
	}
}

func gameResponses(games []models.Game) []GameResponse {
	out := make([]GameResponse, 0, len(games))
	for _, g := range games {
		out = append(out, gameResponse(g))
	}
	return out
}

// DivisionResponse is what we send back for a division, including the derived
// lifecycle state.
type DivisionResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Location  string `json:"location"`
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	StartDate string `json:"start_date"` // "YYYY-MM-DD"
	Active    bool   `json:"active"`
	Register  bool   `json:"register"`
	TeamCount int    `json:"team_count"`
	Lifecycle string `json:"lifecycle"` // "finished", "registration-only", "active-closed", "active-open"
	CreatedAt string `json:"created_at"`
}

func divisionResponse(d models.Division) DivisionResponse {
	return DivisionResponse{
		ID:        d.ID.String(),
		Name:      d.Name,
		Location:  d.Location,
		Day:       d.Day,
		StartTime: d.StartTime,
		EndTime:   d.EndTime,
		StartDate: d.StartDate.Format("2006-01-02"),
		Active:    d.Active,
		Register:  d.Register,
		TeamCount: d.TeamCount,
		Lifecycle: d.Lifecycle(),
		CreatedAt: d.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// TeamResponse is what we send back for a team.
type TeamResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	Code      string `json:"code"`
}

func teamResponses(teams []models.Team) []TeamResponse {
	out := make([]TeamResponse, 0, len(teams))
	for _, t := range teams {
		out = append(out, TeamResponse{
			ID:        t.ID.String(),
			Name:      t.Name,
			ShortName: t.ShortName,
			Code:      t.Code,
		})
	}
	return out
}

// domainError writes the JSON error response for an engine error, mapping domain
// rule violations to client statuses and everything else to 500.
func domainError(c *fiber.Ctx, err error) error {
	switch {
	case schedule.IsValidationError(err):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, schedule.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, schedule.ErrGameLocked):
		// A rule violation, not a system failure: the game is final and immutable
		// through this path.
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, schedule.ErrConfirmationRequired):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
