// This file handles the game mutation routes: batch create for a (division, week)
// pair, single and batch updates, delete-with-confirmation, and the live score
// endpoint that feeds the websocket hub.
//
// Batch semantics are intentionally non-atomic: every game is validated and written
// independently, and a failure on one never rolls back the others. The responses
// carry the success count and the display names of the games that failed, so the
// operator can fix and resubmit just those.
package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/tgalloway/courtside/internal/models"
	"github.com/tgalloway/courtside/internal/schedule"
	"github.com/tgalloway/courtside/internal/websocket"
)

// GameDraftRequest is one proposed game in a batch create. Date and time arrive as
// separate fields; the engine recombines them into one timestamp.
type GameDraftRequest struct {
	GameName   string `json:"game_name"`
	Date       string `json:"date"` // "YYYY-MM-DD"
	Time       string `json:"time"` // 24h "HH:MM"
	HomeTeamID string `json:"home_team_id"`
	AwayTeamID string `json:"away_team_id"`
}

func (r GameDraftRequest) toDraft() schedule.GameDraft {
	// Bad ids become uuid.Nil and fail validation inside the engine, so one
	// malformed draft can't reject the whole batch.
	home, _ := uuid.Parse(r.HomeTeamID)
	away, _ := uuid.Parse(r.AwayTeamID)
	return schedule.GameDraft{
		Name:       r.GameName,
		Date:       r.Date,
		Time:       r.Time,
		HomeTeamID: home,
		AwayTeamID: away,
	}
}

// CreateGamesRequest is the JSON body for POST /api/v1/divisions/:id/games.
type CreateGamesRequest struct {
	Week     int                `json:"week"`
	WeekType string             `json:"week_type"`
	Games    []GameDraftRequest `json:"games"`
}

// CreateGames returns a handler for POST /api/v1/divisions/:id/games.
// Requires "admin" or "scheduler" role. Partial success is a normal 201: the body
// reports how many games were created and which names failed.
func CreateGames(svc *schedule.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		divisionID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid division id",
			})
		}

		var req CreateGamesRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
		if len(req.Games) == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "games is required",
			})
		}

		drafts := make([]schedule.GameDraft, 0, len(req.Games))
		for _, g := range req.Games {
			drafts = append(drafts, g.toDraft())
		}

		result, err := svc.CreateGames(c.Context(), divisionID, req.Week, models.WeekType(req.WeekType), drafts)
		if err != nil {
			return domainError(c, err)
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"created":  result.Succeeded,
			"failures": failureList(result),
		})
	}
}

// GamePatchRequest carries the editable fields of a game. Absent fields are left
// unchanged. "status" is the legacy wire name for the completed flag.
type GamePatchRequest struct {
	GameName   *string `json:"game_name"`
	Date       *string `json:"date"`
	Time       *string `json:"time"`
	HomeTeamID *string `json:"home_team_id"`
	AwayTeamID *string `json:"away_team_id"`
	HomeScore  *int    `json:"home_score"`
	AwayScore  *int    `json:"away_score"`
	Started    *bool   `json:"started"`
	Status     *bool   `json:"status"` // Legacy name: completed
}

func (r GamePatchRequest) toPatch() (schedule.GamePatch, error) {
	patch := schedule.GamePatch{
		Name:      r.GameName,
		Date:      r.Date,
		Time:      r.Time,
		HomeScore: r.HomeScore,
		AwayScore: r.AwayScore,
		Started:   r.Started,
		Completed: r.Status,
	}
	if r.HomeTeamID != nil {
		id, err := uuid.Parse(*r.HomeTeamID)
		if err != nil {
			return schedule.GamePatch{}, &schedule.ValidationError{Field: "homeTeam", Message: "is not a valid id"}
		}
		patch.HomeTeamID = &id
	}
	if r.AwayTeamID != nil {
		id, err := uuid.Parse(*r.AwayTeamID)
		if err != nil {
			return schedule.GamePatch{}, &schedule.ValidationError{Field: "awayTeam", Message: "is not a valid id"}
		}
		patch.AwayTeamID = &id
	}
	return patch, nil
}

// UpdateGame returns a handler for PATCH /api/v1/games/:id.
// A completed game rejects any edit with 409, even a lone time change.
func UpdateGame(svc *schedule.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid game id",
			})
		}

		var req GamePatchRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
		patch, err := req.toPatch()
		if err != nil {
			return domainError(c, err)
		}

		game, err := svc.UpdateGame(c.Context(), id, patch)
		if err != nil {
			return domainError(c, err)
		}
		return c.JSON(gameResponse(*game))
	}
}

// BatchUpdateItem is one entry in a batch update request.
type BatchUpdateItem struct {
	ID string `json:"id"`
	GamePatchRequest
}

// UpdateGamesRequest is the JSON body for PATCH /api/v1/games.
type UpdateGamesRequest struct {
	Games []BatchUpdateItem `json:"games"`
}

// UpdateGames returns a handler for PATCH /api/v1/games.
// Completed games in the set are silently skipped, not submitted. If any remaining
// update fails the response is 409 naming every failed game — the successes stay
// applied, matching the non-atomic contract.
func UpdateGames(svc *schedule.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req UpdateGamesRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
		if len(req.Games) == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "games is required",
			})
		}

		updates := make([]schedule.GameUpdate, 0, len(req.Games))
		for _, item := range req.Games {
			id, err := uuid.Parse(item.ID)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "invalid game id: " + item.ID,
				})
			}
			patch, err := item.toPatch()
			if err != nil {
				return domainError(c, err)
			}
			updates = append(updates, schedule.GameUpdate{GameID: id, Patch: patch})
		}

		result, err := svc.UpdateGames(c.Context(), updates)
		if err != nil {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error":    err.Error(),
				"updated":  result.Succeeded,
				"failures": failureList(result),
			})
		}
		return c.JSON(fiber.Map{
			"updated":  result.Succeeded,
			"failures": failureList(result),
		})
	}
}

// DeleteGame returns a handler for DELETE /api/v1/games/:id.
// Requires ?confirmed=true: the UI warns the operator about published or completed
// targets before calling, and the engine only honors the flag.
func DeleteGame(svc *schedule.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid game id",
			})
		}

		confirmed := c.QueryBool("confirmed")
		if err := svc.DeleteGame(c.Context(), id, confirmed); err != nil {
			return domainError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ScoreRequest is the JSON body for the live score endpoint.
type ScoreRequest struct {
	HomeScore int `json:"home_score"`
	AwayScore int `json:"away_score"`
}

// UpdateScore returns a handler for POST /api/v1/games/:id/score.
// It records the running score on a live game and pushes the new totals to every
// websocket client watching it. Final games reject the write like any other edit.
func UpdateScore(svc *schedule.Service, hub *websocket.Hub) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid game id",
			})
		}

		var req ScoreRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		started := true
		game, err := svc.UpdateGame(c.Context(), id, schedule.GamePatch{
			HomeScore: &req.HomeScore,
			AwayScore: &req.AwayScore,
			Started:   &started,
		})
		if err != nil {
			return domainError(c, err)
		}

		payload, err := json.Marshal(fiber.Map{
			"game_id":    game.ID.String(),
			"home_score": game.HomeScore,
			"away_score": game.AwayScore,
			"state":      string(game.State()),
		})
		if err == nil {
			hub.BroadcastToGame(game.ID.String(), payload)
		}

		return c.JSON(gameResponse(*game))
	}
}

// failureList never returns nil so the JSON field is always [] instead of null.
func failureList(r *schedule.BatchResult) []string {
	if r.Failures == nil {
		return []string{}
	}
	return r.Failures
}
