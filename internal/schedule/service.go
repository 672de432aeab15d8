package schedule

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/itbasis/go-clock"
	"github.com/tgalloway/courtside/internal/config"
	"github.com/tgalloway/courtside/internal/models"
)

// Service is the engine facade the HTTP layer talks to. It composes the week planner,
// conflict detector, team-load counter, and mutation validation over a Store.
//
// Every call is synchronous and request-scoped: no background work, no cross-game
// transactions. Batch operations are intentionally non-atomic (see BatchResult).
// The clock is injected so views that compare against "now" are testable.
type Service struct {
	store  Store
	policy config.SeasonPolicy
	clock  clock.Clock
}

// NewService builds a Service. Pass clock.New() in production and clock.NewMock()
// in tests.
func NewService(store Store, policy config.SeasonPolicy, clk clock.Clock) *Service {
	return &Service{store: store, policy: policy, clock: clk}
}

// GetTeamCountsForWeek reports how many games each team of the division plays in the
// given week. Counts above 1 indicate a double-scheduled team; this is advisory and
// never blocks a write.
func (s *Service) GetTeamCountsForWeek(ctx context.Context, divisionID uuid.UUID, week int) (map[uuid.UUID]int, error) {
	games, err := s.store.GamesByDivisionWeek(ctx, divisionID, week)
	if err != nil {
		return nil, fmt.Errorf("loading games for week %d: %w", week, err)
	}
	return CountGamesPerTeam(games), nil
}

// CheckLocationConflict runs the advisory double-booking check for a proposed
// (location, day, [start,end)) slot against every division booked at that facility.
// Pass the division's own id as exclude when updating, uuid.Nil when creating.
func (s *Service) CheckLocationConflict(ctx context.Context, location, day, start, end string, exclude uuid.UUID) (ConflictResult, error) {
	divisions, err := s.store.Divisions(ctx, location)
	if err != nil {
		return ConflictResult{}, fmt.Errorf("loading divisions at %s: %w", location, err)
	}
	return CheckConflict(divisions, location, day, start, end, exclude)
}

// CreateGames validates and inserts a batch of games for one (division, week) pair.
// Each game is an independent unit of work: a failure on one game does not roll back
// or stop the others. The BatchResult names every failed game; partial success is a
// normal return, not an error.
func (s *Service) CreateGames(ctx context.Context, divisionID uuid.UUID, week int, weekType models.WeekType, drafts []GameDraft) (*BatchResult, error) {
	if _, err := s.store.Division(ctx, divisionID); err != nil {
		return nil, fmt.Errorf("loading division: %w", err)
	}

	result := &BatchResult{}
	for _, draft := range drafts {
		game, err := NewGame(divisionID, week, weekType, draft)
		if err != nil {
			result.Failures = append(result.Failures, failureName(draft.Name))
			continue
		}
		if err := s.store.InsertGame(ctx, game); err != nil {
			result.Failures = append(result.Failures, failureName(draft.Name))
			continue
		}
		result.Succeeded++
	}
	return result, nil
}

// UpdateGame applies a patch to one game. A completed game rejects the patch with
// ErrGameLocked regardless of which fields it touches; Published is forced true on
// every successful edit.
func (s *Service) UpdateGame(ctx context.Context, gameID uuid.UUID, patch GamePatch) (*models.Game, error) {
	game, err := s.store.Game(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("loading game: %w", err)
	}
	if err := ApplyPatch(game, patch); err != nil {
		return nil, err
	}
	if err := s.store.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("saving game: %w", err)
	}
	return game, nil
}

// UpdateGames applies patches to many games. Completed games are silently filtered
// out BEFORE any write is attempted — they are not submitted, not merely rejected.
// Remaining updates are issued independently; if any fail, the returned error names
// every failed game while the successful updates stay applied.
func (s *Service) UpdateGames(ctx context.Context, updates []GameUpdate) (*BatchResult, error) {
	result := &BatchResult{}
	for _, u := range updates {
		game, err := s.store.Game(ctx, u.GameID)
		if err != nil {
			result.Failures = append(result.Failures, u.GameID.String())
			continue
		}
		if game.Completed {
			// Locked games are dropped from the set, not reported as failures.
			continue
		}
		if err := ApplyPatch(game, u.Patch); err != nil {
			result.Failures = append(result.Failures, failureName(game.Name))
			continue
		}
		if err := s.store.UpdateGame(ctx, game); err != nil {
			result.Failures = append(result.Failures, failureName(game.Name))
			continue
		}
		result.Succeeded++
	}

	if result.PartialFailure() {
		return result, fmt.Errorf("failed to update: %s", strings.Join(result.Failures, ", "))
	}
	return result, nil
}

// DeleteGame removes a game. The confirmed flag must be explicitly true; the UI has
// already warned the operator when the target is published or completed, so the
// engine only honors the flag.
func (s *Service) DeleteGame(ctx context.Context, gameID uuid.UUID, confirmed bool) error {
	if err := CheckDelete(confirmed); err != nil {
		return err
	}
	if err := s.store.DeleteGame(ctx, gameID); err != nil {
		return fmt.Errorf("deleting game: %w", err)
	}
	return nil
}

// failureName keeps batch failure lists readable when a draft arrived without a name.
func failureName(name string) string {
	if name == "" {
		return "(unnamed game)"
	}
	return name
}
