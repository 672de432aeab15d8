package schedule

import (
	"context"

	"github.com/google/uuid"
	"github.com/tgalloway/courtside/internal/models"
)

// Store is the persistence collaborator the engine consumes. The production
// implementation lives in internal/database (GORM over Postgres); tests use an
// in-memory fake. Implementations return errors wrapping ErrNotFound when an id
// does not resolve; every other error is passed through as an infrastructure
// failure and is never retried here.
type Store interface {
	// Division returns one division by id.
	Division(ctx context.Context, id uuid.UUID) (*models.Division, error)
	// Divisions lists divisions, optionally filtered to one facility.
	// An empty location returns all divisions.
	Divisions(ctx context.Context, location string) ([]models.Division, error)

	// TeamsByDivision lists the division's teams ordered by name.
	TeamsByDivision(ctx context.Context, divisionID uuid.UUID) ([]models.Team, error)

	// Game returns one game by id.
	Game(ctx context.Context, id uuid.UUID) (*models.Game, error)
	// GamesByDivision lists all games of a division ordered by start time.
	GamesByDivision(ctx context.Context, divisionID uuid.UUID) ([]models.Game, error)
	// GamesByDivisionWeek lists a division's games for one week number.
	GamesByDivisionWeek(ctx context.Context, divisionID uuid.UUID, week int) ([]models.Game, error)

	// InsertGame persists a new game and populates its id.
	InsertGame(ctx context.Context, game *models.Game) error
	// UpdateGame persists the current state of an existing game.
	UpdateGame(ctx context.Context, game *models.Game) error
	// DeleteGame removes a game by id.
	DeleteGame(ctx context.Context, id uuid.UUID) error
}
