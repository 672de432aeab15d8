package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tgalloway/courtside/internal/models"
	"github.com/tgalloway/courtside/internal/schedule"
	"gorm.io/gorm"
)

// Store is the GORM-backed implementation of schedule.Store. Each method is one
// request-scoped query; there are no cross-call transactions, matching the engine's
// per-item unit-of-work contract for batches.
type Store struct {
	db *gorm.DB
}

// NewStore wraps a GORM handle in the engine's Store interface.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// notFound translates GORM's sentinel into the engine's, keeping gorm out of the
// schedule package's error handling.
func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, schedule.ErrNotFound)
	}
	return err
}

func (s *Store) Division(ctx context.Context, id uuid.UUID) (*models.Division, error) {
	var division models.Division
	if err := s.db.WithContext(ctx).First(&division, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "division")
	}
	return &division, nil
}

func (s *Store) Divisions(ctx context.Context, location string) ([]models.Division, error) {
	query := s.db.WithContext(ctx).Order("location, name")
	if location != "" {
		query = query.Where("location = ?", location)
	}
	var divisions []models.Division
	if err := query.Find(&divisions).Error; err != nil {
		return nil, err
	}
	return divisions, nil
}

func (s *Store) TeamsByDivision(ctx context.Context, divisionID uuid.UUID) ([]models.Team, error) {
	var teams []models.Team
	err := s.db.WithContext(ctx).
		Where("division_id = ?", divisionID).
		Order("name").
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

func (s *Store) Game(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	var game models.Game
	if err := s.db.WithContext(ctx).First(&game, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "game")
	}
	return &game, nil
}

func (s *Store) GamesByDivision(ctx context.Context, divisionID uuid.UUID) ([]models.Game, error) {
	var games []models.Game
	err := s.db.WithContext(ctx).
		Where("division_id = ?", divisionID).
		Order("starts_at, name").
		Find(&games).Error
	if err != nil {
		return nil, err
	}
	return games, nil
}

func (s *Store) GamesByDivisionWeek(ctx context.Context, divisionID uuid.UUID, week int) ([]models.Game, error) {
	var games []models.Game
	err := s.db.WithContext(ctx).
		Where("division_id = ? AND week = ?", divisionID, week).
		Order("starts_at, name").
		Find(&games).Error
	if err != nil {
		return nil, err
	}
	return games, nil
}

func (s *Store) InsertGame(ctx context.Context, game *models.Game) error {
	// Create runs an INSERT and populates game.ID with the generated UUID.
	return s.db.WithContext(ctx).Create(game).Error
}

func (s *Store) UpdateGame(ctx context.Context, game *models.Game) error {
	// Save writes every column of the row. The engine always works on a freshly
	// loaded game, so last-write-wins is the intended concurrency behavior.
	result := s.db.WithContext(ctx).Save(game)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("game: %w", schedule.ErrNotFound)
	}
	return nil
}

func (s *Store) DeleteGame(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&models.Game{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("game: %w", schedule.ErrNotFound)
	}
	return nil
}
