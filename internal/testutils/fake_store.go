// Package testutils provides test doubles shared across packages. The FakeStore is
// an in-memory schedule.Store so engine and handler tests run without Postgres.
package testutils

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/tgalloway/courtside/internal/models"
	"github.com/tgalloway/courtside/internal/schedule"
)

// FakeStore is an in-memory implementation of schedule.Store. It also counts write
// calls so tests can assert exactly how many updates a batch actually issued.
type FakeStore struct {
	mu        sync.Mutex
	divisions map[uuid.UUID]models.Division
	teams     map[uuid.UUID]models.Team
	games     map[uuid.UUID]models.Game

	// Write-call counters, for asserting batch submission behavior.
	InsertCalls int
	UpdateCalls int
	DeleteCalls int

	// Optional error injection: when set, the named method returns this error.
	InsertErr error
	UpdateErr error
}

// NewFakeStore returns an empty FakeStore.
func NewFakeStore() *FakeStore {
	return &FakeStore{
		divisions: make(map[uuid.UUID]models.Division),
		teams:     make(map[uuid.UUID]models.Team),
		games:     make(map[uuid.UUID]models.Game),
	}
}

// AddDivision stores a division, assigning an id if it has none.
func (f *FakeStore) AddDivision(d models.Division) models.Division {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	f.divisions[d.ID] = d
	return d
}

// AddTeam stores a team, assigning an id if it has none.
func (f *FakeStore) AddTeam(t models.Team) models.Team {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	f.teams[t.ID] = t
	return t
}

// AddGame stores a game, assigning an id if it has none.
func (f *FakeStore) AddGame(g models.Game) models.Game {
	f.mu.Lock()
	defer f.mu.Unlock()
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	f.games[g.ID] = g
	return g
}

// GameCount reports how many games are stored.
func (f *FakeStore) GameCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.games)
}

// StoredGame returns a stored game by id for assertions.
func (f *FakeStore) StoredGame(id uuid.UUID) (models.Game, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.games[id]
	return g, ok
}

func (f *FakeStore) Division(_ context.Context, id uuid.UUID) (*models.Division, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.divisions[id]
	if !ok {
		return nil, fmt.Errorf("division: %w", schedule.ErrNotFound)
	}
	return &d, nil
}

func (f *FakeStore) Divisions(_ context.Context, location string) ([]models.Division, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Division
	for _, d := range f.divisions {
		if location == "" || d.Location == location {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Location != out[j].Location {
			return out[i].Location < out[j].Location
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (f *FakeStore) TeamsByDivision(_ context.Context, divisionID uuid.UUID) ([]models.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Team
	for _, t := range f.teams {
		if t.DivisionID == divisionID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *FakeStore) Game(_ context.Context, id uuid.UUID) (*models.Game, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.games[id]
	if !ok {
		return nil, fmt.Errorf("game: %w", schedule.ErrNotFound)
	}
	return &g, nil
}

func (f *FakeStore) GamesByDivision(_ context.Context, divisionID uuid.UUID) ([]models.Game, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Game
	for _, g := range f.games {
		if g.DivisionID == divisionID {
			out = append(out, g)
		}
	}
	sortGames(out)
	return out, nil
}

func (f *FakeStore) GamesByDivisionWeek(_ context.Context, divisionID uuid.UUID, week int) ([]models.Game, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Game
	for _, g := range f.games {
		if g.DivisionID == divisionID && g.Week == week {
			out = append(out, g)
		}
	}
	sortGames(out)
	return out, nil
}

func (f *FakeStore) InsertGame(_ context.Context, game *models.Game) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.InsertCalls++
	if f.InsertErr != nil {
		return f.InsertErr
	}
	if game.ID == uuid.Nil {
		game.ID = uuid.New()
	}
	f.games[game.ID] = *game
	return nil
}

func (f *FakeStore) UpdateGame(_ context.Context, game *models.Game) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.UpdateCalls++
	if f.UpdateErr != nil {
		return f.UpdateErr
	}
	if _, ok := f.games[game.ID]; !ok {
		return fmt.Errorf("game: %w", schedule.ErrNotFound)
	}
	f.games[game.ID] = *game
	return nil
}

func (f *FakeStore) DeleteGame(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeleteCalls++
	if _, ok := f.games[id]; !ok {
		return fmt.Errorf("game: %w", schedule.ErrNotFound)
	}
	delete(f.games, id)
	return nil
}

func sortGames(games []models.Game) {
	sort.Slice(games, func(i, j int) bool {
		if !games[i].StartsAt.Equal(games[j].StartsAt) {
			return games[i].StartsAt.Before(games[j].StartsAt)
		}
		return games[i].Name < games[j].Name
	})
}
