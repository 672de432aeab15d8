package schedule

import (
	"testing"

	"github.com/google/uuid"
	"github.com/tgalloway/courtside/internal/models"
)

func TestCountGamesPerTeam(t *testing.T) {
	mavs := uuid.New()
	pistons := uuid.New()
	hawks := uuid.New()
	idle := uuid.New()

	games := []models.Game{
		{HomeTeamID: mavs, AwayTeamID: pistons},
		{HomeTeamID: hawks, AwayTeamID: mavs}, // mavs double-booked this week
	}

	counts := CountGamesPerTeam(games)

	ex := map[uuid.UUID]int{mavs: 2, pistons: 1, hawks: 1}
	for id, n := range ex {
		if counts[id] != n {
			t.Errorf("team %s count = %d, want %d", id, counts[id], n)
		}
	}
	if _, ok := counts[idle]; ok {
		t.Error("team with no games should not appear in the counts")
	}

	booked := DoubleBookedTeams(counts)
	if len(booked) != 1 || booked[0] != mavs {
		t.Errorf("double-booked = %v, want just the mavs", booked)
	}
}

func TestCountGamesPerTeamEmpty(t *testing.T) {
	counts := CountGamesPerTeam(nil)
	if len(counts) != 0 {
		t.Errorf("expected empty counts, got %v", counts)
	}
	if booked := DoubleBookedTeams(counts); booked != nil {
		t.Errorf("expected no double-booked teams, got %v", booked)
	}
}
