package schedule

import (
	"github.com/google/uuid"
	"github.com/tgalloway/courtside/internal/models"
)

// CountGamesPerTeam counts how many games each team appears in, as home or away.
// It backs the "games this week" widget and lets the UI flag a team scheduled more
// than once in the same week. The counts are reported, not enforced: whether a
// double-booked team blocks a save is the caller's policy, and the product today
// only warns.
func CountGamesPerTeam(games []models.Game) map[uuid.UUID]int {
	counts := make(map[uuid.UUID]int)
	for _, g := range games {
		counts[g.HomeTeamID]++
		counts[g.AwayTeamID]++
	}
	return counts
}

// DoubleBookedTeams returns the ids of teams appearing in more than one game,
// in no particular order.
func DoubleBookedTeams(counts map[uuid.UUID]int) []uuid.UUID {
	var ids []uuid.UUID
	for id, n := range counts {
		if n > 1 {
			ids = append(ids, id)
		}
	}
	return ids
}
