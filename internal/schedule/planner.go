package schedule

import (
	"fmt"
	"time"

	"github.com/tgalloway/courtside/internal/config"
	"github.com/tgalloway/courtside/internal/models"
)

// Week is one derived scheduling unit within a division's season. Weeks are never
// stored — the full sequence is rebuilt from the season policy and the division's
// start date on every read.
type Week struct {
	Number int             // 1-based, contiguous across regular and playoff weeks
	Type   models.WeekType // regular, quarterfinal, semifinal, or final
	Label  string          // Human label: "Week 7", "Semifinal"
	Date   time.Time       // Calendar date of this week's slot: start date + 7*(Number-1) days
}

// IsRegular reports whether this is a regular-season week.
func (w Week) IsRegular() bool {
	return w.Type == models.WeekTypeRegular
}

// IsPlayoff reports whether this is a playoff round.
func (w Week) IsPlayoff() bool {
	return w.Type != models.WeekTypeRegular
}

// PlayoffRounds returns the playoff rounds a bracket of teamCount teams plays, in
// ascending bracket order. The thresholds come from the season policy, not from code:
// below PlayoffMinTeams there is no bracket at all, below QuarterfinalMinTeams the
// bracket skips quarterfinals.
func PlayoffRounds(policy config.SeasonPolicy, teamCount int) []models.WeekType {
	switch {
	case teamCount < policy.PlayoffMinTeams:
		return nil
	case teamCount < policy.QuarterfinalMinTeams:
		return []models.WeekType{models.WeekTypeSemifinal, models.WeekTypeFinal}
	default:
		return []models.WeekType{models.WeekTypeQuarterfinal, models.WeekTypeSemifinal, models.WeekTypeFinal}
	}
}

// PlanWeeks derives the ordered week sequence for a division: regular weeks numbered
// 1..RegularWeeks, then the playoff rounds for the division's team count. Playoff
// weeks continue the numbering so week numbers stay contiguous.
func PlanWeeks(policy config.SeasonPolicy, startDate time.Time, teamCount int) []Week {
	rounds := PlayoffRounds(policy, teamCount)
	weeks := make([]Week, 0, policy.RegularWeeks+len(rounds))

	for n := 1; n <= policy.RegularWeeks; n++ {
		weeks = append(weeks, Week{
			Number: n,
			Type:   models.WeekTypeRegular,
			Label:  fmt.Sprintf("Week %d", n),
			Date:   startDate.AddDate(0, 0, 7*(n-1)),
		})
	}
	for i, round := range rounds {
		n := policy.RegularWeeks + i + 1
		weeks = append(weeks, Week{
			Number: n,
			Type:   round,
			Label:  roundLabel(round),
			Date:   startDate.AddDate(0, 0, 7*(n-1)),
		})
	}
	return weeks
}

func roundLabel(t models.WeekType) string {
	switch t {
	case models.WeekTypeQuarterfinal:
		return "Quarterfinal"
	case models.WeekTypeSemifinal:
		return "Semifinal"
	case models.WeekTypeFinal:
		return "Final"
	default:
		return string(t)
	}
}

// WeekComplete reports whether a week's games are all final. A week with zero games
// is never complete — completeness requires at least one game, all of them completed.
func WeekComplete(games []models.Game) bool {
	if len(games) == 0 {
		return false
	}
	for _, g := range games {
		if !g.Completed {
			return false
		}
	}
	return true
}

// CurrentWeek selects the "current" week number: scanning in order, the first week
// containing either zero games or at least one incomplete game. If every week is
// fully complete, the last week is current. An empty plan has no current week (0).
func CurrentWeek(weeks []Week, gamesByWeek map[int][]models.Game) int {
	if len(weeks) == 0 {
		return 0
	}
	for _, w := range weeks {
		if !WeekComplete(gamesByWeek[w.Number]) {
			return w.Number
		}
	}
	return weeks[len(weeks)-1].Number
}

// GroupGamesByWeek buckets a division's games by week number.
func GroupGamesByWeek(games []models.Game) map[int][]models.Game {
	byWeek := make(map[int][]models.Game)
	for _, g := range games {
		byWeek[g.Week] = append(byWeek[g.Week], g)
	}
	return byWeek
}
