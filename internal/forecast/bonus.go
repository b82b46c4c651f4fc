package forecast

import (
	"sort"

	"github.com/yourusername/points-forecast/internal/models"
)

const (
	// bonusPool is the bonus points one match hands out in total.
	bonusPool = 6.0
	// starterMinutes is the minutes-per-start floor for counting a
	// player toward a likely starting eleven.
	starterMinutes = 45.0
	// startersPerSide is how many probable starters each side
	// contributes to a match's bonus pool.
	startersPerSide = 11
)

// BonusModel estimates each player's share of a match's bonus points
// from average bonus scores. A fixture's pool is the summed average
// scores of both likely elevens; a player's expected bonus is the pool
// constant scaled by their slice of that sum.
type BonusModel struct {
	sums map[models.TeamID]float64
}

// NewBonusModel ranks each team's probable starters by average bonus
// score. Players with fewer than 45 minutes per start are treated as
// rotation options and left out of the pool.
func NewBonusModel(players []models.Player) *BonusModel {
	byTeam := map[models.TeamID][]float64{}
	for _, p := range players {
		if p.MinutesPerStart() <= starterMinutes {
			continue
		}
		byTeam[p.Team] = append(byTeam[p.Team], p.BonusScorePerGame)
	}
	m := &BonusModel{sums: map[models.TeamID]float64{}}
	for team, scores := range byTeam {
		sort.Sort(sort.Reverse(sort.Float64Slice(scores)))
		if len(scores) > startersPerSide {
			scores = scores[:startersPerSide]
		}
		var sum float64
		for _, s := range scores {
			sum += s
		}
		m.sums[team] = sum
	}
	return m
}

// Expected returns the player's expected bonus points in a fixture
// against opponent. Unknown teams or an empty pool yield zero.
func (m *BonusModel) Expected(p models.Player, opponent models.TeamID) float64 {
	pool := m.sums[p.Team] + m.sums[opponent]
	if pool <= 0 || p.BonusScorePerGame <= 0 {
		return 0
	}
	return bonusPool * p.BonusScorePerGame / pool
}
