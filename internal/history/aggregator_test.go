package history

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/points-forecast/internal/models"
)

var positions = map[models.TeamID]int{
	"ARS": 2,
	"CHE": 6,
	"LIV": 1,
	"BOU": 12,
}

func TestTierOf(t *testing.T) {
	assert.Equal(t, Tier(1), TierOf(1, 4))
	assert.Equal(t, Tier(1), TierOf(4, 4))
	assert.Equal(t, Tier(2), TierOf(5, 4))
	assert.Equal(t, Tier(5), TierOf(20, 4))
	assert.Equal(t, Tier(1), TierOf(5, 5))
	assert.Equal(t, Tier(4), TierOf(16, 5))
	assert.Equal(t, TierUnknown, TierOf(0, 4))
	assert.Equal(t, TierUnknown, TierOf(21, 4))
}

func TestTierOfDefaultsWidth(t *testing.T) {
	assert.Equal(t, TierOf(7, DefaultTierWidth), TierOf(7, 0))
}

func TestApplyMatchBucketsBothSides(t *testing.T) {
	a := NewAggregator(nil)
	a.ApplyMatch(models.Match{
		Season:    "2025-26",
		HomeTeam:  "ARS",
		AwayTeam:  "CHE",
		HomeGoals: 3,
		AwayGoals: 1,
	}, positions, 4)

	// ARS played at home against 6th-placed CHE, tier 2.
	home := a.Team("ARS").Sum(Filter{Venue: models.VenueHome, Tier: 2})
	assert.Equal(t, 1, home.Games)
	assert.Equal(t, 3, home.Goals)
	assert.Equal(t, 1, home.GoalsConceded)

	// CHE played away against 2nd-placed ARS, tier 1.
	away := a.Team("CHE").Sum(Filter{Venue: models.VenueAway, Tier: 1})
	assert.Equal(t, 1, away.Games)
	assert.Equal(t, 1, away.Goals)
	assert.Equal(t, 3, away.GoalsConceded)
}

func TestEmptyFilterSumsEverything(t *testing.T) {
	a := NewAggregator(nil)
	a.ApplyMatch(models.Match{Season: "2024-25", HomeTeam: "ARS", AwayTeam: "CHE", HomeGoals: 2}, positions, 4)
	a.ApplyMatch(models.Match{Season: "2025-26", HomeTeam: "LIV", AwayTeam: "ARS", HomeGoals: 1, AwayGoals: 1}, positions, 5)

	total := a.Team("ARS").Sum(Filter{})
	assert.Equal(t, 2, total.Games)
	assert.Equal(t, 3, total.Goals)
	assert.Equal(t, 1, total.GoalsConceded)
}

func TestUnknownOpponentPositionFallsIntoUnknownTier(t *testing.T) {
	a := NewAggregator(nil)
	a.ApplyMatch(models.Match{Season: "2025-26", HomeTeam: "ARS", AwayTeam: "NEW", HomeGoals: 1}, positions, 4)

	tally := a.Team("ARS").Sum(Filter{Tier: TierUnknown})
	assert.Equal(t, 1, tally.Games)
}

func TestPlayerEventsCredited(t *testing.T) {
	a := NewAggregator(nil)
	a.ApplyMatch(models.Match{
		Season:    "2025-26",
		HomeTeam:  "ARS",
		AwayTeam:  "CHE",
		HomeGoals: 2,
		AwayGoals: 0,
		Events: []models.StatEvent{
			{Kind: models.StatBonus, Side: models.VenueHome, PlayerID: "saka", Value: 28},
			{Kind: models.StatGoal, Side: models.VenueHome, PlayerID: "saka", Value: 1},
			{Kind: models.StatAssist, Side: models.VenueHome, PlayerID: "saka", Value: 1},
			{Kind: models.StatBonus, Side: models.VenueAway, PlayerID: "sanchez", Value: 12},
			{Kind: models.StatSave, Side: models.VenueAway, PlayerID: "sanchez", Value: 5},
		},
	}, positions, 4)

	saka := a.Player("saka").Sum(Filter{})
	assert.Equal(t, 1, saka.Games)
	assert.Equal(t, 1, saka.Goals)
	assert.Equal(t, 1, saka.Assists)
	assert.Equal(t, 28, saka.Bonus)

	sanchez := a.Player("sanchez").Sum(Filter{Venue: models.VenueAway})
	assert.Equal(t, 1, sanchez.Games)
	assert.Equal(t, 5, sanchez.Saves)
}

func TestRosterDropsEventsForFormerTeam(t *testing.T) {
	roster := map[models.PlayerID]models.TeamID{"sterling": "CHE"}
	a := NewAggregator(roster)

	// Goal scored while at LIV is not credited to a player now at CHE.
	a.ApplyMatch(models.Match{
		Season: "2024-25", HomeTeam: "LIV", AwayTeam: "BOU", HomeGoals: 1,
		Events: []models.StatEvent{
			{Kind: models.StatGoal, Side: models.VenueHome, PlayerID: "sterling", Value: 1},
		},
	}, positions, 4)
	a.ApplyMatch(models.Match{
		Season: "2025-26", HomeTeam: "CHE", AwayTeam: "BOU", HomeGoals: 1,
		Events: []models.StatEvent{
			{Kind: models.StatGoal, Side: models.VenueHome, PlayerID: "sterling", Value: 1},
		},
	}, positions, 4)

	sum := a.Player("sterling").Sum(Filter{})
	assert.Equal(t, 1, sum.Goals)
}

func TestGoalShare(t *testing.T) {
	a := NewAggregator(nil)
	a.ApplyMatch(models.Match{
		Season: "2025-26", HomeTeam: "ARS", AwayTeam: "CHE", HomeGoals: 4,
		Events: []models.StatEvent{
			{Kind: models.StatBonus, Side: models.VenueHome, PlayerID: "saka", Value: 30},
			{Kind: models.StatGoal, Side: models.VenueHome, PlayerID: "saka", Value: 2},
		},
	}, positions, 4)

	share := a.GoalShare("saka", "ARS", Filter{})
	assert.True(t, share.Known())
	assert.InDelta(t, 0.5, share.Value(), 1e-9)
}

func TestRateDistinguishesNoObservationsFromZero(t *testing.T) {
	a := NewAggregator(nil)
	a.ApplyMatch(models.Match{Season: "2025-26", HomeTeam: "ARS", AwayTeam: "CHE"}, positions, 4)

	scored := a.Team("ARS").GoalsPerGame(Filter{})
	assert.True(t, scored.Known())
	assert.Zero(t, scored.Value())

	never := a.Team("BOU").GoalsPerGame(Filter{})
	assert.False(t, never.Known())
}

func TestApplySeasonUsesSeasonWidth(t *testing.T) {
	a := NewAggregator(nil)
	a.ApplySeason(models.Season{
		Tag:       "2023-24",
		TierWidth: 5,
		Positions: positions,
		Matches: []models.Match{
			{Season: "2023-24", HomeTeam: "ARS", AwayTeam: "CHE", HomeGoals: 1},
		},
	})

	// CHE finished 6th, tier 2 at width 5.
	tally := a.Team("ARS").Sum(Filter{Tier: 2})
	assert.Equal(t, 1, tally.Games)
}
