package models

// TeamID identifies a team across seasons.
type TeamID string

// PlayerID identifies a player.
type PlayerID string

// Venue represents the side of a fixture a team plays on.
type Venue string

const (
	VenueHome Venue = "HOME"
	VenueAway Venue = "AWAY"
)

// Opposite returns the other venue.
func (v Venue) Opposite() Venue {
	if v == VenueHome {
		return VenueAway
	}
	return VenueHome
}

// StatKind classifies a per-player match event.
type StatKind string

const (
	StatGoal    StatKind = "goal"
	StatAssist  StatKind = "assist"
	StatSave    StatKind = "save"
	StatBonus   StatKind = "bonus" // bonus-score contribution (BPS)
	StatDefense StatKind = "defensive_action"
)

// StatEvent credits a player with a statistical contribution in a match.
type StatEvent struct {
	Kind     StatKind `json:"kind"`
	Side     Venue    `json:"side"`
	PlayerID PlayerID `json:"player_id"`
	Value    int      `json:"value"`
}

// Match is a single completed fixture. Matches are immutable once ingested
// and are consumed exactly once, in chronological order.
type Match struct {
	Season    string      `json:"season"`
	HomeTeam  TeamID      `json:"home_team"`
	AwayTeam  TeamID      `json:"away_team"`
	HomeGoals int         `json:"home_goals"`
	AwayGoals int         `json:"away_goals"`
	Events    []StatEvent `json:"events,omitempty"`
}

// GoalDifference returns the absolute margin of victory.
func (m Match) GoalDifference() int {
	d := m.HomeGoals - m.AwayGoals
	if d < 0 {
		return -d
	}
	return d
}

// Season bundles one season's chronological match stream with the final
// league table and the tier band width in force for that season.
type Season struct {
	Tag       string         `json:"tag"`
	TierWidth int            `json:"tier_width"`
	Positions map[TeamID]int `json:"positions"`
	Matches   []Match        `json:"matches"`
}
