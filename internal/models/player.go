package models

// Position is a player's role category. Each position has its own scoring
// formula in the forecast stage.
type Position string

const (
	PositionGoalkeeper Position = "GKP"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
	PositionManager    Position = "MNG"
	PositionUnknown    Position = "UNK"
)

// Player is the roster-level view of a player going into the target round.
// Historical per-match statistics live in the matchup aggregator; this
// struct carries only what the roster source reports directly.
type Player struct {
	ID       PlayerID `json:"id"`
	Name     string   `json:"name"`
	Team     TeamID   `json:"team"`
	Position Position `json:"position"`

	Minutes int     `json:"minutes"`
	Starts  int     `json:"starts"`
	Games   int     `json:"games"`
	Price   float64 `json:"price"`

	// ChanceOfPlaying is the availability factor in [0, 1].
	ChanceOfPlaying float64 `json:"chance_of_playing"`

	DefensiveActionsPer90 float64 `json:"defensive_actions_per90"`
	BonusScorePerGame     float64 `json:"bonus_score_per_game"`
	SavesPerGame          float64 `json:"saves_per_game"`
}

// MinutesPerGame returns average minutes across appearances, 0 without any.
func (p Player) MinutesPerGame() float64 {
	if p.Games == 0 {
		return 0
	}
	return float64(p.Minutes) / float64(p.Games)
}

// MinutesPerStart returns average minutes across starts, 0 without any.
func (p Player) MinutesPerStart() float64 {
	if p.Starts == 0 {
		return 0
	}
	return float64(p.Minutes) / float64(p.Starts)
}

// AvailabilityFromStatus converts a roster status code and an optional
// chance-of-playing percentage into the availability factor: the reported
// percentage when present, otherwise 1 for available/doubtful and 0 for
// everything else.
func AvailabilityFromStatus(status string, chancePct *int) float64 {
	if chancePct != nil {
		return float64(*chancePct) / 100
	}
	if status == "a" || status == "d" {
		return 1
	}
	return 0
}
