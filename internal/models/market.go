package models

// ResultQuotes holds raw match-result prices per outcome, one string
// per bookmaker.
type ResultQuotes struct {
	Home []string `json:"home"`
	Draw []string `json:"draw"`
	Away []string `json:"away"`
}

// PlayerQuotes bundles the over-threshold markets quoted for one player
// in one fixture. A nil slice means the market was not offered.
type PlayerQuotes struct {
	Player  PlayerID    `json:"player_id"`
	Goals   []OddsQuote `json:"goals,omitempty"`
	Assists []OddsQuote `json:"assists,omitempty"`
	Saves   []OddsQuote `json:"saves,omitempty"`
}

// FixtureQuotes is everything the bookmakers say about one fixture. A
// side's goals-conceded outlook is its opponent's goals market.
type FixtureQuotes struct {
	Round     int            `json:"round"`
	HomeTeam  TeamID         `json:"home_team"`
	AwayTeam  TeamID         `json:"away_team"`
	Result    *ResultQuotes  `json:"result,omitempty"`
	HomeGoals []OddsQuote    `json:"home_goals,omitempty"`
	AwayGoals []OddsQuote    `json:"away_goals,omitempty"`
	Players   []PlayerQuotes `json:"players,omitempty"`
}

// TeamGoalQuotes returns the total-goals market of the given side.
func (f FixtureQuotes) TeamGoalQuotes(id TeamID) []OddsQuote {
	if f.HomeTeam == id {
		return f.HomeGoals
	}
	if f.AwayTeam == id {
		return f.AwayGoals
	}
	return nil
}
