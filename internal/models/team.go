package models

// TeamInfo is the roster-level view of a team for the upcoming round.
type TeamInfo struct {
	ID             TeamID `json:"id"`
	Name           string `json:"name"`
	LeaguePosition int    `json:"league_position"`
}

// Fixture is a scheduled match in the target round.
type Fixture struct {
	Round    int    `json:"round"`
	HomeTeam TeamID `json:"home_team"`
	AwayTeam TeamID `json:"away_team"`
	// UnderdogSide is the venue of the side eligible for the manager
	// underdog bonus (league-position gap of five or more), empty when
	// neither side qualifies.
	UnderdogSide Venue `json:"underdog_side,omitempty"`
}

// Involves reports whether the team plays in this fixture.
func (f Fixture) Involves(id TeamID) bool {
	return f.HomeTeam == id || f.AwayTeam == id
}

// VenueOf returns the venue the team occupies in this fixture.
func (f Fixture) VenueOf(id TeamID) Venue {
	if f.HomeTeam == id {
		return VenueHome
	}
	return VenueAway
}

// Opponent returns the other side of the fixture.
func (f Fixture) Opponent(id TeamID) TeamID {
	if f.HomeTeam == id {
		return f.AwayTeam
	}
	return f.HomeTeam
}
