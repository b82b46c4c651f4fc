package history

import (
	"github.com/yourusername/points-forecast/internal/models"

	log "github.com/sirupsen/logrus"
)

// Key identifies one counter bucket. Every match contributes to exactly
// one bucket per side, chosen by the season it was played in, the venue
// the side played at and the strength tier of the opponent.
type Key struct {
	Season string
	Venue  models.Venue
	Tier   Tier
}

// Filter selects buckets when summing tallies. Zero-value fields match
// everything, so Filter{} sums the whole record.
type Filter struct {
	Season string
	Venue  models.Venue
	Tier   Tier
}

func (f Filter) matches(k Key) bool {
	if f.Season != "" && f.Season != k.Season {
		return false
	}
	if f.Venue != "" && f.Venue != k.Venue {
		return false
	}
	if f.Tier != TierAny && f.Tier != k.Tier {
		return false
	}
	return true
}

// Tally is the accumulated counts of one bucket.
type Tally struct {
	Games         int
	Goals         int
	Assists       int
	GoalsConceded int
	Saves         int
	Bonus         int
}

func (t *Tally) add(o Tally) {
	t.Games += o.Games
	t.Goals += o.Goals
	t.Assists += o.Assists
	t.GoalsConceded += o.GoalsConceded
	t.Saves += o.Saves
	t.Bonus += o.Bonus
}

// Record holds the bucketed tallies of one team or player.
type Record struct {
	tallies map[Key]*Tally
}

func newRecord() *Record {
	return &Record{tallies: map[Key]*Tally{}}
}

func (r *Record) tally(k Key) *Tally {
	t, ok := r.tallies[k]
	if !ok {
		t = &Tally{}
		r.tallies[k] = t
	}
	return t
}

// Sum folds every bucket the filter matches into one tally.
func (r *Record) Sum(f Filter) Tally {
	var out Tally
	for k, t := range r.tallies {
		if f.matches(k) {
			out.add(*t)
		}
	}
	return out
}

// GoalsPerGame returns goals scored per appearance under the filter.
func (r *Record) GoalsPerGame(f Filter) models.Rate {
	s := r.Sum(f)
	return models.Rate{Num: float64(s.Goals), Den: float64(s.Games)}
}

// AssistsPerGame returns assists per appearance under the filter.
func (r *Record) AssistsPerGame(f Filter) models.Rate {
	s := r.Sum(f)
	return models.Rate{Num: float64(s.Assists), Den: float64(s.Games)}
}

// ConcededPerGame returns goals conceded per appearance under the filter.
func (r *Record) ConcededPerGame(f Filter) models.Rate {
	s := r.Sum(f)
	return models.Rate{Num: float64(s.GoalsConceded), Den: float64(s.Games)}
}

// SavesPerGame returns saves per appearance under the filter.
func (r *Record) SavesPerGame(f Filter) models.Rate {
	s := r.Sum(f)
	return models.Rate{Num: float64(s.Saves), Den: float64(s.Games)}
}

// BonusPerGame returns bonus score per appearance under the filter.
func (r *Record) BonusPerGame(f Filter) models.Rate {
	s := r.Sum(f)
	return models.Rate{Num: float64(s.Bonus), Den: float64(s.Games)}
}

// Aggregator folds finished matches into per-team and per-player
// bucketed counters. Players are credited only for matches played for
// the team they currently belong to; without a roster every event is
// credited. Not safe for concurrent use.
type Aggregator struct {
	roster  map[models.PlayerID]models.TeamID
	teams   map[models.TeamID]*Record
	players map[models.PlayerID]*Record
}

// NewAggregator creates an empty aggregator. The roster maps each
// player to their current team and may be nil.
func NewAggregator(roster map[models.PlayerID]models.TeamID) *Aggregator {
	return &Aggregator{
		roster:  roster,
		teams:   map[models.TeamID]*Record{},
		players: map[models.PlayerID]*Record{},
	}
}

// Team returns the team's record, creating it on first use.
func (a *Aggregator) Team(id models.TeamID) *Record {
	r, ok := a.teams[id]
	if !ok {
		r = newRecord()
		a.teams[id] = r
	}
	return r
}

// Player returns the player's record, creating it on first use.
func (a *Aggregator) Player(id models.PlayerID) *Record {
	r, ok := a.players[id]
	if !ok {
		r = newRecord()
		a.players[id] = r
	}
	return r
}

// GoalShare returns the player's share of their team's goals over the
// buckets the filter matches.
func (a *Aggregator) GoalShare(player models.PlayerID, team models.TeamID, f Filter) models.Rate {
	p := a.Player(player).Sum(f)
	t := a.Team(team).Sum(f)
	return models.Rate{Num: float64(p.Goals), Den: float64(t.Goals)}
}

// ApplySeason folds every match of the season in order, tiering
// opponents by the season's final table and band width.
func (a *Aggregator) ApplySeason(s models.Season) {
	for _, m := range s.Matches {
		a.ApplyMatch(m, s.Positions, s.TierWidth)
	}
	log.WithFields(log.Fields{
		"season":  s.Tag,
		"matches": len(s.Matches),
	}).Debug("season folded into history")
}

// ApplyMatch folds one finished match. Positions is the final league
// table used to tier each side's opponent; width is the tier band width.
func (a *Aggregator) ApplyMatch(m models.Match, positions map[models.TeamID]int, width int) {
	homeKey := Key{Season: m.Season, Venue: models.VenueHome, Tier: TierOf(positions[m.AwayTeam], width)}
	awayKey := Key{Season: m.Season, Venue: models.VenueAway, Tier: TierOf(positions[m.HomeTeam], width)}

	home := a.Team(m.HomeTeam).tally(homeKey)
	home.Games++
	home.Goals += m.HomeGoals
	home.GoalsConceded += m.AwayGoals

	away := a.Team(m.AwayTeam).tally(awayKey)
	away.Games++
	away.Goals += m.AwayGoals
	away.GoalsConceded += m.HomeGoals

	appeared := map[models.PlayerID]bool{}
	for _, ev := range m.Events {
		team := m.HomeTeam
		key := homeKey
		if ev.Side == models.VenueAway {
			team = m.AwayTeam
			key = awayKey
		}
		if a.roster != nil {
			if cur, ok := a.roster[ev.PlayerID]; !ok || cur != team {
				continue
			}
		}
		t := a.Player(ev.PlayerID).tally(key)
		switch ev.Kind {
		case models.StatGoal:
			t.Goals += ev.Value
		case models.StatAssist:
			t.Assists += ev.Value
		case models.StatSave:
			t.Saves += ev.Value
		case models.StatBonus:
			t.Bonus += ev.Value
			// A bonus-score entry is recorded for everyone who played,
			// so it doubles as the appearance marker.
			if !appeared[ev.PlayerID] {
				appeared[ev.PlayerID] = true
				t.Games++
			}
		}
	}
}
