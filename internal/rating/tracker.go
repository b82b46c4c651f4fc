package rating

import (
	"math"

	"github.com/yourusername/points-forecast/internal/models"
)

const (
	// DefaultK is the rating gain of a full upset.
	DefaultK = 20.0
	// BaseRating seeds every track of a newly seen team.
	BaseRating = 1000.0
)

// Track selects which rating ledger a match update applies to.
type Track int

const (
	// TrackOverall is the single venue-blind rating per team.
	TrackOverall Track = iota
	// TrackSplit maintains separate home and away ratings. The home
	// team's home rating is compared against the away team's away
	// rating, so updates on this track are not zero-sum across the
	// whole ledger.
	TrackSplit
	// TrackSeason is an overall-style rating reset per season tag.
	TrackSeason
)

// Config tunes the tracker.
type Config struct {
	// K scales each rating update.
	K float64
	// HomeAdvantage is added to the home side's rating when computing
	// the expected score on the overall and season tracks.
	HomeAdvantage float64
}

// DefaultConfig returns the standard tuning.
func DefaultConfig() Config {
	return Config{K: DefaultK, HomeAdvantage: 0}
}

// TeamRating is the full rating state of one team.
type TeamRating struct {
	Overall float64
	Home    float64
	Away    float64
	// Season maps a season tag to that season's isolated rating.
	Season map[string]float64
}

func newTeamRating() *TeamRating {
	return &TeamRating{
		Overall: BaseRating,
		Home:    BaseRating,
		Away:    BaseRating,
		Season:  map[string]float64{},
	}
}

// HomeAdvantage is the gap between the team's home and away ratings.
func (t *TeamRating) HomeAdvantage() float64 {
	return t.Home - t.Away
}

// Delta is the signed rating change a match produced for each side.
type Delta struct {
	Home float64
	Away float64
}

// Tracker maintains Elo-style ratings for every team it has seen,
// updated incrementally one match at a time. It is not safe for
// concurrent use.
type Tracker struct {
	cfg   Config
	teams map[models.TeamID]*TeamRating
}

// NewTracker creates an empty tracker.
func NewTracker(cfg Config) *Tracker {
	if cfg.K == 0 {
		cfg.K = DefaultK
	}
	return &Tracker{cfg: cfg, teams: map[models.TeamID]*TeamRating{}}
}

// Rating returns the team's current state, seeding base ratings on
// first sight.
func (tr *Tracker) Rating(id models.TeamID) *TeamRating {
	t, ok := tr.teams[id]
	if !ok {
		t = newTeamRating()
		tr.teams[id] = t
	}
	return t
}

// Overall returns the team's venue-blind rating without seeding it.
func (tr *Tracker) Overall(id models.TeamID) float64 {
	if t, ok := tr.teams[id]; ok {
		return t.Overall
	}
	return BaseRating
}

// SeasonRating returns the team's rating within one season.
func (tr *Tracker) SeasonRating(id models.TeamID, season string) float64 {
	if t, ok := tr.teams[id]; ok {
		if r, ok := t.Season[season]; ok {
			return r
		}
	}
	return BaseRating
}

// Teams returns the IDs of every team seen so far.
func (tr *Tracker) Teams() []models.TeamID {
	ids := make([]models.TeamID, 0, len(tr.teams))
	for id := range tr.teams {
		ids = append(ids, id)
	}
	return ids
}

// ProcessMatch folds one finished match into every track and returns
// the overall-track delta.
func (tr *Tracker) ProcessMatch(m models.Match) Delta {
	d := tr.ApplyMatch(m, TrackOverall)
	tr.ApplyMatch(m, TrackSplit)
	tr.ApplyMatch(m, TrackSeason)
	return d
}

// ApplyMatch updates a single track with one finished match and returns
// the home and away rating changes on that track.
func (tr *Tracker) ApplyMatch(m models.Match, track Track) Delta {
	home := tr.Rating(m.HomeTeam)
	away := tr.Rating(m.AwayTeam)

	actual := actualScore(m.HomeGoals, m.AwayGoals)
	mult := marginMultiplier(m.GoalDifference())

	switch track {
	case TrackOverall:
		exp := expectedScore(home.Overall+tr.cfg.HomeAdvantage, away.Overall)
		d := tr.delta(actual, exp, mult)
		home.Overall += d
		away.Overall -= d
		return Delta{Home: d, Away: -d}

	case TrackSplit:
		// The home side's home rating faces the away side's away
		// rating. Points move between two different ledgers, so the
		// track as a whole does not conserve rating.
		expHome := expectedScore(home.Home+tr.cfg.HomeAdvantage, away.Away)
		d := tr.delta(actual, expHome, mult)
		home.Home += d
		away.Away -= d
		return Delta{Home: d, Away: -d}

	case TrackSeason:
		hr, ok := home.Season[m.Season]
		if !ok {
			hr = BaseRating
		}
		ar, ok := away.Season[m.Season]
		if !ok {
			ar = BaseRating
		}
		exp := expectedScore(hr+tr.cfg.HomeAdvantage, ar)
		d := tr.delta(actual, exp, mult)
		home.Season[m.Season] = hr + d
		away.Season[m.Season] = ar - d
		return Delta{Home: d, Away: -d}
	}
	return Delta{}
}

func (tr *Tracker) delta(actual, expected, mult float64) float64 {
	return tr.cfg.K * (actual - expected) * mult
}

// WinExpectation is the logistic win expectation of a side rated ra
// against a side rated rb.
func WinExpectation(ra, rb float64) float64 {
	return 1 / (1 + math.Pow(10, (rb-ra)/400))
}

func expectedScore(ra, rb float64) float64 {
	return WinExpectation(ra, rb)
}

// actualScore maps a result to 1, 0 or 0.5 from the home perspective.
func actualScore(homeGoals, awayGoals int) float64 {
	switch {
	case homeGoals > awayGoals:
		return 1
	case homeGoals < awayGoals:
		return 0
	default:
		return 0.5
	}
}

// marginMultiplier scales an update by the margin of victory. One-goal
// results and draws are unscaled; blowouts grow linearly past three.
func marginMultiplier(diff int) float64 {
	d := diff
	if d < 0 {
		d = -d
	}
	switch {
	case d <= 1:
		return 1.0
	case d == 2:
		return 1.5
	case d == 3:
		return 1.75
	default:
		return 1.75 + float64(d-3)/8
	}
}
