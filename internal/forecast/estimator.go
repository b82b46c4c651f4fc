package forecast

import (
	"errors"
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/yourusername/points-forecast/internal/history"
	"github.com/yourusername/points-forecast/internal/models"
	"github.com/yourusername/points-forecast/internal/rating"
)

var (
	// ErrTooManySamples flags a player with more market observations
	// than scheduled fixtures, usually a sign of stale or mismatched
	// market data.
	ErrTooManySamples = errors.New("more market samples than scheduled fixtures")
	// ErrUnknownPosition flags a player whose role has no scoring
	// formula.
	ErrUnknownPosition = errors.New("unknown position")
)

// FixtureMarkets carries the decoded betting markets of one fixture
// from one player's perspective. A nil distribution means the market
// was not offered; the history estimate stands in for it.
type FixtureMarkets struct {
	PlayerGoals   models.Distribution
	PlayerAssists models.Distribution
	PlayerSaves   models.Distribution
	TeamGoals     models.Distribution
	TeamConceded  models.Distribution
	Result        *models.MatchOdds
}

// Estimator turns ratings, aggregated history and decoded markets into
// per-player points forecasts.
type Estimator struct {
	ratings *rating.Tracker
	history *history.Aggregator
	bonus   *BonusModel
	teams   map[models.TeamID]models.TeamInfo
	season  string
	width   int
}

// NewEstimator wires the estimator's inputs. Season is the tag of the
// season in progress; width is its tier band width.
func NewEstimator(tr *rating.Tracker, agg *history.Aggregator, bonus *BonusModel, teams map[models.TeamID]models.TeamInfo, season string, width int) *Estimator {
	return &Estimator{
		ratings: tr,
		history: agg,
		bonus:   bonus,
		teams:   teams,
		season:  season,
		width:   width,
	}
}

// Estimate forecasts one player over the given fixtures. Markets align
// positionally with fixtures and may be shorter; more markets than
// fixtures is rejected with ErrTooManySamples.
func (e *Estimator) Estimate(p models.Player, fixtures []models.Fixture, markets []FixtureMarkets) (models.PlayerForecast, error) {
	if len(markets) > len(fixtures) {
		log.WithFields(log.Fields{
			"player":   p.ID,
			"fixtures": len(fixtures),
			"markets":  len(markets),
		}).Warn("market sample count exceeds fixtures")
		return models.PlayerForecast{}, ErrTooManySamples
	}
	if p.Position == models.PositionUnknown || p.Position == "" {
		return models.PlayerForecast{}, ErrUnknownPosition
	}

	out := models.PlayerForecast{
		Player:   p.ID,
		Name:     p.Name,
		Team:     p.Team,
		Position: p.Position,
		Fixtures: len(fixtures),
	}

	var marketMNG, historyMNG float64
	for i, fx := range fixtures {
		hist := e.historyOutlook(p, fx)
		var mk FixtureMarkets
		if i < len(markets) {
			mk = markets[i]
		}
		market := marketOutlook(hist, mk)

		addEstimate(&out.History, hist)
		addEstimate(&out.Market, market)

		if p.Position == models.PositionManager {
			m, h := e.managerPoints(p, fx, mk, hist, market)
			marketMNG += m
			historyMNG += h
		}
	}

	if p.Position == models.PositionManager {
		out.MarketPoints = marketMNG * p.ChanceOfPlaying
		out.HistoryPoints = historyMNG * p.ChanceOfPlaying
		return out, nil
	}

	out.MarketPoints = positionPoints(p.Position, len(fixtures), out.Market) * p.ChanceOfPlaying
	out.HistoryPoints = positionPoints(p.Position, len(fixtures), out.History) * p.ChanceOfPlaying * minutesFactor(p)
	return out, nil
}

// historyOutlook builds the per-fixture sub-estimates from aggregated
// history alone.
func (e *Estimator) historyOutlook(p models.Player, fx models.Fixture) models.Estimate {
	venue := fx.VenueOf(p.Team)
	opp := fx.Opponent(p.Team)
	tier := history.TierOf(e.teams[opp].LeaguePosition, e.width)

	team := e.history.Team(p.Team)
	player := e.history.Player(p.ID)

	teamGoals := team.GoalsPerGame(history.Filter{Venue: venue, Tier: tier}).
		Or(team.GoalsPerGame(history.Filter{Venue: venue})).
		Or(team.GoalsPerGame(history.Filter{}))

	// Expected goals blend the player's slice of team output with
	// their raw scoring rate.
	share := e.history.GoalShare(p.ID, p.Team, history.Filter{})
	xG := (share.Value()*teamGoals.Value() + player.GoalsPerGame(history.Filter{}).Value()) / 2

	xA := player.AssistsPerGame(history.Filter{Venue: venue}).
		Or(player.AssistsPerGame(history.Filter{})).Value()

	saves := player.SavesPerGame(history.Filter{})
	xSaves := saves.Value()
	if !saves.Known() {
		xSaves = p.SavesPerGame
	}

	xGC := e.expectedConceded(p.Team, opp, venue, tier)

	return models.Estimate{
		Goals:         xG,
		Assists:       xA,
		Saves:         xSaves,
		GoalsConceded: xGC,
		CleanSheet:    math.Exp(-xGC),
		Bonus:         e.bonus.Expected(p, opp),
		Defense:       defensePoints(p.Position, p.DefensiveActionsPer90),
	}
}

// expectedConceded composes the team's current-season concession rate
// with its rate against the opponent's strength tier, scaled by the
// rating gap.
func (e *Estimator) expectedConceded(team, opp models.TeamID, venue models.Venue, tier history.Tier) float64 {
	rec := e.history.Team(team)

	perGame := rec.ConcededPerGame(history.Filter{Season: e.season, Venue: venue}).
		Or(rec.ConcededPerGame(history.Filter{Season: e.season})).
		Or(rec.ConcededPerGame(history.Filter{}))
	vsTier := rec.ConcededPerGame(history.Filter{Tier: tier}).Or(perGame)

	ratio := 1.0
	if r := e.ratings.Overall(team); r > 0 {
		ratio = e.ratings.Overall(opp) / r
	}
	return 0.5 * (perGame.Value() + vsTier.Value()) * ratio
}

// marketOutlook overlays decoded markets on the history estimate,
// keeping the history value wherever a market is absent.
func marketOutlook(hist models.Estimate, mk FixtureMarkets) models.Estimate {
	out := hist
	if mk.PlayerGoals != nil {
		out.Goals = mk.PlayerGoals.Mean()
	}
	if mk.PlayerAssists != nil {
		out.Assists = mk.PlayerAssists.Mean()
	}
	if mk.PlayerSaves != nil {
		out.Saves = mk.PlayerSaves.Mean()
	}
	if mk.TeamConceded != nil {
		gc := mk.TeamConceded.Mean()
		out.GoalsConceded = gc
		// Average the quoted shut-out probability with the Poisson
		// implied one to damp single-book noise.
		out.CleanSheet = (mk.TeamConceded.Mass(0) + math.Exp(-gc)) / 2
	}
	return out
}

// managerPoints scores one fixture for a manager on both paths.
func (e *Estimator) managerPoints(p models.Player, fx models.Fixture, mk FixtureMarkets, hist, market models.Estimate) (marketPts, historyPts float64) {
	venue := fx.VenueOf(p.Team)
	opp := fx.Opponent(p.Team)

	winPts, drawPts := 6.0, 3.0
	if fx.UnderdogSide == venue {
		winPts, drawPts = 10.0, 5.0
	}

	// History win chance comes from the split-track ratings; without
	// a result market there is no separate draw estimate.
	var ra, rb float64
	if venue == models.VenueHome {
		ra = e.ratings.Rating(p.Team).Home
		rb = e.ratings.Rating(opp).Away
	} else {
		ra = e.ratings.Rating(p.Team).Away
		rb = e.ratings.Rating(opp).Home
	}
	histWin := rating.WinExpectation(ra, rb)

	teamGoalsHist := e.history.Team(p.Team).GoalsPerGame(history.Filter{Venue: venue}).
		Or(e.history.Team(p.Team).GoalsPerGame(history.Filter{})).Value()
	historyPts = winPts*histWin + 2*hist.CleanSheet + teamGoalsHist

	teamGoalsMkt := teamGoalsHist
	if mk.TeamGoals != nil {
		teamGoalsMkt = mk.TeamGoals.Mean()
	}
	if mk.Result != nil {
		win := mk.Result.HomeWin
		if venue == models.VenueAway {
			win = mk.Result.AwayWin
		}
		marketPts = winPts*win + drawPts*mk.Result.Draw + 2*market.CleanSheet + teamGoalsMkt
	} else {
		marketPts = winPts*histWin + 2*market.CleanSheet + teamGoalsMkt
	}
	return marketPts, historyPts
}

// positionPoints applies the scoring formula of a position to summed
// sub-estimates over n fixtures.
func positionPoints(pos models.Position, n int, e models.Estimate) float64 {
	appearance := 2 * float64(n)
	switch pos {
	case models.PositionGoalkeeper:
		return appearance + e.Saves/3 + 4*e.CleanSheet - e.GoalsConceded/2 + e.Bonus + e.Defense
	case models.PositionDefender:
		return appearance + 6*e.Goals + 3*e.Assists + 4*e.CleanSheet - e.GoalsConceded/2 + e.Bonus + e.Defense
	case models.PositionMidfielder:
		return appearance + 5*e.Goals + 3*e.Assists + e.CleanSheet + e.Bonus + e.Defense
	case models.PositionForward:
		return appearance + 4*e.Goals + 3*e.Assists + e.Bonus + e.Defense
	}
	return 0
}

// minutesFactor discounts the history path for part-time players.
func minutesFactor(p models.Player) float64 {
	f := p.MinutesPerGame() / 90
	if f > 1 {
		return 1
	}
	return f
}

func addEstimate(dst *models.Estimate, src models.Estimate) {
	dst.Goals += src.Goals
	dst.Assists += src.Assists
	dst.Saves += src.Saves
	dst.GoalsConceded += src.GoalsConceded
	dst.CleanSheet += src.CleanSheet
	dst.Bonus += src.Bonus
	dst.Defense += src.Defense
}
