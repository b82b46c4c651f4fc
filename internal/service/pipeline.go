// Package service orchestrates a forecast run end to end: season
// replay, market decoding, estimation and report assembly.
package service

import (
	"context"
	"sort"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/yourusername/points-forecast/internal/config"
	"github.com/yourusername/points-forecast/internal/forecast"
	"github.com/yourusername/points-forecast/internal/history"
	"github.com/yourusername/points-forecast/internal/metrics"
	"github.com/yourusername/points-forecast/internal/models"
	"github.com/yourusername/points-forecast/internal/odds"
	"github.com/yourusername/points-forecast/internal/rating"
)

// underdogGap is the league-position spread from which the weaker side
// counts as the underdog.
const underdogGap = 5

// RunInput is everything one forecast run consumes.
type RunInput struct {
	Seasons  []models.Season
	Teams    map[models.TeamID]models.TeamInfo
	Players  []models.Player
	Fixtures []models.Fixture
	Quotes   []models.FixtureQuotes
}

// Pipeline executes forecast runs.
type Pipeline struct {
	cfg     *config.Config
	tracker *rating.Tracker
	decoder *odds.Decoder
}

// NewPipeline creates a pipeline from configuration.
func NewPipeline(cfg *config.Config) *Pipeline {
	return &Pipeline{
		cfg: cfg,
		tracker: rating.NewTracker(rating.Config{
			K:             cfg.Engine.RatingK,
			HomeAdvantage: cfg.Engine.HomeAdvantage,
		}),
		decoder: &odds.Decoder{Margin: cfg.Engine.BookmakerMargin},
	}
}

// Replay folds every season into the rating tracker and returns the
// matchup aggregator built from the same matches.
func (p *Pipeline) Replay(seasons []models.Season, roster map[models.PlayerID]models.TeamID) *history.Aggregator {
	agg := history.NewAggregator(roster)
	for _, season := range seasons {
		for _, m := range season.Matches {
			p.tracker.ProcessMatch(m)
			agg.ApplyMatch(m, season.Positions, season.TierWidth)
			metrics.RecordMatchReplayed()
		}
		log.WithFields(log.Fields{
			"season":  season.Tag,
			"matches": len(season.Matches),
		}).Info("season replayed")
	}
	metrics.TrackedTeams.Set(float64(len(p.tracker.Teams())))
	return agg
}

// Standings renders the current rating table.
func (p *Pipeline) Standings(teams map[models.TeamID]models.TeamInfo) []models.TeamStanding {
	var out []models.TeamStanding
	for _, id := range p.tracker.Teams() {
		r := p.tracker.Rating(id)
		out = append(out, models.TeamStanding{
			Team:          id,
			Name:          teams[id].Name,
			Overall:       r.Overall,
			Home:          r.Home,
			Away:          r.Away,
			HomeAdvantage: r.HomeAdvantage(),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Overall != out[j].Overall {
			return out[i].Overall > out[j].Overall
		}
		return out[i].Team < out[j].Team
	})
	return out
}

// Run executes a full forecast over the input and returns the report.
func (p *Pipeline) Run(ctx context.Context, input RunInput) (*models.RunReport, error) {
	start := time.Now()

	roster := map[models.PlayerID]models.TeamID{}
	for _, pl := range input.Players {
		roster[pl.ID] = pl.Team
	}

	agg := p.Replay(input.Seasons, roster)
	fixtures := markUnderdogs(input.Fixtures, input.Teams)
	decoded := p.decodeQuotes(ctx, input.Quotes)

	season := currentSeason(input.Seasons)
	estimator := forecast.NewEstimator(
		p.tracker, agg,
		forecast.NewBonusModel(input.Players),
		input.Teams,
		season, p.cfg.Engine.TierWidth,
	)

	report := models.NewRunReport()
	for _, pl := range input.Players {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		teamFixtures := fixturesOf(fixtures, pl.Team)
		if len(teamFixtures) == 0 {
			continue
		}
		markets := p.marketsFor(pl, teamFixtures, decoded)

		fc, err := estimator.Estimate(pl, teamFixtures, markets)
		if err != nil {
			metrics.RecordPlayerSkipped()
			report.Skipped = append(report.Skipped, models.SkippedPlayer{
				Player: pl.ID,
				Name:   pl.Name,
				Reason: err.Error(),
			})
			log.WithFields(log.Fields{
				"player": pl.ID,
				"reason": err,
			}).Debug("player skipped")
			continue
		}
		metrics.RecordForecast()
		report.Forecasts = append(report.Forecasts, fc)
	}

	report.Ratings = p.Standings(input.Teams)
	report.Sort()

	metrics.LastRunForecasts.Set(float64(len(report.Forecasts)))
	metrics.RecordRunDuration(time.Since(start).Seconds())
	log.WithFields(log.Fields{
		"run_id":    report.RunID,
		"forecasts": len(report.Forecasts),
		"skipped":   len(report.Skipped),
		"duration":  time.Since(start),
	}).Info("forecast run complete")
	return report, nil
}

// decodedFixture is one fixture's markets after decoding.
type decodedFixture struct {
	quotes    models.FixtureQuotes
	result    *models.MatchOdds
	homeGoals models.Distribution
	awayGoals models.Distribution
	players   map[models.PlayerID]forecast.FixtureMarkets
}

// decodeQuotes fans fixture decoding out over the configured worker
// count. Decoding is pure arithmetic, so workers share nothing but the
// output slots.
func (p *Pipeline) decodeQuotes(ctx context.Context, quotes []models.FixtureQuotes) []decodedFixture {
	out := make([]decodedFixture, len(quotes))
	workers := p.cfg.Engine.Workers
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				out[i] = p.decodeFixture(quotes[i])
			}
		}()
	}
	for i := range quotes {
		select {
		case jobs <- i:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return out
		}
	}
	close(jobs)
	wg.Wait()
	return out
}

func (p *Pipeline) decodeFixture(fq models.FixtureQuotes) decodedFixture {
	start := time.Now()
	d := decodedFixture{
		quotes:  fq,
		players: map[models.PlayerID]forecast.FixtureMarkets{},
	}

	if fq.Result != nil {
		home, n1 := p.decoder.Probability(fq.Result.Home)
		draw, n2 := p.decoder.Probability(fq.Result.Draw)
		away, n3 := p.decoder.Probability(fq.Result.Away)
		metrics.RecordQuotes(len(fq.Result.Home)+len(fq.Result.Draw)+len(fq.Result.Away), n1+n2+n3)
		d.result = &models.MatchOdds{HomeWin: home, Draw: draw, AwayWin: away}
	}
	d.homeGoals = p.decodeMarket(fq.HomeGoals)
	d.awayGoals = p.decodeMarket(fq.AwayGoals)

	for _, pq := range fq.Players {
		d.players[pq.Player] = forecast.FixtureMarkets{
			PlayerGoals:   p.decodeMarket(pq.Goals),
			PlayerAssists: p.decodeMarket(pq.Assists),
			PlayerSaves:   p.decodeMarket(pq.Saves),
		}
	}

	metrics.RecordMarketDecode(time.Since(start).Seconds())
	return d
}

// decodeMarket decodes one over-threshold market, nil when absent.
func (p *Pipeline) decodeMarket(quotes []models.OddsQuote) models.Distribution {
	if len(quotes) == 0 {
		return nil
	}
	var parsed int
	for _, q := range quotes {
		parsed += len(q.Prices)
	}
	dist, discarded := p.decoder.Decode(quotes)
	metrics.RecordQuotes(parsed, discarded)
	if len(dist) == 0 {
		return nil
	}
	return dist
}

// marketsFor aligns decoded fixture markets with a player's scheduled
// fixtures. Quoted fixtures involving the team that match no schedule
// entry still count as observations, so stale market data trips the
// sample guard instead of silently shifting the forecast.
func (p *Pipeline) marketsFor(pl models.Player, teamFixtures []models.Fixture, decoded []decodedFixture) []forecast.FixtureMarkets {
	used := make([]bool, len(decoded))
	out := make([]forecast.FixtureMarkets, len(teamFixtures))

	for i, fx := range teamFixtures {
		for j, d := range decoded {
			if used[j] || d.quotes.HomeTeam != fx.HomeTeam || d.quotes.AwayTeam != fx.AwayTeam {
				continue
			}
			used[j] = true
			out[i] = playerMarkets(pl, fx, d)
			break
		}
	}

	// Leftover quoted fixtures for this team inflate the observation
	// count past the schedule.
	for j, d := range decoded {
		if !used[j] && (d.quotes.HomeTeam == pl.Team || d.quotes.AwayTeam == pl.Team) {
			out = append(out, forecast.FixtureMarkets{})
		}
	}
	return out
}

// playerMarkets assembles the player's view of one decoded fixture.
// The team's conceded outlook is the opponent's goals market.
func playerMarkets(pl models.Player, fx models.Fixture, d decodedFixture) forecast.FixtureMarkets {
	mk := d.players[pl.ID]
	if fx.HomeTeam == pl.Team {
		mk.TeamGoals = d.homeGoals
		mk.TeamConceded = d.awayGoals
	} else {
		mk.TeamGoals = d.awayGoals
		mk.TeamConceded = d.homeGoals
	}
	mk.Result = d.result
	return mk
}

// markUnderdogs stamps the underdog side on each fixture from current
// league positions.
func markUnderdogs(fixtures []models.Fixture, teams map[models.TeamID]models.TeamInfo) []models.Fixture {
	out := make([]models.Fixture, len(fixtures))
	copy(out, fixtures)
	for i, fx := range out {
		home := teams[fx.HomeTeam].LeaguePosition
		away := teams[fx.AwayTeam].LeaguePosition
		if home == 0 || away == 0 {
			continue
		}
		switch {
		case home-away >= underdogGap:
			out[i].UnderdogSide = models.VenueHome
		case away-home >= underdogGap:
			out[i].UnderdogSide = models.VenueAway
		}
	}
	return out
}

func fixturesOf(fixtures []models.Fixture, team models.TeamID) []models.Fixture {
	var out []models.Fixture
	for _, fx := range fixtures {
		if fx.Involves(team) {
			out = append(out, fx)
		}
	}
	return out
}

// currentSeason is the tag of the last configured season, the one in
// progress.
func currentSeason(seasons []models.Season) string {
	if len(seasons) == 0 {
		return ""
	}
	return seasons[len(seasons)-1].Tag
}
