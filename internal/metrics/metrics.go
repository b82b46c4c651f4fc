// Package metrics provides the centralized Prometheus metrics registry
// for the forecast engine.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	MatchesReplayedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "points_forecast",
		Name:      "matches_replayed_total",
		Help:      "Total number of historical matches folded into ratings and history",
	})
	QuotesParsedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "points_forecast",
		Name:      "quotes_parsed_total",
		Help:      "Total number of bookmaker price quotes parsed",
	})
	QuotesDiscardedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "points_forecast",
		Name:      "quotes_discarded_total",
		Help:      "Total number of quotes dropped as unparseable or outliers",
	})
	ForecastsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "points_forecast",
		Name:      "forecasts_total",
		Help:      "Total number of player forecasts produced",
	})
	PlayersSkippedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "points_forecast",
		Name:      "players_skipped_total",
		Help:      "Total number of players excluded from a run",
	})
)

// Gauge metrics
var (
	TrackedTeams = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "points_forecast",
		Name:      "tracked_teams",
		Help:      "Number of teams with a rating",
	})
	LastRunForecasts = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "points_forecast",
		Name:      "last_run_forecasts",
		Help:      "Forecast rows produced by the most recent run",
	})
)

// Histogram metrics
var (
	MarketDecodeDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "points_forecast",
		Name:      "market_decode_duration_seconds",
		Help:      "Time taken to decode one fixture's markets",
		Buckets:   prometheus.DefBuckets,
	})
	RunDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "points_forecast",
		Name:      "run_duration_seconds",
		Help:      "Time taken by a full forecast run",
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
	})
)

// InitRegistry creates and populates the global registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(MatchesReplayedTotal)
		registry.MustRegister(QuotesParsedTotal)
		registry.MustRegister(QuotesDiscardedTotal)
		registry.MustRegister(ForecastsTotal)
		registry.MustRegister(PlayersSkippedTotal)

		registry.MustRegister(TrackedTeams)
		registry.MustRegister(LastRunForecasts)

		registry.MustRegister(MarketDecodeDuration)
		registry.MustRegister(RunDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordMatchReplayed counts one folded historical match.
func RecordMatchReplayed() {
	MatchesReplayedTotal.Inc()
}

// RecordQuotes counts parsed and discarded quotes for one market.
func RecordQuotes(parsed, discarded int) {
	QuotesParsedTotal.Add(float64(parsed))
	QuotesDiscardedTotal.Add(float64(discarded))
}

// RecordForecast counts one produced forecast row.
func RecordForecast() {
	ForecastsTotal.Inc()
}

// RecordPlayerSkipped counts one excluded player.
func RecordPlayerSkipped() {
	PlayersSkippedTotal.Inc()
}

// RecordMarketDecode records the time decoding one fixture's markets.
func RecordMarketDecode(durationSeconds float64) {
	MarketDecodeDuration.Observe(durationSeconds)
}

// RecordRunDuration records the time of a full forecast run.
func RecordRunDuration(durationSeconds float64) {
	RunDuration.Observe(durationSeconds)
}
