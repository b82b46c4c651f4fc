package models

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Estimate is the set of per-fixture sub-estimates that feed a points
// formula. Market estimates come from decoded bookmaker quotes, history
// estimates from aggregated past matches; when a market is missing the
// history value is substituted so both paths stay comparable.
type Estimate struct {
	Goals         float64 `json:"goals"`
	Assists       float64 `json:"assists"`
	Saves         float64 `json:"saves"`
	CleanSheet    float64 `json:"clean_sheet"`
	GoalsConceded float64 `json:"goals_conceded"`
	Bonus         float64 `json:"bonus"`
	Defense       float64 `json:"defense"`
}

// PlayerForecast is the output row for one player over the forecast
// horizon.
type PlayerForecast struct {
	Player        PlayerID `json:"player_id"`
	Name          string   `json:"name"`
	Team          TeamID   `json:"team_id"`
	Position      Position `json:"position"`
	Fixtures      int      `json:"fixtures"`
	MarketPoints  float64  `json:"market_points"`
	HistoryPoints float64  `json:"history_points"`
	Market        Estimate `json:"market"`
	History       Estimate `json:"history"`
}

// SkippedPlayer records a player excluded from the run and why.
type SkippedPlayer struct {
	Player PlayerID `json:"player_id"`
	Name   string   `json:"name"`
	Reason string   `json:"reason"`
}

// TeamStanding is one row of the rating table attached to a run report.
type TeamStanding struct {
	Team          TeamID  `json:"team_id"`
	Name          string  `json:"name"`
	Overall       float64 `json:"overall"`
	Home          float64 `json:"home"`
	Away          float64 `json:"away"`
	HomeAdvantage float64 `json:"home_advantage"`
}

// RunReport bundles everything one forecast run produced.
type RunReport struct {
	RunID     string           `json:"run_id"`
	CreatedAt time.Time        `json:"created_at"`
	Forecasts []PlayerForecast `json:"forecasts"`
	Skipped   []SkippedPlayer  `json:"skipped"`
	Ratings   []TeamStanding   `json:"ratings"`
}

// NewRunReport creates an empty report with a fresh run ID.
func NewRunReport() *RunReport {
	return &RunReport{
		RunID:     uuid.New().String(),
		CreatedAt: time.Now().UTC(),
	}
}

// Sort orders forecasts by market points descending, ratings by overall
// rating descending. Ties break on player name and team ID so output is
// stable across runs.
func (r *RunReport) Sort() {
	sort.Slice(r.Forecasts, func(i, j int) bool {
		a, b := r.Forecasts[i], r.Forecasts[j]
		if a.MarketPoints != b.MarketPoints {
			return a.MarketPoints > b.MarketPoints
		}
		return a.Name < b.Name
	})
	sort.Slice(r.Ratings, func(i, j int) bool {
		a, b := r.Ratings[i], r.Ratings[j]
		if a.Overall != b.Overall {
			return a.Overall > b.Overall
		}
		return a.Team < b.Team
	})
}
