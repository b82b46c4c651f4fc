package datasource

import (
	"encoding/json"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/yourusername/points-forecast/internal/config"
	"github.com/yourusername/points-forecast/internal/models"
)

// LoadSeason reads one season's match archive. The file holds the
// matches in chronological order together with the final table; the
// tag and tier width from configuration override whatever the file
// carries so seasons can be re-bucketed without editing data files.
func LoadSeason(sc config.SeasonConfig) (models.Season, error) {
	data, err := os.ReadFile(sc.DataFile)
	if err != nil {
		return models.Season{}, fmt.Errorf("read season %s: %w", sc.Tag, err)
	}

	var season models.Season
	if err := json.Unmarshal(data, &season); err != nil {
		return models.Season{}, fmt.Errorf("parse season %s: %w", sc.Tag, err)
	}
	season.Tag = sc.Tag
	season.TierWidth = sc.TierWidth
	for i := range season.Matches {
		season.Matches[i].Season = sc.Tag
	}

	log.WithFields(log.Fields{
		"season":  sc.Tag,
		"matches": len(season.Matches),
	}).Debug("season archive loaded")
	return season, nil
}

// LoadSeasons reads every configured season archive in order.
func LoadSeasons(configs []config.SeasonConfig) ([]models.Season, error) {
	out := make([]models.Season, 0, len(configs))
	for _, sc := range configs {
		season, err := LoadSeason(sc)
		if err != nil {
			return nil, err
		}
		out = append(out, season)
	}
	return out, nil
}

// LoadQuotes reads collected bookmaker quotes for upcoming fixtures.
func LoadQuotes(path string) ([]models.FixtureQuotes, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read quotes: %w", err)
	}
	var quotes []models.FixtureQuotes
	if err := json.Unmarshal(data, &quotes); err != nil {
		return nil, fmt.Errorf("parse quotes: %w", err)
	}
	return quotes, nil
}
