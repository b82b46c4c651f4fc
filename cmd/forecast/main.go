package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/points-forecast/internal/config"
	"github.com/yourusername/points-forecast/internal/datasource"
	"github.com/yourusername/points-forecast/internal/logger"
	"github.com/yourusername/points-forecast/internal/metrics"
	"github.com/yourusername/points-forecast/internal/models"
	"github.com/yourusername/points-forecast/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	quotesFile string
	outFile    string
	cfg        *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	pointsCmd.Flags().StringVarP(&quotesFile, "quotes", "q", "", "Path to collected bookmaker quotes (JSON)")
	pointsCmd.Flags().StringVarP(&outFile, "out", "o", "", "Write the run report to this file instead of stdout")

	rootCmd.AddCommand(ratingsCmd)
	rootCmd.AddCommand(pointsCmd)
	rootCmd.AddCommand(versionCmd)
}

var rootCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Fantasy points forecast engine",
	Long:  `Replays historical seasons into team ratings and matchup history, decodes bookmaker markets, and forecasts fantasy points per player.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadWithDefaults(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := config.Validate(cfg); err != nil {
			return err
		}
		logger.Configure(cfg.App.LogLevel, cfg.App.Environment)
		return nil
	},
}

var ratingsCmd = &cobra.Command{
	Use:   "ratings",
	Short: "Replay historical seasons and print the team rating table",
	RunE: func(cmd *cobra.Command, args []string) error {
		seasons, err := datasource.LoadSeasons(cfg.Seasons)
		if err != nil {
			return err
		}

		pipeline := service.NewPipeline(cfg)
		pipeline.Replay(seasons, nil)

		client := newFantasyClient()
		defer client.Close()
		snap, err := client.Snapshot(cmd.Context())
		if err != nil {
			logrus.WithError(err).Warn("roster unavailable, printing IDs only")
			snap = &datasource.Snapshot{Teams: map[models.TeamID]models.TeamInfo{}}
		}

		return writeJSON(pipeline.Standings(snap.Teams), "")
	},
}

var pointsCmd = &cobra.Command{
	Use:   "points",
	Short: "Produce per-player points forecasts for the next round",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if cfg.Metrics.Enabled {
			go serveMetrics(cfg.Metrics.Address)
		}

		seasons, err := datasource.LoadSeasons(cfg.Seasons)
		if err != nil {
			return err
		}
		client := newFantasyClient()
		defer client.Close()
		snap, err := client.Snapshot(ctx)
		if err != nil {
			return err
		}

		var fixtures []models.Fixture
		for round := snap.NextRound; round < snap.NextRound+cfg.Engine.ForecastRounds; round++ {
			fs, err := client.Fixtures(ctx, round)
			if err != nil {
				return err
			}
			fixtures = append(fixtures, fs...)
		}

		var quotes []models.FixtureQuotes
		if quotesFile != "" {
			quotes, err = datasource.LoadQuotes(quotesFile)
			if err != nil {
				return err
			}
		}

		pipeline := service.NewPipeline(cfg)
		report, err := pipeline.Run(ctx, service.RunInput{
			Seasons:  seasons,
			Teams:    snap.Teams,
			Players:  snap.Players,
			Fixtures: fixtures,
			Quotes:   quotes,
		})
		if err != nil {
			return err
		}
		return writeJSON(report, outFile)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("forecast %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	},
}

func newFantasyClient() *datasource.FantasyClient {
	httpCfg := datasource.DefaultHTTPClientConfig()
	httpCfg.Timeout = time.Duration(cfg.API.TimeoutSeconds) * time.Second
	httpCfg.MaxRetries = cfg.API.RetryAttempts
	httpCfg.RateLimit = cfg.API.RequestsPerSecond
	httpCfg.Burst = cfg.API.Burst
	return datasource.NewFantasyClient(
		cfg.API.BaseURL,
		datasource.NewRateLimitedHTTPClient(httpCfg, nil),
		time.Duration(cfg.API.CacheTTLSeconds)*time.Second,
	)
}

func writeJSON(v any, path string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if path == "" {
		fmt.Println(string(data))
		return nil
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	if err := http.ListenAndServe(addr, mux); err != nil {
		logrus.WithError(err).Error("metrics server stopped")
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
