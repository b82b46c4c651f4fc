// Package datasource fetches roster and fixture data from the public
// fantasy API.
package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	cache "github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"

	"github.com/yourusername/points-forecast/internal/models"
)

// bootstrapPath serves the full roster snapshot; fixturesPath the
// schedule.
const (
	bootstrapPath = "/bootstrap-static/"
	fixturesPath  = "/fixtures/"
)

// bootstrapResponse mirrors the slice of the roster payload we consume.
type bootstrapResponse struct {
	Teams []struct {
		ID       int    `json:"id"`
		Name     string `json:"name"`
		Position int    `json:"position"`
	} `json:"teams"`
	Elements []struct {
		ID                    int     `json:"id"`
		WebName               string  `json:"web_name"`
		Team                  int     `json:"team"`
		ElementType           int     `json:"element_type"`
		Minutes               int     `json:"minutes"`
		Starts                int     `json:"starts"`
		NowCost               int     `json:"now_cost"`
		Status                string  `json:"status"`
		ChanceOfPlaying       *int    `json:"chance_of_playing_next_round"`
		BPSPerGame            float64 `json:"bps_per_game"`
		SavesPerGame          float64 `json:"saves_per_90"`
		DefensiveContribution float64 `json:"defensive_contribution_per_90"`
	} `json:"elements"`
	Events []struct {
		ID         int  `json:"id"`
		IsNext     bool `json:"is_next"`
		IsFinished bool `json:"finished"`
	} `json:"events"`
}

type fixtureResponse struct {
	Event    int  `json:"event"`
	TeamH    int  `json:"team_h"`
	TeamA    int  `json:"team_a"`
	Finished bool `json:"finished"`
}

// Snapshot is the roster state used to seed a forecast run.
type Snapshot struct {
	Teams     map[models.TeamID]models.TeamInfo
	Players   []models.Player
	NextRound int
}

// FantasyClient fetches roster and fixture data, memoizing responses so
// repeated runs within the TTL stay off the wire.
type FantasyClient struct {
	baseURL string
	http    *RateLimitedHTTPClient
	cache   *cache.Cache
}

// NewFantasyClient creates a client against the given API base URL.
func NewFantasyClient(baseURL string, httpClient *RateLimitedHTTPClient, ttl time.Duration) *FantasyClient {
	return &FantasyClient{
		baseURL: baseURL,
		http:    httpClient,
		cache:   cache.New(ttl, ttl*2),
	}
}

// Close releases the underlying HTTP client.
func (c *FantasyClient) Close() error {
	return c.http.Close()
}

// Snapshot fetches and converts the roster payload.
func (c *FantasyClient) Snapshot(ctx context.Context) (*Snapshot, error) {
	if cached, found := c.cache.Get(bootstrapPath); found {
		return cached.(*Snapshot), nil
	}

	var payload bootstrapResponse
	if err := c.getJSON(ctx, c.baseURL+bootstrapPath, &payload); err != nil {
		return nil, fmt.Errorf("fetch roster: %w", err)
	}

	snap := &Snapshot{Teams: map[models.TeamID]models.TeamInfo{}}
	for _, t := range payload.Teams {
		id := teamID(t.ID)
		snap.Teams[id] = models.TeamInfo{
			ID:             id,
			Name:           t.Name,
			LeaguePosition: t.Position,
		}
	}
	for _, e := range payload.Elements {
		p := models.Player{
			ID:                    models.PlayerID(strconv.Itoa(e.ID)),
			Name:                  e.WebName,
			Team:                  teamID(e.Team),
			Position:              positionOf(e.ElementType),
			Minutes:               e.Minutes,
			Starts:                e.Starts,
			Games:                 e.Starts,
			Price:                 float64(e.NowCost) / 10,
			ChanceOfPlaying:       models.AvailabilityFromStatus(e.Status, e.ChanceOfPlaying),
			BonusScorePerGame:     e.BPSPerGame,
			SavesPerGame:          e.SavesPerGame,
			DefensiveActionsPer90: e.DefensiveContribution,
		}
		snap.Players = append(snap.Players, p)
	}
	for _, ev := range payload.Events {
		if ev.IsNext {
			snap.NextRound = ev.ID
			break
		}
	}

	log.WithFields(log.Fields{
		"teams":      len(snap.Teams),
		"players":    len(snap.Players),
		"next_round": snap.NextRound,
	}).Info("roster snapshot loaded")

	c.cache.SetDefault(bootstrapPath, snap)
	return snap, nil
}

// Fixtures fetches the unfinished fixtures of one round.
func (c *FantasyClient) Fixtures(ctx context.Context, round int) ([]models.Fixture, error) {
	key := fixturesPath + strconv.Itoa(round)
	if cached, found := c.cache.Get(key); found {
		return cached.([]models.Fixture), nil
	}

	var payload []fixtureResponse
	url := fmt.Sprintf("%s%s?event=%d", c.baseURL, fixturesPath, round)
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return nil, fmt.Errorf("fetch fixtures for round %d: %w", round, err)
	}

	var out []models.Fixture
	for _, f := range payload {
		if f.Finished {
			continue
		}
		out = append(out, models.Fixture{
			Round:    f.Event,
			HomeTeam: teamID(f.TeamH),
			AwayTeam: teamID(f.TeamA),
		})
	}

	c.cache.SetDefault(key, out)
	return out, nil
}

func (c *FantasyClient) getJSON(ctx context.Context, url string, out any) error {
	resp, err := c.http.Get(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func teamID(id int) models.TeamID {
	return models.TeamID(strconv.Itoa(id))
}

func positionOf(elementType int) models.Position {
	switch elementType {
	case 1:
		return models.PositionGoalkeeper
	case 2:
		return models.PositionDefender
	case 3:
		return models.PositionMidfielder
	case 4:
		return models.PositionForward
	case 5:
		return models.PositionManager
	default:
		return models.PositionUnknown
	}
}
