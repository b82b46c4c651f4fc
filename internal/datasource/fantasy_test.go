package datasource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/points-forecast/internal/models"
)

const bootstrapJSON = `{
  "teams": [
    {"id": 1, "name": "Arsenal", "position": 2},
    {"id": 2, "name": "Chelsea", "position": 6}
  ],
  "elements": [
    {
      "id": 10, "web_name": "Saka", "team": 1, "element_type": 3,
      "minutes": 900, "starts": 10, "now_cost": 105,
      "status": "a", "chance_of_playing_next_round": null
    },
    {
      "id": 11, "web_name": "Raya", "team": 1, "element_type": 1,
      "minutes": 900, "starts": 10, "now_cost": 55,
      "status": "d", "chance_of_playing_next_round": 75
    }
  ],
  "events": [
    {"id": 29, "is_next": false, "finished": true},
    {"id": 30, "is_next": true, "finished": false}
  ]
}`

const fixturesJSON = `[
  {"event": 30, "team_h": 1, "team_a": 2, "finished": false},
  {"event": 30, "team_h": 2, "team_a": 1, "finished": true}
]`

func newTestServer(t *testing.T) (*httptest.Server, *int) {
	t.Helper()
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		switch r.URL.Path {
		case bootstrapPath:
			_, _ = w.Write([]byte(bootstrapJSON))
		case fixturesPath:
			_, _ = w.Write([]byte(fixturesJSON))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func newTestClient(url string) *FantasyClient {
	cfg := DefaultHTTPClientConfig()
	cfg.RateLimit = 1000
	cfg.Burst = 100
	return NewFantasyClient(url, NewRateLimitedHTTPClient(cfg, nil), time.Minute)
}

func TestSnapshotDecodesRoster(t *testing.T) {
	srv, _ := newTestServer(t)
	client := newTestClient(srv.URL)
	defer client.Close()

	snap, err := client.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 30, snap.NextRound)
	require.Len(t, snap.Teams, 2)
	assert.Equal(t, "Arsenal", snap.Teams["1"].Name)
	assert.Equal(t, 2, snap.Teams["1"].LeaguePosition)

	require.Len(t, snap.Players, 2)
	saka := snap.Players[0]
	assert.Equal(t, models.PlayerID("10"), saka.ID)
	assert.Equal(t, models.PositionMidfielder, saka.Position)
	assert.InDelta(t, 10.5, saka.Price, 1e-9)
	assert.InDelta(t, 1.0, saka.ChanceOfPlaying, 1e-9)

	raya := snap.Players[1]
	assert.Equal(t, models.PositionGoalkeeper, raya.Position)
	assert.InDelta(t, 0.75, raya.ChanceOfPlaying, 1e-9)
}

func TestSnapshotIsCached(t *testing.T) {
	srv, hits := newTestServer(t)
	client := newTestClient(srv.URL)
	defer client.Close()

	_, err := client.Snapshot(context.Background())
	require.NoError(t, err)
	_, err = client.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, *hits)
}

func TestFixturesSkipFinished(t *testing.T) {
	srv, _ := newTestServer(t)
	client := newTestClient(srv.URL)
	defer client.Close()

	fixtures, err := client.Fixtures(context.Background(), 30)
	require.NoError(t, err)

	require.Len(t, fixtures, 1)
	assert.Equal(t, models.TeamID("1"), fixtures[0].HomeTeam)
	assert.Equal(t, models.TeamID("2"), fixtures[0].AwayTeam)
	assert.Equal(t, 30, fixtures[0].Round)
}

func TestSnapshotErrorOnBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)

	cfg := DefaultHTTPClientConfig()
	cfg.MaxRetries = 0
	cfg.RateLimit = 1000
	client := NewFantasyClient(srv.URL, NewRateLimitedHTTPClient(cfg, nil), time.Minute)
	defer client.Close()

	_, err := client.Snapshot(context.Background())
	assert.Error(t, err)
}
