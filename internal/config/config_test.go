package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulselab/trendpulse/pkg/trend"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "./trendpulse.db", cfg.Database.Path)
	assert.Equal(t, 20, cfg.Ranking.MaxResults)
	assert.Equal(t, 0.1, cfg.Ranking.MinScore)
	assert.Equal(t, 24.0, cfg.Ranking.TimeWindowHours)
	assert.Equal(t, trend.DefaultWeights(), cfg.Ranking.Weights)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
database:
  path: /tmp/custom.db
ranking:
  max_results: 5
  min_score: 0.25
  categories: [technology, science]
feeds:
  social:
    enabled: true
    timelines:
      - handle: alice
        url: https://nitter.net/alice/rss
server:
  port: 9090
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/custom.db", cfg.Database.Path)
	assert.Equal(t, 5, cfg.Ranking.MaxResults)
	assert.Equal(t, 0.25, cfg.Ranking.MinScore)
	assert.Equal(t, []trend.Category{trend.CategoryTechnology, trend.CategoryScience}, cfg.Ranking.Categories)
	require.Len(t, cfg.Feeds.Social.Timelines, 1)
	assert.Equal(t, "alice", cfg.Feeds.Social.Timelines[0].Handle)
	assert.Equal(t, 9090, cfg.Server.Port)
	// Untouched sections keep their defaults.
	assert.Equal(t, "15m", cfg.Schedule.FetchInterval)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestParseIntervalsFallBack(t *testing.T) {
	s := ScheduleConfig{FetchInterval: "garbage", RankInterval: "1h"}
	assert.Equal(t, "15m0s", s.ParseFetchInterval().String())
	assert.Equal(t, "1h0m0s", s.ParseRankInterval().String())
}
