package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pulselab/trendpulse/pkg/trend"
)

// Config is the root configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Schedule ScheduleConfig `yaml:"schedule"`
	Feeds    FeedsConfig    `yaml:"feeds"`
	Ranking  RankingConfig  `yaml:"ranking"`
	Alerts   AlertsConfig   `yaml:"alerts"`
	Server   ServerConfig   `yaml:"server"`
}

// DatabaseConfig configures SQLite storage.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// ScheduleConfig configures fetch and ranking intervals.
type ScheduleConfig struct {
	FetchInterval string `yaml:"fetch_interval"`
	RankInterval  string `yaml:"rank_interval"`
}

// ParseFetchInterval returns the fetch interval as time.Duration.
func (s ScheduleConfig) ParseFetchInterval() time.Duration {
	d, err := time.ParseDuration(s.FetchInterval)
	if err != nil {
		return 15 * time.Minute
	}
	return d
}

// ParseRankInterval returns the ranking interval as time.Duration.
func (s ScheduleConfig) ParseRankInterval() time.Duration {
	d, err := time.ParseDuration(s.RankInterval)
	if err != nil {
		return 30 * time.Minute
	}
	return d
}

// FeedsConfig holds configuration for all origin fetchers.
type FeedsConfig struct {
	Social SocialConfig `yaml:"social"`
	Video  VideoConfig  `yaml:"video"`
	Web    WebConfig    `yaml:"web"`
	Filter FilterConfig `yaml:"filter"`
}

// SocialConfig for the social timeline fetcher. Timelines configured here
// count as the user's personal origin when ranking.
type SocialConfig struct {
	Enabled   bool             `yaml:"enabled"`
	Timelines []TimelineConfig `yaml:"timelines"`
}

// TimelineConfig is a single social timeline feed.
type TimelineConfig struct {
	Handle string `yaml:"handle"`
	URL    string `yaml:"url"`
}

// VideoConfig for the video platform fetcher.
type VideoConfig struct {
	Enabled bool   `yaml:"enabled"`
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Region  string `yaml:"region"`
	Limit   int    `yaml:"limit"`
}

// WebConfig for the article crawler.
type WebConfig struct {
	Enabled bool     `yaml:"enabled"`
	URLs    []string `yaml:"urls"`
}

// FilterConfig configures fetch-time keyword filtering.
type FilterConfig struct {
	Keywords        []string `yaml:"keywords"`
	ExcludeKeywords []string `yaml:"exclude_keywords"`
}

// RankingConfig configures scoring and ranking policy.
type RankingConfig struct {
	MaxResults      int              `yaml:"max_results"`
	MinScore        float64          `yaml:"min_score"`
	TimeWindowHours float64          `yaml:"time_window_hours"`
	Categories      []trend.Category `yaml:"categories"`
	Weights         trend.Weights    `yaml:"weights"`
	DecayHours      float64          `yaml:"decay_hours"`
	ViewDiscount    float64          `yaml:"view_discount"`
	LogDivisor      float64          `yaml:"log_divisor"`
}

// RankConfig converts the ranking section into a trend.Config.
func (r RankingConfig) RankConfig() trend.Config {
	return trend.Config{
		MaxResults:      r.MaxResults,
		MinScore:        r.MinScore,
		Categories:      r.Categories,
		TimeWindowHours: r.TimeWindowHours,
	}
}

// AlertsConfig configures alert destinations.
type AlertsConfig struct {
	MinOverall float64       `yaml:"min_overall"`
	Slack      SlackConfig   `yaml:"slack"`
	Discord    DiscordConfig `yaml:"discord"`
	Webhook    WebhookConfig `yaml:"webhook"`
}

// SlackConfig for Slack webhook alerts.
type SlackConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
}

// DiscordConfig for Discord webhook alerts.
type DiscordConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
}

// WebhookConfig for generic webhook alerts.
type WebhookConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
	Secret  string `yaml:"secret"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{Path: "./trendpulse.db"},
		Schedule: ScheduleConfig{
			FetchInterval: "15m",
			RankInterval:  "30m",
		},
		Feeds: FeedsConfig{
			Social: SocialConfig{Enabled: false},
			Video:  VideoConfig{Enabled: false, Region: "US", Limit: 25},
			Web: WebConfig{
				Enabled: true,
				URLs:    nil,
			},
		},
		Ranking: RankingConfig{
			MaxResults:      20,
			MinScore:        0.1,
			TimeWindowHours: 24,
			Weights:         trend.DefaultWeights(),
			DecayHours:      24,
			ViewDiscount:    100,
			LogDivisor:      6,
		},
		Alerts: AlertsConfig{MinOverall: 0.8},
		Server: ServerConfig{Port: 8080},
	}
}

// Load reads configuration from a YAML file and applies env var overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides overrides config values with environment variables.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TRENDPULSE_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("VIDEO_API_KEY"); v != "" {
		cfg.Feeds.Video.APIKey = v
		cfg.Feeds.Video.Enabled = true
	}
	if v := os.Getenv("SLACK_WEBHOOK_URL"); v != "" {
		cfg.Alerts.Slack.WebhookURL = v
		cfg.Alerts.Slack.Enabled = true
	}
	if v := os.Getenv("DISCORD_WEBHOOK_URL"); v != "" {
		cfg.Alerts.Discord.WebhookURL = v
		cfg.Alerts.Discord.Enabled = true
	}
}
