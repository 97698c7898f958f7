package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pulselab/trendpulse/internal/config"
	"github.com/pulselab/trendpulse/internal/scheduler"
	"github.com/pulselab/trendpulse/internal/store"
	"github.com/pulselab/trendpulse/pkg/alert"
	"github.com/pulselab/trendpulse/pkg/feed"
	"github.com/pulselab/trendpulse/pkg/server"
	"github.com/pulselab/trendpulse/pkg/trend"
)

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return log
}

func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func buildScorer(cfg *config.Config) *trend.Scorer {
	r := cfg.Ranking
	return trend.NewScorer(r.Weights, r.DecayHours, r.ViewDiscount, r.LogDivisor)
}

func buildFetchers(cfg *config.Config, log *logrus.Logger) (*feed.SocialFetcher, *feed.VideoFetcher, *feed.WebFetcher) {
	filter := feed.NewFilter(cfg.Feeds.Filter.Keywords, cfg.Feeds.Filter.ExcludeKeywords)

	var social *feed.SocialFetcher
	if cfg.Feeds.Social.Enabled {
		timelines := make([]feed.Timeline, len(cfg.Feeds.Social.Timelines))
		for i, tl := range cfg.Feeds.Social.Timelines {
			timelines[i] = feed.Timeline{Handle: tl.Handle, URL: tl.URL}
		}
		social = feed.NewSocialFetcher(timelines, filter, log)
	}

	var video *feed.VideoFetcher
	if cfg.Feeds.Video.Enabled {
		video = feed.NewVideoFetcher(cfg.Feeds.Video.APIKey, cfg.Feeds.Video.BaseURL,
			cfg.Feeds.Video.Region, cfg.Feeds.Video.Limit, log)
	}

	var web *feed.WebFetcher
	if cfg.Feeds.Web.Enabled && len(cfg.Feeds.Web.URLs) > 0 {
		web = feed.NewWebFetcher(cfg.Feeds.Web.URLs, filter, log)
	}

	return social, video, web
}

func buildAlertManager(cfg *config.Config) *alert.Manager {
	var notifiers []alert.Notifier

	if cfg.Alerts.Slack.Enabled && cfg.Alerts.Slack.WebhookURL != "" {
		notifiers = append(notifiers, alert.NewSlack(cfg.Alerts.Slack.WebhookURL))
	}
	if cfg.Alerts.Discord.Enabled && cfg.Alerts.Discord.WebhookURL != "" {
		notifiers = append(notifiers, alert.NewDiscord(cfg.Alerts.Discord.WebhookURL))
	}
	if cfg.Alerts.Webhook.Enabled && cfg.Alerts.Webhook.URL != "" {
		notifiers = append(notifiers, alert.NewWebhook(cfg.Alerts.Webhook.URL, cfg.Alerts.Webhook.Secret))
	}

	return alert.NewManager(notifiers)
}

func buildScheduler(cfg *config.Config, db store.Store, log *logrus.Logger) *scheduler.Scheduler {
	social, video, web := buildFetchers(cfg, log)
	return scheduler.New(db, social, video, web,
		buildScorer(cfg),
		cfg.Ranking.RankConfig(),
		buildAlertManager(cfg),
		cfg.Schedule.ParseFetchInterval(),
		cfg.Schedule.ParseRankInterval(),
		cfg.Alerts.MinOverall,
		log,
	)
}

func runFetch() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := newLogger()

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	sched := buildScheduler(cfg, db, log)
	count, err := sched.RefreshNow(context.Background())
	if err != nil {
		return err
	}

	log.WithField("candidates", count).Info("fetch complete")
	return nil
}

func runTrending(jsonOutput bool, minScore float64, limit int, categories []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := newLogger()

	if minScore >= 0 {
		cfg.Ranking.MinScore = minScore
	}
	if limit > 0 {
		cfg.Ranking.MaxResults = limit
	}
	if len(categories) > 0 {
		cfg.Ranking.Categories = nil
		for _, c := range categories {
			cfg.Ranking.Categories = append(cfg.Ranking.Categories, trend.Category(c))
		}
	}

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	sched := buildScheduler(cfg, db, log)
	ranked, err := sched.RankNow(context.Background())
	if err != nil {
		return fmt.Errorf("rank: %w", err)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(ranked)
	}

	if len(ranked) == 0 {
		fmt.Println("no trending candidates (try fetching first: trendpulse fetch)")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCORE\tKIND\tCATEGORY\tTITLE\tPUBLISHED")
	for _, c := range ranked {
		fmt.Fprintf(w, "%.3f\t%s\t%s\t%s\t%s\n",
			c.Score.Overall, c.SourceKind, c.Category, c.Title,
			c.Timestamp.Format(time.RFC3339))
	}
	return w.Flush()
}

func runServe(port int) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := newLogger()

	if port == 0 {
		port = cfg.Server.Port
	}

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	sched := buildScheduler(cfg, db, log)
	srv := server.New(db, buildScorer(cfg), cfg.Ranking.RankConfig(), sched, port, log)
	return srv.ListenAndServe()
}

func runDaemon(port int) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := newLogger()

	if port == 0 {
		port = cfg.Server.Port
	}

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sched := buildScheduler(cfg, db, log)

	// Start scheduler in background.
	go func() {
		if err := sched.Run(ctx); err != nil && ctx.Err() == nil {
			log.WithError(err).Error("scheduler error")
		}
	}()

	srv := server.New(db, buildScorer(cfg), cfg.Ranking.RankConfig(), sched, port, log)
	go func() {
		<-ctx.Done()
		log.Info("shutting down")
	}()

	return srv.ListenAndServe()
}
