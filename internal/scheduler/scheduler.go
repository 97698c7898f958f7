package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pulselab/trendpulse/internal/store"
	"github.com/pulselab/trendpulse/pkg/alert"
	"github.com/pulselab/trendpulse/pkg/feed"
	"github.com/pulselab/trendpulse/pkg/trend"
)

// Scheduler runs periodic fetching and ranking. Fetch failures collapse to
// empty batches here; they never reach the ranking core.
type Scheduler struct {
	store    store.Store
	social   *feed.SocialFetcher
	video    *feed.VideoFetcher
	web      *feed.WebFetcher
	scorer   *trend.Scorer
	rankCfg  trend.Config
	alertMgr *alert.Manager

	fetchInt   time.Duration
	rankInt    time.Duration
	minOverall float64

	lastAlerted string
	log         *logrus.Logger
}

// New creates a scheduler. Any fetcher may be nil when its origin is
// disabled.
func New(
	s store.Store,
	social *feed.SocialFetcher,
	video *feed.VideoFetcher,
	web *feed.WebFetcher,
	scorer *trend.Scorer,
	rankCfg trend.Config,
	alertMgr *alert.Manager,
	fetchInt, rankInt time.Duration,
	minOverall float64,
	log *logrus.Logger,
) *Scheduler {
	if fetchInt == 0 {
		fetchInt = 15 * time.Minute
	}
	if rankInt == 0 {
		rankInt = 30 * time.Minute
	}
	if minOverall == 0 {
		minOverall = 0.8
	}
	if log == nil {
		log = logrus.New()
	}
	return &Scheduler{
		store:      s,
		social:     social,
		video:      video,
		web:        web,
		scorer:     scorer,
		rankCfg:    rankCfg,
		alertMgr:   alertMgr,
		fetchInt:   fetchInt,
		rankInt:    rankInt,
		minOverall: minOverall,
		log:        log,
	}
}

// Run starts the scheduler loop. Blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	fetchTicker := time.NewTicker(s.fetchInt)
	rankTicker := time.NewTicker(s.rankInt)
	defer fetchTicker.Stop()
	defer rankTicker.Stop()

	// Run immediately on start.
	s.log.Info("scheduler: initial fetch")
	if _, err := s.RefreshNow(ctx); err != nil {
		s.log.WithError(err).Warn("initial fetch failed")
	}
	s.log.Info("scheduler: initial ranking")
	s.rankAndAlert(ctx)

	s.log.WithFields(logrus.Fields{
		"fetch_interval": s.fetchInt.String(),
		"rank_interval":  s.rankInt.String(),
	}).Info("scheduler: running")

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler: stopped")
			return ctx.Err()
		case <-fetchTicker.C:
			if _, err := s.RefreshNow(ctx); err != nil {
				s.log.WithError(err).Warn("fetch cycle failed")
			}
		case <-rankTicker.C:
			s.rankAndAlert(ctx)
		}
	}
}

// RefreshNow fetches all enabled origins, normalizes and scores the
// results, and persists them. Returns the number of candidates stored.
// Also backs the HTTP refresh endpoint.
func (s *Scheduler) RefreshNow(ctx context.Context) (int, error) {
	now := time.Now().UTC()
	norm := trend.NewNormalizer(now)

	var candidates []trend.Candidate

	if s.social != nil {
		posts := s.social.Fetch(ctx)
		candidates = append(candidates, norm.SocialCandidates(posts)...)
		s.log.WithField("posts", len(posts)).Debug("social fetched")
	}
	if s.video != nil {
		videos := s.video.Fetch(ctx)
		candidates = append(candidates, norm.VideoCandidates(videos)...)
		s.log.WithField("videos", len(videos)).Debug("videos fetched")
	}
	if s.web != nil {
		pages := s.web.Fetch(ctx)
		candidates = append(candidates, norm.PageCandidates(pages)...)
		s.log.WithField("pages", len(pages)).Debug("pages fetched")
	}

	s.scorer.ScoreAll(candidates, now)

	if err := s.store.UpsertCandidates(ctx, candidates); err != nil {
		return 0, fmt.Errorf("persist candidates: %w", err)
	}

	s.log.WithField("candidates", len(candidates)).Info("fetch cycle complete")
	return len(candidates), nil
}

// RankNow re-scores stored candidates, ranks them, and persists the run.
// Social-origin candidates count as the user set; everything else is
// global.
func (s *Scheduler) RankNow(ctx context.Context) ([]trend.Candidate, error) {
	now := time.Now().UTC()

	since := now.Add(-time.Duration(s.rankCfg.TimeWindowHours * float64(time.Hour)))
	if s.rankCfg.TimeWindowHours <= 0 {
		since = now.Add(-24 * time.Hour)
	}

	all, err := s.store.ListCandidates(ctx, store.ListOpts{Since: since, Limit: 1000})
	if err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}

	// Recompute recency against the current time before ranking.
	s.scorer.ScoreAll(all, now)

	var user, global []trend.Candidate
	for _, c := range all {
		if c.SourceKind == trend.KindSocial {
			user = append(user, c)
		} else {
			global = append(global, c)
		}
	}

	ranked := trend.Rank(user, global, s.rankCfg, now)

	ids := make([]string, len(ranked))
	for i, c := range ranked {
		ids[i] = c.ID
	}
	run := &store.Ranking{
		RanAt:           now,
		CandidateIDs:    ids,
		MaxResults:      s.rankCfg.MaxResults,
		MinScore:        s.rankCfg.MinScore,
		TimeWindowHours: s.rankCfg.TimeWindowHours,
	}
	if err := s.store.SaveRanking(ctx, run); err != nil {
		return ranked, fmt.Errorf("persist ranking: %w", err)
	}

	return ranked, nil
}

func (s *Scheduler) rankAndAlert(ctx context.Context) {
	ranked, err := s.RankNow(ctx)
	if err != nil {
		s.log.WithError(err).Warn("ranking cycle failed")
		return
	}
	s.log.WithField("ranked", len(ranked)).Info("ranking cycle complete")

	if s.alertMgr == nil || !s.alertMgr.HasNotifiers() || len(ranked) == 0 {
		return
	}

	top := ranked[0]
	if top.Score.Overall < s.minOverall || top.ID == s.lastAlerted {
		return
	}

	n := &alert.Notification{
		Title:    top.Title,
		Body:     fmt.Sprintf("Trending from %s with overall score %.2f", top.SourceLabel, top.Score.Overall),
		URL:      top.URL,
		Overall:  top.Score.Overall,
		Category: top.Category,
		Top:      ranked,
	}
	if err := s.alertMgr.Broadcast(ctx, n); err != nil {
		s.log.WithError(err).Warn("alert broadcast failed")
		return
	}
	s.lastAlerted = top.ID
	s.log.WithField("title", top.Title).Info("alerted")
}
