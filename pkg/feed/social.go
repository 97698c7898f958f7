package feed

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/sirupsen/logrus"
)

// Timeline is one social account timeline exposed as an RSS/Atom feed.
type Timeline struct {
	Handle string
	URL    string
}

// SocialFetcher pulls recent posts from configured social timelines.
// Timeline feeds carry no repost/like counters; those stay zero and the
// scoring layer tolerates that.
type SocialFetcher struct {
	client    *http.Client
	parser    *gofeed.Parser
	timelines []Timeline
	filter    *Filter
	log       *logrus.Logger
}

// NewSocialFetcher creates a social timeline fetcher.
func NewSocialFetcher(timelines []Timeline, filter *Filter, log *logrus.Logger) *SocialFetcher {
	return &SocialFetcher{
		client:    &http.Client{Timeout: 30 * time.Second},
		parser:    gofeed.NewParser(),
		timelines: timelines,
		filter:    filter,
		log:       log,
	}
}

// Fetch collects posts from all timelines. Per-timeline failures are
// logged and skipped so one dead feed never empties the whole batch.
func (s *SocialFetcher) Fetch(ctx context.Context) []SocialPost {
	var posts []SocialPost
	for _, tl := range s.timelines {
		batch, err := s.fetchTimeline(ctx, tl)
		if err != nil {
			s.log.WithError(err).WithField("handle", tl.Handle).Warn("social timeline fetch failed")
			continue
		}
		posts = append(posts, batch...)
	}
	return posts
}

func (s *SocialFetcher) fetchTimeline(ctx context.Context, tl Timeline) ([]SocialPost, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tl.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("create timeline request @%s: %w", tl.Handle, err)
	}
	req.Header.Set("User-Agent", "trendpulse/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch timeline @%s: %w", tl.Handle, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("timeline @%s status %d", tl.Handle, resp.StatusCode)
	}

	parsed, err := s.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse timeline @%s: %w", tl.Handle, err)
	}

	var posts []SocialPost
	for _, entry := range parsed.Items {
		text := entry.Title
		if text == "" {
			text = entry.Description
		}
		if s.filter != nil && !s.filter.Matches(text) {
			continue
		}

		created := entry.Published
		if created == "" && entry.PublishedParsed != nil {
			created = entry.PublishedParsed.UTC().Format(time.RFC3339)
		}

		posts = append(posts, SocialPost{
			ID:        fmt.Sprintf("%s:%s", tl.Handle, entry.GUID),
			Author:    strings.TrimPrefix(tl.Handle, "@"),
			Text:      text,
			URL:       entry.Link,
			CreatedAt: created,
		})
	}
	return posts, nil
}
