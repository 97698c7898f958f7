package trend

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pulselab/trendpulse/pkg/feed"
)

// timestampLayouts are tried in order when parsing raw record timestamps.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Normalizer converts raw per-origin records into Candidates. It is built
// fresh per ranking invocation with an explicit now, which it uses both for
// synthetic IDs and as the lenient fallback for unparseable timestamps
// (missing/invalid timestamps are deliberately treated as "now", giving
// full recency, rather than failing).
type Normalizer struct {
	now time.Time
	seq int
}

// NewNormalizer creates a normalizer anchored at now. A zero now falls back
// to the wall clock.
func NewNormalizer(now time.Time) *Normalizer {
	if now.IsZero() {
		now = time.Now().UTC()
	}
	return &Normalizer{now: now}
}

// SocialCandidates converts a social-post batch into one candidate per
// post, for ranking.
func (n *Normalizer) SocialCandidates(posts []feed.SocialPost) []Candidate {
	var candidates []Candidate
	for _, post := range posts {
		id := post.ID
		if id == "" {
			id = n.syntheticID(post.URL)
		}

		c := Candidate{
			ID:          fmt.Sprintf("social:%s", id),
			Title:       truncate(post.Text, 80),
			Content:     post.Text,
			SourceLabel: "@" + strings.TrimPrefix(post.Author, "@"),
			SourceKind:  KindSocial,
			URL:         post.URL,
			Timestamp:   n.parseTimestamp(post.CreatedAt),
			Metrics: Metrics{
				Likes:    post.Likes,
				Reposts:  post.Reposts,
				Comments: post.Replies,
			},
			Tags:     ExtractHashtags(post.Text),
			Category: Categorize(post.Text),
		}
		candidates = append(candidates, c)
	}
	return candidates
}

// MergeSocialPosts converts a social-post batch into a single aggregate
// document candidate: concatenated text, summed metrics. Used when the
// batch feeds downstream text analysis rather than per-item ranking.
// The newest post timestamp anchors the aggregate.
func (n *Normalizer) MergeSocialPosts(posts []feed.SocialPost, sourceURL, label string) Candidate {
	var (
		parts  []string
		m      Metrics
		newest time.Time
	)
	for _, post := range posts {
		if post.Text != "" {
			parts = append(parts, post.Text)
		}
		m.Likes += post.Likes
		m.Reposts += post.Reposts
		m.Comments += post.Replies

		if ts := n.parseTimestamp(post.CreatedAt); ts.After(newest) {
			newest = ts
		}
	}
	if newest.IsZero() {
		newest = n.now
	}

	content := strings.Join(parts, "\n\n")
	return Candidate{
		ID:          fmt.Sprintf("aggregate:%s", n.syntheticID(sourceURL)),
		Title:       truncate(content, 80),
		Content:     content,
		SourceLabel: label,
		SourceKind:  KindAggregate,
		URL:         sourceURL,
		Timestamp:   newest,
		Metrics:     m,
		Tags:        ExtractHashtags(content),
		Category:    Categorize(content),
	}
}

// VideoCandidates converts a video batch into one candidate per video.
// String-encoded counters default to 0 on parse failure.
func (n *Normalizer) VideoCandidates(videos []feed.Video) []Candidate {
	var candidates []Candidate
	for _, v := range videos {
		id := v.ID
		if id == "" {
			id = n.syntheticID(v.URL)
		}

		text := v.Title + " " + v.Description
		c := Candidate{
			ID:          fmt.Sprintf("video:%s", id),
			Title:       truncate(v.Title, 80),
			Content:     v.Description,
			SourceLabel: v.Channel,
			SourceKind:  KindVideo,
			URL:         v.URL,
			Timestamp:   n.parseTimestamp(v.PublishedAt),
			Metrics: Metrics{
				Views:    parseCount(v.ViewCount),
				Likes:    parseCount(v.LikeCount),
				Comments: parseCount(v.CommentCount),
			},
			Tags:     ExtractTags(text),
			Category: Categorize(text),
		}
		candidates = append(candidates, c)
	}
	return candidates
}

// PageCandidates converts a crawled-page batch into one candidate per page.
// Crawled content has no native engagement metrics, so estimated views are
// proxied from extracted content length (longer content reads as more
// popular). The ID is synthesized from the URL plus a sequence number and
// the normalizer's anchor time, so repeated URLs in one run stay unique.
func (n *Normalizer) PageCandidates(pages []feed.Page) []Candidate {
	var candidates []Candidate
	for _, p := range pages {
		text := p.Title + " " + p.Content
		c := Candidate{
			ID:          fmt.Sprintf("web:%s", n.syntheticID(p.URL)),
			Title:       truncate(p.Title, 80),
			Content:     p.Content,
			SourceLabel: hostOf(p.URL),
			SourceKind:  KindWeb,
			URL:         p.URL,
			Timestamp:   n.parseTimestamp(p.PublishedAt),
			Metrics: Metrics{
				Views: len([]rune(p.Content)),
			},
			Tags:     ExtractTags(text),
			Category: Categorize(text),
		}
		candidates = append(candidates, c)
	}
	return candidates
}

// parseTimestamp parses a raw timestamp string, falling back to the
// normalizer's anchor time on anything unparseable.
func (n *Normalizer) parseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return n.now
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC()
		}
	}
	return n.now
}

func (n *Normalizer) syntheticID(rawURL string) string {
	n.seq++
	sum := sha1.Sum([]byte(fmt.Sprintf("%s|%d|%d", rawURL, n.seq, n.now.UnixNano())))
	return hex.EncodeToString(sum[:8])
}

// parseCount parses a string-encoded counter, defaulting to 0 on failure.
func parseCount(s string) int {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
