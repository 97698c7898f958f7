package trend

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulselab/trendpulse/pkg/feed"
)

func TestSocialCandidatesOnePerPost(t *testing.T) {
	n := NewNormalizer(testNow)

	posts := []feed.SocialPost{
		{ID: "1", Author: "alice", Text: "Big #AI release today", URL: "https://x.com/alice/1",
			CreatedAt: testNow.Add(-2 * time.Hour).Format(time.RFC3339), Likes: 10, Reposts: 3, Replies: 2},
		{ID: "2", Author: "@bob", Text: "Nothing to see", URL: "https://x.com/bob/2",
			CreatedAt: testNow.Add(-4 * time.Hour).Format(time.RFC3339)},
	}

	out := n.SocialCandidates(posts)
	require.Len(t, out, 2)

	assert.Equal(t, "social:1", out[0].ID)
	assert.Equal(t, KindSocial, out[0].SourceKind)
	assert.Equal(t, "@alice", out[0].SourceLabel)
	assert.Equal(t, Metrics{Likes: 10, Reposts: 3, Comments: 2}, out[0].Metrics)
	assert.Equal(t, []string{"ai"}, out[0].Tags)

	// Author handles are normalized to a single @ prefix.
	assert.Equal(t, "@bob", out[1].SourceLabel)
	assert.Equal(t, Metrics{}, out[1].Metrics)
}

func TestMergeSocialPosts(t *testing.T) {
	n := NewNormalizer(testNow)

	posts := []feed.SocialPost{
		{Text: "first post", Likes: 5, Reposts: 1, Replies: 2,
			CreatedAt: testNow.Add(-6 * time.Hour).Format(time.RFC3339)},
		{Text: "second post", Likes: 7, Reposts: 2, Replies: 3,
			CreatedAt: testNow.Add(-1 * time.Hour).Format(time.RFC3339)},
	}

	c := n.MergeSocialPosts(posts, "https://x.com/alice", "@alice")

	assert.Equal(t, KindAggregate, c.SourceKind)
	assert.Equal(t, "@alice", c.SourceLabel)
	assert.Equal(t, "first post\n\nsecond post", c.Content)
	assert.Equal(t, Metrics{Likes: 12, Reposts: 3, Comments: 5}, c.Metrics)
	// Anchored at the newest post.
	assert.Equal(t, testNow.Add(-1*time.Hour), c.Timestamp)
}

func TestVideoCandidatesParseCounts(t *testing.T) {
	n := NewNormalizer(testNow)

	videos := []feed.Video{
		{ID: "v1", Title: "Launch video", Channel: "acme", URL: "https://youtube.com/watch?v=v1",
			PublishedAt: testNow.Add(-3 * time.Hour).Format(time.RFC3339),
			ViewCount:   "12,345", LikeCount: "678", CommentCount: "90"},
		{ID: "v2", Title: "Broken stats", Channel: "acme", URL: "https://youtube.com/watch?v=v2",
			ViewCount: "not-a-number", LikeCount: "", CommentCount: "-5"},
	}

	out := n.VideoCandidates(videos)
	require.Len(t, out, 2)

	assert.Equal(t, "video:v1", out[0].ID)
	assert.Equal(t, Metrics{Views: 12345, Likes: 678, Comments: 90}, out[0].Metrics)

	// Malformed counters default to zero, never an error.
	assert.Equal(t, Metrics{}, out[1].Metrics)
}

func TestInvalidTimestampTreatedAsNow(t *testing.T) {
	n := NewNormalizer(testNow)

	videos := []feed.Video{
		{ID: "v1", Title: "no date"},
		{ID: "v2", Title: "bad date", PublishedAt: "yesterday-ish"},
	}

	out := n.VideoCandidates(videos)
	require.Len(t, out, 2)
	assert.Equal(t, testNow, out[0].Timestamp)
	assert.Equal(t, testNow, out[1].Timestamp)

	// Full recency, by the documented leniency rule.
	s := NewScorer(Weights{}, 0, 0, 0)
	assert.InDelta(t, 1.0, s.Score(&out[0], testNow).Recency, 1e-9)
}

func TestPageCandidates(t *testing.T) {
	n := NewNormalizer(testNow)

	content := strings.Repeat("article body ", 100)
	pages := []feed.Page{
		{URL: "https://news.example.com/story", Title: "A long headline about the market economy", Content: content},
	}

	out := n.PageCandidates(pages)
	require.Len(t, out, 1)

	c := out[0]
	assert.Equal(t, KindWeb, c.SourceKind)
	assert.Equal(t, "news.example.com", c.SourceLabel)
	// No native metrics: popularity is proxied from content length.
	assert.Equal(t, len([]rune(content)), c.Metrics.Views)
	assert.Equal(t, CategoryBusiness, c.Category)
}

func TestPageSyntheticIDsUnique(t *testing.T) {
	n := NewNormalizer(testNow)

	pages := []feed.Page{
		{URL: "https://example.com/same", Content: "one"},
		{URL: "https://example.com/same", Content: "two"},
		{URL: "https://example.com/same", Content: "three"},
	}

	out := n.PageCandidates(pages)
	require.Len(t, out, 3)

	seen := make(map[string]bool)
	for _, c := range out {
		assert.False(t, seen[c.ID], "duplicate id %s", c.ID)
		seen[c.ID] = true
	}
}

func TestTitleTruncation(t *testing.T) {
	n := NewNormalizer(testNow)

	long := strings.Repeat("x", 200)
	out := n.SocialCandidates([]feed.SocialPost{{ID: "1", Text: long}})
	require.Len(t, out, 1)
	assert.Equal(t, strings.Repeat("x", 80)+"...", out[0].Title)
	assert.Equal(t, long, out[0].Content)
}
