package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	return log
}

func TestVideoFetcherPassesCountersThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/videos", r.URL.Path)
		assert.Equal(t, "mostPopular", r.URL.Query().Get("chart"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"items": [
				{
					"id": "abc123",
					"snippet": {
						"title": "Launch day",
						"description": "We shipped",
						"channelTitle": "acme",
						"publishedAt": "2025-06-01T10:00:00Z"
					},
					"statistics": {
						"viewCount": "500000",
						"likeCount": "1000",
						"commentCount": "50"
					}
				},
				{
					"id": "",
					"snippet": {"title": "skipped, no id"}
				}
			]
		}`))
	}))
	defer srv.Close()

	f := NewVideoFetcher("test-key", srv.URL, "US", 25, testLogger())
	videos := f.Fetch(context.Background())

	require.Len(t, videos, 1)
	v := videos[0]
	assert.Equal(t, "abc123", v.ID)
	assert.Equal(t, "Launch day", v.Title)
	assert.Equal(t, "acme", v.Channel)
	assert.Equal(t, "https://www.youtube.com/watch?v=abc123", v.URL)
	// Counters stay string-encoded; the normalizer parses them.
	assert.Equal(t, "500000", v.ViewCount)
	assert.Equal(t, "1000", v.LikeCount)
	assert.Equal(t, "50", v.CommentCount)
}

func TestVideoFetcherErrorsCollapseToEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	f := NewVideoFetcher("test-key", srv.URL, "", 0, testLogger())
	assert.Empty(t, f.Fetch(context.Background()))
}

func TestVideoFetcherRequiresAPIKey(t *testing.T) {
	f := NewVideoFetcher("", "http://unused", "", 0, testLogger())
	assert.Empty(t, f.Fetch(context.Background()))
}
