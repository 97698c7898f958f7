package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTimeline = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>alice timeline</title>
  <item>
    <title>Shipping the new ranking engine today #golang</title>
    <link>https://x.com/alice/status/1</link>
    <guid>1</guid>
    <pubDate>Mon, 02 Jun 2025 10:00:00 +0000</pubDate>
  </item>
  <item>
    <title>Lunch pics</title>
    <link>https://x.com/alice/status/2</link>
    <guid>2</guid>
    <pubDate>Mon, 02 Jun 2025 11:00:00 +0000</pubDate>
  </item>
</channel>
</rss>`

func TestSocialFetcherParsesTimeline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(sampleTimeline))
	}))
	defer srv.Close()

	f := NewSocialFetcher([]Timeline{{Handle: "alice", URL: srv.URL}}, nil, testLogger())
	posts := f.Fetch(context.Background())

	require.Len(t, posts, 2)
	assert.Equal(t, "alice:1", posts[0].ID)
	assert.Equal(t, "alice", posts[0].Author)
	assert.Equal(t, "Shipping the new ranking engine today #golang", posts[0].Text)
	assert.Equal(t, "https://x.com/alice/status/1", posts[0].URL)
	assert.NotEmpty(t, posts[0].CreatedAt)
}

func TestSocialFetcherAppliesFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleTimeline))
	}))
	defer srv.Close()

	filter := NewFilter([]string{"ranking"}, nil)
	f := NewSocialFetcher([]Timeline{{Handle: "alice", URL: srv.URL}}, filter, testLogger())
	posts := f.Fetch(context.Background())

	require.Len(t, posts, 1)
	assert.Contains(t, posts[0].Text, "ranking engine")
}

func TestSocialFetcherSkipsDeadTimeline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/dead" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(sampleTimeline))
	}))
	defer srv.Close()

	f := NewSocialFetcher([]Timeline{
		{Handle: "dead", URL: srv.URL + "/dead"},
		{Handle: "alice", URL: srv.URL + "/alice"},
	}, nil, testLogger())

	posts := f.Fetch(context.Background())
	assert.Len(t, posts, 2)
}
