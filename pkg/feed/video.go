package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultVideoAPIBase = "https://www.googleapis.com/youtube/v3"

// VideoFetcher pulls trending videos from a YouTube-style API. The API
// ships statistics as string-encoded counters; records pass those through
// untouched and the normalizer parses them.
type VideoFetcher struct {
	client  *http.Client
	apiKey  string
	baseURL string
	region  string
	limit   int
	log     *logrus.Logger
}

// NewVideoFetcher creates a video fetcher. baseURL overrides the API
// endpoint, mainly for tests.
func NewVideoFetcher(apiKey, baseURL, region string, limit int, log *logrus.Logger) *VideoFetcher {
	if baseURL == "" {
		baseURL = defaultVideoAPIBase
	}
	if region == "" {
		region = "US"
	}
	if limit <= 0 {
		limit = 25
	}
	return &VideoFetcher{
		client:  &http.Client{Timeout: 30 * time.Second},
		apiKey:  apiKey,
		baseURL: baseURL,
		region:  region,
		limit:   limit,
		log:     log,
	}
}

// Fetch collects the current most-popular videos. Failures are logged and
// collapse to an empty batch; they never propagate into ranking.
func (v *VideoFetcher) Fetch(ctx context.Context) []Video {
	videos, err := v.fetchMostPopular(ctx)
	if err != nil {
		v.log.WithError(err).Warn("video fetch failed")
		return nil
	}
	return videos
}

func (v *VideoFetcher) fetchMostPopular(ctx context.Context) ([]Video, error) {
	if v.apiKey == "" {
		return nil, fmt.Errorf("video: API key required (set VIDEO_API_KEY)")
	}

	params := url.Values{}
	params.Set("part", "snippet,statistics")
	params.Set("chart", "mostPopular")
	params.Set("regionCode", v.region)
	params.Set("maxResults", fmt.Sprintf("%d", v.limit))
	params.Set("key", v.apiKey)

	reqURL := v.baseURL + "/videos?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create video request: %w", err)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch videos: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("video API status %d", resp.StatusCode)
	}

	var result videoListResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode video response: %w", err)
	}

	var videos []Video
	for _, item := range result.Items {
		if item.ID == "" {
			continue
		}
		videos = append(videos, Video{
			ID:           item.ID,
			Title:        item.Snippet.Title,
			Description:  item.Snippet.Description,
			Channel:      item.Snippet.ChannelTitle,
			URL:          fmt.Sprintf("https://www.youtube.com/watch?v=%s", item.ID),
			PublishedAt:  item.Snippet.PublishedAt,
			ViewCount:    item.Statistics.ViewCount,
			LikeCount:    item.Statistics.LikeCount,
			CommentCount: item.Statistics.CommentCount,
		})
	}
	return videos, nil
}

type videoListResult struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			ChannelTitle string `json:"channelTitle"`
			PublishedAt  string `json:"publishedAt"`
		} `json:"snippet"`
		Statistics struct {
			ViewCount    string `json:"viewCount"`
			LikeCount    string `json:"likeCount"`
			CommentCount string `json:"commentCount"`
		} `json:"statistics"`
	} `json:"items"`
}
