package feed

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
)

// WebFetcher crawls configured article URLs and extracts readable text.
type WebFetcher struct {
	client *http.Client
	urls   []string
	filter *Filter
	log    *logrus.Logger
}

// NewWebFetcher creates a web page fetcher.
func NewWebFetcher(urls []string, filter *Filter, log *logrus.Logger) *WebFetcher {
	return &WebFetcher{
		client: &http.Client{Timeout: 30 * time.Second},
		urls:   urls,
		filter: filter,
		log:    log,
	}
}

// Fetch crawls all configured URLs. Per-page failures are logged and
// skipped.
func (w *WebFetcher) Fetch(ctx context.Context) []Page {
	var pages []Page
	for _, u := range w.urls {
		page, err := w.fetchPage(ctx, u)
		if err != nil {
			w.log.WithError(err).WithField("url", u).Warn("page fetch failed")
			continue
		}
		if w.filter != nil && !w.filter.Matches(page.Title+" "+page.Content) {
			continue
		}
		pages = append(pages, page)
	}
	return pages
}

func (w *WebFetcher) fetchPage(ctx context.Context, pageURL string) (Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return Page{}, fmt.Errorf("create page request %s: %w", pageURL, err)
	}
	req.Header.Set("User-Agent", "trendpulse/1.0")

	resp, err := w.client.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("fetch page %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Page{}, fmt.Errorf("page %s status %d", pageURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return Page{}, fmt.Errorf("parse page %s: %w", pageURL, err)
	}

	doc.Find("script, style, nav, footer, aside").Remove()

	title := strings.TrimSpace(doc.Find("title").First().Text())

	var parts []string
	doc.Find("article p, main p, p").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if len(text) >= 40 {
			parts = append(parts, text)
		}
	})

	published, _ := doc.Find(`meta[property="article:published_time"]`).Attr("content")

	return Page{
		URL:         pageURL,
		Title:       title,
		Content:     strings.Join(parts, "\n"),
		PublishedAt: published,
	}, nil
}
