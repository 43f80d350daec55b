package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

const (
	newsDataBaseURL          = "https://newsdata.io/api/1/news"
	newsDataSourceLabel      = "NewsData.io"
	newsDataClientTimeout    = 30 * time.Second
	newsDataMaxResponseBytes = 4 << 20 // 4MB
)

// NewsDataFetcher pulls competitor news from the NewsData.io REST API.
// The free tier has no server-side time filter, so the lookback window
// is applied client-side after normalization.
type NewsDataFetcher struct {
	APIKey   string
	Query    string
	Language string
	Category string
	Lookback time.Duration
	Detector *Detector

	// BaseURL and Now are overridable for tests.
	BaseURL string
	Now     func() time.Time
}

func (f *NewsDataFetcher) Name() string {
	return "newsdata"
}

type newsDataResponse struct {
	Status       string            `json:"status"`
	TotalResults int               `json:"totalResults"`
	Results      []newsDataArticle `json:"results"`
	Message      string            `json:"message"`
}

type newsDataArticle struct {
	Title       string   `json:"title"`
	Link        string   `json:"link"`
	SourceID    string   `json:"source_id"`
	PubDate     string   `json:"pubDate"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	Creator     []string `json:"creator"`
	ImageURL    string   `json:"image_url"`
}

func (f *NewsDataFetcher) Fetch() ([]Article, error) {
	if f.APIKey == "" {
		return nil, fmt.Errorf("newsdata: missing API key")
	}

	base := f.BaseURL
	if base == "" {
		base = newsDataBaseURL
	}

	params := url.Values{}
	params.Set("apikey", f.APIKey)
	params.Set("q", f.Query)
	params.Set("language", f.Language)
	params.Set("category", f.Category)

	log.Printf("newsdata: fetching articles (lookback %s)...", f.Lookback)

	client := &http.Client{Timeout: newsDataClientTimeout}
	resp, err := client.Get(base + "?" + params.Encode())
	if err != nil {
		return nil, fmt.Errorf("newsdata: fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsdata: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, newsDataMaxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("newsdata: read body: %w", err)
	}

	var payload newsDataResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("newsdata: unmarshal: %w", err)
	}
	if payload.Status != "success" {
		msg := payload.Message
		if msg == "" {
			msg = "unknown error"
		}
		return nil, fmt.Errorf("newsdata: api error: %s", msg)
	}

	cutoff := f.now().Add(-f.Lookback)

	articles := make([]Article, 0, len(payload.Results))
	for _, raw := range payload.Results {
		publishedAt := ParseTimestamp(raw.PubDate)
		// Cutoff is inclusive: an article published exactly at the
		// window edge is kept.
		if publishedAt.Before(cutoff) {
			continue
		}

		source := raw.SourceID
		if source == "" {
			source = newsDataSourceLabel
		}

		author := ""
		if len(raw.Creator) > 0 {
			author = raw.Creator[0]
		}

		articles = append(articles, Article{
			Title:       raw.Title,
			URL:         raw.Link,
			Source:      source,
			Competitors: f.Detector.Detect(raw.Title, raw.Description, raw.Content),
			PublishedAt: publishedAt,
			Summary:     raw.Description,
			Author:      author,
			ImageURL:    raw.ImageURL,
		})
	}

	log.Printf("newsdata: %d of %d fetched articles within window", len(articles), len(payload.Results))
	return articles, nil
}

func (f *NewsDataFetcher) now() time.Time {
	if f.Now != nil {
		return f.Now()
	}
	return time.Now().UTC()
}
