package collector

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const newsDataFixture = `{
  "status": "success",
  "totalResults": 3,
  "results": [
    {
      "title": "Coinbase and Ledger team up",
      "link": "https://x.com/a1",
      "source_id": "cryptodaily",
      "pubDate": "2024-01-01T00:00:00Z",
      "description": "Partnership announced",
      "creator": ["Jane Doe"],
      "image_url": "https://x.com/a1.jpg"
    },
    {
      "title": "Old Trezor story",
      "link": "https://x.com/a2",
      "pubDate": "2023-12-01T00:00:00Z",
      "description": "stale"
    },
    {
      "title": "No source field",
      "link": "https://x.com/a3",
      "pubDate": "2024-01-01T12:00:00Z"
    }
  ]
}`

func newsDataTestFetcher(baseURL string) *NewsDataFetcher {
	return &NewsDataFetcher{
		APIKey:   "test-key",
		Query:    "crypto wallet",
		Language: "en",
		Category: "technology",
		Lookback: 24 * time.Hour,
		Detector: NewDetector([]string{"ledger", "coinbase"}),
		BaseURL:  baseURL,
		Now:      func() time.Time { return time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC) },
	}
}

func TestNewsDataFetchMapsFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("apikey") != "test-key" {
			t.Errorf("missing apikey param")
		}
		if r.URL.Query().Get("language") != "en" {
			t.Errorf("missing language param")
		}
		w.Write([]byte(newsDataFixture))
	}))
	defer srv.Close()

	articles, err := newsDataTestFetcher(srv.URL).Fetch()
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}

	// The 2023-12-01 entry falls outside the 24h window.
	if len(articles) != 2 {
		t.Fatalf("got %d articles, want 2", len(articles))
	}

	a := articles[0]
	if a.Title != "Coinbase and Ledger team up" {
		t.Fatalf("Title = %q", a.Title)
	}
	if a.URL != "https://x.com/a1" {
		t.Fatalf("URL = %q", a.URL)
	}
	if a.Source != "cryptodaily" {
		t.Fatalf("Source = %q", a.Source)
	}
	if len(a.Competitors) != 2 || a.Competitors[0] != "Ledger" || a.Competitors[1] != "Coinbase" {
		t.Fatalf("Competitors = %v", a.Competitors)
	}
	if !a.PublishedAt.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("PublishedAt = %v", a.PublishedAt)
	}
	if a.Summary != "Partnership announced" || a.Author != "Jane Doe" || a.ImageURL != "https://x.com/a1.jpg" {
		t.Fatalf("optional fields not mapped: %+v", a)
	}

	// Missing source_id falls back to the constant label; missing
	// optional fields stay empty rather than erroring.
	b := articles[1]
	if b.Source != newsDataSourceLabel {
		t.Fatalf("Source = %q, want %q", b.Source, newsDataSourceLabel)
	}
	if b.Author != "" || b.ImageURL != "" {
		t.Fatalf("expected empty optional fields: %+v", b)
	}
}

func TestNewsDataFetchCutoffIsInclusive(t *testing.T) {
	// Published exactly at now-24h: must be kept.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success","results":[{"title":"edge","link":"https://x.com/edge","pubDate":"2024-01-01T00:00:00Z"}]}`))
	}))
	defer srv.Close()

	f := newsDataTestFetcher(srv.URL)
	f.Now = func() time.Time { return time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC) }

	articles, err := f.Fetch()
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("got %d articles, want 1 (cutoff is inclusive)", len(articles))
	}
}

func TestNewsDataFetchAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"error","message":"rate limit exceeded"}`))
	}))
	defer srv.Close()

	if _, err := newsDataTestFetcher(srv.URL).Fetch(); err == nil {
		t.Fatalf("expected error on non-success api status")
	}
}

func TestNewsDataFetchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	if _, err := newsDataTestFetcher(srv.URL).Fetch(); err == nil {
		t.Fatalf("expected error on non-200 response")
	}
}

func TestNewsDataFetchMissingKey(t *testing.T) {
	f := newsDataTestFetcher("http://unreachable.invalid")
	f.APIKey = ""

	if _, err := f.Fetch(); err == nil {
		t.Fatalf("expected error on missing api key")
	}
}
