package collector

import "time"

// Article is the canonical record shared by all sources.
type Article struct {
	Title string
	// URL is the identity key: two records with the same URL are the same
	// article. Records without a URL are never persisted.
	URL         string
	Source      string
	Competitors []string
	PublishedAt time.Time
	Summary     string
	Author      string
	ImageURL    string
}

// Relevant reports whether the article mentions at least one tracked
// competitor. Irrelevant articles are dropped before deduplication.
func (a Article) Relevant() bool {
	return len(a.Competitors) > 0
}

// Fetcher abstracts one data source. Fetch returns articles in the
// origin's natural order, already normalized and recency-filtered.
type Fetcher interface {
	Name() string
	Fetch() ([]Article, error)
}
