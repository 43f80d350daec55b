package collector

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

const (
	rssSourceLabel     = "RSS Feeds"
	rssClientTimeout   = 30 * time.Second
	rssSummaryMaxRunes = 300
)

// Feed points at one RSS/Atom feed, e.g. a competitor's company blog.
type Feed struct {
	Name string
	URL  string
}

// RSSFetcher pulls entries from a list of feeds. A feed that fails to
// download or parse contributes zero articles and is logged; the other
// feeds are still processed.
type RSSFetcher struct {
	Feeds    []Feed
	Lookback time.Duration
	Detector *Detector

	Now func() time.Time
}

func (f *RSSFetcher) Name() string {
	return "rss"
}

func (f *RSSFetcher) Fetch() ([]Article, error) {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: rssClientTimeout}

	cutoff := f.now().Add(-f.Lookback)

	var articles []Article
	for _, feed := range f.Feeds {
		parsed, err := parser.ParseURL(feed.URL)
		if err != nil {
			log.Printf("rss: fetch %s: %v", feed.Name, err)
			continue
		}

		kept := 0
		for _, item := range parsed.Items {
			a := f.normalizeItem(feed, item)
			// Inclusive window edge, same rule as the API source.
			if a.PublishedAt.Before(cutoff) {
				continue
			}
			articles = append(articles, a)
			kept++
		}
		log.Printf("rss: %s: %d of %d entries within window", feed.Name, kept, len(parsed.Items))
	}

	return articles, nil
}

func (f *RSSFetcher) normalizeItem(feed Feed, item *gofeed.Item) Article {
	published := item.Published
	if published == "" {
		published = item.Updated
	}

	summary := item.Description
	if summary == "" {
		summary = truncateRunes(item.Content, rssSummaryMaxRunes)
	}

	author := ""
	if item.Author != nil {
		author = item.Author.Name
	}

	imageURL := ""
	if item.Image != nil {
		imageURL = item.Image.URL
	} else if len(item.Enclosures) > 0 {
		imageURL = item.Enclosures[0].URL
	}

	source := feed.Name
	if source == "" {
		source = rssSourceLabel
	}

	return Article{
		Title:       item.Title,
		URL:         item.Link,
		Source:      source,
		Competitors: f.Detector.Detect(item.Title, item.Description, item.Content),
		PublishedAt: ParseTimestamp(published),
		Summary:     summary,
		Author:      author,
		ImageURL:    imageURL,
	}
}

func (f *RSSFetcher) now() time.Time {
	if f.Now != nil {
		return f.Now()
	}
	return time.Now().UTC()
}

// truncateRunes cuts a string to at most limit runes, so a byte-level
// cut never splits a multi-byte character.
func truncateRunes(s string, limit int) string {
	s = strings.TrimSpace(s)
	if s == "" || limit <= 0 {
		return ""
	}
	rs := []rune(s)
	if len(rs) <= limit {
		return s
	}
	return string(rs[:limit])
}
