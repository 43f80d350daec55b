package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/bashmore0207/scraperrr/internal/collector"
	"github.com/bashmore0207/scraperrr/internal/config"
	"github.com/bashmore0207/scraperrr/internal/storage"
	"github.com/mmcdole/gofeed"
)

// Connectivity smoke test: verifies the database, the news API and every
// configured feed are reachable before wiring up a schedule.
func main() {
	cfg := config.Load()

	type check struct {
		name string
		run  func() error
	}

	checks := []check{
		{"postgres", func() error {
			store, err := storage.NewStore(cfg.PostgresDSN, cfg.RedisAddr)
			if err != nil {
				return err
			}
			return store.Ping()
		}},
		{"newsdata", func() error {
			f := &collector.NewsDataFetcher{
				APIKey:   cfg.NewsDataAPIKey,
				Query:    cfg.NewsDataQuery,
				Language: cfg.NewsDataLanguage,
				Category: cfg.NewsDataCategory,
				Lookback: cfg.Lookback,
				Detector: collector.NewDetector(cfg.Competitors),
			}
			_, err := f.Fetch()
			return err
		}},
	}

	for _, feed := range cfg.Feeds {
		feed := feed
		checks = append(checks, check{"feed " + feed.Name, func() error {
			parser := gofeed.NewParser()
			parser.Client = &http.Client{Timeout: 30 * time.Second}
			parsed, err := parser.ParseURL(feed.URL)
			if err != nil {
				return err
			}
			if len(parsed.Items) == 0 {
				return fmt.Errorf("feed has no entries")
			}
			return nil
		}})
	}

	passed := 0
	for _, c := range checks {
		if err := c.run(); err != nil {
			fmt.Printf("FAIL %-20s %v\n", c.name, err)
			continue
		}
		passed++
		fmt.Printf("PASS %-20s\n", c.name)
	}

	fmt.Printf("\n%d/%d checks passed\n", passed, len(checks))
	if passed < len(checks) {
		os.Exit(1)
	}
}
