package main

import (
	"fmt"
	"log"
	"os"

	"github.com/bashmore0207/scraperrr/internal/collector"
	"github.com/bashmore0207/scraperrr/internal/config"
	"github.com/bashmore0207/scraperrr/internal/pipeline"
	"github.com/bashmore0207/scraperrr/internal/storage"
)

// One-shot entry point: run every configured source once, print a
// per-source summary, and exit 0 when all sources succeeded, 1 on
// partial success, 2 when all failed.
func main() {
	cfg := config.Load()

	store, err := storage.NewStore(cfg.PostgresDSN, cfg.RedisAddr)
	if err != nil {
		log.Fatalf("init store failed: %v", err)
	}

	detector := collector.NewDetector(cfg.Competitors)
	fetchers := []collector.Fetcher{
		&collector.NewsDataFetcher{
			APIKey:   cfg.NewsDataAPIKey,
			Query:    cfg.NewsDataQuery,
			Language: cfg.NewsDataLanguage,
			Category: cfg.NewsDataCategory,
			Lookback: cfg.Lookback,
			Detector: detector,
		},
		&collector.RSSFetcher{
			Feeds:    cfg.Feeds,
			Lookback: cfg.Lookback,
			Detector: detector,
		},
	}

	p := pipeline.New(store)

	succeeded := 0
	for _, f := range fetchers {
		stats, err := p.Run(f)
		if err != nil {
			fmt.Printf("FAIL %-10s %v\n", f.Name(), err)
			continue
		}
		succeeded++
		fmt.Printf("PASS %-10s inserted=%d skipped=%d errors=%d\n",
			f.Name(), stats.Inserted, stats.Skipped, stats.Errors)
	}

	fmt.Printf("\n%d/%d sources succeeded\n", succeeded, len(fetchers))

	switch {
	case succeeded == len(fetchers):
		os.Exit(0)
	case succeeded > 0:
		os.Exit(1)
	default:
		os.Exit(2)
	}
}
