package main

import (
	"log"

	"github.com/bashmore0207/scraperrr/internal/api"
	"github.com/bashmore0207/scraperrr/internal/collector"
	"github.com/bashmore0207/scraperrr/internal/config"
	"github.com/bashmore0207/scraperrr/internal/pipeline"
	"github.com/bashmore0207/scraperrr/internal/scheduler"
	"github.com/bashmore0207/scraperrr/internal/storage"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	store, err := storage.NewStore(cfg.PostgresDSN, cfg.RedisAddr)
	if err != nil {
		log.Fatalf("init store failed: %v", err)
	}

	detector := collector.NewDetector(cfg.Competitors)

	// Each source collects on its own schedule: the API source is rate
	// limited per hour, the feeds can be polled more often.
	jobs := []scheduler.FetcherJob{
		{
			Fetcher: &collector.NewsDataFetcher{
				APIKey:   cfg.NewsDataAPIKey,
				Query:    cfg.NewsDataQuery,
				Language: cfg.NewsDataLanguage,
				Category: cfg.NewsDataCategory,
				Lookback: cfg.Lookback,
				Detector: detector,
			},
			CronSpec: cfg.NewsDataCronSpec,
		},
		{
			Fetcher: &collector.RSSFetcher{
				Feeds:    cfg.Feeds,
				Lookback: cfg.Lookback,
				Detector: detector,
			},
			CronSpec: cfg.RSSCronSpec,
		},
	}

	p := pipeline.New(store)
	s, err := scheduler.New(jobs, p)
	if err != nil {
		log.Fatalf("init scheduler failed: %v", err)
	}
	s.Start()

	r := gin.Default()
	apiServer := api.NewServer(store)
	apiServer.RegisterRoutes(r)

	addr := ":" + cfg.AppPort
	log.Printf("starting api server at %s ...", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server exit: %v", err)
	}
}
