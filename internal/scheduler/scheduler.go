package scheduler

import (
	"log"
	"time"

	"github.com/bashmore0207/scraperrr/internal/collector"
	"github.com/bashmore0207/scraperrr/internal/pipeline"
	"github.com/robfig/cron/v3"
)

// FetcherJob pairs a source with its own collection schedule, so the
// API source's rate limit and the feeds' update cadence stay decoupled.
type FetcherJob struct {
	Fetcher  collector.Fetcher
	CronSpec string
}

type Scheduler struct {
	cron *cron.Cron
	pipe *pipeline.Pipeline
	jobs []FetcherJob
}

func New(jobs []FetcherJob, p *pipeline.Pipeline) (*Scheduler, error) {
	c := cron.New()

	s := &Scheduler{
		cron: c,
		pipe: p,
		jobs: jobs,
	}

	for _, job := range jobs {
		job := job
		if _, err := c.AddFunc(job.CronSpec, func() { s.runOne(job.Fetcher) }); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	// Delay the first pass so server startup is not competing with a
	// collection round.
	const startupDelay = 15 * time.Second
	time.AfterFunc(startupDelay, func() {
		go s.RunOnce()
	})
}

// RunOnce runs every registered source once, sequentially. One source
// finishes completely before the next begins.
func (s *Scheduler) RunOnce() {
	log.Println("start collect job...")
	for _, job := range s.jobs {
		s.runOne(job.Fetcher)
	}
	log.Println("collect job done (all sources)")
}

func (s *Scheduler) runOne(f collector.Fetcher) {
	stats, err := s.pipe.Run(f)
	if err != nil {
		log.Printf("run %s error: %v", f.Name(), err)
		return
	}
	log.Printf("%s done, inserted=%d skipped=%d errors=%d", f.Name(), stats.Inserted, stats.Skipped, stats.Errors)
}
