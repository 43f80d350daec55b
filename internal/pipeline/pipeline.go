package pipeline

import (
	"fmt"
	"log"
	"time"

	"github.com/bashmore0207/scraperrr/internal/collector"
	"github.com/bashmore0207/scraperrr/internal/storage"
)

// Run statuses written to the audit table.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Store is the slice of the persistence layer the pipeline needs:
// the dedupe lookup, the insert, and the audit append. *storage.Store
// satisfies it.
type Store interface {
	ArticleExists(url string) (bool, error)
	InsertArticle(a collector.Article) error
	InsertRun(run *storage.ScraperRun) error
}

// Stats summarizes one run of one source.
type Stats struct {
	Inserted int
	Skipped  int
	Errors   int
}

// Pipeline runs one source end-to-end: fetch, filter to articles that
// mention a tracked competitor, dedupe by URL, persist, and append one
// audit row whatever the outcome.
type Pipeline struct {
	store Store
	now   func() time.Time
}

func New(store Store) *Pipeline {
	return &Pipeline{store: store, now: func() time.Time { return time.Now().UTC() }}
}

// Run executes one ingestion pass for the given source. A fetch failure
// is fatal to the run and recorded as such; everything after the fetch
// isolates failures per article. Zero relevant articles is a normal,
// completed run.
func (p *Pipeline) Run(f collector.Fetcher) (Stats, error) {
	startedAt := p.now()

	articles, err := f.Fetch()
	if err != nil {
		err = fmt.Errorf("fetch %s: %w", f.Name(), err)
		p.record(f.Name(), startedAt, Stats{}, err)
		return Stats{}, err
	}

	relevant := make([]collector.Article, 0, len(articles))
	for _, a := range articles {
		if !a.Relevant() {
			continue
		}
		if a.URL == "" {
			// Cannot be deduplicated, so never stored.
			log.Printf("%s: dropping article without url: %.60q", f.Name(), a.Title)
			continue
		}
		relevant = append(relevant, a)
	}
	log.Printf("%s: %d of %d articles mention a tracked competitor", f.Name(), len(relevant), len(articles))

	var stats Stats
	for _, a := range relevant {
		exists, err := p.store.ArticleExists(a.URL)
		if err != nil {
			// Read failure biases toward inserting: the unique index
			// on url turns a real duplicate into a counted error
			// instead of a duplicate row.
			log.Printf("%s: exists check %s: %v", f.Name(), a.URL, err)
			exists = false
		}
		if exists {
			stats.Skipped++
			continue
		}

		if err := p.store.InsertArticle(a); err != nil {
			log.Printf("%s: store %s: %v", f.Name(), a.URL, err)
			stats.Errors++
			continue
		}
		stats.Inserted++
	}

	p.record(f.Name(), startedAt, stats, nil)
	return stats, nil
}

// record appends exactly one audit row per run. A failure to write the
// row is logged and swallowed: auditing must not mask the ingestion
// outcome.
func (p *Pipeline) record(source string, startedAt time.Time, stats Stats, runErr error) {
	run := &storage.ScraperRun{
		StartedAt:     startedAt,
		CompletedAt:   p.now(),
		Source:        source,
		ArticlesFound: stats.Inserted + stats.Skipped,
		ArticlesAdded: stats.Inserted,
		Status:        StatusCompleted,
	}
	if runErr != nil {
		run.Status = StatusFailed
		run.ErrorMessage = runErr.Error()
	}

	if err := p.store.InsertRun(run); err != nil {
		log.Printf("warn: record %s run: %v", source, err)
	}
}
