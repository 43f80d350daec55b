package collector

import (
	"time"

	"github.com/araddon/dateparse"
)

// ParseTimestamp parses an arbitrary timestamp string into a UTC instant.
// Offset-aware values are converted to UTC; values without an offset are
// read as UTC. Empty or unparseable input falls back to the current time,
// so ingestion never aborts over one malformed date. The trade-off: such
// articles look freshly published, which skews the recency filter.
func ParseTimestamp(s string) time.Time {
	if s == "" {
		return time.Now().UTC()
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Now().UTC()
	}
	return t.UTC()
}
