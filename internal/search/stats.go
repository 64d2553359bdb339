package search

import (
	"context"
	"time"

	"github.com/ccsearch/ccsearch/internal/query"
)

// Stats is the aggregate-only result of a stats-mode search: counts across
// several dimensions plus the earliest/latest matching timestamp. Unlike a
// normal Search, MaxResults is ignored so every count is exact.
type Stats struct {
	TotalCount       int
	CountsByRole     map[string]int
	CountsByType     map[string]int
	CountsByFile     map[string]int
	CountsBySession  map[string]int
	CountsByProject  map[string]int
	EarliestMatch    time.Time
	LatestMatch      time.Time
}

// Stats runs the same per-file filter+evaluate pipeline as Search but
// aggregates counts instead of collecting SearchResults, so max_results
// never truncates the count.
func (e *Engine) Stats(ctx context.Context, pattern, queryString string, tree query.Node, opts Options) (Stats, error) {
	opts.MaxResults = 0
	result, err := e.Search(ctx, pattern, queryString, tree, opts)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{
		TotalCount:      len(result.Results),
		CountsByRole:    make(map[string]int),
		CountsByType:    make(map[string]int),
		CountsByFile:    make(map[string]int),
		CountsBySession: make(map[string]int),
		CountsByProject: make(map[string]int),
	}

	for _, r := range result.Results {
		stats.CountsByRole[r.Role]++
		stats.CountsByType[r.MessageType]++
		stats.CountsByFile[r.File]++
		if r.SessionID != "" {
			stats.CountsBySession[r.SessionID]++
		}
		if r.ProjectPath != "" {
			stats.CountsByProject[r.ProjectPath]++
		}
		if stats.EarliestMatch.IsZero() || r.Timestamp.Before(stats.EarliestMatch) {
			stats.EarliestMatch = r.Timestamp
		}
		if stats.LatestMatch.IsZero() || r.Timestamp.After(stats.LatestMatch) {
			stats.LatestMatch = r.Timestamp
		}
	}

	return stats, nil
}
