package format

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/ccsearch/ccsearch/internal/search"
)

// statsDocument is the JSON shape for --stats output.
type statsDocument struct {
	TotalCount      int            `json:"total_count"`
	CountsByRole    map[string]int `json:"counts_by_role"`
	CountsByType    map[string]int `json:"counts_by_type"`
	CountsByFile    map[string]int `json:"counts_by_file"`
	CountsBySession map[string]int `json:"counts_by_session"`
	CountsByProject map[string]int `json:"counts_by_project"`
	EarliestMatch   string         `json:"earliest_match,omitempty"`
	LatestMatch     string         `json:"latest_match,omitempty"`
}

// WriteStats renders a Stats aggregate in the given format to w. JSONL has
// no meaningful per-line shape for an aggregate, so it falls back to JSON.
func WriteStats(w io.Writer, stats search.Stats, f Format) error {
	switch f {
	case JSON, JSONL:
		return writeStatsJSON(w, stats)
	default:
		return writeStatsText(w, stats)
	}
}

func writeStatsJSON(w io.Writer, stats search.Stats) error {
	doc := statsDocument{
		TotalCount:      stats.TotalCount,
		CountsByRole:    stats.CountsByRole,
		CountsByType:    stats.CountsByType,
		CountsByFile:    stats.CountsByFile,
		CountsBySession: stats.CountsBySession,
		CountsByProject: stats.CountsByProject,
	}
	if !stats.EarliestMatch.IsZero() {
		doc.EarliestMatch = stats.EarliestMatch.Format("2006-01-02T15:04:05Z07:00")
	}
	if !stats.LatestMatch.IsZero() {
		doc.LatestMatch = stats.LatestMatch.Format("2006-01-02T15:04:05Z07:00")
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func writeStatsText(w io.Writer, stats search.Stats) error {
	if _, err := fmt.Fprintf(w, "%d total match(es)\n", stats.TotalCount); err != nil {
		return err
	}
	if err := writeCountTable(w, "by role", stats.CountsByRole); err != nil {
		return err
	}
	if err := writeCountTable(w, "by type", stats.CountsByType); err != nil {
		return err
	}
	if err := writeCountTable(w, "by session", stats.CountsBySession); err != nil {
		return err
	}
	if err := writeCountTable(w, "by project", stats.CountsByProject); err != nil {
		return err
	}
	if !stats.EarliestMatch.IsZero() {
		if _, err := fmt.Fprintf(w, "earliest: %s\n", stats.EarliestMatch.Format("2006-01-02 15:04:05")); err != nil {
			return err
		}
	}
	if !stats.LatestMatch.IsZero() {
		if _, err := fmt.Fprintf(w, "latest:   %s\n", stats.LatestMatch.Format("2006-01-02 15:04:05")); err != nil {
			return err
		}
	}
	return nil
}

func writeCountTable(w io.Writer, label string, counts map[string]int) error {
	if len(counts) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "\n%s:\n", label); err != nil {
		return err
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "  %-20s %d\n", k, counts[k]); err != nil {
			return err
		}
	}
	return nil
}
