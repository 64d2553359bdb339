// Package format renders search.Result values for the CLI's
// --format {text|json|jsonl} output modes.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/ccsearch/ccsearch/internal/search"
)

// Format names one of the three supported output shapes.
type Format string

const (
	Text  Format = "text"
	JSON  Format = "json"
	JSONL Format = "jsonl"
)

// document is the exact JSON shape documented in the external interfaces:
// results, summary, files, sessions.
type document struct {
	Results  []search.SearchResult `json:"results"`
	Summary  search.Summary        `json:"summary"`
	Files    []search.FileInfo     `json:"files"`
	Sessions []search.SessionInfo  `json:"sessions"`
}

// Write renders result in the given format to w.
func Write(w io.Writer, result search.Result, f Format) error {
	switch f {
	case JSON:
		return writeJSON(w, result)
	case JSONL:
		return writeJSONL(w, result)
	default:
		return writeText(w, result)
	}
}

func buildDocument(result search.Result) document {
	files, sessions := summarize(result.Results)
	return document{
		Results: result.Results,
		Summary: search.Summary{
			DurationMS:     result.Duration.Milliseconds(),
			TotalCount:     result.TotalCount,
			ReturnedCount:  len(result.Results),
			UniqueSessions: len(sessions),
			UniqueFiles:    len(files),
		},
		Files:    files,
		Sessions: sessions,
	}
}

// summarize derives per-file and per-session counts from a flat result
// list, since the engine itself only returns matched messages.
func summarize(results []search.SearchResult) ([]search.FileInfo, []search.SessionInfo) {
	fileCounts := make(map[string]*search.FileInfo)
	var fileOrder []string
	sessionCounts := make(map[string]int)
	var sessionOrder []string

	for _, r := range results {
		if fi, ok := fileCounts[r.File]; ok {
			fi.MessageCount++
		} else {
			fileCounts[r.File] = &search.FileInfo{Path: r.File, MessageCount: 1, SessionID: r.SessionID}
			fileOrder = append(fileOrder, r.File)
		}
		if r.SessionID == "" {
			continue
		}
		if _, ok := sessionCounts[r.SessionID]; !ok {
			sessionOrder = append(sessionOrder, r.SessionID)
		}
		sessionCounts[r.SessionID]++
	}

	sort.Strings(fileOrder)
	sort.Strings(sessionOrder)

	files := make([]search.FileInfo, 0, len(fileOrder))
	for _, path := range fileOrder {
		files = append(files, *fileCounts[path])
	}
	sessions := make([]search.SessionInfo, 0, len(sessionOrder))
	for _, id := range sessionOrder {
		sessions = append(sessions, search.SessionInfo{SessionID: id, MessageCount: sessionCounts[id]})
	}
	return files, sessions
}

func writeJSON(w io.Writer, result search.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(buildDocument(result))
}

func writeJSONL(w io.Writer, result search.Result) error {
	enc := json.NewEncoder(w)
	for _, r := range result.Results {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}

func writeText(w io.Writer, result search.Result) error {
	if len(result.Results) == 0 {
		_, err := fmt.Fprintln(w, "No results found")
		return err
	}
	for _, r := range result.Results {
		if _, err := fmt.Fprintf(w, "[%s] %s (%s)\n%s\n\n",
			r.Timestamp.Format("2006-01-02 15:04:05"), r.Role, r.SessionID, r.Text); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d result(s) of %d total in %dms\n",
		len(result.Results), result.TotalCount, result.Duration.Milliseconds())
	return err
}
