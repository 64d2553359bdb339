package search

import (
	"context"
	"log/slog"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/ccsearch/ccsearch/internal/discover"
	"github.com/ccsearch/ccsearch/internal/message"
	"github.com/ccsearch/ccsearch/internal/query"
)

// Engine runs searches over the discovered corpus, backed by a message
// cache shared across calls so repeated interactive queries don't re-read
// disk for unchanged files.
type Engine struct {
	cache *Cache
}

// New creates an Engine with a fresh, empty cache.
func New() *Engine {
	return &Engine{cache: NewCache()}
}

// Reload clears the engine's message cache, forcing every file to be
// re-read on the next Search.
func (e *Engine) Reload() {
	e.cache.Clear()
}

// searchConcurrency scales the per-file worker pool with the machine,
// clamped to a sane range regardless of core count.
func searchConcurrency() int {
	n := runtime.NumCPU()
	if n < 4 {
		return 4
	}
	if n > 16 {
		return 16
	}
	return n
}

type fileResult struct {
	results []SearchResult
	info    FileInfo
}

// Search runs one search: discover files, fan out per-file work across a
// bounded worker pool, merge deterministically, sort by timestamp
// descending, and truncate to opts.MaxResults.
func (e *Engine) Search(ctx context.Context, pattern, queryString string, tree query.Node, opts Options) (Result, error) {
	start := time.Now()

	files, err := discover.Files(pattern)
	if err != nil {
		return Result{}, err
	}
	if len(files) == 0 {
		return Result{Duration: time.Since(start)}, nil
	}

	fileResults := make([]fileResult, len(files))
	sem := make(chan struct{}, searchConcurrency())
	var wg sync.WaitGroup

	for i, path := range files {
		select {
		case <-ctx.Done():
			break
		default:
		}

		wg.Add(1)
		go func(idx int, path string) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				return
			}
			fileResults[idx] = e.searchFile(idx, path, queryString, tree, opts)
		}(i, path)
	}
	wg.Wait()

	var merged []SearchResult
	var fileInfos []FileInfo
	for _, fr := range fileResults {
		merged = append(merged, fr.results...)
		if fr.info.Path != "" {
			fileInfos = append(fileInfos, fr.info)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		a, b := merged[i], merged[j]
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.After(b.Timestamp)
		}
		if a.fileIndex != b.fileIndex {
			return a.fileIndex < b.fileIndex
		}
		return a.msgIndex < b.msgIndex
	})

	total := len(merged)
	if opts.MaxResults > 0 && len(merged) > opts.MaxResults {
		merged = merged[:opts.MaxResults]
	}

	return Result{
		Results:    merged,
		Duration:   time.Since(start),
		TotalCount: total,
	}, nil
}

// searchFile applies the query and metadata filters to every message in
// one file, in the file's natural order. Errors opening or parsing the
// file are swallowed here: an unreadable file is skipped, and the
// caller sees an empty fileResult rather than an aborted search. When
// opts.Verbose is set, the skip is logged at debug level instead of
// disappearing entirely.
func (e *Engine) searchFile(fileIndex int, path, queryString string, tree query.Node, opts Options) fileResult {
	cached, err := e.cache.GetOrLoad(path, opts.Verbose)
	if err != nil {
		if opts.Verbose {
			slog.Debug("skipping unreadable file", "path", path, "error", err)
		}
		return fileResult{}
	}

	var results []SearchResult
	var sessionID string

	for msgIndex, msg := range cached.Messages {
		if opts.Role != RoleAny && string(msg.Type) != string(opts.Role) {
			continue
		}
		if opts.SessionID != "" && msg.SessionID != opts.SessionID {
			continue
		}

		text := message.SearchableText(&msg)
		if !query.Evaluate(tree, text) {
			continue
		}

		if opts.ProjectPath != "" && opts.ProjectPath != "/" && !discover.MatchesProjectPath(msg.CWD, opts.ProjectPath) {
			continue
		}

		ts := resolveTimestamp(msg, cached)
		if opts.After != nil && ts.Before(*opts.After) {
			continue
		}
		if opts.Before != nil && !ts.Before(*opts.Before) {
			continue
		}

		if msg.SessionID != "" {
			sessionID = msg.SessionID
		}

		results = append(results, SearchResult{
			UUID:        msg.UUID,
			Timestamp:   ts,
			SessionID:   msg.SessionID,
			Role:        string(msg.Type),
			Text:        text,
			HasTools:    msg.HasTools(),
			HasThinking: msg.HasThinking(),
			MessageType: string(msg.Type),
			File:        path,
			CWD:         msg.CWD,
			ProjectPath: discover.NormalizeProjectPath(msg.CWD),
			Query:       queryString,
			RawJSON:     cached.RawLines[msgIndex],
			fileIndex:   fileIndex,
			msgIndex:    msgIndex,
		})
	}

	return fileResult{
		results: results,
		info: FileInfo{
			Path:         path,
			MessageCount: len(cached.Messages),
			SessionID:    sessionID,
		},
	}
}

// resolveTimestamp applies the effective-timestamp fallback chain: the
// message's own timestamp, else the file's first non-summary
// timestamp (for summary messages), else the file's latest timestamp,
// else the file's mtime as a last resort.
func resolveTimestamp(msg message.Message, cached *CachedFile) time.Time {
	if msg.HasTime {
		return msg.Timestamp
	}
	if msg.Type == message.RoleSummary && !cached.FirstTimestamp.IsZero() {
		return cached.FirstTimestamp
	}
	if !cached.LatestTimestamp.IsZero() {
		return cached.LatestTimestamp
	}
	return cached.Ctime
}
