package search

import (
	"bufio"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/ccsearch/ccsearch/internal/message"
)

// CachedFile is one file's parsed contents, keyed by the mtime it was
// parsed at.
type CachedFile struct {
	ModTime         time.Time
	Ctime           time.Time
	Messages        []message.Message
	RawLines        []string
	FirstTimestamp  time.Time
	LatestTimestamp time.Time
}

// cacheShardCount controls lock granularity: a writer populating one
// file's entry must not block a reader of an unrelated file's entry.
const cacheShardCount = 16

// Cache is a sharded, mtime-keyed store of CachedFile, safe for concurrent
// use by the engine's worker pool.
type Cache struct {
	shards [cacheShardCount]*cacheShard
}

type cacheShard struct {
	mu      sync.Mutex
	entries map[string]*CachedFile
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	c := &Cache{}
	for i := range c.shards {
		c.shards[i] = &cacheShard{entries: make(map[string]*CachedFile)}
	}
	return c
}

func (c *Cache) shardFor(path string) *cacheShard {
	idx := xxhash.Sum64String(path) % cacheShardCount
	return c.shards[idx]
}

// GetOrLoad returns the cached entry for path if its mtime matches the
// current on-disk mtime, else it (re-)parses the file and replaces the
// entry. The replacement is atomic from a reader's point of view: a
// freshly built *CachedFile is swapped in under the shard lock, so no
// reader ever observes messages from one parse paired with raw lines
// from another. When verbose is true, malformed lines skipped while
// parsing are logged at debug level rather than silently dropped.
func (c *Cache) GetOrLoad(path string, verbose bool) (*CachedFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	mtime := info.ModTime()

	shard := c.shardFor(path)

	shard.mu.Lock()
	if entry, ok := shard.entries[path]; ok && entry.ModTime.Equal(mtime) {
		shard.mu.Unlock()
		return entry, nil
	}
	shard.mu.Unlock()

	entry, err := loadFile(path, mtime, verbose)
	if err != nil {
		return nil, err
	}

	shard.mu.Lock()
	shard.entries[path] = entry
	shard.mu.Unlock()
	return entry, nil
}

// Clear drops every cached entry. Used by the interactive "reload" command.
func (c *Cache) Clear() {
	for _, shard := range c.shards {
		shard.mu.Lock()
		shard.entries = make(map[string]*CachedFile)
		shard.mu.Unlock()
	}
}

// InvalidatePath drops a single entry without a full clear. Nothing in the
// corpus watcher or the interactive driver calls it: a changed file is
// re-parsed by GetOrLoad's mtime check on the next search.
func (c *Cache) InvalidatePath(path string) {
	shard := c.shardFor(path)
	shard.mu.Lock()
	delete(shard.entries, path)
	shard.mu.Unlock()
}

func loadFile(path string, mtime time.Time, verbose bool) (*CachedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// os.FileInfo has no portable creation-time field; mtime is the closest
	// stdlib-only approximation and is only used as the last fallback in
	// the timestamp-resolution chain (see resolveTimestamp in engine.go).
	entry := &CachedFile{ModTime: mtime, Ctime: mtime}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if len(line) == 0 {
			continue
		}
		msg, ok := message.Parse([]byte(line))
		if !ok {
			if verbose {
				slog.Debug("skipping malformed JSONL line", "path", path, "line", lineNum)
			}
			continue // malformed line: skip, do not abort the file
		}
		entry.Messages = append(entry.Messages, msg)
		entry.RawLines = append(entry.RawLines, line)
		if msg.Type != message.RoleSummary && msg.HasTime {
			if entry.FirstTimestamp.IsZero() {
				entry.FirstTimestamp = msg.Timestamp
			}
			entry.LatestTimestamp = msg.Timestamp
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return entry, nil
}
