package query

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// regexCacheCapacity bounds the number of compiled patterns kept in memory
// process-wide. Sized well above what a single interactive session touches
// in practice, so eviction is rare.
const regexCacheCapacity = 64

// compileCache is a bounded, thread-safe LRU cache of compiled regexes,
// keyed by pattern+flags. Compiling a regex.Regexp is not free and the same
// /pattern/flags recurs across repeated searches as the user edits a query
// incrementally, so caching pays for itself quickly.
type compileCache struct {
	mu       sync.Mutex
	capacity int
	order    []uint64
	items    map[uint64]*regexp.Regexp
}

var globalRegexCache = newCompileCache(regexCacheCapacity)

func newCompileCache(capacity int) *compileCache {
	return &compileCache{
		capacity: capacity,
		items:    make(map[uint64]*regexp.Regexp, capacity),
	}
}

func regexCacheKey(pattern, flags string) uint64 {
	return xxhash.Sum64String(pattern + "|" + flags)
}

// compile returns a compiled regexp for pattern+flags, using the process
// cache. flags may contain any of i, m, s; unrecognized runes are ignored.
func compile(pattern, flags string) (*regexp.Regexp, error) {
	return globalRegexCache.compile(pattern, flags)
}

func (c *compileCache) compile(pattern, flags string) (*regexp.Regexp, error) {
	key := regexCacheKey(pattern, flags)

	c.mu.Lock()
	if re, ok := c.items[key]; ok {
		c.touch(key)
		c.mu.Unlock()
		return re, nil
	}
	c.mu.Unlock()

	expr := pattern
	if inline := inlineFlags(flags); inline != "" {
		expr = "(?" + inline + ")" + pattern
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("query: invalid regex /%s/%s: %w", pattern, flags, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.items[key]; ok {
		c.touch(key)
		return existing, nil
	}
	if len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.items, oldest)
	}
	c.items[key] = re
	c.order = append(c.order, key)
	return re, nil
}

func (c *compileCache) touch(key uint64) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.order = append(c.order, key)
}

// inlineFlags maps the query language's i/m/s flags onto Go regexp's inline
// flag syntax, dropping any unrecognized rune.
func inlineFlags(flags string) string {
	out := make([]byte, 0, len(flags))
	for _, r := range flags {
		switch r {
		case 'i', 'm', 's':
			out = append(out, byte(r))
		}
	}
	return string(out)
}
