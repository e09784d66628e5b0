package translator

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultPatternCacheSize bounds the memoized choices derivations. Data
// dictionaries reuse a handful of choice lists across many rows.
const DefaultPatternCacheSize = 256

type patternResult struct {
	pattern string
	err     error
}

// patternCache memoizes ChoicesPattern. A nil cache derives every time.
type patternCache struct {
	entries *lru.Cache[string, patternResult]
}

func newPatternCache(size int) *patternCache {
	if size <= 0 {
		return &patternCache{}
	}
	entries, err := lru.New[string, patternResult](size)
	if err != nil {
		return &patternCache{}
	}
	return &patternCache{entries: entries}
}

func (c *patternCache) derive(choices string) (string, error) {
	if c == nil || c.entries == nil {
		return ChoicesPattern(choices)
	}
	if cached, ok := c.entries.Get(choices); ok {
		return cached.pattern, cached.err
	}
	pattern, err := ChoicesPattern(choices)
	c.entries.Add(choices, patternResult{pattern: pattern, err: err})
	return pattern, err
}
