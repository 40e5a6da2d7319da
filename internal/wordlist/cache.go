package wordlist

import (
	"strings"
	"sync"
)

// #region cache

// Cache shares resolved wordlists between files in one run, keyed by the
// dictionary-name tuple. It replaces the historical process-global cache
// with an explicit object: create one per run, Close it deterministically
// when the run ends. Safe for concurrent use; concurrent file checks share
// a single cache.
type Cache struct {
	builtins *Builtins

	mu      sync.Mutex
	entries map[string]*Wordlist
}

// NewCache creates an empty cache over builtins.
func NewCache(builtins *Builtins) *Cache {
	return &Cache{builtins: builtins, entries: make(map[string]*Wordlist)}
}

// Get returns the Wordlist for names, creating it on first request. Callers
// must not Close the returned Wordlist; the cache owns it.
func (c *Cache) Get(names []string) *Wordlist {
	key := strings.Join(names, "\x00")

	c.mu.Lock()
	defer c.mu.Unlock()
	wl, ok := c.entries[key]
	if !ok {
		wl = New(c.builtins, names)
		c.entries[key] = wl
	}
	return wl
}

// Close closes every cached wordlist, removing merged temp artifacts. The
// first close error is returned; closing continues regardless.
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var firstErr error
	for key, wl := range c.entries {
		if err := wl.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(c.entries, key)
	}
	return firstErr
}

// #endregion cache
