// Package cache memoises bytecode-reader parse results keyed by a
// murmur3 hash of the raw module bytes, so repeated parses of the same
// binary within one process (for example the interactive shell's load
// and upgrade-check commands) do not re-parse its sections from scratch.
package cache

import (
	lru "github.com/hashicorp/golang-lru"
	"github.com/twmb/murmur3"
)

// Cache is a fixed-size, in-process, LRU parse-result cache. It never
// touches disk and carries nothing across processes.
type Cache struct {
	inner *lru.Cache
}

// New builds a cache holding up to size entries.
func New(size int) (*Cache, error) {
	inner, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &Cache{inner: inner}, nil
}

// Key hashes raw module bytes into a cache key.
func Key(b []byte) uint64 {
	return murmur3.Sum64(b)
}

func (c *Cache) Get(key uint64) (interface{}, bool) {
	return c.inner.Get(key)
}

func (c *Cache) Put(key uint64, value interface{}) {
	c.inner.Add(key, value)
}
