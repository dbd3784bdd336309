package transform

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru"

	"github.com/pspoerri/gctp/proj"
)

// Cache holds compiled projections keyed by their configuration, so that
// repeated requests for the same parameters share one *proj.Projection.
// Failed compilations are not cached.
type Cache struct {
	lru    *lru.Cache
	hits   atomic.Int64
	misses atomic.Int64
}

// NewCache creates a cache with the given maximum number of entries.
func NewCache(maxEntries int) (*Cache, error) {
	if maxEntries <= 0 {
		maxEntries = 256
	}
	c, err := lru.New(maxEntries)
	if err != nil {
		return nil, err
	}
	return &Cache{lru: c}, nil
}

// Get returns the compiled projection for cfg, compiling it on a miss.
func (c *Cache) Get(cfg proj.Config) (*proj.Projection, error) {
	if v, ok := c.lru.Get(cfg); ok {
		c.hits.Add(1)
		return v.(*proj.Projection), nil
	}
	c.misses.Add(1)
	p, err := proj.Compile(cfg)
	if err != nil {
		return nil, err
	}
	c.lru.Add(cfg, p)
	return p, nil
}

// Pipeline returns a pipeline between two cached projections.
func (c *Cache) Pipeline(in, out proj.Config) (*Pipeline, error) {
	pin, err := c.Get(in)
	if err != nil {
		return nil, err
	}
	pout, err := c.Get(out)
	if err != nil {
		return nil, err
	}
	return NewPipeline(pin, pout), nil
}

// Len returns the number of cached projections.
func (c *Cache) Len() int { return c.lru.Len() }

// Stats returns the hit and miss counts.
func (c *Cache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Purge empties the cache.
func (c *Cache) Purge() { c.lru.Purge() }
