// Package cachemanager caches values derived from a document, keyed by the identity they were
// derived from.
package cachemanager

import (
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/nroehner/libSBOL/internal/log"
)

// NoExpiration keeps an entry until it is invalidated or the cache is flushed.
const NoExpiration = gocache.NoExpiration

// DefaultCleanupInterval is how often expired entries are swept.
const DefaultCleanupInterval = 30 * time.Minute

// Store is the subset of the cache a Resolver needs.
type Store[V any] interface {
	Get(uri string) (V, bool)
	Set(uri string, value V)
	Invalidate(uris ...string)
	Flush()
}

// Cache maps identities to values of type V.
type Cache[V any] struct {
	name  string
	ttl   time.Duration
	cache *gocache.Cache
}

// New returns a cache whose entries live for ttl. Use NoExpiration for entries that stay valid
// until invalidated.
func New[V any](name string, ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		name:  name,
		ttl:   ttl,
		cache: gocache.New(ttl, DefaultCleanupInterval),
	}
}

// Get returns the value cached for uri. A value of the wrong type counts as a miss.
func (c *Cache[V]) Get(uri string) (V, bool) {
	var zero V
	raw, found := c.cache.Get(uri)
	if !found {
		return zero, false
	}
	v, ok := raw.(V)
	if !ok {
		log.Error(log.CatCache, "cached value has the wrong type", "cache", c.name, "uri", uri)
		c.cache.Delete(uri)
		return zero, false
	}
	return v, true
}

// Set caches value for uri with the cache's ttl.
func (c *Cache[V]) Set(uri string, value V) {
	c.cache.Set(uri, value, gocache.DefaultExpiration)
}

// Invalidate drops the entries for uris.
func (c *Cache[V]) Invalidate(uris ...string) {
	for _, uri := range uris {
		c.cache.Delete(uri)
	}
}

// Flush drops every entry.
func (c *Cache[V]) Flush() {
	if n := c.cache.ItemCount(); n > 0 {
		log.Debug(log.CatCache, "flushed", "cache", c.name, "entries", n)
	}
	c.cache.Flush()
}

// Len returns the number of live entries.
func (c *Cache[V]) Len() int { return c.cache.ItemCount() }

// Stats counts resolver lookups.
type Stats struct {
	Hits   int64
	Misses int64
}

// Resolver computes a value for an identity on first use and serves it from a Store afterwards.
type Resolver[V any, I any] struct {
	store  Store[V]
	fn     func(input I) (V, error)
	hits   atomic.Int64
	misses atomic.Int64
}

// NewResolver returns a resolver that fills store with fn.
func NewResolver[V any, I any](store Store[V], fn func(input I) (V, error)) *Resolver[V, I] {
	return &Resolver[V, I]{store: store, fn: fn}
}

// Resolve returns the cached value for uri or computes it from input. Failures are not cached.
func (r *Resolver[V, I]) Resolve(uri string, input I) (V, error) {
	if v, ok := r.store.Get(uri); ok {
		r.hits.Add(1)
		return v, nil
	}
	r.misses.Add(1)
	v, err := r.fn(input)
	if err != nil {
		return v, err
	}
	r.store.Set(uri, v)
	return v, nil
}

// Stats returns the lookup counters.
func (r *Resolver[V, I]) Stats() Stats {
	return Stats{Hits: r.hits.Load(), Misses: r.misses.Load()}
}
