// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

// Package weakcache canonicalizes objects by key without keeping them alive.
//
// Entries hold weak handles: while any caller owns an object, every
// Acquire of its key returns another owner of that same object, even after
// the bounded cache evicted its entry. Once the last owner lets go, the
// object is destroyed and the next Acquire loads a fresh one.
package weakcache

import (
	"fmt"
	"sync"

	"github.com/dgraph-io/ristretto"
	"github.com/zeebo/xxh3"

	"github.com/dacapoday/smart"
	"github.com/dacapoday/smart/internal/stats"
	"github.com/dacapoday/smart/shared"
)

var ErrEmpty = smart.ErrEmpty

// Config sizes the cache. Zero fields take defaults.
type Config struct {
	Capacity    int64 // max entries, default 1024
	NumCounters int64 // admission counters, default 10 * Capacity
	BufferItems int64 // get buffer size, default 64
}

func (cfg Config) withDefaults() Config {
	if cfg.Capacity <= 0 {
		cfg.Capacity = 1024
	}
	if cfg.NumCounters <= 0 {
		cfg.NumCounters = 10 * cfg.Capacity
	}
	if cfg.BufferItems <= 0 {
		cfg.BufferItems = 64
	}
	return cfg
}

// Cache maps string keys to weakly held *T.
// Safe for concurrent use.
//
// entries is the canonical index and keeps an entry while its object is
// alive. The ristretto cache serves hits without taking the mutex; when it
// evicts or rejects an entry whose object is gone, the entry is dropped.
type Cache[T any] struct {
	cache    *ristretto.Cache
	mutex    sync.Mutex // guards entries, serializes loads
	entries  map[string]*entry[T]
	sweepAt  int
	capacity int
}

type entry[T any] struct {
	key   string
	mutex sync.Mutex
	weak  shared.Weak[T]
}

func (e *entry[T]) lock() shared.Shared[T] {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.weak.Lock()
}

func (e *entry[T]) expired() bool {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.weak.Expired()
}

func (e *entry[T]) reset() {
	e.mutex.Lock()
	e.weak.Reset()
	e.mutex.Unlock()
}

// New returns a cache sized by cfg.
func New[T any](cfg Config) (*Cache[T], error) {
	cfg = cfg.withDefaults()
	c := &Cache[T]{
		entries:  make(map[string]*entry[T]),
		sweepAt:  int(cfg.Capacity),
		capacity: int(cfg.Capacity),
	}
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters:        cfg.NumCounters,
		MaxCost:            cfg.Capacity,
		BufferItems:        cfg.BufferItems,
		IgnoreInternalCost: true,
		KeyToHash:          hashKey,
		OnExit: func(val any) {
			if e, ok := val.(*entry[T]); ok {
				c.evicted(e)
			}
		},
	})
	if err != nil {
		return nil, fmt.Errorf("weakcache: %w", err)
	}
	c.cache = cache
	return c, nil
}

func hashKey(key any) (uint64, uint64) {
	h := xxh3.HashString128(key.(string))
	return h.Lo, h.Hi
}

// Acquire returns an owner of the object cached under key, calling load
// when there is none alive. load must return a pointer owned by nobody.
// While any owner of an object is alive, Acquire of its key returns that
// same object.
//
// Important: Caller must Reset the handle when done.
func (c *Cache[T]) Acquire(key string, load func() (*T, error)) (sp shared.Shared[T], err error) {
	if val, ok := c.cache.Get(key); ok {
		if sp = val.(*entry[T]).lock(); sp.Valid() {
			stats.CacheLookup(stats.Hit)
			return
		}
	}

	e, sp, err := c.acquire(key, load)
	// Set may run OnExit in this goroutine, so it is called unlocked.
	if e != nil && !c.cache.Set(key, e, 1) {
		smart.Logger().Debug().Str("key", key).Msg("weakcache: entry not admitted")
	}
	return
}

// acquire resolves key through the index under the mutex, loading it
// when no live entry exists. e is the entry to publish to the cache.
func (c *Cache[T]) acquire(key string, load func() (*T, error)) (e *entry[T], sp shared.Shared[T], err error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	old, ok := c.entries[key]
	if ok {
		if sp = old.lock(); sp.Valid() {
			stats.CacheLookup(stats.Hit)
			e = old
			return
		}
		stats.CacheLookup(stats.Expired)
	} else {
		stats.CacheLookup(stats.Miss)
	}

	p, err := load()
	if err != nil {
		err = fmt.Errorf("weakcache: load %q: %w", key, err)
		return
	}
	if p == nil {
		err = fmt.Errorf("weakcache: load %q: %w", key, ErrEmpty)
		return
	}
	stats.CacheLoad()

	if old != nil {
		delete(c.entries, key)
		old.reset()
	}
	if len(c.entries) >= c.sweepAt {
		c.sweep()
	}

	sp = shared.New(p)
	e = &entry[T]{key: key, weak: sp.Weak()}
	c.entries[key] = e
	return
}

// sweep drops entries whose objects are gone.
func (c *Cache[T]) sweep() {
	for key, e := range c.entries {
		if e.expired() {
			delete(c.entries, key)
			e.reset()
		}
	}
	c.sweepAt = max(2*len(c.entries), c.capacity)
}

// evicted runs when ristretto lets go of e. A live entry stays indexed.
func (c *Cache[T]) evicted(e *entry[T]) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.entries[e.key] != e {
		e.reset()
		return
	}
	if e.expired() {
		delete(c.entries, e.key)
		e.reset()
	}
}

// Forget drops the entry for key. Owners of its object are unaffected.
// Del runs OnExit in this goroutine, so the mutex is released first.
func (c *Cache[T]) Forget(key string) {
	c.mutex.Lock()
	if e, ok := c.entries[key]; ok {
		delete(c.entries, key)
		e.reset()
	}
	c.mutex.Unlock()

	c.cache.Del(key)
	c.cache.Wait()
}

// Close drops every entry and stops the cache.
// Clear runs OnExit in this goroutine, so it is called unlocked.
func (c *Cache[T]) Close() {
	c.cache.Clear()
	c.cache.Close()

	c.mutex.Lock()
	defer c.mutex.Unlock()
	for key, e := range c.entries {
		delete(c.entries, key)
		e.reset()
	}
}
