// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

// Package stats keeps the library counters.
package stats

import (
	"io"

	"github.com/VictoriaMetrics/metrics"
)

var set = metrics.NewSet()

var (
	blocksAllocated = set.NewCounter("smart_control_blocks_allocated_total")
	blocksRecycled  = set.NewCounter("smart_control_blocks_recycled_total")
	blocksFreed     = set.NewCounter("smart_control_blocks_freed_total")

	sharedDestroyed = set.NewCounter(`smart_objects_destroyed_total{owner="shared"}`)
	uniqueDestroyed = set.NewCounter(`smart_objects_destroyed_total{owner="unique"}`)
	destroyErrors   = set.NewCounter("smart_destroy_errors_total")

	lockHit     = set.NewCounter(`smart_weak_lock_total{result="hit"}`)
	lockExpired = set.NewCounter(`smart_weak_lock_total{result="expired"}`)

	cacheHit     = set.NewCounter(`smart_weakcache_lookups_total{result="hit"}`)
	cacheMiss    = set.NewCounter(`smart_weakcache_lookups_total{result="miss"}`)
	cacheExpired = set.NewCounter(`smart_weakcache_lookups_total{result="expired"}`)
	cacheLoad    = set.NewCounter("smart_weakcache_loads_total")
)

func init() {
	set.NewGauge("smart_control_blocks_live", func() float64 {
		return float64(LiveBlocks())
	})
}

// WritePrometheus writes every counter to w in Prometheus text format.
func WritePrometheus(w io.Writer) {
	set.WritePrometheus(w)
}

// BlockAllocated counts a control block handed out, recycled or not.
func BlockAllocated(recycled bool) {
	blocksAllocated.Inc()
	if recycled {
		blocksRecycled.Inc()
	}
}

// BlockFreed counts a control block returned to the arena.
func BlockFreed() {
	blocksFreed.Inc()
}

// LiveBlocks reports control blocks allocated and not yet freed.
func LiveBlocks() int64 {
	return int64(blocksAllocated.Get()) - int64(blocksFreed.Get())
}

// Destroyed counts a pointee torn down by its last owner.
func Destroyed(unique bool, err error) {
	if unique {
		uniqueDestroyed.Inc()
	} else {
		sharedDestroyed.Inc()
	}
	if err != nil {
		destroyErrors.Inc()
	}
}

// DestroyedCount reports pointees destroyed by shared and unique owners.
func DestroyedCount() (shared, unique uint64) {
	return sharedDestroyed.Get(), uniqueDestroyed.Get()
}

// Lock counts a weak-to-strong promotion, hit when the pointee was alive.
func Lock(hit bool) {
	if hit {
		lockHit.Inc()
	} else {
		lockExpired.Inc()
	}
}

// Lookup results of the weak cache.
const (
	Hit = iota
	Miss
	Expired
)

// CacheLookup counts a weak cache lookup by its result.
func CacheLookup(result int) {
	switch result {
	case Hit:
		cacheHit.Inc()
	case Miss:
		cacheMiss.Inc()
	case Expired:
		cacheExpired.Inc()
	}
}

// CacheLoad counts an object loaded into the weak cache.
func CacheLoad() {
	cacheLoad.Inc()
}
