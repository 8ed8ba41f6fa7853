// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

// Package arena recycles fixed-type blocks with explicit free.
//
// Alloc and Free are the only two points where a block changes hands,
// so a block must not be touched after it was freed.
package arena

import (
	"sync"

	"github.com/dacapoday/smart/internal/stats"
)

// Block constrains T to be a value type whose pointer can clear itself
// before reuse.
type Block[T any] interface {
	*T
	Reset()
}

// Arena keeps up to capacity freed blocks for reuse.
// Blocks freed while the ring is full are left to the garbage collector.
//
// Type parameters:
//   - T: block value type
//   - B: block pointer type (*T, must implement Reset)
//
// Safe for concurrent use.
type Arena[T any, B Block[T]] struct {
	mutex sync.Mutex
	ring  ring[T]
}

// New returns an arena retaining at most capacity freed blocks.
func New[T any, B Block[T]](capacity uint16) *Arena[T, B] {
	arena := new(Arena[T, B])
	arena.ring.capacity = capacity
	arena.ring.reset()
	return arena
}

// Alloc returns a zeroed block.
func (arena *Arena[T, B]) Alloc() *T {
	arena.mutex.Lock()
	block := arena.ring.shift()
	arena.mutex.Unlock()

	stats.BlockAllocated(block != nil)
	if block == nil {
		block = new(T)
	}
	return block
}

// Free resets block and keeps it for a later Alloc.
func (arena *Arena[T, B]) Free(block *T) {
	B(block).Reset()
	stats.BlockFreed()

	arena.mutex.Lock()
	arena.ring.push(block)
	arena.mutex.Unlock()
}

// Idle reports how many freed blocks wait for reuse.
func (arena *Arena[T, B]) Idle() int {
	arena.mutex.Lock()
	defer arena.mutex.Unlock()
	return int(arena.ring.length)
}
