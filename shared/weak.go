// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package shared

import "github.com/dacapoday/smart/internal/stats"

// Weak observes the pointee of a Shared without owning it.
// It keeps the control block alive, never the pointee.
// The pointee's memory stays reachable until the last Weak is Reset,
// even after the pointee was destroyed.
//
// Zero value is empty.
type Weak[T any] struct {
	_   noCopy
	ptr *T // identity only, handed out through Lock
	cb  *control
}

// NewWeak returns a weak observer of sp's pointee.
// An empty sp yields an empty Weak.
func NewWeak[T any](sp *Shared[T]) Weak[T] {
	if sp.cb == nil {
		return Weak[T]{}
	}
	sp.cb.incWeak()
	return Weak[T]{ptr: sp.ptr, cb: sp.cb}
}

// WeakUpcast is Upcast for weak observers.
// base only maps the pointer and must not dereference it.
// If base returns nil the result is empty.
func WeakUpcast[B, D any](src *Weak[D], base func(*D) *B) Weak[B] {
	if src.cb == nil {
		return Weak[B]{}
	}
	ptr := base(src.ptr)
	if ptr == nil {
		return Weak[B]{}
	}
	src.cb.incWeak()
	return Weak[B]{ptr: ptr, cb: src.cb}
}

// Clone returns another observer of the same pointee.
func (wp *Weak[T]) Clone() Weak[T] {
	if wp.cb == nil {
		return Weak[T]{}
	}
	wp.cb.incWeak()
	return Weak[T]{ptr: wp.ptr, cb: wp.cb}
}

// Move hands wp's observation to the returned handle. wp becomes empty.
func (wp *Weak[T]) Move() Weak[T] {
	ptr, cb := wp.ptr, wp.cb
	wp.ptr, wp.cb = nil, nil
	return Weak[T]{ptr: ptr, cb: cb}
}

// Assign makes wp observe src's pointee.
func (wp *Weak[T]) Assign(src *Weak[T]) {
	tmp := src.Clone()
	wp.Swap(&tmp)
	tmp.Reset()
}

// MoveFrom makes wp take over src's observation.
// src becomes empty unless it is wp itself.
func (wp *Weak[T]) MoveFrom(src *Weak[T]) {
	if wp == src {
		return
	}
	tmp := src.Move()
	wp.Swap(&tmp)
	tmp.Reset()
}

// Swap exchanges the observed pointees of wp and other.
func (wp *Weak[T]) Swap(other *Weak[T]) {
	wp.ptr, other.ptr = other.ptr, wp.ptr
	wp.cb, other.cb = other.cb, wp.cb
}

// Lock returns a new owner of the pointee, or an empty Shared if wp is
// empty or the pointee was already destroyed.
func (wp *Weak[T]) Lock() Shared[T] {
	if wp.cb == nil {
		return Shared[T]{}
	}
	if !wp.cb.tryIncStrong() {
		stats.Lock(false)
		return Shared[T]{}
	}
	stats.Lock(true)
	return adopt(wp.ptr, wp.cb)
}

// Expired reports whether the pointee is gone or wp is empty.
func (wp *Weak[T]) Expired() bool {
	return wp.UseCount() == 0
}

// UseCount returns the number of Shared handles owning the pointee.
func (wp *Weak[T]) UseCount() int {
	if wp.cb == nil {
		return 0
	}
	strong, _ := wp.cb.counts()
	return strong
}

// WeakCount returns the number of Weak handles observing the pointee.
func (wp *Weak[T]) WeakCount() int {
	if wp.cb == nil {
		return 0
	}
	_, weak := wp.cb.counts()
	return weak
}

// Reset stops observing and leaves wp empty.
func (wp *Weak[T]) Reset() {
	cb := wp.cb
	wp.ptr, wp.cb = nil, nil
	if cb != nil {
		cb.decWeak()
	}
}
