// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

// Package shared provides reference-counted ownership of a heap object.
//
// Shared is a strong handle: the pointee stays alive while at least one
// Shared references it and is destroyed by the last one to let go.
// Weak observes a pointee without keeping it alive and can be promoted
// back to a Shared with Lock while the pointee still exists.
//
// Handles are values that must not be copied by assignment; go vet
// reports such copies. Use Clone to add an owner and Move to hand one over.
// A single handle value is not safe for concurrent mutation, but distinct
// handles of one pointee may be used from different goroutines.
package shared

import (
	"github.com/dacapoday/smart"
	"github.com/dacapoday/smart/unique"
)

// Shared is a counted strong reference to a *T.
//
// Zero value is empty.
type Shared[T any] struct {
	_   noCopy
	ptr *T
	cb  *control
}

// New takes ownership of p. A nil p yields an empty handle without a
// control block. p must not be owned by anything else.
func New[T any](p *T) Shared[T] {
	if p == nil {
		return Shared[T]{}
	}
	return Shared[T]{ptr: p, cb: newControl(p)}
}

// FromUnique moves the pointee of up into a new Shared. up becomes empty.
func FromUnique[T any](up *unique.Unique[T]) Shared[T] {
	return New(up.Release())
}

// Upcast returns a handle to a view of src's pointee that shares src's
// control block, so the pointee lives until the last of both is released.
// base maps the pointee to the view, typically the address of an
// embedded struct. If base returns nil the result is empty.
func Upcast[B, D any](src *Shared[D], base func(*D) *B) Shared[B] {
	if src.cb == nil {
		return Shared[B]{}
	}
	ptr := base(src.ptr)
	if ptr == nil {
		return Shared[B]{}
	}
	src.cb.incStrong()
	return Shared[B]{ptr: ptr, cb: src.cb}
}

// Clone returns another owner of the same pointee.
func (sp *Shared[T]) Clone() Shared[T] {
	if sp.cb == nil {
		return Shared[T]{}
	}
	sp.cb.incStrong()
	return Shared[T]{ptr: sp.ptr, cb: sp.cb}
}

// Move hands the ownership held by sp to the returned handle.
// sp becomes empty; counts are unchanged.
func (sp *Shared[T]) Move() Shared[T] {
	ptr, cb := sp.ptr, sp.cb
	sp.ptr, sp.cb = nil, nil
	return Shared[T]{ptr: ptr, cb: cb}
}

// Assign releases sp's pointee and makes sp another owner of src's.
// Assigning a handle to itself keeps it unchanged.
func (sp *Shared[T]) Assign(src *Shared[T]) {
	tmp := src.Clone()
	sp.Swap(&tmp)
	tmp.Reset()
}

// MoveFrom releases sp's pointee and takes over src's ownership.
// src becomes empty unless it is sp itself.
func (sp *Shared[T]) MoveFrom(src *Shared[T]) {
	if sp == src {
		return
	}
	tmp := src.Move()
	sp.Swap(&tmp)
	tmp.Reset()
}

// Swap exchanges the pointees of sp and other.
func (sp *Shared[T]) Swap(other *Shared[T]) {
	sp.ptr, other.ptr = other.ptr, sp.ptr
	sp.cb, other.cb = other.cb, sp.cb
}

// Get returns the pointee, nil if sp is empty.
func (sp *Shared[T]) Get() *T {
	return sp.ptr
}

// Valid reports whether sp owns a pointee.
func (sp *Shared[T]) Valid() bool {
	return sp.ptr != nil
}

// UseCount returns the number of Shared handles owning sp's pointee,
// 0 if sp is empty. The value may be stale under concurrent use.
func (sp *Shared[T]) UseCount() int {
	if sp.cb == nil {
		return 0
	}
	strong, _ := sp.cb.counts()
	return strong
}

// Owns reports whether sp and other share one control block.
// Upcast aliases of the same pointee share it too.
func Owns[A, B any](sp *Shared[A], other *Shared[B]) bool {
	return sp.cb != nil && sp.cb == other.cb
}

// Weak returns a weak observer of sp's pointee.
func (sp *Shared[T]) Weak() Weak[T] {
	return NewWeak(sp)
}

// Reset releases sp's ownership and leaves it empty.
// If sp was the last owner, the pointee is destroyed now and a Close
// error is reported to the library logger.
func (sp *Shared[T]) Reset() {
	if err := sp.release(); err != nil {
		smart.Logger().Warn().Err(err).Msg("shared: destroy pointee")
	}
}

// Close is Reset returning the pointee's Close error.
// Intended for defer at the end of a handle's scope.
func (sp *Shared[T]) Close() error {
	return sp.release()
}

func (sp *Shared[T]) release() (err error) {
	cb := sp.cb
	sp.ptr, sp.cb = nil, nil
	if cb != nil {
		err = cb.decStrong()
	}
	return
}

// adopt wraps a strong reference already counted in cb.
func adopt[T any](ptr *T, cb *control) Shared[T] {
	return Shared[T]{ptr: ptr, cb: cb}
}
