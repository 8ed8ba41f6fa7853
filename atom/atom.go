// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

// Package atom provides slots that publish an owned pointee to
// concurrent readers.
//
// Supports concurrent reads (Acquire, View) and serialized writes (Swap).
//
// Two slot variants:
//   - Atom: holds a shared.Shared; readers get their own owner
//   - Own: holds a unique.Unique; readers borrow under a read lock
//
// A replaced pointee is released outside the read lock, so readers are
// never blocked by a pointee's Close.
package atom

import (
	"sync"

	"github.com/dacapoday/smart/shared"
)

// Atom publishes a shared pointee.
//
// Zero value is closed. Call Store to initialize.
type Atom[T any] struct {
	val   shared.Shared[T]
	view  sync.RWMutex
	mutex sync.Mutex
}

// Store moves sp into the slot and releases the previous pointee.
// sp becomes empty.
func (atom *Atom[T]) Store(sp *shared.Shared[T]) {
	atom.mutex.Lock()
	defer atom.mutex.Unlock()

	next := sp.Move()
	atom.view.Lock()
	atom.val.Swap(&next)
	atom.view.Unlock()
	next.Reset()
}

// Acquire returns a new owner of the current pointee.
// Returns an empty handle if closed.
//
// Important: Caller must Reset the handle when done.
func (atom *Atom[T]) Acquire() shared.Shared[T] {
	atom.view.RLock()
	defer atom.view.RUnlock()
	return atom.val.Clone()
}

// Weak returns a weak observer of the current pointee.
func (atom *Atom[T]) Weak() shared.Weak[T] {
	atom.view.RLock()
	defer atom.view.RUnlock()
	return atom.val.Weak()
}

// Swap replaces the pointee via callback.
//
// The swap function receives the current pointee and returns:
//   - next: new pointee, owned by the slot on success
//   - err: non-nil aborts the swap
//
// On success, publishes next and releases the old pointee.
// Returning the current pointee leaves the slot unchanged.
// Returns ErrClosed if the slot is closed.
func (atom *Atom[T]) Swap(swap func(cur *T) (next *T, err error)) (err error) {
	atom.mutex.Lock()
	defer atom.mutex.Unlock()

	cur := atom.val.Get()
	if cur == nil {
		return ErrClosed
	}

	next, err := swap(cur)
	if err != nil || next == cur {
		return
	}
	if next == nil {
		return ErrEmpty
	}

	sp := shared.New(next)
	atom.view.Lock()
	atom.val.Swap(&sp)
	atom.view.Unlock()
	sp.Reset()
	return
}

// Close releases the slot's ownership and returns the pointee's Close
// error if this was its last owner.
// No-op if already closed.
func (atom *Atom[T]) Close() error {
	atom.mutex.Lock()
	defer atom.mutex.Unlock()

	atom.view.Lock()
	old := atom.val.Move()
	atom.view.Unlock()
	return old.Close()
}
