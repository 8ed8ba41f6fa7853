// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package atom

import (
	"sync"

	"github.com/dacapoday/smart/unique"
)

// Own holds an exclusively owned pointee that readers borrow.
// The pointee lifecycle is bound to the slot.
//
// Zero value is closed. Call Load to initialize.
type Own[T any] struct {
	val   unique.Unique[T]
	view  sync.RWMutex
	mutex sync.Mutex
}

// Load moves up into the slot and destroys the previous pointee.
// up becomes empty.
func (own *Own[T]) Load(up *unique.Unique[T]) {
	own.mutex.Lock()
	defer own.mutex.Unlock()

	next := up.Move()
	own.view.Lock()
	own.val.Swap(&next)
	own.view.Unlock()
	next.Reset(nil)
}

// View calls fn with the pointee under a read lock.
// fn must not retain the pointer. Returns false if closed.
func (own *Own[T]) View(fn func(val *T)) bool {
	own.view.RLock()
	defer own.view.RUnlock()

	val := own.val.Get()
	if val == nil {
		return false
	}
	fn(val)
	return true
}

// Swap replaces the pointee via callback.
//
// The swap function receives the current pointee and returns:
//   - next: new pointee, owned by the slot on success
//   - err: non-nil aborts the swap
//
// On success, publishes next and destroys the old pointee.
// Returning the current pointee leaves the slot unchanged.
func (own *Own[T]) Swap(swap func(cur *T) (next *T, err error)) (err error) {
	own.mutex.Lock()
	defer own.mutex.Unlock()

	cur := own.val.Get()
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

	up := unique.New(next)
	own.view.Lock()
	own.val.Swap(&up)
	own.view.Unlock()
	return up.Close()
}

// Take moves the pointee out and leaves the slot closed.
func (own *Own[T]) Take() unique.Unique[T] {
	own.mutex.Lock()
	defer own.mutex.Unlock()
	own.view.Lock()
	defer own.view.Unlock()
	return own.val.Move()
}

// Close destroys the pointee.
// No-op if already closed.
func (own *Own[T]) Close() error {
	own.mutex.Lock()
	defer own.mutex.Unlock()

	own.view.Lock()
	old := own.val.Move()
	own.view.Unlock()
	return old.Close()
}
