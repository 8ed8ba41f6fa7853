// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

// Package unique provides exclusive, move-only ownership of a heap object.
package unique

import (
	"github.com/dacapoday/smart"
	"github.com/dacapoday/smart/internal/stats"
)

// noCopy makes go vet (copylocks) reject a Unique copied by value,
// which would leave two owners of one pointee.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Unique is the sole owner of a *T.
// The pointee is destroyed by Reset, Close or MoveFrom on the owner.
//
// Zero value is empty.
type Unique[T any] struct {
	_   noCopy
	ptr *T
}

// New takes ownership of p. p must not be owned by anything else.
func New[T any](p *T) Unique[T] {
	return Unique[T]{ptr: p}
}

// Move hands the pointee to the returned Unique. up becomes empty.
func (up *Unique[T]) Move() Unique[T] {
	return Unique[T]{ptr: up.Release()}
}

// MoveFrom destroys up's pointee and takes over src's.
// Moving a Unique onto itself keeps its pointee.
func (up *Unique[T]) MoveFrom(src *Unique[T]) {
	if up == src {
		return
	}
	up.Reset(src.Release())
}

// Swap exchanges the pointees of up and other.
func (up *Unique[T]) Swap(other *Unique[T]) {
	up.ptr, other.ptr = other.ptr, up.ptr
}

// Get returns the pointee without giving up ownership, nil if empty.
func (up *Unique[T]) Get() *T {
	return up.ptr
}

// Valid reports whether up owns a pointee.
func (up *Unique[T]) Valid() bool {
	return up.ptr != nil
}

// Release gives up ownership without destroying the pointee.
// The caller becomes responsible for it.
func (up *Unique[T]) Release() *T {
	ptr := up.ptr
	up.ptr = nil
	return ptr
}

// Reset destroys the current pointee and takes ownership of p, or
// becomes empty when p is nil. Resetting to the owned pointer is a no-op.
// A Close error is reported to the library logger.
func (up *Unique[T]) Reset(p *T) {
	if err := up.reset(p); err != nil {
		smart.Logger().Warn().Err(err).Msg("unique: destroy pointee")
	}
}

// Close destroys the pointee and returns its Close error.
func (up *Unique[T]) Close() error {
	return up.reset(nil)
}

func (up *Unique[T]) reset(p *T) (err error) {
	old := up.ptr
	up.ptr = p
	if old != nil && old != p {
		err = smart.Destroy(old)
		stats.Destroyed(true, err)
	}
	return
}
