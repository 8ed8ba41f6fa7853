// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package shared

import (
	"sync/atomic"

	"github.com/dacapoday/smart"
	"github.com/dacapoday/smart/internal/arena"
	"github.com/dacapoday/smart/internal/stats"
)

// state layout: [32-bit weak][32-bit strong]
//
// While strong > 0 the strong owners together hold one extra weak
// reference, so the block is freed exactly by whoever drops the weak half
// to zero, and never while the pointee is still being destroyed.
const (
	strongOne  = uint64(1)
	weakOne    = uint64(1) << 32
	strongMask = weakOne - 1
)

// control is the bookkeeping shared by every Shared and Weak handle
// aliasing one pointee.
type control struct {
	state atomic.Uint64
	obj   any // pointee as handed to New, nil once destroyed
}

var blocks = arena.New[control](1024)

func newControl(obj any) *control {
	cb := blocks.Alloc()
	cb.obj = obj
	cb.state.Store(weakOne | strongOne)
	return cb
}

// Reset clears cb for reuse by the arena.
func (cb *control) Reset() {
	cb.state.Store(0)
	cb.obj = nil
}

func unpack(state uint64) (strong, weak uint32) {
	return uint32(state & strongMask), uint32(state >> 32)
}

// counts reports live strong and weak handles, excluding the weak
// reference held on behalf of the strong owners.
func (cb *control) counts() (strong, weak int) {
	s, w := unpack(cb.state.Load())
	if s > 0 {
		w--
	}
	return int(s), int(w)
}

// incStrong adds a strong reference on behalf of a caller already holding one.
func (cb *control) incStrong() {
	assertAcquired("incStrong", cb.state.Add(strongOne), strongMask, 0)
}

// tryIncStrong adds a strong reference unless the pointee is already gone.
// The check and the increment are one compare-and-swap.
func (cb *control) tryIncStrong() bool {
	for {
		old := cb.state.Load()
		if old&strongMask == 0 {
			return false
		}
		if cb.state.CompareAndSwap(old, old+strongOne) {
			return true
		}
	}
}

// decStrong drops a strong reference. The last one destroys the pointee,
// then gives up the weak reference held for the strong owners.
func (cb *control) decStrong() (err error) {
	state := cb.state.Add(^(strongOne - 1))
	assertReleased("decStrong", state, strongMask, 0)
	if state&strongMask != 0 {
		return
	}

	obj := cb.obj
	cb.obj = nil
	err = smart.Destroy(obj)
	stats.Destroyed(false, err)

	cb.decWeak()
	return
}

func (cb *control) incWeak() {
	assertAcquired("incWeak", cb.state.Add(weakOne), ^strongMask, 32)
}

// decWeak drops a weak reference and frees the block with the last one.
func (cb *control) decWeak() {
	state := cb.state.Add(^(weakOne - 1))
	assertReleased("decWeak", state, ^strongMask, 32)
	if state == 0 {
		blocks.Free(cb)
	}
}
