//go:build debug

// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package shared

import "fmt"

// assertAcquired panics if a counter was zero before being incremented
// by a caller that claimed to hold a reference.
// Only enabled with -tags debug.
func assertAcquired(method string, state, mask uint64, shift uint) {
	if (state&mask)>>shift < 2 {
		panic(fmt.Sprintf("%s: acquired from a released reference, state %#x", method, state))
	}
}

// assertReleased panics if a counter wrapped around while being decremented.
// Only enabled with -tags debug.
func assertReleased(method string, state, mask uint64, shift uint) {
	if (state&mask)>>shift == mask>>shift {
		panic(fmt.Sprintf("%s: released more than acquired, state %#x", method, state))
	}
}
