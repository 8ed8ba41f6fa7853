// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

// Package smart defines the pieces shared by the ownership handles.
//
// Handles live in sub-packages:
//   - shared: reference-counted Shared and its non-owning Weak observer
//   - unique: exclusive, move-only Unique
//   - atom: slots that publish a handle to concurrent readers
//   - weakcache: canonicalizing cache whose entries never keep objects alive
//
// A pointee is destroyed when its last owner lets go. Destroying calls
// Close on pointees implementing io.Closer, then drops every reference the
// library holds so the garbage collector can reclaim the memory.
package smart

import (
	"io"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/dacapoday/smart/internal/stats"
)

// Destroy tears down a pointee that reached the end of its owned lifetime.
// obj must not be nil.
func Destroy(obj any) error {
	if closer, ok := obj.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

var logger atomic.Pointer[zerolog.Logger]

func init() {
	nop := zerolog.Nop()
	logger.Store(&nop)
}

// SetLogger replaces the logger used to report failures that have no
// caller to return to, such as a pointee Close error during Reset.
// The default logger discards everything.
func SetLogger(l zerolog.Logger) {
	logger.Store(&l)
}

// Logger returns the library logger.
func Logger() *zerolog.Logger {
	return logger.Load()
}

// WriteMetrics writes the library counters to w in Prometheus text format.
func WriteMetrics(w io.Writer) {
	stats.WritePrometheus(w)
}
