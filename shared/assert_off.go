//go:build !debug

// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package shared

// assertAcquired is a no-op in production.
// Enable with -tags debug for runtime checks.
func assertAcquired(string, uint64, uint64, uint) {}

// assertReleased is a no-op in production.
// Enable with -tags debug for runtime checks.
func assertReleased(string, uint64, uint64, uint) {}
