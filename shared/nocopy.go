// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package shared

// noCopy makes go vet (copylocks) reject handles copied by value.
// Handles are duplicated with Clone and transferred with Move.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
