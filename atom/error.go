// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package atom

import "github.com/dacapoday/smart"

var (
	ErrClosed = smart.ErrClosed
	ErrEmpty  = smart.ErrEmpty
)
