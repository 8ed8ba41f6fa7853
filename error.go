// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package smart

import "errors"

var (
	ErrClosed = errors.New("closed")
	ErrEmpty  = errors.New("empty")
)
