// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/dacapoday/smart/shared"
	"github.com/dacapoday/smart/unique"
)

type scenario struct {
	name string
	run  func() error
}

var scenarios = []scenario{
	{"weak-lock-after-reset", weakLockAfterReset},
	{"shared-copy-and-move", sharedCopyAndMove},
	{"shared-move", sharedMove},
	{"unique-release", uniqueRelease},
	{"weak-copy-and-move", weakCopyAndMove},
	{"weak-move", weakMove},
	{"upcast", upcast},
}

func check(ok bool, format string, args ...any) error {
	if ok {
		return nil
	}
	return fmt.Errorf(format, args...)
}

func newInt(v int) *int {
	p := new(int)
	*p = v
	return p
}

func weakLockAfterReset() error {
	sp1 := shared.New(newInt(1234))
	wp := sp1.Weak()
	defer wp.Reset()

	sp2 := wp.Lock()
	if err := check(sp2.Valid(), "lock of a live pointee failed"); err != nil {
		return err
	}
	sp2.Reset()

	sp1.Reset()
	locked := wp.Lock()
	return check(!locked.Valid(), "lock of a destroyed pointee succeeded")
}

func sharedCopyAndMove() error {
	sp1 := shared.New(newInt(10))
	sp2 := shared.New(newInt(20))
	sp3 := sp1.Clone()
	sp4 := sp1.Move()
	var sp5 shared.Shared[int]
	defer sp3.Reset()
	defer sp4.Reset()
	defer sp5.Reset()

	sp5.Assign(&sp2)
	if err := check(sp2.UseCount() == 2, "assign: use count %d, want 2", sp2.UseCount()); err != nil {
		return err
	}
	sp5.MoveFrom(&sp2)
	if err := check(!sp2.Valid() && sp5.UseCount() == 1, "move assign left %d owners", sp5.UseCount()); err != nil {
		return err
	}
	return check(sp3.UseCount() == 2 && *sp4.Get() == 10, "copy and move: use count %d", sp3.UseCount())
}

func sharedMove() error {
	sp1 := shared.New(newInt(10))
	sp2 := sp1.Move()
	defer sp2.Reset()

	if err := check(!sp1.Valid(), "moved-from handle is not empty"); err != nil {
		return err
	}
	return check(*sp2.Get() == 10, "moved handle holds %d, want 10", *sp2.Get())
}

func uniqueRelease() error {
	up1 := unique.New(newInt(1))
	data := up1.Release()
	if err := check(!up1.Valid(), "released handle is not empty"); err != nil {
		return err
	}
	return check(data != nil && *data == 1, "released pointer lost its value")
}

func weakCopyAndMove() error {
	sp1 := shared.New(newInt(10))
	defer sp1.Reset()

	wp1 := sp1.Weak()
	wp2 := wp1.Clone()
	wp3 := wp2.Move()
	defer wp3.Reset()

	wp3.Assign(&wp1)
	wp3.MoveFrom(&wp1)
	wp1.Reset()

	locked := wp1.Lock()
	if err := check(!locked.Valid(), "lock of an empty weak handle succeeded"); err != nil {
		return err
	}
	return check(wp3.WeakCount() == 1, "weak count %d, want 1", wp3.WeakCount())
}

func weakMove() error {
	sp1 := shared.New(newInt(1))
	sp2 := shared.New(newInt(1))
	defer sp1.Reset()
	defer sp2.Reset()

	wp1 := sp1.Weak()
	wp2 := sp1.Weak()
	wp3 := wp1.Move()
	defer wp2.Reset()
	defer wp3.Reset()

	locked := wp1.Lock()
	if err := check(!locked.Valid(), "lock of a moved-from weak handle succeeded"); err != nil {
		return err
	}
	locked = wp3.Lock()
	defer locked.Reset()
	return check(locked.Valid(), "lock of a moved weak handle failed")
}

type base struct {
	id int
}

type derived struct {
	base
}

func upcast() error {
	sp1 := shared.New(&derived{base: base{id: 7}})
	sp2 := shared.Upcast(&sp1, func(d *derived) *base { return &d.base })
	defer sp2.Reset()

	sp1.Reset()
	return check(sp2.Valid() && sp2.Get().id == 7, "base alias lost the pointee")
}
