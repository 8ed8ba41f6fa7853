// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/dacapoday/smart/shared"
)

type tracked struct {
	closed atomic.Int32
}

func (t *tracked) Close() error {
	t.closed.Add(1)
	return nil
}

// stress races weak Lock against the last strong Reset.
// Every round must destroy its pointee exactly once, and no successful
// Lock may observe a destroyed pointee.
func stress(ctx context.Context, cfg Stress) error {
	g, ctx := errgroup.WithContext(ctx)
	for w := range cfg.Workers {
		g.Go(func() error {
			for r := range cfg.Rounds {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := stressRound(cfg.Lockers); err != nil {
					return fmt.Errorf("worker %d round %d: %w", w, r, err)
				}
			}
			return nil
		})
	}
	return g.Wait()
}

func stressRound(lockers int) error {
	obj := &tracked{}
	sp := shared.New(obj)

	observers := make([]shared.Weak[tracked], lockers)
	for i := range observers {
		observers[i] = sp.Weak()
	}

	var stale atomic.Int32
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := range observers {
		wg.Add(1)
		go func(wp *shared.Weak[tracked]) {
			defer wg.Done()
			defer wp.Reset()
			<-start
			locked := wp.Lock()
			if locked.Valid() && locked.Get().closed.Load() != 0 {
				stale.Add(1)
			}
			locked.Reset()
		}(&observers[i])
	}

	close(start)
	sp.Reset()
	wg.Wait()

	if n := stale.Load(); n != 0 {
		return fmt.Errorf("%d locks observed a destroyed pointee", n)
	}
	if n := obj.closed.Load(); n != 1 {
		return fmt.Errorf("pointee destroyed %d times", n)
	}
	return nil
}
