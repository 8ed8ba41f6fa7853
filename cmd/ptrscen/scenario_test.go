package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dacapoday/smart/internal/stats"
)

func TestScenarios(t *testing.T) {
	live := stats.LiveBlocks()
	for _, s := range scenarios {
		t.Run(s.name, func(t *testing.T) {
			require.NoError(t, s.run())
		})
	}
	require.Equal(t, live, stats.LiveBlocks())
}

func TestStress(t *testing.T) {
	err := stress(context.Background(), Stress{Workers: 2, Rounds: 50, Lockers: 3})
	require.NoError(t, err)
}

func TestStressCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := stress(ctx, Stress{Workers: 1, Rounds: 1, Lockers: 1})
	require.ErrorIs(t, err, context.Canceled)
}
