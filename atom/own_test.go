package atom

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dacapoday/smart/unique"
)

func TestOwnClosed(t *testing.T) {
	var own Own[config]

	require.False(t, own.View(func(*config) {}))
	require.ErrorIs(t, own.Swap(func(cur *config) (*config, error) {
		return cur, nil
	}), ErrClosed)

	taken := own.Take()
	require.False(t, taken.Valid())
	require.NoError(t, own.Close())
}

func TestOwnLoadAndSwap(t *testing.T) {
	var own Own[config]
	v1, v2 := &config{version: 1}, &config{version: 2}

	up := unique.New(v1)
	own.Load(&up)
	require.False(t, up.Valid())

	var seen int
	require.True(t, own.View(func(c *config) { seen = c.version }))
	require.Equal(t, 1, seen)

	require.NoError(t, own.Swap(func(cur *config) (*config, error) {
		return v2, nil
	}))
	require.EqualValues(t, 1, v1.closed.Load())

	up = unique.New(&config{version: 3})
	own.Load(&up)
	require.EqualValues(t, 1, v2.closed.Load())

	require.True(t, own.View(func(c *config) { seen = c.version }))
	require.Equal(t, 3, seen)
	require.NoError(t, own.Close())
}

func TestOwnTake(t *testing.T) {
	var own Own[config]
	v1 := &config{version: 1}
	up := unique.New(v1)
	own.Load(&up)

	taken := own.Take()
	require.Same(t, v1, taken.Get())
	require.False(t, own.View(func(*config) {}))

	require.NoError(t, taken.Close())
	require.EqualValues(t, 1, v1.closed.Load())
}
