package arena

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dacapoday/smart/internal/stats"
)

type counter struct {
	n     int
	reset int
}

func (c *counter) Reset() {
	c.n = 0
	c.reset++
}

func TestArenaRecycle(t *testing.T) {
	arena := New[counter](2)
	live := stats.LiveBlocks()

	block := arena.Alloc()
	block.n = 42
	require.Equal(t, live+1, stats.LiveBlocks())

	arena.Free(block)
	require.Equal(t, live, stats.LiveBlocks())
	require.Equal(t, 1, arena.Idle())
	require.Zero(t, block.n)

	again := arena.Alloc()
	require.Same(t, block, again)
	require.Equal(t, 1, again.reset)
	require.Zero(t, arena.Idle())
	arena.Free(again)
}

func TestArenaOverflow(t *testing.T) {
	arena := New[counter](1)

	a, b := arena.Alloc(), arena.Alloc()
	arena.Free(a)
	arena.Free(b)

	require.Equal(t, 1, arena.Idle())
	require.Same(t, a, arena.Alloc())
	require.NotSame(t, b, arena.Alloc())
}

func TestArenaConcurrent(t *testing.T) {
	arena := New[counter](16)
	live := stats.LiveBlocks()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 1000 {
				block := arena.Alloc()
				block.n++
				arena.Free(block)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, live, stats.LiveBlocks())
	require.LessOrEqual(t, arena.Idle(), 16)
}
