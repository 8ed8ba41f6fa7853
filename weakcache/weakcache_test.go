package weakcache

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

type page struct {
	key    string
	closed atomic.Int32
}

func (p *page) Close() error {
	p.closed.Add(1)
	return nil
}

func newCache(t *testing.T) *Cache[page] {
	t.Helper()
	c, err := New[page](Config{Capacity: 64})
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func loader(key string, loads *atomic.Int32) func() (*page, error) {
	return func() (*page, error) {
		loads.Add(1)
		return &page{key: key}, nil
	}
}

func TestAcquireCanonical(t *testing.T) {
	c := newCache(t)
	var loads atomic.Int32

	sp1, err := c.Acquire("a", loader("a", &loads))
	require.NoError(t, err)
	defer sp1.Reset()

	sp2, err := c.Acquire("a", loader("a", &loads))
	require.NoError(t, err)
	defer sp2.Reset()

	require.Same(t, sp1.Get(), sp2.Get())
	require.Equal(t, 2, sp1.UseCount())
	require.EqualValues(t, 1, loads.Load())
}

func TestAcquireAfterRelease(t *testing.T) {
	c := newCache(t)
	var loads atomic.Int32

	sp, err := c.Acquire("a", loader("a", &loads))
	require.NoError(t, err)
	first := sp.Get()
	sp.Reset()
	require.EqualValues(t, 1, first.closed.Load())

	sp, err = c.Acquire("a", loader("a", &loads))
	require.NoError(t, err)
	defer sp.Reset()

	require.NotSame(t, first, sp.Get())
	require.EqualValues(t, 2, loads.Load())
}

func TestAcquireLoadError(t *testing.T) {
	c := newCache(t)
	boom := errors.New("boom")

	sp, err := c.Acquire("a", func() (*page, error) { return nil, boom })
	require.ErrorIs(t, err, boom)
	require.False(t, sp.Valid())

	sp, err = c.Acquire("a", func() (*page, error) { return nil, nil })
	require.ErrorIs(t, err, ErrEmpty)
	require.False(t, sp.Valid())
}

func TestForget(t *testing.T) {
	c := newCache(t)
	var loads atomic.Int32

	sp1, err := c.Acquire("a", loader("a", &loads))
	require.NoError(t, err)
	defer sp1.Reset()

	c.Forget("a")
	require.Zero(t, sp1.Get().closed.Load())

	sp2, err := c.Acquire("a", loader("a", &loads))
	require.NoError(t, err)
	defer sp2.Reset()

	require.NotSame(t, sp1.Get(), sp2.Get())
	require.EqualValues(t, 2, loads.Load())
}

func TestAcquireConcurrent(t *testing.T) {
	c := newCache(t)
	var loads atomic.Int32

	keeper, err := c.Acquire("hot", loader("hot", &loads))
	require.NoError(t, err)
	defer keeper.Reset()

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 100 {
				sp, err := c.Acquire("hot", loader("hot", &loads))
				if err != nil {
					t.Error(err)
					return
				}
				if sp.Get() != keeper.Get() {
					t.Errorf("worker %d round %d: got another object", i, j)
				}
				sp.Reset()
			}
		}()
	}
	wg.Wait()

	require.EqualValues(t, 1, loads.Load())
}

// An owned object stays canonical after the bounded cache evicts its entry.
func TestAcquireSurvivesEviction(t *testing.T) {
	c, err := New[page](Config{Capacity: 2})
	require.NoError(t, err)
	t.Cleanup(c.Close)
	var loads atomic.Int32

	keeper, err := c.Acquire("a", loader("a", &loads))
	require.NoError(t, err)
	defer keeper.Reset()

	for i := range 50 {
		key := fmt.Sprint("other-", i)
		sp, err := c.Acquire(key, loader(key, &loads))
		require.NoError(t, err)
		sp.Reset()
	}
	c.cache.Wait()

	sp, err := c.Acquire("a", loader("a", &loads))
	require.NoError(t, err)
	defer sp.Reset()

	require.Same(t, keeper.Get(), sp.Get())
	require.Equal(t, 2, keeper.UseCount())
	require.EqualValues(t, 51, loads.Load())
}

// Entries of released objects do not pile up in the index.
func TestAcquireSweepsExpired(t *testing.T) {
	c, err := New[page](Config{Capacity: 4})
	require.NoError(t, err)
	t.Cleanup(c.Close)
	var loads atomic.Int32

	for i := range 100 {
		key := fmt.Sprint("key-", i)
		sp, err := c.Acquire(key, loader(key, &loads))
		require.NoError(t, err)
		sp.Reset()
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()
	require.LessOrEqual(t, len(c.entries), 4)
}

func TestHashKey(t *testing.T) {
	seen := make(map[[2]uint64]bool)
	for i := range 1000 {
		lo, hi := hashKey(fmt.Sprint("key-", i))
		seen[[2]uint64{lo, hi}] = true
	}
	require.Len(t, seen, 1000)

	lo1, hi1 := hashKey("same")
	lo2, hi2 := hashKey("same")
	require.Equal(t, lo1, lo2)
	require.Equal(t, hi1, hi2)
}
