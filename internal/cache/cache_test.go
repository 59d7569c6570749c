package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/powderline/hakuba-dashboard/internal/resort"
)

func fetchCounting(calls *int, table resort.Table) FetchFunc {
	return func(ctx context.Context) (resort.Table, error) {
		*calls++
		return table, nil
	}
}

func TestGetOrFetchComputesOnce(t *testing.T) {
	c := New(0)
	calls := 0
	fn := fetchCounting(&calls, resort.Table{{Name: "Goryu", Area: 100}})

	first, err := c.GetOrFetch(context.Background(), fn)
	require.NoError(t, err)
	second, err := c.GetOrFetch(context.Background(), fn)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first.Table, second.Table)
	assert.Equal(t, first.FetchedAt, second.FetchedAt)
}

func TestZeroTTLCachesForever(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := NewWithClock(0, clock)
	calls := 0
	fn := fetchCounting(&calls, resort.Table{{Name: "Goryu"}})

	_, err := c.GetOrFetch(context.Background(), fn)
	require.NoError(t, err)

	clock.Advance(1000 * time.Hour)
	_, err = c.GetOrFetch(context.Background(), fn)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
}

func TestTTLExpiry(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := NewWithClock(30*time.Minute, clock)
	calls := 0
	fn := fetchCounting(&calls, resort.Table{{Name: "Goryu"}})

	_, err := c.GetOrFetch(context.Background(), fn)
	require.NoError(t, err)

	clock.Advance(29 * time.Minute)
	_, err = c.GetOrFetch(context.Background(), fn)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	clock.Advance(2 * time.Minute)
	_, err = c.GetOrFetch(context.Background(), fn)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestInvalidateForcesRefetch(t *testing.T) {
	c := New(0)
	calls := 0
	fn := fetchCounting(&calls, resort.Table{{Name: "Goryu"}})

	_, err := c.GetOrFetch(context.Background(), fn)
	require.NoError(t, err)

	c.Invalidate()
	_, ok := c.Peek()
	assert.False(t, ok)

	_, err = c.GetOrFetch(context.Background(), fn)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestErrorsAreNotCached(t *testing.T) {
	c := New(0)
	calls := 0
	fn := func(ctx context.Context) (resort.Table, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("fetch failed")
		}
		return resort.Table{{Name: "Goryu"}}, nil
	}

	_, err := c.GetOrFetch(context.Background(), fn)
	require.Error(t, err)

	snap, err := c.GetOrFetch(context.Background(), fn)
	require.NoError(t, err)
	assert.Len(t, snap.Table, 1)
	assert.Equal(t, 2, calls)
}

func TestSnapshotIsIsolatedFromCallers(t *testing.T) {
	c := New(0)
	fn := fetchCounting(new(int), resort.Table{{Name: "Goryu", Area: 100}})

	snap, err := c.GetOrFetch(context.Background(), fn)
	require.NoError(t, err)
	snap.Table[0].Name = "mutated"

	again, err := c.GetOrFetch(context.Background(), fn)
	require.NoError(t, err)
	assert.Equal(t, "Goryu", again.Table[0].Name)
}
