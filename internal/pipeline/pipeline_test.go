package pipeline

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/powderline/hakuba-dashboard/internal/cache"
	"github.com/powderline/hakuba-dashboard/internal/config"
	"github.com/powderline/hakuba-dashboard/internal/observability"
	"github.com/powderline/hakuba-dashboard/internal/resort"
)

type fakeFetcher struct {
	html  string
	err   error
	calls int
}

func (f *fakeFetcher) FetchHTML(ctx context.Context, url string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.html, nil
}

func fixtureHTML(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("../scraper/testdata/resorts.html")
	require.NoError(t, err)
	return string(data)
}

func testConfig() *config.Config {
	return &config.Config{
		SourceURL:      config.DefaultSourceURL,
		MergePrimary:   "Hakuba 47",
		MergeSecondary: "Goryu",
	}
}

func newService(t *testing.T, f Fetcher, cfg *config.Config) *Service {
	t.Helper()
	return New(f, cache.New(0), observability.NewMetricsForTesting(), cfg)
}

func TestSnapshotNormalizesAndSorts(t *testing.T) {
	fetcher := &fakeFetcher{html: fixtureHTML(t)}
	svc := newService(t, fetcher, testConfig())

	snap, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Table, 3)

	// Names are normalized, rows sorted descending by area.
	assert.Equal(t, "Goryu", snap.Table[0].Name)
	assert.Equal(t, "Cortina", snap.Table[1].Name)
	assert.Equal(t, "Hakuba 47", snap.Table[2].Name)

	for _, r := range snap.Table {
		assert.Equal(t, r.MaxElevation-r.BaseElevation, r.Vertical, "resort %s", r.Name)
		assert.InDelta(t, float64(r.Trails),
			r.BeginnerTrails+r.IntermediateTrails+r.AdvancedTrails, 1e-9, "resort %s", r.Name)
	}
	assert.False(t, snap.FetchedAt.IsZero())
}

func TestSnapshotIsMemoized(t *testing.T) {
	fetcher := &fakeFetcher{html: fixtureHTML(t)}
	svc := newService(t, fetcher, testConfig())

	_, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	_, err = svc.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, fetcher.calls)
}

func TestSnapshotPropagatesFetchError(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("connection refused")}
	svc := newService(t, fetcher, testConfig())

	_, err := svc.Snapshot(context.Background())
	assert.Error(t, err)
}

func TestCombinedMergesConfiguredPair(t *testing.T) {
	fetcher := &fakeFetcher{html: fixtureHTML(t)}
	svc := newService(t, fetcher, testConfig())

	snap, err := svc.Combined(context.Background(), false)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, snap.Table.Find("Hakuba 47 + Goryu"), 0)
	assert.Equal(t, -1, snap.Table.Find("Goryu"))
	assert.Equal(t, -1, snap.Table.Find("Hakuba 47"))

	// Merged record leads: 100 + 32 ha beats Cortina's 55.
	assert.Equal(t, "Hakuba 47 + Goryu", snap.Table[0].Name)
	assert.Equal(t, 132, snap.Table[0].Area)
}

func TestCombinedKeepParts(t *testing.T) {
	fetcher := &fakeFetcher{html: fixtureHTML(t)}
	svc := newService(t, fetcher, testConfig())

	snap, err := svc.Combined(context.Background(), true)
	require.NoError(t, err)

	assert.Len(t, snap.Table, 4)
	assert.GreaterOrEqual(t, snap.Table.Find("Goryu"), 0)
}

func TestCombinedFallsBackOnMissingResort(t *testing.T) {
	cfg := testConfig()
	cfg.MergePrimary = "Happo One"
	fetcher := &fakeFetcher{html: fixtureHTML(t)}
	svc := newService(t, fetcher, cfg)

	snap, err := svc.Combined(context.Background(), false)

	require.Error(t, err)
	var missing *resort.MissingResortError
	require.True(t, errors.As(err, &missing))

	// The unmerged snapshot still comes back so callers can degrade.
	assert.Len(t, snap.Table, 3)
	assert.GreaterOrEqual(t, snap.Table.Find("Goryu"), 0)
}

func TestRefreshForcesRefetch(t *testing.T) {
	fetcher := &fakeFetcher{html: fixtureHTML(t)}
	svc := newService(t, fetcher, testConfig())

	_, err := svc.Snapshot(context.Background())
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, fetcher.calls)
}
