// Package pipeline runs the scrape: fetch the resort info page, parse the
// blocks, normalize names, derive trail counts, sort by area. Results live
// behind the snapshot cache; the merger runs on demand per request.
package pipeline

import (
	"context"
	"log"
	"time"

	"github.com/powderline/hakuba-dashboard/internal/cache"
	"github.com/powderline/hakuba-dashboard/internal/config"
	"github.com/powderline/hakuba-dashboard/internal/observability"
	"github.com/powderline/hakuba-dashboard/internal/resort"
	"github.com/powderline/hakuba-dashboard/internal/scraper"
)

// Fetcher retrieves raw markup from the source page.
type Fetcher interface {
	FetchHTML(ctx context.Context, url string) (string, error)
}

type Service struct {
	fetcher Fetcher
	cache   *cache.Cache
	metrics *observability.Metrics
	cfg     *config.Config
}

func New(fetcher Fetcher, snapshots *cache.Cache, metrics *observability.Metrics, cfg *config.Config) *Service {
	return &Service{
		fetcher: fetcher,
		cache:   snapshots,
		metrics: metrics,
		cfg:     cfg,
	}
}

// Snapshot returns the current table, scraping if the cache is cold.
func (s *Service) Snapshot(ctx context.Context) (cache.Snapshot, error) {
	if snap, ok := s.cache.Peek(); ok {
		s.metrics.CacheLookups.WithLabelValues("hit").Inc()
		return snap, nil
	}
	s.metrics.CacheLookups.WithLabelValues("miss").Inc()
	return s.cache.GetOrFetch(ctx, s.scrapeOnce)
}

// Combined returns the snapshot with the configured resort pair merged.
// A failed merge is the caller's cue to fall back to the unmerged table.
func (s *Service) Combined(ctx context.Context, keepParts bool) (cache.Snapshot, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return cache.Snapshot{}, err
	}

	merged, err := resort.Merge(snap.Table, resort.MergeOptions{
		Primary:    s.cfg.MergePrimary,
		Secondary:  s.cfg.MergeSecondary,
		MergedName: s.cfg.MergedName(),
		KeepParts:  keepParts,
	})
	if err != nil {
		s.metrics.MergeErrors.Inc()
		return snap, err
	}
	s.metrics.MergesTotal.Inc()
	snap.Table = merged
	return snap, nil
}

// Refresh drops the cached snapshot and scrapes again.
func (s *Service) Refresh(ctx context.Context) (cache.Snapshot, error) {
	s.cache.Invalidate()
	return s.cache.GetOrFetch(ctx, s.scrapeOnce)
}

// Start launches the optional background refresh loop. With a zero interval
// the snapshot only changes via TTL expiry or an explicit refresh, which
// reproduces the original dashboard's fetch-once behavior.
func (s *Service) Start(ctx context.Context) {
	if s.cfg.RefreshInterval <= 0 {
		return
	}
	go s.refreshLoop(ctx, s.cfg.RefreshInterval)
}

func (s *Service) refreshLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Refresh(ctx); err != nil {
				log.Printf("pipeline: background refresh failed: %v", err)
			}
		}
	}
}

func (s *Service) scrapeOnce(ctx context.Context) (resort.Table, error) {
	start := time.Now()

	html, err := s.fetcher.FetchHTML(ctx, s.cfg.SourceURL)
	if err != nil {
		s.metrics.FetchErrors.WithLabelValues(observability.ClassifyPipelineError(err)).Inc()
		return nil, err
	}

	table, err := scraper.Parse(html, s.cfg.SourceURL)
	if err != nil {
		s.metrics.FetchErrors.WithLabelValues(observability.ClassifyPipelineError(err)).Inc()
		return nil, err
	}

	for i := range table {
		table[i].Name = resort.NormalizeName(table[i].Name)
		resort.DeriveTrailCounts(&table[i])
	}
	table.SortByArea()

	s.metrics.FetchesTotal.Inc()
	s.metrics.FetchDuration.Observe(time.Since(start).Seconds())
	s.metrics.ResortsParsed.Set(float64(len(table)))
	log.Printf("pipeline: scraped %d resorts in %s", len(table), time.Since(start).Round(time.Millisecond))

	return table, nil
}
