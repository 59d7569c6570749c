package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/powderline/hakuba-dashboard/internal/cache"
	"github.com/powderline/hakuba-dashboard/internal/resort"
)

// tableOptions are the presentation-layer toggles forwarded to the merger.
type tableOptions struct {
	combine   bool
	keepParts bool
}

func parseTableOptions(r *http.Request) tableOptions {
	q := r.URL.Query()
	return tableOptions{
		combine:   parseBool(q.Get("combine")),
		keepParts: parseBool(q.Get("keep_parts")),
	}
}

func parseBool(v string) bool {
	return v == "1" || v == "true" || v == "yes"
}

// snapshot resolves the table for a request. A failed merge degrades to the
// unmerged table rather than failing the request.
func (s *Server) snapshot(r *http.Request, opts tableOptions) (cache.Snapshot, bool, error) {
	if !opts.combine {
		snap, err := s.pipeline.Snapshot(r.Context())
		return snap, false, err
	}

	snap, err := s.pipeline.Combined(r.Context(), opts.keepParts)
	if err == nil {
		return snap, true, nil
	}

	var missing *resort.MissingResortError
	if snap.Table != nil && errors.As(err, &missing) {
		slog.Warn("merge failed, serving unmerged table", "error", err)
		return snap, false, nil
	}
	return cache.Snapshot{}, false, err
}

func (s *Server) handleListResorts(w http.ResponseWriter, r *http.Request) {
	opts := parseTableOptions(r)

	snap, combined, err := s.snapshot(r, opts)
	if err != nil {
		respondError(w, http.StatusBadGateway, "Failed to load resort data: "+err.Error())
		return
	}
	if snap.Table == nil {
		snap.Table = resort.Table{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"items":      snap.Table,
		"count":      len(snap.Table),
		"combined":   combined,
		"fetched_at": snap.FetchedAt.UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	snap, err := s.pipeline.Refresh(r.Context())
	if err != nil {
		respondError(w, http.StatusBadGateway, "Refresh failed: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"refreshed":  true,
		"count":      len(snap.Table),
		"fetched_at": snap.FetchedAt.UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	s.handleExport(w, r, "csv")
}

func (s *Server) handleExportExcel(w http.ResponseWriter, r *http.Request) {
	s.handleExport(w, r, "xlsx")
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request, format string) {
	opts := parseTableOptions(r)

	snap, _, err := s.snapshot(r, opts)
	if err != nil {
		respondError(w, http.StatusBadGateway, "Failed to load resort data: "+err.Error())
		return
	}

	data, contentType, err := encodeExport(snap.Table, format)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Export failed: "+err.Error())
		return
	}

	s.metrics.ExportsTotal.WithLabelValues(format).Inc()
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "hakuba_data."+format))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
