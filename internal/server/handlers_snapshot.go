package server

import (
	"net/http"

	"github.com/nyontakai/Asset-Cockpit/internal/models"
	"github.com/nyontakai/Asset-Cockpit/internal/services/portfolio"
)

// handleSnapshot handles GET /api/snapshot: the aggregated portfolio view.
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	holdings, err := s.app.Store.LoadHoldings(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to load holdings")
		return
	}

	snapshot, err := s.app.SnapshotService.ComputeSnapshot(r.Context(), holdings)
	if err != nil {
		s.logger.Error().Err(err).Msg("Snapshot computation failed")
		WriteError(w, http.StatusInternalServerError, "Snapshot computation failed, clear caches and retry")
		return
	}

	WriteJSON(w, http.StatusOK, snapshot)
}

// handleCacheClear handles POST /api/cache/clear: drops every in-memory
// cache. The persisted metadata cache survives and reseeds on the next
// snapshot.
func (s *Server) handleCacheClear(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	s.app.InvalidateCaches()
	s.logger.Info().Msg("Caches cleared")
	WriteJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// handleCachePurge handles POST /api/cache/purge: drops every cache and
// deletes the persisted metadata cache, forcing full provider re-fetch.
func (s *Server) handleCachePurge(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	s.app.QuoteService.Invalidate()
	s.app.DividendService.Invalidate()
	if err := s.app.MetadataService.Purge(r.Context()); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to delete persisted metadata cache")
		WriteError(w, http.StatusInternalServerError, "Failed to delete persisted metadata cache")
		return
	}

	s.logger.Info().Msg("Caches purged")
	WriteJSON(w, http.StatusOK, map[string]string{"status": "purged"})
}

// handleSectorChart handles GET /api/charts/sectors.
func (s *Server) handleSectorChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	snapshot, ok := s.computeSnapshot(w, r)
	if !ok {
		return
	}

	png, err := portfolio.RenderSectorChart(snapshot.SectorValuation)
	if err != nil {
		WriteError(w, http.StatusNotFound, "No sector data to chart")
		return
	}

	WritePNG(w, png)
}

// handleDividendChart handles GET /api/charts/dividends.
func (s *Server) handleDividendChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	snapshot, ok := s.computeSnapshot(w, r)
	if !ok {
		return
	}

	png, err := portfolio.RenderDividendChart(snapshot.MonthlyDividends)
	if err != nil {
		WriteError(w, http.StatusNotFound, "No dividend data to chart")
		return
	}

	WritePNG(w, png)
}

// computeSnapshot loads holdings and computes a snapshot for the chart
// handlers, writing the error response on failure.
func (s *Server) computeSnapshot(w http.ResponseWriter, r *http.Request) (*models.PortfolioSnapshot, bool) {
	holdings, err := s.app.Store.LoadHoldings(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to load holdings")
		return nil, false
	}

	snap, err := s.app.SnapshotService.ComputeSnapshot(r.Context(), holdings)
	if err != nil {
		s.logger.Error().Err(err).Msg("Snapshot computation failed")
		WriteError(w, http.StatusInternalServerError, "Snapshot computation failed, clear caches and retry")
		return nil, false
	}

	return snap, true
}
