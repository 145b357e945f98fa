package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/nyontakai/Asset-Cockpit/internal/models"
)

// holdingAddRequest is the body for POST /api/holdings. Code may be a bare
// 4-digit exchange code or a full ticker id.
type holdingAddRequest struct {
	Code     string   `json:"code"`
	BuyPrice *float64 `json:"buy_price,omitempty"`
	Shares   *int64   `json:"shares,omitempty"`
}

// handleHoldings handles /api/holdings: GET returns the current set, PUT
// replaces it wholesale, POST adds a single holding.
func (s *Server) handleHoldings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleHoldingsGet(w, r)
	case http.MethodPut:
		s.handleHoldingsReplace(w, r)
	case http.MethodPost:
		s.handleHoldingAdd(w, r)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut, http.MethodPost)
	}
}

func (s *Server) handleHoldingsGet(w http.ResponseWriter, r *http.Request) {
	holdings, err := s.app.Store.LoadHoldings(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to load holdings")
		return
	}
	WriteJSON(w, http.StatusOK, holdings)
}

func (s *Server) handleHoldingsReplace(w http.ResponseWriter, r *http.Request) {
	var incoming models.Holdings
	if !DecodeJSON(w, r, &incoming) {
		return
	}

	holdings, ok := s.normalizeHoldings(w, incoming)
	if !ok {
		return
	}

	if err := s.app.Store.SaveHoldings(r.Context(), holdings); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to save holdings")
		WriteError(w, http.StatusInternalServerError, "Failed to save holdings")
		return
	}

	WriteJSON(w, http.StatusOK, holdings)
}

func (s *Server) handleHoldingAdd(w http.ResponseWriter, r *http.Request) {
	var req holdingAddRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	code := strings.TrimSpace(req.Code)
	if code == "" {
		WriteError(w, http.StatusBadRequest, "code is required")
		return
	}

	ticker := models.NormalizeTicker(code, s.app.Config.Portfolio.MarketSuffix)

	holdings, err := s.app.Store.LoadHoldings(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to load holdings")
		return
	}

	if _, exists := holdings[ticker]; exists {
		WriteError(w, http.StatusConflict, "Holding already exists: "+ticker)
		return
	}

	holding := models.Holding{
		Shares: s.app.Config.Portfolio.DefaultShares,
	}
	if req.BuyPrice != nil {
		holding.BuyPrice = *req.BuyPrice
	}
	if req.Shares != nil {
		holding.Shares = *req.Shares
	}
	if holding.BuyPrice < 0 || holding.Shares < 0 {
		WriteError(w, http.StatusBadRequest, "buy_price and shares must be non-negative")
		return
	}

	holdings[ticker] = holding

	if err := s.app.Store.SaveHoldings(r.Context(), holdings); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to save holdings")
		WriteError(w, http.StatusInternalServerError, "Failed to save holdings")
		return
	}

	s.logger.Info().Str("ticker", ticker).Msg("Holding added")
	WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"ticker":  ticker,
		"holding": holding,
	})
}

// handleHoldingDelete handles DELETE /api/holdings/{ticker}.
func (s *Server) handleHoldingDelete(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}

	ticker := PathParam(r, "/api/holdings/", "")
	if ticker == "" {
		WriteError(w, http.StatusBadRequest, "ticker is required in path")
		return
	}

	holdings, err := s.app.Store.LoadHoldings(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to load holdings")
		return
	}

	if _, exists := holdings[ticker]; !exists {
		WriteError(w, http.StatusNotFound, "Holding not found: "+ticker)
		return
	}

	delete(holdings, ticker)

	if err := s.app.Store.SaveHoldings(r.Context(), holdings); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to save holdings")
		WriteError(w, http.StatusInternalServerError, "Failed to save holdings")
		return
	}

	s.logger.Info().Str("ticker", ticker).Msg("Holding removed")
	WriteJSON(w, http.StatusOK, map[string]string{"deleted": ticker})
}

// handleHoldingsExport handles GET /api/holdings/export: the holdings
// document as a download.
func (s *Server) handleHoldingsExport(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	holdings, err := s.app.Store.LoadHoldings(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to load holdings")
		return
	}

	data, err := json.MarshalIndent(holdings, "", "  ")
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to encode holdings")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="holdings.json"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
	w.Write([]byte("\n"))
}

// handleHoldingsImport handles POST /api/holdings/import: uploaded holdings
// JSON replaces the entire set.
func (s *Server) handleHoldingsImport(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var incoming models.Holdings
	if !DecodeJSON(w, r, &incoming) {
		return
	}

	holdings, ok := s.normalizeHoldings(w, incoming)
	if !ok {
		return
	}

	if err := s.app.Store.SaveHoldings(r.Context(), holdings); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to save holdings")
		WriteError(w, http.StatusInternalServerError, "Failed to save holdings")
		return
	}

	s.logger.Info().Int("count", len(holdings)).Msg("Holdings imported")
	WriteJSON(w, http.StatusOK, map[string]int{"imported": len(holdings)})
}

// normalizeHoldings validates an incoming holdings set and normalizes bare
// exchange codes in its keys. Writes a 400 and returns false on bad input.
func (s *Server) normalizeHoldings(w http.ResponseWriter, incoming models.Holdings) (models.Holdings, bool) {
	holdings := make(models.Holdings, len(incoming))
	for code, holding := range incoming {
		code = strings.TrimSpace(code)
		if code == "" {
			WriteError(w, http.StatusBadRequest, "empty ticker key")
			return nil, false
		}
		if holding.BuyPrice < 0 || holding.Shares < 0 {
			WriteError(w, http.StatusBadRequest, "buy_price and shares must be non-negative: "+code)
			return nil, false
		}
		holdings[models.NormalizeTicker(code, s.app.Config.Portfolio.MarketSuffix)] = holding
	}
	return holdings, true
}
