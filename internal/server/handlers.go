package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/kabulab/rankscreen/internal/common"
	"github.com/kabulab/rankscreen/internal/models"
)

// handleHealth handles GET /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleVersion handles GET /api/version.
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

// handleScreen handles GET /api/screen — the full enriched table with
// dataset-derived default criteria and sector averages.
func (s *Server) handleScreen(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	result, err := s.app.BuildScreen(r.Context(), nil)
	if err != nil {
		if models.IsSourceNotFound(err) {
			WriteErrorWithCode(w, http.StatusNotFound, err.Error(), "source_not_found")
			return
		}
		s.logger.Error().Err(err).Msg("Screen build failed")
		WriteError(w, http.StatusInternalServerError, "Failed to build screen")
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// handleScreenFiltered handles GET /api/screen/filtered.
// Query parameters: min, max (floats), sector (repeatable or
// comma-separated). Omitted parameters fall back to the dataset-derived
// defaults.
func (s *Server) handleScreenFiltered(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	full, err := s.app.BuildScreen(r.Context(), nil)
	if err != nil {
		if models.IsSourceNotFound(err) {
			WriteErrorWithCode(w, http.StatusNotFound, err.Error(), "source_not_found")
			return
		}
		s.logger.Error().Err(err).Msg("Screen build failed")
		WriteError(w, http.StatusInternalServerError, "Failed to build screen")
		return
	}
	if full.Empty {
		WriteJSON(w, http.StatusOK, full)
		return
	}

	criteria := full.Criteria

	query := r.URL.Query()
	if raw := query.Get("min"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid min parameter")
			return
		}
		criteria.MinScore = v
	}
	if raw := query.Get("max"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid max parameter")
			return
		}
		criteria.MaxScore = v
	}
	if sectors := parseSectors(query["sector"]); len(sectors) > 0 {
		criteria.Sectors = sectors
	}

	result, err := s.app.FilteredScreen(r.Context(), criteria)
	if err != nil {
		s.logger.Error().Err(err).Msg("Screen filter failed")
		WriteError(w, http.StatusInternalServerError, "Failed to filter screen")
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// parseSectors flattens repeated and comma-separated sector parameters.
func parseSectors(values []string) []string {
	var sectors []string
	for _, v := range values {
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				sectors = append(sectors, s)
			}
		}
	}
	return sectors
}

// stockResponse is the deep-dive payload: one enriched record plus its
// price series. Series is null when the history lookup failed, which is
// distinct from a present series with zero points.
type stockResponse struct {
	Record *models.EnrichedRecord `json:"record"`
	Series *models.PriceSeries    `json:"series"`
}

// handleStock handles GET /api/stocks/{ticker}.
func (s *Server) handleStock(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	ticker := strings.TrimPrefix(r.URL.Path, "/api/stocks/")
	if ticker == "" || strings.Contains(ticker, "/") {
		WriteError(w, http.StatusBadRequest, "Ticker is required")
		return
	}

	rec, series, found, err := s.app.Stock(r.Context(), ticker)
	if err != nil {
		if models.IsSourceNotFound(err) {
			WriteErrorWithCode(w, http.StatusNotFound, err.Error(), "source_not_found")
			return
		}
		s.logger.Error().Err(err).Str("ticker", ticker).Msg("Stock lookup failed")
		WriteError(w, http.StatusInternalServerError, "Failed to load stock")
		return
	}
	if !found {
		WriteError(w, http.StatusNotFound, "Ticker not in enriched table")
		return
	}

	WriteJSON(w, http.StatusOK, stockResponse{Record: rec, Series: series})
}
