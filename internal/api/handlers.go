package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/contactkeval/option-leverage/internal/analyze"
	"github.com/contactkeval/option-leverage/internal/chain"
	"github.com/contactkeval/option-leverage/internal/leverage"
	"github.com/contactkeval/option-leverage/internal/logger"
)

// Handler serves the analyzer endpoints.
type Handler struct {
	analyzer *analyze.Analyzer
}

func NewHandler(analyzer *analyze.Analyzer) *Handler {
	return &Handler{analyzer: analyzer}
}

// GetExpirations handles GET /api/v1/options/{symbol}/expirations.
func (h *Handler) GetExpirations(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(mux.Vars(r)["symbol"])

	dates, def, err := h.analyzer.Expirations(r.Context(), symbol)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.Format("2006-01-02"))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"symbol":      symbol,
		"expirations": out,
		"default":     def.Format("2006-01-02"),
	})
}

// GetLeverage handles GET /api/v1/options/{symbol}/leverage.
//
// Query parameters:
//   - expiry: expiration date (2006-01-02), default = nearest to 1y out
//   - target: target rule (PCT:20, ABS:150, {PRICE}*1.2), default PCT:20
//   - low_pct, high_pct: strike band; both or neither must be given
//   - show_adjusted: include the adjusted leverage series
func (h *Handler) GetLeverage(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(mux.Vars(r)["symbol"])
	q := r.URL.Query()

	req := analyze.Request{
		Symbol:     symbol,
		TargetRule: q.Get("target"),
	}

	if v := q.Get("expiry"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			writeBadRequest(w, "expiry must be formatted as 2006-01-02")
			return
		}
		req.Expiry = t
	}

	lowStr, highStr := q.Get("low_pct"), q.Get("high_pct")
	if (lowStr == "") != (highStr == "") {
		writeBadRequest(w, "low_pct and high_pct must be given together")
		return
	}
	if lowStr != "" {
		low, err1 := strconv.ParseFloat(lowStr, 64)
		high, err2 := strconv.ParseFloat(highStr, 64)
		if err1 != nil || err2 != nil {
			writeBadRequest(w, "low_pct and high_pct must be numbers")
			return
		}
		req.LowPct, req.HighPct = &low, &high
	}

	if v := q.Get("show_adjusted"); v != "" {
		show, err := strconv.ParseBool(v)
		if err != nil {
			writeBadRequest(w, "show_adjusted must be a boolean")
			return
		}
		req.ShowAdjusted = show
	}

	res, err := h.analyzer.Run(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// writeError maps analyzer failures to HTTP statuses: caller mistakes
// are 400s, missing market data is 404, anything else from the provider
// side is 502.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, analyze.ErrNoSymbol),
		errors.Is(err, leverage.ErrInvalidTargetRule),
		errors.Is(err, leverage.ErrInvalidScenario):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, chain.ErrNoExpirations),
		errors.Is(err, chain.ErrNoChain),
		errors.Is(err, chain.ErrNoSpotPrice),
		errors.Is(err, leverage.ErrEmptyInput):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	default:
		logger.Errorf("request failed: %v", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
	}
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
