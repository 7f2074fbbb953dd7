// Package analyze orchestrates one leverage analysis: it resolves the
// expiration and the target scenario, pulls the option chain from a
// data provider, and hands the chain to the pure computation core.
package analyze

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/contactkeval/option-leverage/internal/chain"
	"github.com/contactkeval/option-leverage/internal/leverage"
	"github.com/contactkeval/option-leverage/internal/logger"
	"github.com/contactkeval/option-leverage/internal/plot"
)

// ErrNoSymbol reports a request without an underlying symbol.
var ErrNoSymbol = errors.New("no symbol given")

// Request describes one analysis run.
//
// A zero Expiry selects the default expiration (nearest to one year
// out). An empty TargetRule defaults to PCT:20. The strike band is
// optional: both LowPct and HighPct must be set for filtering to apply
// (pointer fields, same convention as optional exit rules elsewhere in
// this codebase's lineage).
type Request struct {
	Symbol     string    `json:"symbol"`
	Expiry     time.Time `json:"expiry,omitempty"`
	TargetRule string    `json:"target,omitempty"`
	LowPct     *float64  `json:"low_pct,omitempty"`
	HighPct    *float64  `json:"high_pct,omitempty"`

	ShowAdjusted bool `json:"show_adjusted,omitempty"`
}

// Analysis is the computed output for one request.
type Analysis struct {
	Symbol      string         `json:"symbol"`
	Spot        float64        `json:"spot"`
	Expiry      time.Time      `json:"expiry"`
	TargetPct   float64        `json:"target_pct"`
	TargetPrice float64        `json:"target_price"`
	Rows        []leverage.Row `json:"rows"`
	Series      plot.Series    `json:"series"`
}

// Analyzer runs leverage analyses against a market data provider. It
// holds no per-request state and is safe for concurrent use.
type Analyzer struct {
	prov chain.Provider
}

func NewAnalyzer(prov chain.Provider) *Analyzer {
	return &Analyzer{prov: prov}
}

// Expirations returns the available expiration dates for a symbol along
// with the default selection (nearest to one year from now).
func (a *Analyzer) Expirations(ctx context.Context, symbol string) ([]time.Time, time.Time, error) {
	if symbol == "" {
		return nil, time.Time{}, ErrNoSymbol
	}

	dates, err := a.prov.GetExpirations(ctx, symbol)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("get expirations: %w", err)
	}

	def, err := leverage.SelectDefaultExpiration(dates, time.Now().UTC())
	if err != nil {
		return nil, time.Time{}, err
	}

	return dates, def, nil
}

// Run executes one analysis end to end.
func (a *Analyzer) Run(ctx context.Context, req Request) (*Analysis, error) {
	if req.Symbol == "" {
		return nil, ErrNoSymbol
	}

	logger.Infof(
		"event=analyze symbol=%s expiry=%s target=%s",
		req.Symbol,
		formatExpiry(req.Expiry),
		req.TargetRule,
	)

	spot, err := a.prov.GetSpotPrice(ctx, req.Symbol)
	if err != nil {
		return nil, fmt.Errorf("get spot price: %w", err)
	}

	expiry := req.Expiry
	if expiry.IsZero() {
		dates, err := a.prov.GetExpirations(ctx, req.Symbol)
		if err != nil {
			return nil, fmt.Errorf("get expirations: %w", err)
		}
		expiry, err = leverage.SelectDefaultExpiration(dates, time.Now().UTC())
		if err != nil {
			return nil, err
		}
		logger.Debugf("event=default_expiry expiry=%s", expiry.Format("2006-01-02"))
	}

	rule := req.TargetRule
	if rule == "" {
		rule = "PCT:20"
	}
	targetPct, err := leverage.ResolveTargetRule(rule, spot)
	if err != nil {
		return nil, err
	}

	quotes, err := a.prov.GetChain(ctx, req.Symbol, expiry)
	if err != nil {
		return nil, fmt.Errorf("get chain: %w", err)
	}

	scn := leverage.Scenario{CurrentPrice: spot, TargetPct: targetPct}
	res, err := leverage.Compute(quotes, scn)
	if err != nil {
		return nil, err
	}

	if req.LowPct != nil && req.HighPct != nil {
		res = leverage.FilterByStrikeRange(res, spot, *req.LowPct, *req.HighPct)
		logger.Debugf(
			"event=strike_filter low=%.1f high=%.1f kept=%d",
			*req.LowPct, *req.HighPct, len(res.Rows),
		)
	}

	out := &Analysis{
		Symbol:      req.Symbol,
		Spot:        spot,
		Expiry:      expiry,
		TargetPct:   targetPct,
		TargetPrice: scn.TargetPrice(),
		Rows:        res.Rows,
		Series:      plot.Build(res.Rows, req.ShowAdjusted),
	}

	logger.Infof(
		"event=analyzed symbol=%s spot=%.2f target_price=%.2f rows=%d skipped=%d",
		out.Symbol, out.Spot, out.TargetPrice, len(out.Rows), out.Series.Skipped,
	)
	return out, nil
}

func formatExpiry(t time.Time) string {
	if t.IsZero() {
		return "default"
	}
	return t.Format("2006-01-02")
}
