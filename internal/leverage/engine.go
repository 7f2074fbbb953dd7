// Package leverage computes, for a call option chain and a target price
// scenario, how much leverage each strike offers over holding the
// underlying outright.
//
// The package is pure: deterministic, no I/O, no shared state. Malformed
// top-level inputs fail fast with a typed error; per-row numeric
// indeterminacy (a zero premium) is localized to that row's Ratio
// fields and never aborts the whole computation.
package leverage

import (
	"errors"
	"fmt"
	"math"

	"github.com/contactkeval/option-leverage/internal/chain"
)

// Typed errors allow callers and tests to detect failure categories
// without string matching.
var (
	ErrEmptyInput      = errors.New("empty input")
	ErrInvalidScenario = errors.New("invalid scenario")
)

// Scenario describes the price move under evaluation. TargetPct is a
// percentage: 20 means a 20% rise, -10 a 10% decline.
type Scenario struct {
	CurrentPrice float64 `json:"current_price"`
	TargetPct    float64 `json:"target_pct"`
}

// TargetPrice is the underlying price after the scenario's move.
func (s Scenario) TargetPrice() float64 {
	return s.CurrentPrice * (1 + s.TargetPct/100)
}

// Row holds the computed figures for one strike. Bundling the fields
// into a single record keeps filtering a single coherent operation
// instead of four zipped parallel arrays.
type Row struct {
	Strike    float64 `json:"strike"`
	Premium   float64 `json:"premium"`
	BreakEven float64 `json:"break_even"`

	// Leverage is current price / premium: how many times cheaper the
	// option is than owning the stock. Undefined when no ask is quoted.
	Leverage Ratio `json:"leverage_ratio"`

	// Adjusted is the option's percentage return on premium at the
	// target price, normalized by the scenario's move. Undefined when
	// no ask is quoted or the move is zero.
	Adjusted Ratio `json:"adjusted_leverage_ratio"`
}

// Result is the computed series, one Row per input quote, in input
// order.
type Result struct {
	Rows []Row `json:"rows"`
}

// Compute evaluates the scenario against every quote in the chain.
//
// The output preserves the input's order and length: no rows are
// dropped here, filtering is a separate explicit step. A quote with a
// zero ask yields undefined ratios for that row; a zero TargetPct
// yields an undefined adjusted ratio for every row.
func Compute(quotes []chain.Quote, scn Scenario) (*Result, error) {
	if scn.CurrentPrice <= 0 {
		return nil, fmt.Errorf("%w: current price %.2f must be positive", ErrInvalidScenario, scn.CurrentPrice)
	}
	if len(quotes) == 0 {
		return nil, fmt.Errorf("%w: no option quotes", ErrEmptyInput)
	}

	targetPrice := scn.TargetPrice()

	rows := make([]Row, 0, len(quotes))
	for _, q := range quotes {
		premium := q.Ask

		row := Row{
			Strike:    q.Strike,
			Premium:   premium,
			BreakEven: q.Strike + premium,
			Leverage:  UndefinedRatio(),
			Adjusted:  UndefinedRatio(),
		}

		if premium > 0 {
			row.Leverage = DefinedRatio(scn.CurrentPrice / premium)

			if scn.TargetPct != 0 {
				// A call's intrinsic value cannot be negative.
				intrinsicGain := math.Max(targetPrice-q.Strike, 0)
				premiumGain := intrinsicGain - premium
				row.Adjusted = DefinedRatio((premiumGain / premium) / (scn.TargetPct / 100))
			}
		}

		rows = append(rows, row)
	}

	return &Result{Rows: rows}, nil
}

// FilterByStrikeRange retains the rows whose strike lies inside the
// band [currentPrice*(1+lowPct/100), currentPrice*(1+highPct/100)],
// inclusive on both ends, preserving relative order.
//
// lowPct > highPct describes an empty band; the result is empty, not an
// error.
func FilterByStrikeRange(res *Result, currentPrice, lowPct, highPct float64) *Result {
	minStrike := currentPrice * (1 + lowPct/100)
	maxStrike := currentPrice * (1 + highPct/100)

	out := &Result{Rows: []Row{}}
	for _, row := range res.Rows {
		if row.Strike >= minStrike && row.Strike <= maxStrike {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}
