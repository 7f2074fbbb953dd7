// Package chain provides market data provider implementations for call
// option chains: available expiration dates, per-expiration quote rows,
// and the current underlying price.
package chain

import (
	"context"
	"errors"
	"sort"
	"time"
)

// Typed errors allow callers and tests to detect failure categories
// without string matching. Absence of data is an explicit failure, not
// an empty success.
var (
	ErrNoExpirations = errors.New("no expiration dates available")
	ErrNoChain       = errors.New("no option chain available")
	ErrNoSpotPrice   = errors.New("no spot price available")
)

// Quote is one row of a call option chain. An Ask of zero means no ask
// was quoted for that strike.
type Quote struct {
	Strike    float64 `json:"strike"`
	Bid       float64 `json:"bid"`
	Ask       float64 `json:"ask"`
	LastPrice float64 `json:"last_price,omitempty"`
	Volume    float64 `json:"volume,omitempty"`
}

// Provider supplies market data.
//
// Implementations must return expirations sorted ascending and chains
// ordered by strike ascending with unique strikes.
type Provider interface {
	Secondary() Provider
	GetExpirations(ctx context.Context, underlying string) ([]time.Time, error)
	GetChain(ctx context.Context, underlying string, expiry time.Time) ([]Quote, error)
	GetSpotPrice(ctx context.Context, underlying string) (float64, error)
}

// normalizeChain sorts quotes by strike and drops duplicate strikes,
// keeping the first occurrence.
func normalizeChain(quotes []Quote) []Quote {
	sort.SliceStable(quotes, func(i, j int) bool { return quotes[i].Strike < quotes[j].Strike })

	out := quotes[:0]
	var prev float64
	for i, q := range quotes {
		if i > 0 && q.Strike == prev {
			continue
		}
		out = append(out, q)
		prev = q.Strike
	}
	return out
}

// sortedUniqueDates deduplicates by calendar day and returns the dates
// sorted ascending.
func sortedUniqueDates(dates map[string]time.Time) []time.Time {
	out := make([]time.Time, 0, len(dates))
	for _, dt := range dates {
		out = append(out, dt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
