// Package testutil holds shared fixtures for package tests.
package testutil

import (
	"testing"
	"time"

	"github.com/contactkeval/option-leverage/internal/chain"
)

// SampleChain is a small, hand-checked call chain around a spot of 100:
// at 20% up (target 120) the adjusted ratios work out to 7.5, 15 and 45.
func SampleChain() []chain.Quote {
	return []chain.Quote{
		{Strike: 90, Bid: 11.5, Ask: 12},
		{Strike: 100, Bid: 4.8, Ask: 5},
		{Strike: 110, Bid: 0.9, Ask: 1},
	}
}

// SampleChainWithZeroAsk appends a strike with no quoted ask.
func SampleChainWithZeroAsk() []chain.Quote {
	return append(SampleChain(), chain.Quote{Strike: 120, Bid: 0, Ask: 0})
}

// MustParseDate parses a 2006-01-02 date or fails the test.
func MustParseDate(t *testing.T, s string) time.Time {
	t.Helper()

	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}
