package leverage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contactkeval/option-leverage/internal/chain"
)

func sampleQuotes() []chain.Quote {
	return []chain.Quote{
		{Strike: 90, Ask: 12},
		{Strike: 100, Ask: 5},
		{Strike: 110, Ask: 1},
	}
}

func TestComputeScenario(t *testing.T) {
	res, err := Compute(sampleQuotes(), Scenario{CurrentPrice: 100, TargetPct: 20})
	require.NoError(t, err)
	require.Len(t, res.Rows, 3)

	// Row 1: strike 90, ask 12
	row := res.Rows[0]
	assert.Equal(t, 90.0, row.Strike)
	assert.Equal(t, 12.0, row.Premium)
	assert.Equal(t, 102.0, row.BreakEven)

	lev, ok := row.Leverage.Value()
	require.True(t, ok)
	assert.InDelta(t, 100.0/12.0, lev, 1e-9)

	// intrinsicGain=30, premiumGain=18, (18/12)/0.2 = 7.5
	adj, ok := row.Adjusted.Value()
	require.True(t, ok)
	assert.InDelta(t, 7.5, adj, 1e-9)

	// Row 3: strike 110, ask 1: intrinsicGain=10, (9/1)/0.2 = 45
	adj, ok = res.Rows[2].Adjusted.Value()
	require.True(t, ok)
	assert.InDelta(t, 45.0, adj, 1e-9)
}

func TestComputePreservesOrderAndLength(t *testing.T) {
	quotes := []chain.Quote{
		{Strike: 110, Ask: 1},
		{Strike: 90, Ask: 12},
		{Strike: 100, Ask: 5},
	}

	res, err := Compute(quotes, Scenario{CurrentPrice: 100, TargetPct: 20})
	require.NoError(t, err)
	require.Len(t, res.Rows, len(quotes))

	for i, q := range quotes {
		assert.Equal(t, q.Strike, res.Rows[i].Strike, "row %d", i)
	}
}

func TestComputeDeterministic(t *testing.T) {
	scn := Scenario{CurrentPrice: 100, TargetPct: 20}

	first, err := Compute(sampleQuotes(), scn)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := Compute(sampleQuotes(), scn)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestComputeClipsIntrinsicAtZero(t *testing.T) {
	// All strikes at or above the target price of 120: intrinsic gain
	// is zero, so adjusted = (-premium/premium)/0.2 = -5 everywhere.
	quotes := []chain.Quote{
		{Strike: 120, Ask: 2},
		{Strike: 130, Ask: 1},
		{Strike: 150, Ask: 0.5},
	}

	res, err := Compute(quotes, Scenario{CurrentPrice: 100, TargetPct: 20})
	require.NoError(t, err)

	for i, row := range res.Rows {
		adj, ok := row.Adjusted.Value()
		require.True(t, ok, "row %d", i)
		assert.InDelta(t, -5.0, adj, 1e-9, "row %d", i)
	}
}

func TestComputeZeroPremium(t *testing.T) {
	quotes := append(sampleQuotes(), chain.Quote{Strike: 120, Ask: 0})

	res, err := Compute(quotes, Scenario{CurrentPrice: 100, TargetPct: 20})
	require.NoError(t, err)
	require.Len(t, res.Rows, 4)

	row := res.Rows[3]
	assert.False(t, row.Leverage.Defined(), "leverage must be undefined for a zero ask")
	assert.False(t, row.Adjusted.Defined(), "adjusted must be undefined for a zero ask")

	// The rest of the result stays usable.
	assert.True(t, res.Rows[0].Leverage.Defined())
}

func TestComputeZeroTargetPct(t *testing.T) {
	res, err := Compute(sampleQuotes(), Scenario{CurrentPrice: 100, TargetPct: 0})
	require.NoError(t, err)

	for i, row := range res.Rows {
		assert.True(t, row.Leverage.Defined(), "row %d", i)
		assert.False(t, row.Adjusted.Defined(), "row %d: adjusted must be undefined for a zero move", i)
	}
}

func TestComputeNegativeTargetPct(t *testing.T) {
	// -10% move: target 90, everything out of the money.
	res, err := Compute(sampleQuotes(), Scenario{CurrentPrice: 100, TargetPct: -10})
	require.NoError(t, err)

	// Strike 100, ask 5: intrinsic 0, premiumGain -5, (-1)/(-0.1) = 10.
	adj, ok := res.Rows[1].Adjusted.Value()
	require.True(t, ok)
	assert.InDelta(t, 10.0, adj, 1e-9)
}

func TestComputeErrors(t *testing.T) {
	tests := []struct {
		name   string
		quotes []chain.Quote
		scn    Scenario
		want   error
	}{
		{"empty quotes", nil, Scenario{CurrentPrice: 100, TargetPct: 20}, ErrEmptyInput},
		{"zero price", sampleQuotes(), Scenario{CurrentPrice: 0, TargetPct: 20}, ErrInvalidScenario},
		{"negative price", sampleQuotes(), Scenario{CurrentPrice: -5, TargetPct: 20}, ErrInvalidScenario},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(tt.quotes, tt.scn)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestFilterByStrikeRange(t *testing.T) {
	res, err := Compute(sampleQuotes(), Scenario{CurrentPrice: 100, TargetPct: 20})
	require.NoError(t, err)

	tests := []struct {
		name        string
		low, high   float64
		wantStrikes []float64
	}{
		{"band keeps middle", -5, 5, []float64{100}},
		{"inclusive bounds", -10, 10, []float64{90, 100, 110}},
		{"upper half", 0, 50, []float64{100, 110}},
		{"empty band low>high", 10, -10, []float64{}},
		{"band below chain", -90, -60, []float64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterByStrikeRange(res, 100, tt.low, tt.high)

			strikes := make([]float64, 0, len(got.Rows))
			for _, row := range got.Rows {
				strikes = append(strikes, row.Strike)
			}
			assert.Equal(t, tt.wantStrikes, strikes)
		})
	}
}

func TestFilterNarrowingNeverGrows(t *testing.T) {
	res, err := Compute(sampleQuotes(), Scenario{CurrentPrice: 100, TargetPct: 20})
	require.NoError(t, err)

	wide := FilterByStrikeRange(res, 100, -50, 50)
	narrow := FilterByStrikeRange(res, 100, -5, 5)
	assert.LessOrEqual(t, len(narrow.Rows), len(wide.Rows))

	// Every filtered row exists in the unfiltered result.
	for _, row := range wide.Rows {
		assert.Contains(t, res.Rows, row)
	}
}

func TestScenarioTargetPrice(t *testing.T) {
	assert.InDelta(t, 120.0, Scenario{CurrentPrice: 100, TargetPct: 20}.TargetPrice(), 1e-9)
	assert.InDelta(t, 90.0, Scenario{CurrentPrice: 100, TargetPct: -10}.TargetPrice(), 1e-9)
	assert.InDelta(t, 100.0, Scenario{CurrentPrice: 100, TargetPct: 0}.TargetPrice(), 1e-9)
}
