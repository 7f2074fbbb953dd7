package chain

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyntheticExpirations(t *testing.T) {
	prov := NewSyntheticProvider(42)

	dates, err := prov.GetExpirations(context.Background(), "AAPL")
	require.NoError(t, err)
	require.NotEmpty(t, dates)

	now := time.Now().UTC()
	for i, d := range dates {
		assert.Equal(t, time.Friday, d.Weekday())
		assert.True(t, d.After(now), "expiration %s is not in the future", d.Format("2006-01-02"))
		if i > 0 {
			assert.True(t, dates[i-1].Before(d), "expirations out of order at %d", i)
		}
	}
}

func TestSyntheticSpotPrice(t *testing.T) {
	prov := NewSyntheticProvider(42)

	spot, err := prov.GetSpotPrice(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Greater(t, spot, 0.0)

	again, err := prov.GetSpotPrice(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, spot, again)

	other, err := prov.GetSpotPrice(context.Background(), "MSFT")
	require.NoError(t, err)
	assert.NotEqual(t, spot, other)
}

func TestSyntheticChain(t *testing.T) {
	ctx := context.Background()
	prov := NewSyntheticProvider(42)
	expiry := time.Now().UTC().AddDate(1, 0, 0)

	quotes, err := prov.GetChain(ctx, "AAPL", expiry)
	require.NoError(t, err)
	require.NotEmpty(t, quotes)

	spot, err := prov.GetSpotPrice(ctx, "AAPL")
	require.NoError(t, err)

	for i, q := range quotes {
		assert.GreaterOrEqual(t, q.Ask, 0.0)
		assert.LessOrEqual(t, q.Bid, q.Ask)
		assert.GreaterOrEqual(t, q.Strike, spot*0.5)
		assert.LessOrEqual(t, q.Strike, spot*1.5)
		if i > 0 {
			assert.Greater(t, q.Strike, quotes[i-1].Strike, "strikes out of order at %d", i)
		}
	}
}

func TestSyntheticChainDeterministicPerSeed(t *testing.T) {
	ctx := context.Background()
	expiry := time.Now().UTC().AddDate(1, 0, 0).Truncate(24 * time.Hour)

	first, err := NewSyntheticProvider(42).GetChain(ctx, "AAPL", expiry)
	require.NoError(t, err)
	second, err := NewSyntheticProvider(42).GetChain(ctx, "AAPL", expiry)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	reseeded, err := NewSyntheticProvider(7).GetChain(ctx, "AAPL", expiry)
	require.NoError(t, err)
	assert.NotEqual(t, first, reseeded)
}

func TestThirdFriday(t *testing.T) {
	tests := []struct {
		month string
		want  string
	}{
		{month: "2025-01-01", want: "2025-01-17"},
		{month: "2025-06-15", want: "2025-06-20"},
		{month: "2026-02-01", want: "2026-02-20"},
	}

	for _, tt := range tests {
		m, err := time.Parse("2006-01-02", tt.month)
		require.NoError(t, err)
		assert.Equal(t, tt.want, thirdFriday(m).Format("2006-01-02"))
	}
}
