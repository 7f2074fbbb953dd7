package report

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contactkeval/option-leverage/internal/analyze"
	"github.com/contactkeval/option-leverage/internal/leverage"
	"github.com/contactkeval/option-leverage/internal/plot"
	"github.com/contactkeval/option-leverage/internal/testutil"
)

func sampleAnalysis(t *testing.T) *analyze.Analysis {
	t.Helper()

	res, err := leverage.Compute(testutil.SampleChainWithZeroAsk(), leverage.Scenario{CurrentPrice: 100, TargetPct: 20})
	require.NoError(t, err)

	return &analyze.Analysis{
		Symbol:      "AAPL",
		Spot:        100,
		Expiry:      testutil.MustParseDate(t, "2026-01-16"),
		TargetPct:   20,
		TargetPrice: 120,
		Rows:        res.Rows,
		Series:      plot.Build(res.Rows, true),
	}
}

func TestWriteJSON(t *testing.T) {
	dir := t.TempDir()
	a := sampleAnalysis(t)

	require.NoError(t, WriteJSON(a, dir))

	b, err := os.ReadFile(filepath.Join(dir, "leverage.json"))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, "AAPL", decoded["symbol"])
	assert.Equal(t, 120.0, decoded["target_price"])

	rows, ok := decoded["rows"].([]any)
	require.True(t, ok)
	require.Len(t, rows, 4)

	// The zero-ask strike carries explicit nulls, not sentinel numbers.
	last, ok := rows[3].(map[string]any)
	require.True(t, ok)
	assert.Nil(t, last["leverage_ratio"])
	assert.Nil(t, last["adjusted_leverage_ratio"])
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	a := sampleAnalysis(t)

	require.NoError(t, WriteCSV(a.Rows, dir))

	f, err := os.Open(filepath.Join(dir, "leverage.csv"))
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5)

	assert.Equal(t,
		[]string{"strike", "premium", "break_even", "leverage_ratio", "adjusted_leverage_ratio"},
		records[0],
	)
	assert.Equal(t, []string{"90.00", "12.00", "102.00", "8.3333", "7.5000"}, records[1])

	// Undefined ratios become empty cells.
	assert.Equal(t, []string{"120.00", "0.00", "120.00", "", ""}, records[4])
}
