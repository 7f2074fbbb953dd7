package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/contactkeval/option-leverage/internal/analyze"
	"github.com/contactkeval/option-leverage/internal/leverage"
)

// WriteJSON writes the full analysis to leverage.json in outdir.
func WriteJSON(a *analyze.Analysis, outdir string) error {
	b, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outdir, "leverage.json"), b, 0644)
}

// WriteCSV writes the per-strike rows to leverage.csv in outdir.
// Undefined ratios are written as empty cells.
func WriteCSV(rows []leverage.Row, outdir string) error {
	f, err := os.Create(filepath.Join(outdir, "leverage.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	headers := []string{"strike", "premium", "break_even", "leverage_ratio", "adjusted_leverage_ratio"}
	if err := w.Write(headers); err != nil {
		return err
	}

	for _, row := range rows {
		record := []string{
			fmt.Sprintf("%.2f", row.Strike),
			fmt.Sprintf("%.2f", row.Premium),
			fmt.Sprintf("%.2f", row.BreakEven),
			ratioCell(row.Leverage),
			ratioCell(row.Adjusted),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func ratioCell(r leverage.Ratio) string {
	v, ok := r.Value()
	if !ok {
		return ""
	}
	return fmt.Sprintf("%.4f", v)
}
