package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/contactkeval/option-leverage/internal/analyze"
	"github.com/contactkeval/option-leverage/internal/leverage"
	"github.com/contactkeval/option-leverage/internal/report"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Compute leverage ratios for one symbol and scenario",
	Long: `Computes leverage and adjusted leverage per call strike for a
target price scenario, prints a summary, and writes leverage.json and
leverage.csv to the output directory.

Target rules:
  PCT:20       a 20% rise (PCT:-10 for a decline)
  ABS:150      an absolute target price
  {PRICE}*1.2  an expression over the spot price

Example:
  option-leverage analyze --symbol AAPL --target PCT:20 --low-pct -50 --high-pct -10`,
	RunE: runAnalyze,
}

var (
	analyzeSymbol   string
	analyzeExpiry   string
	analyzeTarget   string
	analyzeLowPct   float64
	analyzeHighPct  float64
	analyzeFull     bool
	analyzeAdjusted bool
	analyzeOutDir   string
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeSymbol, "symbol", "", "underlying ticker symbol (required)")
	analyzeCmd.Flags().StringVar(&analyzeExpiry, "expiry", "", "expiration date (2006-01-02), default nearest to one year out")
	analyzeCmd.Flags().StringVar(&analyzeTarget, "target", "PCT:20", "target price rule")
	analyzeCmd.Flags().Float64Var(&analyzeLowPct, "low-pct", -50, "strike band lower bound, percent of spot")
	analyzeCmd.Flags().Float64Var(&analyzeHighPct, "high-pct", -10, "strike band upper bound, percent of spot")
	analyzeCmd.Flags().BoolVar(&analyzeFull, "full", false, "skip the strike band filter")
	analyzeCmd.Flags().BoolVar(&analyzeAdjusted, "adjusted", true, "include the adjusted leverage series")
	analyzeCmd.Flags().StringVar(&analyzeOutDir, "out", "./out", "output directory for reports")
	_ = analyzeCmd.MarkFlagRequired("symbol")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	req := analyze.Request{
		Symbol:       analyzeSymbol,
		TargetRule:   analyzeTarget,
		ShowAdjusted: analyzeAdjusted,
	}

	if analyzeExpiry != "" {
		t, err := time.Parse("2006-01-02", analyzeExpiry)
		if err != nil {
			return fmt.Errorf("invalid expiry %q: %w", analyzeExpiry, err)
		}
		req.Expiry = t
	}

	if !analyzeFull {
		low, high := analyzeLowPct, analyzeHighPct
		req.LowPct, req.HighPct = &low, &high
	}

	analyzer := analyze.NewAnalyzer(newProvider(cfg))

	start := time.Now()
	res, err := analyzer.Run(context.Background(), req)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	printSummary(res)

	if err := os.MkdirAll(analyzeOutDir, 0755); err != nil {
		return fmt.Errorf("create output dir %s: %w", analyzeOutDir, err)
	}
	if err := report.WriteJSON(res, analyzeOutDir); err != nil {
		return fmt.Errorf("write json report: %w", err)
	}
	if err := report.WriteCSV(res.Rows, analyzeOutDir); err != nil {
		return fmt.Errorf("write csv report: %w", err)
	}

	fmt.Printf("finished in %v, wrote %d rows to %s\n", time.Since(start).Round(time.Millisecond), len(res.Rows), analyzeOutDir)
	return nil
}

func printSummary(res *analyze.Analysis) {
	fmt.Printf("%s  spot=%.2f  expiry=%s  target=%+.1f%% (%.2f)\n\n",
		res.Symbol, res.Spot, res.Expiry.Format("2006-01-02"), res.TargetPct, res.TargetPrice)

	fmt.Printf("%10s %10s %12s %10s %10s\n", "strike", "premium", "break-even", "leverage", "adjusted")
	for _, row := range res.Rows {
		fmt.Printf("%10.2f %10.2f %12.2f %10s %10s\n",
			row.Strike, row.Premium, row.BreakEven,
			ratioColumn(row.Leverage), ratioColumn(row.Adjusted))
	}
	if res.Series.Skipped > 0 {
		fmt.Printf("\n%d row(s) without a quoted ask omitted from the series\n", res.Series.Skipped)
	}
}

func ratioColumn(r leverage.Ratio) string {
	v, ok := r.Value()
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%.2fx", v)
}
