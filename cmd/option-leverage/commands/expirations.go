package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/contactkeval/option-leverage/internal/analyze"
)

var expirationsCmd = &cobra.Command{
	Use:   "expirations",
	Short: "List available expiration dates for a symbol",
	Long: `Lists the expiration dates the data provider knows for a symbol.
The default selection (the date nearest to one year from today) is
marked with an asterisk.`,
	RunE: runExpirations,
}

var expirationsSymbol string

func init() {
	rootCmd.AddCommand(expirationsCmd)

	expirationsCmd.Flags().StringVar(&expirationsSymbol, "symbol", "", "underlying ticker symbol (required)")
	_ = expirationsCmd.MarkFlagRequired("symbol")
}

func runExpirations(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	analyzer := analyze.NewAnalyzer(newProvider(cfg))

	dates, def, err := analyzer.Expirations(context.Background(), expirationsSymbol)
	if err != nil {
		return fmt.Errorf("list expirations: %w", err)
	}

	for _, d := range dates {
		marker := " "
		if d.Equal(def) {
			marker = "*"
		}
		fmt.Printf("%s %s\n", marker, d.Format("2006-01-02"))
	}
	return nil
}
