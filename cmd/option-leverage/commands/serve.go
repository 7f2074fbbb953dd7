package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/contactkeval/option-leverage/internal/analyze"
	"github.com/contactkeval/option-leverage/internal/api"
	"github.com/contactkeval/option-leverage/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Starts the HTTP API.

Endpoints:
  GET /health
  GET /api/v1/options/{symbol}/expirations
  GET /api/v1/options/{symbol}/leverage?expiry=&target=&low_pct=&high_pct=&show_adjusted=

Example:
  option-leverage serve --port 8080`,
	RunE: runServe,
}

var servePort string

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&servePort, "port", "", "listen port (default from PORT env)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if servePort != "" {
		cfg.Port = servePort
	}

	analyzer := analyze.NewAnalyzer(newProvider(cfg))
	router := api.NewRouter(api.NewHandler(analyzer))
	server := api.NewServer(cfg.Port, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Infof("received signal %s", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}
