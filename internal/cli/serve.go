package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/smokyabdulrahman/salat/internal/server"
	"github.com/spf13/cobra"
)

var flagAddr string

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the prayer times HTTP API",
		Long:  "Start an HTTP server exposing timings, sunnah times, and the method registry.\nConfigured via SALAT_* environment variables (a .env file is honored).",
		RunE:  runServe,
	}

	cmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (overrides SALAT_ADDR)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := server.LoadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("addr") && flagAddr != "" {
		cfg.Addr = flagAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.New(cfg).Run(ctx)
}
