package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cpsdqs/birb/pkg/backend/raster"
	"github.com/cpsdqs/birb/pkg/host"
	"github.com/cpsdqs/birb/pkg/server"
)

func serveCmd() *cobra.Command {
	var (
		addr        string
		logLevel    string
		maxSessions int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the hosting server",
		Long: `Start the hosting server and accept producer connections.

Endpoints:
  /birb/live   WebSocket endpoint for producers
  /healthz     Liveness probe
  /metrics     Prometheus metrics

Examples:
  birbd serve
  birbd serve --addr=:9000
  birbd serve --log-level=debug --max-sessions=64`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr, logLevel, maxSessions)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "Address to listen on")
	cmd.Flags().StringVarP(&logLevel, "log-level", "l", "info", "Log level (debug, info, warn, error)")
	cmd.Flags().IntVar(&maxSessions, "max-sessions", 0, "Maximum concurrent producer sessions (0 = unlimited)")

	return cmd
}

func runServe(addr, logLevel string, maxSessions int) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	config := server.DefaultServerConfig().
		WithAddress(addr).
		WithMaxSessions(maxSessions)
	s := server.New(config,
		func(l *slog.Logger) host.Backend { return raster.New(l) },
		server.WithLogger(logger.With("component", "server")),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}
