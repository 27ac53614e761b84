package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"sortbench/internal/telemetry"
	"sortbench/internal/web"
)

var serveFunc = func(ctx context.Context, srv *web.Server) error {
	return srv.Start(ctx)
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the benchmark HTTP API",
		Long: `Serves the JSON API used by the web front end: dataset generation and
CSV upload, single and multi size runs, the algorithm catalog, a health
check and Prometheus metrics on /metrics.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.Flags().String("host", "", "Address to listen on")
	cmd.Flags().IntP("port", "p", 0, "Port to listen on")
	cmd.Flags().Int("max-size", 0, "Largest dataset a request may ask for")
	cmd.Flags().Int("rate", 0, "Benchmark runs allowed per minute (0 disables the limit)")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := bindFlags(cmd, map[string]string{
		"host":     "server.host",
		"port":     "server.port",
		"max-size": "server.max_size",
		"rate":     "server.rate_per_minute",
	}); err != nil {
		return err
	}
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	opts, err := settings.EngineOptions()
	if err != nil {
		return err
	}
	source, err := newSourceFunc(settings)
	if err != nil {
		return err
	}

	m := metrics
	if m == nil {
		m = telemetry.NewMetrics()
	}
	if !viper.GetBool("verbose") {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := web.NewServer(web.Config{
		Host:          settings.ServerHost,
		Port:          settings.ServerPort,
		MaxSize:       settings.ServerMaxSize,
		RatePerMinute: settings.RatePerMinute,
		Sizes:         settings.Sizes,
		Options:       opts,
	}, source, m)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "Serving benchmark API on http://%s:%d (Ctrl+C to stop)\n", settings.ServerHost, settings.ServerPort)
	return serveFunc(ctx, srv)
}
