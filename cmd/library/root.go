package main

import (
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-lending-go/config"
	"github.com/AntonStoeckl/library-lending-go/lending"
	"github.com/AntonStoeckl/library-lending-go/metrics"
)

// app holds what all commands share once the configuration is loaded.
type app struct {
	configFile string
	cfg        *config.Config
	logger     *slog.Logger
	registry   *prometheus.Registry
	collector  *metrics.PrometheusCollector
	out        io.Writer
}

func newRootCmd(out io.Writer, errOut io.Writer) *cobra.Command {
	a := &app{out: out}

	rootCmd := &cobra.Command{
		Use:          "library",
		Short:        "Lending library engine",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(errOut)
		},
	}

	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", "Config file path (default: ./library.yaml if present)")

	rootCmd.AddCommand(newDemoCmd(a))
	rootCmd.AddCommand(newReplayCmd(a))
	rootCmd.AddCommand(newHistoryCmd(a))
	rootCmd.AddCommand(newMigrateCmd(a))

	return rootCmd
}

func (a *app) load(logOut io.Writer) error {
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return err
	}

	handlerOptions := &slog.HandlerOptions{Level: cfg.SlogLevel()}

	var handler slog.Handler = slog.NewTextHandler(logOut, handlerOptions)
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(logOut, handlerOptions)
	}

	a.cfg = cfg
	a.logger = slog.New(handler)

	if cfg.Metrics.Enabled {
		a.registry = prometheus.NewRegistry()
		a.collector = metrics.NewPrometheusCollector(a.registry)
	}

	return nil
}

// serviceOptions returns the lending options all commands use.
func (a *app) serviceOptions() []lending.Option {
	opts := []lending.Option{
		lending.WithName(a.cfg.LibraryName),
		lending.WithLogger(a.logger),
	}

	if a.collector != nil {
		opts = append(opts, lending.WithMetrics(a.collector))
	}

	return opts
}
