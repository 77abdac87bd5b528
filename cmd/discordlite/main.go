package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/aeolun/discordlite/pkg/client"
	"github.com/aeolun/discordlite/pkg/client/ui"
	"github.com/aeolun/discordlite/pkg/config"
	"github.com/aeolun/discordlite/pkg/logging"
)

var Version = "dev"

func main() {
	if err := execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "discordlite: %v\n", err)
		os.Exit(1)
	}
}

func execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var (
		configPath  string
		logLevel    string
		apiBase     string
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:           "discordlite",
		Short:         "discordlite is a terminal client for Discord-style chat",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(strings.TrimSpace(configPath))
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			// Flags win over the file and the environment
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}
			if apiBase != "" {
				cfg.API.BaseURL = apiBase
			}
			if metricsAddr != "" {
				cfg.Metrics.Addr = metricsAddr
			}

			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file (default $XDG_CONFIG_HOME/discordlite/config.toml)")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error, off")
	cmd.Flags().StringVar(&apiBase, "api-base", "", "API base URL, e.g. http://localhost:8088/api/v10")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	return cmd
}

func run(ctx context.Context, cfg config.Config) error {
	logger, closer, err := logging.NewFile(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closer.Close()

	logger.Info().
		Str("version", Version).
		Str("api", cfg.API.BaseURL).
		Msg("starting discordlite")

	var metrics *client.Metrics
	if cfg.Metrics.Addr != "" {
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metrics = client.NewMetrics(registry)

		srv := startMetricsServer(cfg.Metrics.Addr, registry, logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	gateway := client.NewHTTPGateway(client.GatewayOptions{
		BaseURL:      cfg.API.BaseURL,
		UserAgent:    cfg.API.UserAgent,
		MessageLimit: cfg.API.MessageLimit,
		Timeout:      cfg.RequestTimeout(),
		Logger:       logger.With().Str("component", "gateway").Logger(),
		Metrics:      metrics,
	})

	model := ui.NewModel(gateway, ui.Options{
		Logger:           logger.With().Str("component", "ui").Logger(),
		Notifications:    cfg.UI.Notifications,
		Markdown:         cfg.UI.Markdown,
		GuildPaneWidth:   cfg.UI.GuildPaneWidth,
		ChannelPaneWidth: cfg.UI.ChannelPaneWidth,
		InitialToken:     config.Token(),
		RequestTimeout:   cfg.RequestTimeout(),
		Version:          Version,
	}).WithContext(ctx)

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run tui: %w", err)
	}

	logger.Info().Msg("discordlite stopped")
	return nil
}

func startMetricsServer(addr string, registry *prometheus.Registry, logger zerolog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", addr).Msg("serving metrics")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("metrics server failed")
		}
	}()
	return srv
}
