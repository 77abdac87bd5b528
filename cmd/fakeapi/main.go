package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aeolun/discordlite/pkg/fakeapi"
	"github.com/aeolun/discordlite/pkg/logging"
)

func main() {
	if err := execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "fakeapi: %v\n", err)
		os.Exit(1)
	}
}

func execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var (
		addr     string
		seedPath string
		logLevel string
	)

	cmd := &cobra.Command{
		Use:           "fakeapi",
		Short:         "fakeapi serves a local imitation of the chat platform's REST API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.New(logLevel, os.Stdout)

			seed, err := fakeapi.LoadSeed(seedPath)
			if err != nil {
				return fmt.Errorf("load seed: %w", err)
			}
			store := seed.Build()
			guilds, channels, messages := store.Stats()

			srv := fakeapi.NewServer(addr, store, &logger)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logger.Info().
					Str("addr", addr).
					Str("base_url", "http://"+displayAddr(addr)+fakeapi.APIPrefix).
					Int("guilds", guilds).
					Int("channels", channels).
					Int("messages", messages).
					Strs("tokens", store.Tokens()).
					Msg("fake API listening")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("serve: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			logger.Info().Msg("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8088", "Listen address")
	cmd.Flags().StringVar(&seedPath, "seed", "", "Seed TOML file (default: built-in fixtures)")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	return cmd
}

// displayAddr turns ":8088" into "localhost:8088" for the startup banner
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
