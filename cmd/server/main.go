package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/burnroom-server/internal/app"
	"github.com/vovakirdan/burnroom-server/internal/config"
	"github.com/vovakirdan/burnroom-server/internal/killswitch"
	applog "github.com/vovakirdan/burnroom-server/internal/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		overrides  config.Config
	)

	root := &cobra.Command{
		Use:           "burnroom",
		Short:         "Ephemeral, rate-limited relay for pre-encrypted room messages",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), configPath, overrides)
		},
	}

	flags := root.Flags()
	flags.StringVar(&configPath, "config", "", "path to config.yaml")
	flags.StringVar(&overrides.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&overrides.Addr, "addr", "", "HTTP listen address")
	flags.StringVar(&overrides.KillSwitchAddr, "killswitch-addr", "", "kill-switch TCP listen address")
	flags.StringVar(&overrides.StaticDir, "static-dir", "", "directory holding index.html and static assets")
	flags.DurationVar(&overrides.ShutdownTimeout, "shutdown-timeout", 0, "graceful shutdown timeout")

	root.AddCommand(newTriggerCmd())
	return root
}

func serve(ctx context.Context, configPath string, overrides config.Config) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: failed to load .env: %v\n", err)
	}

	bootLogger := applog.New(overrides.LogLevel)
	cfg, path, err := config.Load(bootLogger, configPath)
	if err != nil {
		bootLogger.Error().Err(err).Msg("failed to load config")
		return err
	}
	cfg.UpdateFrom(overrides)

	logger := applog.New(cfg.LogLevel)
	logger.Info().Str("config", path).Str("addr", cfg.Addr).Str("killswitch_addr", cfg.KillSwitchAddr).Msg("starting burnroom server")

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(&cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to build application")
		return err
	}

	if err := application.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("server exited with error")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}

func newTriggerCmd() *cobra.Command {
	var (
		addr    string
		secret  string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "trigger",
		Short: "Send the kill-switch secret to a running server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := killswitch.ParseHex(secret)
			if err != nil {
				return err
			}
			defer clear(raw)

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			if err := killswitch.Trigger(ctx, addr, raw); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "secret submitted")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:10001", "kill-switch address")
	cmd.Flags().StringVar(&secret, "secret", "", "hex-encoded secret printed at server startup")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "dial timeout")
	_ = cmd.MarkFlagRequired("secret")
	return cmd
}
