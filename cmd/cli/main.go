package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/moviedb/internal/client/cli"
	"github.com/dmitrijs2005/moviedb/internal/client/config"
	"github.com/dmitrijs2005/moviedb/internal/logging"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := config.NewViper()

	cmd := &cobra.Command{
		Use:           "moviedb",
		Short:         "Search movies and keep a personal watchlist",
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.LoadDotEnv(); err != nil {
				return err
			}
			path, err := cmd.Flags().GetString("config")
			if err != nil {
				return err
			}
			return config.ReadFile(v, path)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	if err := config.BindFlags(cmd, v); err != nil {
		panic(err)
	}
	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
	logger, closer, err := logging.NewZapLogger(logging.Options{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
	})
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "starting", "store", cfg.StoreKind, "database", cfg.DatabasePath)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		return err
	}

	app.Run(ctx)
	logger.Info(ctx, "stopped")
	return nil
}
