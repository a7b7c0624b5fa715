package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/listacompras/listacompras/app/server"
	"github.com/listacompras/listacompras/config"
	"github.com/listacompras/listacompras/database"
	"github.com/listacompras/listacompras/logging"
	"github.com/listacompras/listacompras/models"
)

type serveOptions struct {
	envFile     string
	addr        string
	autoMigrate bool
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "listacompras",
		Short:        "Shopping list backend: categories, products and lists over HTTP",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.envFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.HTTPAddr = opts.addr
			}
			if cmd.Flags().Changed("auto-migrate") {
				cfg.Database.AutoMigrate = opts.autoMigrate
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}

	cmd.Flags().StringVar(&opts.envFile, "env-file", ".env", "optional dotenv file read before the environment")
	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address, overrides LISTACOMPRAS_HTTP_ADDR")
	cmd.Flags().BoolVar(&opts.autoMigrate, "auto-migrate", false, "create missing tables, indexes and foreign keys at startup")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stdout)

	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Error("closing database", "error", err)
		}
	}()
	logger.Info("database connected")

	if cfg.Database.AutoMigrate {
		if err := models.AutoMigrate(db); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		logger.Info("schema ready")
	}

	return server.New(db, logger).ListenAndServe(ctx, cfg.HTTPAddr, cfg.ShutdownTimeout)
}
