package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/horizonfin/horizon/internal/advisory"
	"github.com/horizonfin/horizon/internal/calculation"
	"github.com/horizonfin/horizon/internal/config"
	"github.com/horizonfin/horizon/internal/server"
	"github.com/horizonfin/horizon/internal/storage"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the retirement planning HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadService()
			if err != nil {
				return err
			}
			log := newLogger(cfg.LogLevel)

			store, err := storage.Open(cfg.DatabasePath, log)
			if err != nil {
				return err
			}
			defer store.Close()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			var advisor advisory.Advisor = advisory.Disabled{}
			if cfg.AdvisorEnabled {
				gemini, err := advisory.NewGemini(ctx, cfg.AdvisorModel, log)
				if err != nil {
					log.Warn().Err(err).Msg("advisory backend unavailable, assist disabled")
				} else {
					advisor = gemini
				}
			}

			srv := server.New(cfg, store, calculation.NewEngine(), advisor, log)
			return srv.ListenAndServe(ctx)
		},
	}
}
