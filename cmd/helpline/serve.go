package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpAdapter "github.com/cybercell/helpline/internal/adapters/http"
	"github.com/cybercell/helpline/internal/config"
	"github.com/cybercell/helpline/internal/logging"
	"github.com/cybercell/helpline/pkg/adapters/pdf"
	redisAdapter "github.com/cybercell/helpline/pkg/adapters/redis"
	"github.com/cybercell/helpline/pkg/adapters/spool"
	"github.com/cybercell/helpline/pkg/adapters/sqlite"
	twilioAdapter "github.com/cybercell/helpline/pkg/adapters/twilio"
	"github.com/cybercell/helpline/pkg/engine"
	"github.com/cybercell/helpline/pkg/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the webhook server",
	Long:  `Starts the HTTP server receiving WhatsApp webhooks, serving complaint documents and the attender API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		logger := logging.NewJSON(slog.LevelInfo)

		db, err := sqlite.Open(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		complaints := sqlite.NewStore(db)
		if err := complaints.Init(cmd.Context()); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}

		sessionStore := redisAdapter.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		sessions := session.NewManager(sessionStore,
			session.WithTimeout(time.Duration(cfg.Session.TimeoutMinutes)*time.Minute),
			session.WithLogger(logger),
		)

		archive := spool.NewArchive(cfg.Spool.Dir, cfg.Twilio.PublicURL)
		messenger := twilioAdapter.NewMessenger(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.From)
		renderer := pdf.NewRenderer()

		bot := engine.New(sessions, complaints, renderer, archive, messenger,
			engine.WithLogger(logger))

		// Clear sessions orphaned by a previous run before taking traffic.
		sessions.SweepExpired(cmd.Context(), time.Now())

		handler := httpAdapter.NewHandler(bot, complaints, archive.Dir(), logger)

		srv := &http.Server{
			Addr:    ":" + cfg.HTTP.Port,
			Handler: handler,
		}

		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("starting helpline server", "addr", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			logger.Info("shutting down", "signal", sig.String())

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Warn("graceful shutdown did not complete", "err", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("failed to stop server: %w", err)
				}
			}
			logger.Info("helpline server stopped")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
