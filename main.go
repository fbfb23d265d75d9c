package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cox_coop/internal/api"
	"cox_coop/internal/app"
	"cox_coop/internal/submission"

	"github.com/rs/zerolog/log"
)

func main() {
	app.SetupEnvironment()
	log.Debug().Msg("Starting application")

	settings, err := app.LoadSettings()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reader, writer, err := app.InitializeClients(ctx, settings)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize clients")
	}
	notifier := app.InitializeNotificationClient(settings)

	gate, err := app.InitializeGate(settings)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize admin gate")
	}

	handler, err := api.NewServer(api.Options{
		Sheets:              reader,
		Tabs:                settings.Tabs,
		Submissions:         submission.NewService(writer, settings.Tabs, notifier),
		Gate:                gate,
		CSRFKey:             settings.CSRFKey,
		SecureCookies:       settings.Production,
		TrustedOrigins:      settings.TrustedOrigins,
		SubmitRatePerMinute: settings.SubmitRatePerMinute,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build HTTP server")
	}

	srv := &http.Server{
		Addr:              ":" + settings.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("spreadsheet_id", settings.SpreadsheetID).
			Msg("COX Coop server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}

	if !notifier.Wait(shutdownCtx) {
		log.Warn().Msg("Pending notifications did not finish before shutdown")
	}

	sent, failed := notifier.Metrics()
	log.Info().Int64("notifications_sent", sent).Int64("notifications_failed", failed).Msg("Stopped")
}
