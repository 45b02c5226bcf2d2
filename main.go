package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/neekaru/whatsapp-group-gateway/internal/app"
	"github.com/neekaru/whatsapp-group-gateway/internal/auth"
	"github.com/neekaru/whatsapp-group-gateway/internal/client"
	"github.com/neekaru/whatsapp-group-gateway/internal/config"
	"github.com/neekaru/whatsapp-group-gateway/internal/media"
	"github.com/neekaru/whatsapp-group-gateway/internal/server"
	"github.com/neekaru/whatsapp-group-gateway/internal/store"
	"github.com/neekaru/whatsapp-group-gateway/pkg/logger"
)

// Lifecycle events are few; the buffer only absorbs bursts around pairing
const eventBufferSize = 32

func main() {
	cfg := config.NewConfig()

	log, err := logger.SetupLogging(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		log = logger.SetupFallbackLogger(cfg.LogLevel)
		log.Warn().Err(err).Msg("File logging unavailable")
	}
	defer logger.CloseLogger()

	if err := cfg.EnsureDataDir(); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("Failed to create data directory")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container, err := store.Open(ctx, cfg.DBDialect, cfg.DBAddress, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open device store")
	}
	defer container.Close()

	encode := auth.EncodeDataURL
	if cfg.QRTerminal {
		encode = auth.WithTerminal(auth.EncodeDataURL, os.Stdout)
	}

	dispatcher := client.NewDispatcher(log, eventBufferSize)
	session := app.NewSession(encode, log)
	dispatcher.RegisterObserver(session)
	go dispatcher.Run(ctx)

	wa := client.NewClient(container, dispatcher, log, cfg.OSName)
	if err := wa.Connect(ctx); err != nil {
		// The HTTP API still serves status so the failure is visible to callers
		log.Error().Err(err).Msg("Failed to connect WhatsApp client")
	}
	defer wa.Close()

	application := app.NewApp(cfg, log, session, wa, media.NewService(log))

	srv := server.NewServer(application, cfg)
	srv.SetupRoutes()
	if err := srv.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}

	<-ctx.Done()
	log.Info().Msg("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during shutdown")
	}
}
