package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	httpapi "lumina/internal/http"
	"lumina/internal/http/handlers"
	"lumina/internal/infra"
	"lumina/internal/infra/credentials"
	"lumina/internal/infra/geoip"
	"lumina/internal/middleware"
	"lumina/internal/providers/genai"
	"lumina/internal/storage"
	"lumina/internal/studio"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()
	runner := infra.NewSQLRunner(dbpool, logger)

	credStore := credentials.NewStore(runner, cfg.GeminiAPIKey)

	generator, err := genai.NewClient(genai.Options{
		Credentials:     credStore,
		BaseURL:         cfg.GeminiBaseURL,
		TextModel:       cfg.TextModel,
		ImageModel:      cfg.ImageModel,
		VideoModel:      cfg.VideoModel,
		ValidationModel: cfg.ValidationModel,
		PollInterval:    cfg.VideoPollInterval,
		MaxPollAttempts: cfg.VideoPollMaxAttempts,
		Logger:          &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build generation client")
	}

	fileStore, err := storage.NewFileStore(cfg.StoragePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to prepare export storage")
	}

	sessions := studio.NewStore(generator, credStore, logger, cfg.SessionIdleTTL)
	stopSweeper := make(chan struct{})
	sessions.StartSweeper(10*time.Minute, stopSweeper)

	var country middleware.CountryLookup
	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	} else if resolver != nil {
		country = resolver.CountryCode
	}

	app := &handlers.App{
		Logger:            logger,
		Credentials:       credStore,
		Validator:         generator,
		Sessions:          sessions,
		Exporter:          storage.NewExporter(fileStore),
		GenerationTimeout: cfg.GenerationTimeout,
	}

	router := httpapi.NewRouter(app, httpapi.Options{
		Logger:          logger,
		AllowedOrigins:  strings.Split(cfg.AllowedOrigins, ","),
		DefaultLocale:   cfg.DefaultLocale,
		Country:         country,
		RateLimitPerMin: cfg.RateLimitPerMin,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	close(stopSweeper)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
