// Command server runs the portfolio evaluation HTTP API.
//
// Boot order: environment → config → logging → tracing → database →
// AI generator → router → HTTP server with graceful shutdown. Every
// dependency is constructed here and injected; nothing below main reads
// the environment directly.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/devfolio/go-portfolio-backend/internal/ai"
	"github.com/devfolio/go-portfolio-backend/internal/config"
	httpapi "github.com/devfolio/go-portfolio-backend/internal/http"
	"github.com/devfolio/go-portfolio-backend/internal/observability"
	"github.com/devfolio/go-portfolio-backend/internal/repo"
	"github.com/devfolio/go-portfolio-backend/internal/sysutil"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file loaded")
	}

	cfg := config.MustLoad()
	sysutil.SetLogLevel(cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Warn().Err(err).Msg("otel shutdown failed")
		}
	}()

	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("database open failed")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("database migration failed")
	}

	gen := newGenerator(ctx, cfg.AI)

	engine := gin.New()
	httpapi.RegisterRoutes(engine, db, gen, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", version).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// newGenerator builds the configured text-generation backend. An unset or
// "none" provider (or a missing key) returns nil, which serves canned
// fallback feedback for every evaluation.
func newGenerator(ctx context.Context, cfg config.AIConfig) ai.Generator {
	switch cfg.Provider {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			log.Warn().Msg("GEMINI_API_KEY unset, serving fallback feedback")
			return nil
		}
		gen, err := ai.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.Model)
		if err != nil {
			log.Warn().Err(err).Msg("gemini client init failed, serving fallback feedback")
			return nil
		}
		return gen
	case "openrouter":
		if cfg.OpenRouterAPIKey == "" {
			log.Warn().Msg("OPENROUTER_API_KEY unset, serving fallback feedback")
			return nil
		}
		gen, err := ai.NewOpenRouterClient(cfg.OpenRouterAPIKey, cfg.Model)
		if err != nil {
			log.Warn().Err(err).Msg("openrouter client init failed, serving fallback feedback")
			return nil
		}
		return gen
	default:
		return nil
	}
}
