// Command server runs the industry inference HTTP API.
//
// Startup order: env file, config, logging, database, cache backend,
// AI client, tracing, router, HTTP server with graceful shutdown.
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
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "github.com/joyjoin/industry-inference/docs"
	"github.com/joyjoin/industry-inference/internal/cache"
	"github.com/joyjoin/industry-inference/internal/config"
	httpapi "github.com/joyjoin/industry-inference/internal/http"
	"github.com/joyjoin/industry-inference/internal/llm"
	"github.com/joyjoin/industry-inference/internal/observability"
	"github.com/joyjoin/industry-inference/internal/repo"
	"github.com/joyjoin/industry-inference/internal/sysutil"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	sysutil.SetLogLevel(cfg.LogLevel)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	ctx := context.Background()

	var store cache.Store
	switch cfg.Cache.Backend {
	case config.CacheBackendRedis:
		rc, err := cache.NewRedis(ctx, cfg.Cache.RedisURL, cfg.Cache.TTL)
		if err != nil {
			log.Fatal().Err(err).Msg("connect redis cache")
		}
		defer rc.Close()
		store = rc
	default:
		store = cache.NewMemory(cfg.Cache.TTL)
	}

	var completer llm.Completer
	if cfg.AI.Enabled {
		client, err := llm.NewOpenAI(llm.OpenAIOptions{
			APIKey:  cfg.AI.APIKey,
			BaseURL: cfg.AI.BaseURL,
			Model:   cfg.AI.Model,
			Timeout: cfg.AI.Timeout,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("build openai client")
		}
		completer = client
		log.Info().Str("model", cfg.AI.Model).Msg("AI tier enabled")
	} else {
		log.Info().Msg("AI tier disabled; running deterministic-only")
	}

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("setup tracing")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Warn().Err(err).Msg("tracer shutdown")
		}
	}()

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, db, store, completer, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("base_path", cfg.APIBasePath).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
