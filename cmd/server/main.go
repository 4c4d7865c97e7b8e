package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/HanielHB/multienda-multicaja-sub000/internal/config"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/infra"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/router"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/worker"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Structured logger. dev: pretty, prod: JSON
	if cfg.Env != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	var rdb *redis.Client
	if cfg.SessionBackend != "memory" {
		rdb, err = infra.NewRedis(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer rdb.Close()
	} else {
		log.Warn().Msg("SESSION_BACKEND=memory: sessions are lost on restart and report e-mail is disabled")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Report e-mail worker pool. Handlers are wired here (composition root).
	mailer := infra.NewMailer(cfg)
	var workers interface{ Wait() }
	if rdb != nil && mailer.Enabled() {
		handlers := map[string]worker.Handler{
			worker.JobReporteEmail: worker.NewEmailWorker(mailer).Process,
		}
		workers = worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize, handlers)
	}

	r := router.New(ctx, cfg, rdb)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Str("api", cfg.APIBaseURL).Msgf("POS admin listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	cancel()
	if workers != nil {
		workers.Wait()
	}
	log.Info().Msg("server exited")
}
