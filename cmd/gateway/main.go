package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/vendorhub/supplier-portal/internal/api"
	"github.com/vendorhub/supplier-portal/internal/api/middleware"
	"github.com/vendorhub/supplier-portal/internal/core/ports"
	"github.com/vendorhub/supplier-portal/internal/core/service"
	"github.com/vendorhub/supplier-portal/internal/infrastructure/config"
	"github.com/vendorhub/supplier-portal/internal/infrastructure/db/memory"
	mongodb "github.com/vendorhub/supplier-portal/internal/infrastructure/db/mongo"
	redisdb "github.com/vendorhub/supplier-portal/internal/infrastructure/db/redis"
	"github.com/vendorhub/supplier-portal/internal/infrastructure/http/handlers"
	"github.com/vendorhub/supplier-portal/internal/infrastructure/identity/demo"
	"github.com/vendorhub/supplier-portal/internal/infrastructure/identity/upstream"
	"github.com/vendorhub/supplier-portal/internal/notify"
	"github.com/vendorhub/supplier-portal/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// A local .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Session store ---
	var (
		sessions ports.SessionRepository
		pingers  []handlers.Pinger
	)
	switch cfg.Session.Store {
	case config.StoreRedis:
		client, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer client.Close()
		sessions = redisdb.NewSessionRepository(client)
		pingers = append(pingers, handlers.RedisPinger{Client: client})
	default:
		store := memory.NewSessionRepository()
		go store.Janitor(ctx, time.Minute)
		sessions = store
	}

	// --- Activity trail ---
	var activity ports.ActivityRepository
	if cfg.Mongo.URI != "" {
		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connection failed")
		}
		defer func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = client.Disconnect(disconnectCtx)
		}()
		activity = mongodb.NewActivityRepository(db)
		pingers = append(pingers, handlers.MongoPinger{DB: db})
	} else {
		activity = memory.NewActivityRepository(0)
	}

	// --- Identity provider ---
	var provider ports.IdentityProvider
	switch cfg.Identity.Mode {
	case config.IdentityModeUpstream:
		provider = upstream.NewClient(cfg.Identity.URL, cfg.Identity.Timeout)
	default:
		provider = demo.NewProvider(cfg.Identity.DemoDelay)
	}
	log.Info().
		Str("identity_mode", cfg.Identity.Mode).
		Str("session_store", cfg.Session.Store).
		Msg("backends selected")

	// --- Notice delivery ---
	sinks := []notify.Sink{notify.NewLogSink(logger.Component("notify"))}
	if cfg.Notify.WebhookURL != "" {
		sinks = append(sinks, notify.NewWebhookSink(cfg.Notify.WebhookURL))
	}
	dispatcher := notify.NewDispatcher(cfg.Notify.Workers, sinks, logger.Component("notify"))
	dispatcher.Start(ctx)

	// --- Core service and router ---
	svc := service.NewSessionService(
		provider,
		sessions,
		activity,
		dispatcher,
		cfg.Session.TTL,
		cfg.Session.IdentityTTL,
		logger.Component("session"),
	)
	codec := middleware.NewCookieCodec(cfg.Session.Secret, cfg.Session.TTL, cfg.Session.CookieSecure)

	e := api.NewRouter(api.Deps{
		Sessions: svc,
		Activity: activity,
		Provider: provider,
		Codec:    codec,
		Pingers:  pingers,
		Logger:   logger.Component("http"),
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("gateway listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server crashed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
