package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/skymovel/app-core/internal/api"
	"github.com/skymovel/app-core/internal/core/ports"
	"github.com/skymovel/app-core/internal/core/service"
	mongodb "github.com/skymovel/app-core/internal/infrastructure/db/mongo"
	redisdb "github.com/skymovel/app-core/internal/infrastructure/db/redis"
	"github.com/skymovel/app-core/internal/infrastructure/gateway"
	"github.com/skymovel/app-core/internal/infrastructure/gateway/mock"
	"github.com/skymovel/app-core/internal/infrastructure/gateway/sky"
	"github.com/skymovel/app-core/internal/pkg/config"
	"github.com/skymovel/app-core/pkg/logger"
)

const sessionKeyPrefix = "skymovel"

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx := context.Background()

	rdb, err := redisdb.Connect(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()
	kv := redisdb.NewKeyValue(rdb, sessionKeyPrefix)

	// Mongo holds the service request audit trail. Its absence degrades
	// gracefully: history falls back to the boundary's projection alone.
	var (
		db          *mongo.Database
		mongoClient *mongo.Client
		repo        ports.ServiceRequestRepository
	)
	mongoClient, db, err = mongodb.Connect(ctx, cfg.Mongo)
	if err != nil {
		log.Warn().Err(err).Msg("mongo unavailable, running without the request audit trail")
		db = nil
	} else {
		defer mongoClient.Disconnect(ctx)
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			log.Warn().Err(err).Msg("mongo index creation failed")
		}
		repo = mongodb.NewRequestRepository(db)
	}

	var (
		gw     ports.SkyGateway
		realGW *sky.Gateway
	)
	if cfg.Mock.Enabled {
		log.Info().Dur("base_delay", cfg.Mock.Delay).Msg("using the simulated carrier boundary")
		gw = gateway.Instrument(mock.New(cfg.Mock.Delay))
	} else {
		realGW = sky.New(sky.Config{BaseURL: cfg.Gateway.BaseURL, Timeout: cfg.Gateway.Timeout})
		gw = gateway.Instrument(realGW)
	}

	sessions := service.NewSessionService(gw, kv, cfg.JWTSecret, 24*time.Hour, log)
	if realGW != nil {
		realGW.SetTokenSource(sessions)
	}
	cache := service.NewCustomerCache(gw, sessions, log)
	account := service.NewAccountService(gw, cache, log)
	requests := service.NewRequestService(gw, repo, log)

	// rebuild the session mirror from persisted storage
	if restored, err := sessions.CheckAuth(ctx); err != nil {
		log.Warn().Err(err).Msg("session restore failed")
	} else if restored {
		log.Info().Str("customer_id", sessions.CustomerID()).Msg("session restored")
	}

	e := api.NewRouter(api.Dependencies{
		Gateway:   gw,
		Sessions:  sessions,
		Cache:     cache,
		Account:   account,
		Requests:  requests,
		Mongo:     db,
		Redis:     rdb,
		JWTSecret: cfg.JWTSecret,
		Log:       log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
	log.Info().Msg("server stopped")
}
