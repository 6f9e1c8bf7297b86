package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Faizan-Faisal/umt-hackathon/internal/cache"
	cacheredis "github.com/Faizan-Faisal/umt-hackathon/internal/cache/redis"
	"github.com/Faizan-Faisal/umt-hackathon/internal/config"
	"github.com/Faizan-Faisal/umt-hackathon/internal/events"
	"github.com/Faizan-Faisal/umt-hackathon/internal/httpapi"
	"github.com/Faizan-Faisal/umt-hackathon/internal/store"
	"github.com/Faizan-Faisal/umt-hackathon/internal/telemetry"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			log.Printf("failed to sync logger: %v", err)
		}
	}()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	logger.Info("starting api server",
		zap.String("port", cfg.AppPort),
		zap.String("redis_addr", cfg.RedisAddr),
		zap.Duration("session_ttl", cfg.SessionTTL))

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	shutdownTracer, err := telemetry.InitTracer(ctx, telemetry.Options{
		ServiceName:  "campusconnect-api",
		CollectorURL: cfg.OTLPEndpoint,
	}, logger)
	if err != nil {
		logger.Warn("tracing disabled", zap.Error(err))
	} else {
		defer shutdownTracer()
	}

	db, err := store.Open(cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	st := store.New(db)
	logger.Info("database ready")

	tokenCache := cacheredis.New(cache.Options{
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
		DefaultTTL:    cfg.SessionTTL,
	})
	defer func() {
		if err := tokenCache.Close(); err != nil {
			logger.Warn("failed to close token cache", zap.Error(err))
		}
	}()
	tokens := httpapi.NewTokenStore(tokenCache, cfg.SessionTTL)

	broadcaster, err := events.NewNATSBroadcaster(cfg.NATSURL, cfg.NATSConnTimeout, logger)
	if err != nil {
		logger.Warn("NATS unavailable, audit events stay local", zap.Error(err))
		broadcaster = events.NewMemoryBroadcaster()
	}
	defer broadcaster.Close()

	handler := httpapi.NewHandler(st, tokens, broadcaster, logger)

	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	handler.RegisterRoutes(router)

	server := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	logger.Info("api server started successfully")

	<-ctx.Done()

	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}

	logger.Info("shutdown complete")
}
