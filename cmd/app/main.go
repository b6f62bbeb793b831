package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"kanban_backend/internal/config"
	"kanban_backend/internal/db"
	httpServer "kanban_backend/internal/http"
	"kanban_backend/internal/http/handlers"
	"kanban_backend/internal/http/middleware"
	"kanban_backend/internal/logger"
	"kanban_backend/internal/service"
	"kanban_backend/internal/telemetry"
	"kanban_backend/internal/ws"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tel, err := telemetry.Setup(ctx, telemetry.Config{
		Endpoint:       cfg.OTelEndpoint,
		ServiceName:    cfg.OTelServiceName,
		ServiceVersion: cfg.Version,
	})
	if err != nil {
		logger.Fatal("telemetry setup failed", "error", err)
	}

	if err := service.InitJWT(cfg.JWTSecret); err != nil {
		logger.Fatal("jwt init failed", "error", err)
	}
	ids, err := service.NewIDCodec(cfg.SqidsAlphabet, cfg.SqidsMinLength)
	if err != nil {
		logger.Fatal("invalid sqids settings", "error", err)
	}
	csrf := service.NewCSRF(cfg.CSRFSecret)

	dbPool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database unavailable", "error", err)
	}
	defer dbPool.Close()

	applied, err := db.Migrate(ctx, dbPool)
	if err != nil {
		logger.Fatal("migrations failed", "error", err)
	}
	if len(applied) > 0 {
		logger.Info("migrations applied", "versions", applied)
	}

	hub := ws.NewHub()
	var (
		publisher service.Publisher = hub
		limiter   middleware.Limiter
		redisPing handlers.Pinger
	)

	rdb, err := db.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	switch {
	case err != nil:
		logger.Warn("redis unavailable, using in-process fallbacks", "addr", cfg.RedisAddr, "error", err)
	case rdb != nil:
		defer rdb.Close()
		redisPing = db.RedisPinger{Client: rdb}
		limiter = middleware.NewRedisLimiter(rdb)

		broker := ws.NewRedisBroker(rdb, hub, ws.DefaultChannel)
		if err := broker.Start(ctx); err != nil {
			logger.Warn("notification broker unavailable, delivering locally", "error", err)
		} else {
			publisher = broker
		}
	}
	if limiter == nil {
		mem := middleware.NewMemoryLimiter()
		go sweepLimiter(ctx, mem)
		limiter = mem
	}

	h := handlers.NewHandler(dbPool, handlers.HandlerConfig{
		Publisher:   publisher,
		IDs:         ids,
		CSRF:        csrf,
		Development: cfg.IsDevelopment(),
	})

	r := httpServer.NewRouter(cfg, httpServer.Deps{
		Handler: h,
		Health:  handlers.NewHealthHandler(dbPool, redisPing, cfg.Version),
		Hub:     hub,
		Limiter: limiter,
		CSRF:    csrf,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "env", cfg.AppEnv, "version", cfg.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}
	if err := tel.Shutdown(shutdownCtx); err != nil {
		logger.Error("telemetry shutdown failed", "error", err)
	}

	logger.Info("server exited")
}

// sweepLimiter drops idle in-memory rate limit buckets.
func sweepLimiter(ctx context.Context, l *middleware.MemoryLimiter) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Sweep(10 * time.Minute)
		}
	}
}
