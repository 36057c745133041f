package main // Entry point of the storefront gateway

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/lawshop/internal/cart"
	"github.com/iliyamo/lawshop/internal/config"
	"github.com/iliyamo/lawshop/internal/logger"
	"github.com/iliyamo/lawshop/internal/queue"
	"github.com/iliyamo/lawshop/internal/router"
	"github.com/iliyamo/lawshop/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Initialize("dev")
		logger.Log.Fatal("config", zap.Error(err))
	}
	logger.Initialize(cfg.Env)
	defer logger.Sync()

	if err := cfg.RequireServer(); err != nil {
		logger.Log.Fatal("config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb := config.NewRedisClient(config.LoadRedisConfig())
	if rdb == nil {
		logger.Warn(ctx, "redis unavailable, running without cache and rate limiting")
	} else {
		defer rdb.Close()
	}

	var notifier cart.Notifier
	if cfg.QueueEnabled {
		notifier = queue.NewPublisher(cfg.RabbitURL)
		go func() {
			if err := queue.StartOrderConsumer(ctx, cfg.RabbitURL, cfg.OrderLogDir); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error(ctx, "order consumer stopped", err)
			}
		}()
	}

	e := router.New(router.Deps{
		Cfg:       cfg,
		Cache:     config.LoadCacheConfig(),
		RateLimit: config.LoadRateLimitConfig(),
		Store:     store.NewClient(cfg.StoreURL, cfg.StoreTimeout),
		Redis:     rdb,
		Notifier:  notifier,
	})

	addr := ":" + cfg.Port
	go func() {
		logger.Info(ctx, "listening", zap.String("addr", addr), zap.String("env", cfg.Env), zap.String("store", cfg.StoreURL))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error(shutdownCtx, "shutdown", err)
	}
}
