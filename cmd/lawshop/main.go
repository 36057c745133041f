package main // Entry point of the terminal storefront

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/iliyamo/lawshop/internal/cli"
	"github.com/iliyamo/lawshop/internal/config"
	"github.com/iliyamo/lawshop/internal/logger"
	"github.com/iliyamo/lawshop/internal/queue"
	"github.com/iliyamo/lawshop/internal/session"
	"github.com/iliyamo/lawshop/internal/store"
)

func main() {
	logger.Quiet()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var backend session.Backend = session.NewFileBackend(cfg.SessionDir)
	if cfg.SessionBackend == "redis" {
		if rdb := config.NewRedisClient(config.LoadRedisConfig()); rdb != nil {
			defer rdb.Close()
			backend = session.NewRedisBackend(rdb, "lawshop:session:", 0)
		} else {
			logger.Warn(ctx, "redis unavailable, keeping the session in "+cfg.SessionDir)
		}
	}

	app := cli.NewApp(ctx, cfg, store.NewClient(cfg.StoreURL, cfg.StoreTimeout), backend)
	if cfg.QueueEnabled {
		app.Notifier = queue.NewPublisher(cfg.RabbitURL)
	}

	if err := cli.NewRootCmd(app).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, cli.Describe(err))
		os.Exit(1)
	}
}
