package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"travelrental/internal/config"
	"travelrental/internal/http/handlers"
	applog "travelrental/internal/log"
	"travelrental/internal/repos"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := applog.Setup(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	db, err := repos.OpenDB(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		logger.Fatal("open database", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}
	defer db.Close()

	if cfg.DBSeed {
		if err := repos.Seed(context.Background(), db); err != nil {
			logger.Fatal("seed database", zap.Error(err))
		}
	}

	deps, err := handlers.NewDeps(db, cfg)
	if err != nil {
		logger.Fatal("wire handlers", zap.Error(err))
	}
	app := handlers.NewApp(cfg, deps)

	go func() {
		logger.Info("listening", zap.String("port", cfg.Port), zap.String("driver", cfg.DBDriver))
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
	logger.Info("server exited")
}
