package main

import (
	"log"

	"go-metallurg/internal/app"
	"go-metallurg/internal/bootstrap"
	"go-metallurg/internal/config"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := bootstrap.NewLogger(cfg.App.Environment)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	if err := app.RunConsumer(cfg); err != nil {
		logger.Fatal("run consumer failed", zap.Error(err))
	}
}
