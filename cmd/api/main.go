package main

import (
	"log"
	"time"

	"go-metallurg/internal/app"
	"go-metallurg/internal/bootstrap"
	"go-metallurg/internal/config"
	"go-metallurg/internal/shared/apperror"

	"github.com/gin-gonic/gin"
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

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	apperror.Init()
	r := gin.New()
	r.Use(gin.Recovery())

	// build dependency + routes
	cleanup, err := app.BuildApp(r, cfg, logger)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}
	defer cleanup()

	auditLogger := bootstrap.NewStdoutAuditLogger()
	bootstrap.StartHTTPServer(
		r,
		bootstrap.ServerConfig{
			Port:         cfg.App.Port,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 2 * time.Minute,
			IdleTimeout:  60 * time.Second,
		},
		auditLogger,
	)
}
