package app

import (
	"go-metallurg/internal/config"
	"go-metallurg/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// BuildApp connects the infrastructure and mounts every module on router.
// The returned func releases the connections.
func BuildApp(router *gin.Engine, cfg *config.Config, logger *zap.Logger) (func(), error) {
	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database)
	if err != nil {
		return nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	// Redis is optional: without it the department cache and idempotency
	// keys are skipped.
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = connection.ConnectRedisWithRetry(cfg.Redis.Addr, cfg.Database.MaxRetries)
		if err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
	} else {
		logger.Warn("REDIS_ADDR not set, running without cache")
	}

	if err := registerModules(router, cfg, sqlDB, gormDB, rdb, logger); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	return func() {
		if rdb != nil {
			_ = rdb.Close()
		}
		_ = sqlDB.Close()
	}, nil
}
