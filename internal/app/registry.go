package app

import (
	"database/sql"
	"net/http"

	"go-metallurg/internal/assignment"
	"go-metallurg/internal/auth"
	"go-metallurg/internal/config"
	"go-metallurg/internal/department"
	"go-metallurg/internal/messaging/kafka"
	"go-metallurg/internal/middleware"
	"go-metallurg/internal/productionplan"
	"go-metallurg/internal/rbac"
	"go-metallurg/internal/rbac/infra"
	"go-metallurg/internal/storage"
	"go-metallurg/internal/task"
	"go-metallurg/internal/techcard"
	"go-metallurg/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	maxUpload := cfg.Upload.MaxSizeMB << 20

	// --- Repositories ---
	userRepo := user.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	techcardRepo := techcard.NewRepository(gormDB)
	planRepo := productionplan.NewRepository(gormDB)
	assignmentRepo := assignment.NewRepository(gormDB)
	taskRepo := task.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)

	store := storage.NewLocalStorage(cfg.Upload.Dir, logger)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer, logger)
	if err != nil {
		return err
	}

	// --- Services ---
	authService := auth.NewService(userRepo, cfg.JWT, logger)
	userService := user.NewService(db, userRepo, logger)
	departmentService := department.NewService(db, departmentRepo, rdb, logger)
	techcardService := techcard.NewService(db, techcardRepo, store, maxUpload, logger)
	planService := productionplan.NewService(db, planRepo, logger)
	importer := assignment.NewImporter(userRepo, techcardRepo, planRepo, assignmentRepo, logger)
	assignmentService := assignment.NewService(db, assignmentRepo, planRepo, outboxRepo, importer, logger)
	taskService := task.NewService(db, taskRepo, logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, auth.CookieOptions{
		Secure:     cfg.IsProduction(),
		AccessTTL:  cfg.JWT.AccessTTL,
		RefreshTTL: cfg.JWT.RefreshTTL,
	}, logger)
	userHandler := user.NewHandler(userService, logger)
	departmentHandler := department.NewHandler(departmentService, logger)
	techcardHandler := techcard.NewHandler(techcardService, maxUpload, logger)
	planHandler := productionplan.NewHandler(planService, logger)
	assignmentHandler := assignment.NewHandler(assignmentService, maxUpload, logger)
	taskHandler := task.NewHandler(taskService, logger)
	rbacHandler := rbac.NewHandler(rbacService)

	authMW := middleware.AuthMiddleware(cfg.JWT.Secret)

	router.Use(middleware.RequestID(), middleware.ContextLogger(logger))
	router.Static("/uploads", store.Root())

	// --- Routes Registration ---
	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		auth.RegisterRoutes(api, authHandler, authMW)
		user.RegisterRoutes(api, userHandler, authMW, rbacService)
		department.RegisterRoutes(api, departmentHandler, authMW, rbacService)
		techcard.RegisterRoutes(api, techcardHandler, authMW, rbacService)
		productionplan.RegisterRoutes(api, planHandler, authMW, rbacService)
		assignment.RegisterRoutes(api, assignmentHandler, authMW, rbacService, rdb)
		task.RegisterRoutes(api, taskHandler, authMW, rbacService)
		rbac.RegisterRoutes(api, rbacHandler, authMW)
	}

	return nil
}
