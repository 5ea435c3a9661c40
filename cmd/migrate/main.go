package main

import (
	"errors"
	"log"
	"os"

	"go-metallurg/internal/assignment"
	"go-metallurg/internal/bootstrap"
	"go-metallurg/internal/config"
	"go-metallurg/internal/department"
	"go-metallurg/internal/messaging/kafka"
	"go-metallurg/internal/productionplan"
	"go-metallurg/internal/shared/connection"
	"go-metallurg/internal/task"
	"go-metallurg/internal/techcard"
	"go-metallurg/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var defaultDepartments = []department.Department{
	{Name: "Механический цех", Description: "Токарная и фрезерная обработка"},
	{Name: "Сборочный цех", Description: "Сборка узлов"},
	{Name: "ОТК", Description: "Отдел технического контроля"},
}

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

	db, err := connection.ConnectGORMWithRetry(cfg.Database)
	if err != nil {
		logger.Fatal("connect database failed", zap.Error(err))
	}

	// One call so gorm can order the tables by their foreign keys.
	if err := db.AutoMigrate(
		&department.Department{},
		&user.User{},
		&techcard.TechCard{},
		&techcard.Execution{},
		&techcard.Access{},
		&productionplan.ProductionPlan{},
		&assignment.Assignment{},
		&task.Task{},
		&kafka.OutboxEvent{},
	); err != nil {
		logger.Fatal("auto migrate failed", zap.Error(err))
	}
	logger.Info("schema migrated")

	if err := seed(db, logger); err != nil {
		logger.Fatal("seed failed", zap.Error(err))
	}
}

// seed inserts the default departments and an admin account when missing.
func seed(db *gorm.DB, logger *zap.Logger) error {
	for _, d := range defaultDepartments {
		var existing department.Department
		err := db.Where("name = ?", d.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		d.ID = uuid.New()
		if err := db.Create(&d).Error; err != nil {
			return err
		}
		logger.Info("department seeded", zap.String("name", d.Name))
	}

	username := envOr("ADMIN_USERNAME", "admin")
	var count int64
	if err := db.Model(&user.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := user.HashPassword(envOr("ADMIN_PASSWORD", "admin123"))
	if err != nil {
		return err
	}
	admin := user.User{
		ID:           uuid.New(),
		Username:     username,
		FirstName:    "Администратор",
		LastName:     "Системы",
		Role:         user.RoleAdmin,
		PasswordHash: hash,
	}
	if err := db.Omit("Department", "Master").Create(&admin).Error; err != nil {
		return err
	}
	logger.Warn("admin user seeded, change the password", zap.String("username", username))
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
