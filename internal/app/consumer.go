package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-metallurg/internal/config"
	"go-metallurg/internal/events"
	"go-metallurg/internal/messaging/kafka/consumer"
	"go-metallurg/internal/shared/connection"
	"go-metallurg/internal/storage"
	"go-metallurg/internal/techcard"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer books completed assignments onto tech cards until
// SIGINT/SIGTERM.
func RunConsumer(cfg *config.Config) error {
	logger := zap.L().Named("app.consumer")

	if cfg.Kafka.Broker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	techcardRepo := techcard.NewRepository(gormDB)
	store := storage.NewLocalStorage(cfg.Upload.Dir, logger)
	techcardService := techcard.NewService(sqlDB, techcardRepo, store, cfg.Upload.MaxSizeMB<<20, logger)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.Kafka.Broker},
		Topic:          events.AssignmentCompletedTopic,
		GroupID:        cfg.Kafka.GroupID,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		consumer.ConsumeAssignmentCompleted(ctx, reader, techcardService, logger)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()
	<-done

	return nil
}
