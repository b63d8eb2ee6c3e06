package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-leave/internal/events"
	"go-leave/internal/messaging/kafka/consumer"
	"go-leave/internal/notification"
	"go-leave/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer turns leave lifecycle events into in-app notifications for the
// applicant.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	notificationRepo := notification.NewRepository(gormDB)
	notificationService := notification.NewService(notificationRepo)

	submittedReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.LeaveSubmittedTopic,
		GroupID:        "go-leave-notifications",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer submittedReader.Close()

	decidedReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.LeaveDecidedTopic,
		GroupID:        "go-leave-notifications",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer decidedReader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeLeaveSubmitted(ctx, submittedReader, notificationService, logger)
	go consumer.ConsumeLeaveDecided(ctx, decidedReader, notificationService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
