// Package main runs the background email delivery worker.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/calm-lily/backend/config"
	"github.com/calm-lily/backend/internal/emaillogs"
	"github.com/calm-lily/backend/internal/worker"
	"github.com/calm-lily/backend/pkg/database"
	"github.com/calm-lily/backend/pkg/mailer"
	"github.com/calm-lily/backend/pkg/queue"
	"github.com/calm-lily/backend/pkg/redis"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	mail := mailer.New(mailer.Config{
		APIKey:        cfg.Email.APIKey,
		APIURL:        cfg.Email.APIURL,
		FromAddress:   cfg.Email.FromAddress,
		FromName:      cfg.Email.FromName,
		TestMode:      cfg.Email.TestMode,
		TestRecipient: cfg.Email.TestRecipient,
	}, logger)

	emailLogsRepo := emaillogs.NewRepository(pool)
	jobQueue := queue.NewQueue(rdb.Client, logger)
	processor := worker.NewEmailProcessor(mail, emailLogsRepo, jobQueue, logger)

	workerCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go processor.Run(workerCtx)
	logger.Info("worker started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	cancel()
	time.Sleep(2 * time.Second)
	logger.Info("worker stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
