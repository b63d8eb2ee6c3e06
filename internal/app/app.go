package app

import (
	"context"
	"os"

	"go-leave/internal/middleware"
	"go-leave/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp connects the infrastructure, seeds reference data, and registers
// every module's routes on the router.
func BuildApp(router *gin.Engine) error {
	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(zap.L()))

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
	zap.L().Info("database connection established")

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	zap.L().Info("redis connection established")

	return registerModules(context.Background(), router, sqlDB, gormDB, redisClient)
}
