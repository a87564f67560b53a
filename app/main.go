// Файл: main.go

package main

import (
	"context"
	"log"
	"net/http"

	"delivery-system/internal/repositories"
	"delivery-system/internal/routes"
	"delivery-system/pkg/config"
	"delivery-system/pkg/database/postgresql"
	apperrors "delivery-system/pkg/errors"
	applogger "delivery-system/pkg/logger"
	appmiddleware "delivery-system/pkg/middleware"
	"delivery-system/pkg/utils"
	"delivery-system/pkg/validation"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or could not be loaded.")
	}

	// 1. Базовые экземпляры Echo и логгера
	e := echo.New()
	logger := applogger.NewLogger()

	// 2. Конфиг
	cfg := config.New()

	// 3. Middleware
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("!!! ОБНАРУЖЕНА ПАНИКА (PANIC) !!!",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Внутренняя ошибка сервера", err, nil)
				utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))

	e.Use(appmiddleware.RequestID())

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, "X-Admin-Password"},
		ExposeHeaders: []string{"Content-Disposition"},
	}))

	// 4. Валидатор
	e.Validator = validation.New()

	// 5. База данных и миграции
	postgresql.Migrate(cfg.Postgres.DSN)
	dbConn := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbConn.Close()

	// 6. Кеш: память по умолчанию, Redis по CACHE_DRIVER=redis
	var cacheRepo repositories.CacheRepositoryInterface
	if cfg.Cache.Driver == "redis" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       0,
		})
		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			logger.Fatal("не удалось подключиться к Redis", zap.Error(err), zap.String("address", cfg.Redis.Address))
		}
		cacheRepo = repositories.NewRedisCacheRepository(redisClient)
	} else {
		cacheRepo = repositories.NewMemoryCacheRepository(nil)
	}

	// 7. Роуты
	routes.InitRouter(e, dbConn, cacheRepo, cfg, logger)

	// 8. Запуск
	logger.Info("🚀 Сервер запущен на :" + cfg.Server.Port)
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Ошибка запуска сервера", zap.Error(err))
	}
}
