package routes

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"delivery-system/internal/integrations/shopify"
	"delivery-system/internal/repositories"
	"delivery-system/internal/services"
	"delivery-system/pkg/config"
	"delivery-system/pkg/middleware"
)

func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	cacheRepo repositories.CacheRepositoryInterface,
	cfg *config.Config,
	logger *zap.Logger,
) {
	logger.Info("InitRouter: Начало создания маршрутов")

	// --- 0. ОБЩИЕ КОМПОНЕНТЫ ---
	api := e.Group("/api")
	driverMW := middleware.NewDriverMiddleware(cfg, logger)
	adminMW := middleware.NewAdminMiddleware(cfg, logger)

	stores := make([]shopify.ClientInterface, 0, len(cfg.Stores))
	for _, store := range cfg.Stores {
		stores = append(stores, shopify.New(store, logger))
	}

	// --- 1. РЕПОЗИТОРИИ ---
	orderRepo := repositories.NewOrderRepository(dbConn, logger)
	payoutRepo := repositories.NewPayoutRepository(dbConn, logger)
	employeeRepo := repositories.NewEmployeeRepository(dbConn, logger)

	// --- 2. СЕРВИСЫ ---
	scanService := services.NewScanService(orderRepo, cacheRepo, stores, cfg, logger)
	orderService := services.NewOrderService(orderRepo, payoutRepo, cacheRepo, cfg, logger)
	payoutService := services.NewPayoutService(payoutRepo, orderRepo, cacheRepo, cfg, logger)
	statsService := services.NewStatsService(orderRepo, cfg, logger)
	employeeService := services.NewEmployeeService(employeeRepo, logger)
	archiveService := services.NewArchiveService(orderRepo, cacheRepo, cfg, logger)

	// --- 3. РОУТЕРЫ ---
	driverGroup := api.Group("", driverMW.Require)
	adminGroup := api.Group("/admin", adminMW.Require)

	runMetaRouter(api, archiveService, cfg, logger)
	runScanRouter(driverGroup, scanService, logger)
	runOrderRouter(driverGroup, orderService, logger)
	runPayoutRouter(driverGroup, payoutService, logger)
	runStatsRouter(driverGroup, statsService, logger)
	runEmployeeRouter(api, employeeService, logger)
	runAdminRouter(api, adminGroup, statsService, adminMW, logger)

	logger.Info("InitRouter: Все маршруты успешно созданы")
}
