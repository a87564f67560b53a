package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"delivery-system/internal/controllers"
	"delivery-system/internal/services"
)

func runStatsRouter(driverGroup *echo.Group, statsService *services.StatsService, logger *zap.Logger) {
	statsCtrl := controllers.NewStatsController(statsService, logger)

	driverGroup.GET("/stats", statsCtrl.GetStats)
}
