package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"delivery-system/internal/controllers"
	"delivery-system/internal/services"
)

func runScanRouter(driverGroup *echo.Group, scanService *services.ScanService, logger *zap.Logger) {
	scanCtrl := controllers.NewScanController(scanService, logger)

	driverGroup.POST("/scan", scanCtrl.Scan)
}
