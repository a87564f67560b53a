package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"delivery-system/internal/controllers"
	"delivery-system/internal/services"
	"delivery-system/pkg/config"
)

func runMetaRouter(api *echo.Group, archiveService *services.ArchiveService, cfg *config.Config, logger *zap.Logger) {
	metaCtrl := controllers.NewMetaController(archiveService, cfg, logger)

	api.GET("/health", metaCtrl.Health)
	api.GET("/drivers", metaCtrl.ListDrivers)
	api.POST("/archive-yesterday", metaCtrl.ArchiveYesterday)
}
