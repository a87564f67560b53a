package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"delivery-system/internal/controllers"
	"delivery-system/internal/services"
	"delivery-system/pkg/middleware"
)

func runAdminRouter(
	api *echo.Group,
	adminGroup *echo.Group,
	statsService *services.StatsService,
	adminMW *middleware.AdminMiddleware,
	logger *zap.Logger,
) {
	adminCtrl := controllers.NewAdminController(statsService, adminMW, logger)
	reportCtrl := controllers.NewReportController(statsService, logger)

	// Вход не закрыт middleware: именно он и выдает клиенту пароль.
	api.POST("/admin/login", adminCtrl.Login)

	adminGroup.GET("/stats", adminCtrl.Stats)
	adminGroup.GET("/trends", adminCtrl.Trends)
	adminGroup.GET("/search", adminCtrl.Search)
	adminGroup.GET("/report", reportCtrl.GetReport)
}
