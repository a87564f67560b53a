package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"delivery-system/internal/controllers"
	"delivery-system/internal/services"
)

func runOrderRouter(driverGroup *echo.Group, orderService *services.OrderService, logger *zap.Logger) {
	orderCtrl := controllers.NewOrderController(orderService, logger)

	driverGroup.GET("/orders", orderCtrl.ListActiveOrders)
	driverGroup.PUT("/order/status", orderCtrl.UpdateStatus)
}
