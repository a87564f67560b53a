package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"delivery-system/internal/controllers"
	"delivery-system/internal/services"
)

func runPayoutRouter(driverGroup *echo.Group, payoutService *services.PayoutService, logger *zap.Logger) {
	payoutCtrl := controllers.NewPayoutController(payoutService, logger)

	driverGroup.GET("/payouts", payoutCtrl.ListPayouts)
	driverGroup.POST("/payout/mark-paid/:payout_id", payoutCtrl.MarkPaid)
}
