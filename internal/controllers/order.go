package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"delivery-system/internal/dto"
	"delivery-system/internal/services"
	"delivery-system/pkg/middleware"
	"delivery-system/pkg/utils"
)

type OrderController struct {
	orderService *services.OrderService
	logger       *zap.Logger
}

func NewOrderController(orderService *services.OrderService, logger *zap.Logger) *OrderController {
	return &OrderController{orderService: orderService, logger: logger}
}

func (c *OrderController) ListActiveOrders(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	driver := middleware.Driver(ctx)

	res, err := c.orderService.ListActiveOrders(reqCtx, driver)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Список активных заказов получен", http.StatusOK)
}

func (c *OrderController) UpdateStatus(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	driver := middleware.Driver(ctx)

	var payload dto.StatusUpdateDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.orderService.UpdateStatus(reqCtx, driver, payload); err != nil {
		c.logger.Error("ошибка при обновлении статуса заказа",
			zap.String("driver", driver),
			zap.String("order", payload.OrderName),
			zap.Error(err),
		)
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, map[string]bool{"success": true}, "Статус заказа обновлен", http.StatusOK)
}
