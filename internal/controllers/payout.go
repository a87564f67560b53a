package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"delivery-system/internal/services"
	apperrors "delivery-system/pkg/errors"
	"delivery-system/pkg/middleware"
	"delivery-system/pkg/utils"
)

type PayoutController struct {
	payoutService *services.PayoutService
	logger        *zap.Logger
}

func NewPayoutController(payoutService *services.PayoutService, logger *zap.Logger) *PayoutController {
	return &PayoutController{payoutService: payoutService, logger: logger}
}

func (c *PayoutController) ListPayouts(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	driver := middleware.Driver(ctx)

	res, err := c.payoutService.ListPayouts(reqCtx, driver)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Список выплат получен", http.StatusOK)
}

func (c *PayoutController) MarkPaid(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	driver := middleware.Driver(ctx)

	payoutID := ctx.Param("payout_id")
	if payoutID == "" {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Не указан идентификатор выплаты", apperrors.ErrBadRequest, nil),
			c.logger,
		)
	}

	if err := c.payoutService.MarkPaid(reqCtx, driver, payoutID); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	c.logger.Info("выплата закрыта", zap.String("driver", driver), zap.String("payout", payoutID))
	return utils.SuccessResponse(ctx, map[string]bool{"success": true}, "Выплата отмечена оплаченной", http.StatusOK)
}
