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

type ScanController struct {
	scanService *services.ScanService
	logger      *zap.Logger
}

func NewScanController(scanService *services.ScanService, logger *zap.Logger) *ScanController {
	return &ScanController{scanService: scanService, logger: logger}
}

func (c *ScanController) Scan(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	driver := middleware.Driver(ctx)

	var payload dto.ScanDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.scanService.Scan(reqCtx, driver, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	c.logger.Info("штрих-код обработан",
		zap.String("driver", driver),
		zap.String("order", res.Order),
		zap.String("result", res.Result),
	)
	return utils.SuccessResponse(ctx, res, "Сканирование обработано", http.StatusOK)
}
