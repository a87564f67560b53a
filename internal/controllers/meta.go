package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"delivery-system/internal/services"
	"delivery-system/pkg/config"
	"delivery-system/pkg/utils"
)

// MetaController обслуживает служебные маршруты: живость, ростер
// водителей и ручной запуск ежедневной архивации.
type MetaController struct {
	archiveService *services.ArchiveService
	cfg            *config.Config
	logger         *zap.Logger
}

func NewMetaController(archiveService *services.ArchiveService, cfg *config.Config, logger *zap.Logger) *MetaController {
	return &MetaController{archiveService: archiveService, cfg: cfg, logger: logger}
}

func (c *MetaController) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (c *MetaController) ListDrivers(ctx echo.Context) error {
	return utils.SuccessResponse(ctx, c.cfg.Drivers, "Список водителей получен", http.StatusOK)
}

func (c *MetaController) ArchiveYesterday(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	res, err := c.archiveService.ArchiveYesterday(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Архивация выполнена", http.StatusOK)
}
