package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"delivery-system/internal/dto"
	"delivery-system/internal/services"
	"delivery-system/pkg/middleware"
	"delivery-system/pkg/utils"
)

type StatsController struct {
	statsService *services.StatsService
	logger       *zap.Logger
}

func NewStatsController(statsService *services.StatsService, logger *zap.Logger) *StatsController {
	return &StatsController{statsService: statsService, logger: logger}
}

// parseStatsRange собирает параметры периода из query-строки. Кривое
// значение days молча игнорируется, кривые даты отсеет сервис.
func parseStatsRange(ctx echo.Context) dto.StatsRangeDTO {
	rng := dto.StatsRangeDTO{
		Start: ctx.QueryParam("start"),
		End:   ctx.QueryParam("end"),
	}
	if d := ctx.QueryParam("days"); d != "" {
		if n, err := strconv.Atoi(d); err == nil {
			rng.Days = n
		}
	}
	return rng
}

func (c *StatsController) GetStats(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	driver := middleware.Driver(ctx)

	res, err := c.statsService.ComputeStats(reqCtx, driver, parseStatsRange(ctx))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Статистика рассчитана", http.StatusOK)
}
