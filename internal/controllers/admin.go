package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"delivery-system/internal/dto"
	"delivery-system/internal/services"
	apperrors "delivery-system/pkg/errors"
	"delivery-system/pkg/middleware"
	"delivery-system/pkg/utils"
)

type AdminController struct {
	statsService    *services.StatsService
	adminMiddleware *middleware.AdminMiddleware
	logger          *zap.Logger
}

func NewAdminController(
	statsService *services.StatsService,
	adminMiddleware *middleware.AdminMiddleware,
	logger *zap.Logger,
) *AdminController {
	return &AdminController{
		statsService:    statsService,
		adminMiddleware: adminMiddleware,
		logger:          logger,
	}
}

// Login проверяет админский пароль. Дальше клиент шлет его в заголовке
// X-Admin-Password на каждый админский запрос.
func (c *AdminController) Login(ctx echo.Context) error {
	var payload dto.AdminLoginDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if !c.adminMiddleware.CheckPassword(payload.Password) {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusUnauthorized, "Неверный пароль администратора", apperrors.ErrInvalidAdminPassword, nil),
			c.logger,
		)
	}
	return utils.SuccessResponse(ctx, map[string]bool{"success": true}, "Вход выполнен", http.StatusOK)
}

func (c *AdminController) Stats(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	res, err := c.statsService.AdminStats(reqCtx, parseStatsRange(ctx))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Сводная статистика рассчитана", http.StatusOK)
}

func (c *AdminController) Trends(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	res, err := c.statsService.Trends(reqCtx, parseStatsRange(ctx))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Динамика доставок рассчитана", http.StatusOK)
}

func (c *AdminController) Search(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	q := ctx.QueryParam("q")
	if q == "" {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Не задана строка поиска", apperrors.ErrBadRequest, nil),
			c.logger,
		)
	}

	res, err := c.statsService.Search(reqCtx, q)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Поиск выполнен", http.StatusOK)
}
