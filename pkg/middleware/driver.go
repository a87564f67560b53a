package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"delivery-system/pkg/config"
	apperrors "delivery-system/pkg/errors"
	"delivery-system/pkg/utils"
)

// Ключ, под которым проверенное имя водителя лежит в echo.Context.
const DriverContextKey = "driver"

// DriverMiddleware проверяет query-параметр driver по ростеру ДО любого
// обращения к хранилищу. Неизвестный водитель — сразу 400.
type DriverMiddleware struct {
	cfg    *config.Config
	logger *zap.Logger
}

func NewDriverMiddleware(cfg *config.Config, logger *zap.Logger) *DriverMiddleware {
	return &DriverMiddleware{cfg: cfg, logger: logger}
}

func (m *DriverMiddleware) Require(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		driver := c.QueryParam("driver")
		if driver == "" || !m.cfg.IsDriver(driver) {
			m.logger.Warn("запрос с неизвестным водителем",
				zap.String("driver", driver),
				zap.String("uri", c.Request().RequestURI),
			)
			return utils.ErrorResponse(c,
				apperrors.NewHttpError(http.StatusBadRequest, "Неизвестный водитель", apperrors.ErrUnknownDriver,
					map[string]interface{}{"driver": driver}),
				m.logger,
			)
		}
		c.Set(DriverContextKey, driver)
		return next(c)
	}
}

// Driver достает проверенное имя водителя из контекста запроса.
func Driver(c echo.Context) string {
	if d, ok := c.Get(DriverContextKey).(string); ok {
		return d
	}
	return ""
}
