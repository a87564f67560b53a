package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"delivery-system/pkg/config"
	apperrors "delivery-system/pkg/errors"
	"delivery-system/pkg/utils"
)

// AdminMiddleware закрывает админские маршруты паролем из заголовка
// X-Admin-Password. Если задан ADMIN_PASSWORD_HASH, сравнение идет через
// bcrypt, иначе — по значению ADMIN_PASSWORD.
type AdminMiddleware struct {
	cfg    *config.Config
	logger *zap.Logger
}

func NewAdminMiddleware(cfg *config.Config, logger *zap.Logger) *AdminMiddleware {
	return &AdminMiddleware{cfg: cfg, logger: logger}
}

func (m *AdminMiddleware) Require(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		password := c.Request().Header.Get("X-Admin-Password")
		if !m.CheckPassword(password) {
			m.logger.Warn("неверный пароль администратора", zap.String("uri", c.Request().RequestURI))
			return utils.ErrorResponse(c,
				apperrors.NewHttpError(http.StatusUnauthorized, "Неверный пароль администратора", apperrors.ErrInvalidAdminPassword, nil),
				m.logger,
			)
		}
		return next(c)
	}
}

func (m *AdminMiddleware) CheckPassword(password string) bool {
	if m.cfg.Admin.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(m.cfg.Admin.PasswordHash), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(m.cfg.Admin.Password), []byte(password)) == 1
}
