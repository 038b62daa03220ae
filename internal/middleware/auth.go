package middleware

import (
	"net/http"
	"time"
	"tourism-service/internal/model"
	"tourism-service/pkg/database"
	"tourism-service/pkg/logger"
	"tourism-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// TokenHeader carries the admin bearer token on every protected request.
const TokenHeader = "X-ADMIN-TOKEN"

// AdminTokenMiddleware gates administrative endpoints behind a bearer token
// issued at login. The token value is matched byte-for-byte against the
// tokens table; there is no expiry and no revocation, so a match is
// sufficient proof of admin identity.
func AdminTokenMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		tokenValue := c.Request().Header.Get(TokenHeader)
		if tokenValue == "" {
			log.Warn("Missing admin token")
			prometheus.RecordAuthError("token_missing")
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"error": "admin token required",
			})
		}

		// Validate token against the database
		defer prometheus.TrackDBOperation("query")(time.Now())
		var token model.Token
		if err := database.GetDB().Where("token = ?", tokenValue).First(&token).Error; err != nil {
			log.Warn("Unknown admin token", zap.Error(err))
			prometheus.RecordAuthError("token_invalid")
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"error": "invalid token",
			})
		}

		// Add admin identity to context
		c.Set("admin_id", token.AdminID)

		// Update logger with token information
		log = log.With(
			zap.String("token_id", token.ID),
			zap.String("admin_id", token.AdminID),
		)
		c.Set("logger", log)

		return next(c)
	}
}
