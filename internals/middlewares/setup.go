package middlewares

import (
	"time"

	"salonku_backend/internals/middlewares/logger"

	"github.com/gofiber/fiber/v2"
)

// SetupMiddlewares installs the global chain: recovery first, then request id
// so the access log can print it.
func SetupMiddlewares(app *fiber.App, tz string, requestTimeout time.Duration) {
	app.Use(RecoveryMiddleware())
	app.Use(RequestID(requestTimeout))
	app.Use(logger.LoggerMiddleware(tz))
	app.Use(CorsMiddleware())
	app.Use(GlobalRateLimiter())
}
