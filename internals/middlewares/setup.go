package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"go.uber.org/zap"
)

func SetupMiddlewares(app *fiber.App, log *zap.Logger) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(RateLimiter())
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	app.Use(RequestLogger(log))
}
