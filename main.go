package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"tobehealthy_backend/internals/configs"
	database "tobehealthy_backend/internals/databases"
	"tobehealthy_backend/internals/helpers/oss"
	"tobehealthy_backend/internals/logging"
	middlewares "tobehealthy_backend/internals/middlewares"
	routes "tobehealthy_backend/internals/route"
)

func main() {
	lg, err := logging.Init(os.Getenv("LOG_LEVEL"), os.Getenv("APP_ENV"))
	if err != nil {
		panic(err)
	}
	defer lg.Close()
	log := lg.Base

	configs.LoadEnv(log)

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
		BodyLimit:               32 * 1024 * 1024, // 3 attachments of up to 10MB each
	})

	middlewares.SetupMiddlewares(app, log)

	// DB connect + schema migrate + pool warm-up
	database.ConnectDB(log)
	database.Migrate(log)
	database.TunePool(log)
	database.WarmUp(log)

	var blob oss.BlobService
	if b, err := oss.NewOSSBlobServiceFromEnv("lesson-history"); err != nil {
		log.Warn("object storage disabled", zap.Error(err))
	} else {
		blob = b
	}

	routes.SetupRoutes(app, database.DB, blob, log)

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	go func() {
		log.Info("listening", zap.String("port", port))
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if sqlDB, err := database.DB.DB(); err != nil {
		log.Warn("db close skipped", zap.Error(err))
	} else {
		_ = sqlDB.Close()
	}
}
