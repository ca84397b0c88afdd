package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"

	"madrasahku_backend/internals/configs"
	database "madrasahku_backend/internals/databases"
	paymentService "madrasahku_backend/internals/features/finance/payments/service"
	scheduler "madrasahku_backend/internals/features/users/auth/scheduler"
	vrfService "madrasahku_backend/internals/features/users/verification/service"
	ossHelper "madrasahku_backend/internals/helpers/oss"
	middlewares "madrasahku_backend/internals/middlewares"
	routes "madrasahku_backend/internals/route"
)

func main() {
	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	app.Use(middlewares.RequestContextMiddleware())

	middlewares.SetupMiddlewares(app)

	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()
	database.ConnectKeyDB()

	scheduler.StartBlacklistCleanupScheduler(database.DB)

	paymentService.InitMidtrans(configs.MidtransKey)

	vrf := vrfService.NewVerificationService(database.KeyDB)

	oss, err := ossHelper.NewOSSServiceFromEnv("madrasahku")
	if err != nil {
		log.Println("❌ OSS not configured, uploads disabled:", err)
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	routes.SetupRoutes(app, database.DB, vrf, oss)

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	database.CloseKeyDB()
	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
