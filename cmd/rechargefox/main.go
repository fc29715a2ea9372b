package main

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ManuelReschke/RechargeFox/internal/pkg/cache"
	"github.com/ManuelReschke/RechargeFox/internal/pkg/env"
	applog "github.com/ManuelReschke/RechargeFox/internal/pkg/logger"
	"github.com/ManuelReschke/RechargeFox/internal/pkg/router"
	"github.com/ManuelReschke/RechargeFox/views"
)

func main() {
	app := NewApplication()
	defer applog.Sync()

	addr := fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000"))
	if err := app.Listen(addr); err != nil {
		applog.L().Fatal("server stopped", zap.Error(err))
	}
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	log := applog.Setup(env.IsDev())

	if env.GetEnv("SESSION_STORAGE", "redis") != "memory" {
		cache.SetupCache()
	}

	// init fiber app
	app := fiber.New(fiber.Config{
		Views:        views.NewEngine(env.IsDev()),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	// recovery, request ids and access logging
	app.Use(
		recover.New(),
		requestid.New(requestid.Config{Generator: uuid.NewString}),
		logger.New(logger.Config{
			Format: "${time} ${status} - ${latency} ${method} ${path} ${locals:requestid}\n",
		}),
	)

	// ROUTER
	router.InstallRouter(app)

	log.Info("application initialized", zap.String("api_base_url", env.GetEnv("API_BASE_URL", "http://localhost:5000")))
	return app
}
