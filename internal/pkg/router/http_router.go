package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/RechargeFox/app/controllers"
	"github.com/ManuelReschke/RechargeFox/internal/pkg/env"
	"github.com/ManuelReschke/RechargeFox/internal/pkg/logger"
	"github.com/ManuelReschke/RechargeFox/internal/pkg/middleware"
	"github.com/ManuelReschke/RechargeFox/internal/pkg/rechargeapi"
	"github.com/ManuelReschke/RechargeFox/internal/pkg/session"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	timeout := env.GetDuration("API_TIMEOUT", rechargeapi.DefaultTimeout)
	client := rechargeapi.NewClient(env.GetEnv("API_BASE_URL", "http://localhost:5000"), timeout, logger.L())
	controllers.InitializeRechargeControllers(client, timeout, nil)

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	h.registerPublicRoutes(app)
	h.registerCSRFProtectedRoutes(app)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}
