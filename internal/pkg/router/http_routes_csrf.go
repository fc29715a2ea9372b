package router

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/ManuelReschke/RechargeFox/app/controllers"
	"github.com/ManuelReschke/RechargeFox/internal/pkg/constants"
	"github.com/ManuelReschke/RechargeFox/internal/pkg/env"
	"github.com/ManuelReschke/RechargeFox/internal/pkg/middleware"
)

func (h HttpRouter) registerCSRFProtectedRoutes(app *fiber.App) {
	csrfConf := csrf.Config{
		KeyLookup:      "form:_csrf",
		ContextKey:     "csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Expiration:     1 * time.Hour,
		CookieSecure:   !env.IsDev(),
	}

	group := app.Group("", csrf.New(csrfConf))
	group.Get(constants.HomeRoute, controllers.HandleStart)
	group.Get(constants.PlansRoute, controllers.HandlePlans)
	group.Get(constants.HistoryRoute, controllers.HandleHistory)
	group.Post(constants.RechargeRoute, rechargeLimiter(), controllers.HandleRecharge)
	group.Get(constants.LoginRoute, middleware.RequireGuest, controllers.HandleAuthLogin)
	group.Post(constants.LoginRoute, middleware.RequireGuest, controllers.HandleAuthLogin)
	group.Post(constants.LogoutRoute, middleware.RequireAuth, controllers.HandleAuthLogout)
}

// rechargeLimiter caps purchase attempts per client.
func rechargeLimiter() fiber.Handler {
	limit, err := strconv.Atoi(env.GetEnv("RECHARGE_RATE_LIMIT", "10"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	return limiter.New(limiter.Config{
		Max:        limit,
		Expiration: 1 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).SendString("Too many recharge attempts, please wait a minute.")
		},
	})
}
