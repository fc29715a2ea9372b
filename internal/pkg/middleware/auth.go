package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/RechargeFox/internal/pkg/constants"
	"github.com/ManuelReschke/RechargeFox/internal/pkg/usercontext"
)

// RequireAuth ensures a logged-in web session; redirects to /login if missing.
func RequireAuth(c *fiber.Ctx) error {
	if !usercontext.GetUserContext(c).CanCallAPI() {
		return c.Redirect(constants.LoginRoute, fiber.StatusSeeOther)
	}
	return c.Next()
}

// RequireGuest sends logged-in users away from the login form.
func RequireGuest(c *fiber.Ctx) error {
	if usercontext.GetUserContext(c).CanCallAPI() {
		return c.Redirect(constants.PlansRoute, fiber.StatusSeeOther)
	}
	return c.Next()
}
