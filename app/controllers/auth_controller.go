package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"
	"go.uber.org/zap"

	"github.com/ManuelReschke/RechargeFox/app/models"
	"github.com/ManuelReschke/RechargeFox/internal/pkg/constants"
	"github.com/ManuelReschke/RechargeFox/internal/pkg/logger"
	"github.com/ManuelReschke/RechargeFox/internal/pkg/rechargeapi"
	"github.com/ManuelReschke/RechargeFox/internal/pkg/session"
)

// HandleAuthLogin shows the login form and, on POST, exchanges the
// credentials for a token at the remote API.
func HandleAuthLogin(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return c.Render("auth/login", newLayout(c, " | Login", "login"), "layouts/main")
	}

	fm := fiber.Map{
		"type": "error",
	}

	var form models.LoginForm
	if err := c.BodyParser(&form); err != nil {
		fm["message"] = "There is a problem with the login process"
		return flash.WithError(c, fm).Redirect(constants.LoginRoute, fiber.StatusSeeOther)
	}
	if err := form.Validate(); err != nil {
		fm["message"] = models.ValidationMessage(err)
		return flash.WithError(c, fm).Redirect(constants.LoginRoute, fiber.StatusSeeOther)
	}

	ctx, cancel := apiContext(c)
	defer cancel()

	resp, err := api.Login(ctx, rechargeapi.LoginRequest{Email: form.Email, Password: form.Password})
	if err != nil {
		logger.L().Info("login rejected", zap.Error(err))
		// notice: the upstream message is shown as is, it never says which
		// part of the credentials was wrong
		msg := rechargeapi.Message(err)
		if msg == "" {
			msg = "There is a problem with the login process"
		}
		fm["message"] = msg
		return flash.WithError(c, fm).Redirect(constants.LoginRoute, fiber.StatusSeeOther)
	}

	user := resp.User
	if err := session.Login(c, user.Identity(), user.Name, string(user.Phone), resp.Token); err != nil {
		logger.L().Error("failed to store session", zap.Error(err))
		fm["message"] = "Something went wrong, please try again"
		return flash.WithError(c, fm).Redirect(constants.LoginRoute, fiber.StatusSeeOther)
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "Welcome back!",
	}
	return flash.WithSuccess(c, fm).Redirect(constants.PlansRoute, fiber.StatusSeeOther)
}

func HandleAuthLogout(c *fiber.Ctx) error {
	fm := fiber.Map{
		"type": "error",
	}

	if err := session.Logout(c); err != nil {
		fm["message"] = "logged out (no session)"
		return flash.WithError(c, fm).Redirect(constants.LoginRoute, fiber.StatusSeeOther)
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "You have been logged out.",
	}
	return flash.WithSuccess(c, fm).Redirect(constants.LoginRoute, fiber.StatusSeeOther)
}
