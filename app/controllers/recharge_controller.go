package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"
	"go.uber.org/zap"

	"github.com/ManuelReschke/RechargeFox/app/models"
	"github.com/ManuelReschke/RechargeFox/internal/pkg/constants"
	"github.com/ManuelReschke/RechargeFox/internal/pkg/logger"
	"github.com/ManuelReschke/RechargeFox/internal/pkg/rechargeapi"
	"github.com/ManuelReschke/RechargeFox/internal/pkg/session"
	"github.com/ManuelReschke/RechargeFox/internal/pkg/usercontext"
)

const (
	msgLoginFirst       = "Please login first!"
	msgRechargeOK       = "Recharge successful!"
	msgRechargeFailed   = "Recharge failed!"
	msgRechargeTryAgain = "Recharge failed! Please try again."
)

// HandleRecharge submits the purchase of a plan for the logged-in user.
func HandleRecharge(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	fm := fiber.Map{
		"type": "error",
	}

	if !userCtx.CanCallAPI() {
		fm["message"] = msgLoginFirst
		return flash.WithError(c, fm).Redirect(constants.LoginRoute, fiber.StatusSeeOther)
	}

	var form models.RechargeForm
	if err := c.BodyParser(&form); err != nil {
		fm["message"] = msgRechargeTryAgain
		return flash.WithError(c, fm).Redirect(constants.PlansRoute, fiber.StatusSeeOther)
	}
	back := plansURL(form.Tab)

	if err := form.Validate(); err != nil {
		fm["message"] = models.ValidationMessage(err)
		return flash.WithError(c, fm).Redirect(back, fiber.StatusSeeOther)
	}

	ctx, cancel := apiContext(c)
	defer cancel()

	if _, err := api.Recharge(ctx, userCtx.Token, form.Request()); err != nil {
		logger.L().Warn("recharge failed",
			zap.String("user_id", userCtx.UserID),
			zap.String("plan_id", form.PlanID),
			zap.Error(err),
		)
		fm["message"] = rechargeFailureMessage(err)
		return flash.WithError(c, fm).Redirect(back, fiber.StatusSeeOther)
	}

	if form.PhoneNumber != userCtx.Phone {
		if err := session.SetSessionValue(c, session.KeyPhone, form.PhoneNumber); err != nil {
			logger.L().Warn("failed to remember phone number", zap.Error(err))
		}
	}

	fm = fiber.Map{
		"type":    "success",
		"message": msgRechargeOK,
	}
	return flash.WithSuccess(c, fm).Redirect(constants.HistoryRoute, fiber.StatusSeeOther)
}

func rechargeFailureMessage(err error) string {
	var apiErr *rechargeapi.APIError
	if !errors.As(err, &apiErr) {
		return msgRechargeTryAgain
	}
	if apiErr.Message != "" {
		return apiErr.Message
	}
	return msgRechargeFailed
}
