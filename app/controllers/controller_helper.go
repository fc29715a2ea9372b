package controllers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/ManuelReschke/RechargeFox/internal/pkg/rechargeapi"
	"github.com/ManuelReschke/RechargeFox/internal/pkg/usercontext"
	"github.com/ManuelReschke/RechargeFox/internal/pkg/viewmodel"
)

// RechargeAPI is the part of the remote API the views use.
type RechargeAPI interface {
	FetchPlans(ctx context.Context) rechargeapi.ListResult
	FetchHistory(ctx context.Context, userID, token string) rechargeapi.ListResult
	Recharge(ctx context.Context, token string, req rechargeapi.RechargeRequest) (*rechargeapi.RechargeResponse, error)
	Login(ctx context.Context, req rechargeapi.LoginRequest) (*rechargeapi.LoginResponse, error)
}

var (
	api        RechargeAPI
	apiTimeout = rechargeapi.DefaultTimeout
	location   = time.Local
)

// InitializeRechargeControllers wires the handlers to the remote API.
func InitializeRechargeControllers(client RechargeAPI, timeout time.Duration, loc *time.Location) {
	api = client
	if timeout > 0 {
		apiTimeout = timeout
	}
	if loc != nil {
		location = loc
	}
}

// apiContext bounds an upstream call and forwards the request id.
func apiContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	ctx := c.UserContext()
	if id, ok := c.Locals("requestid").(string); ok && id != "" {
		ctx = rechargeapi.WithRequestID(ctx, id)
	}
	return context.WithTimeout(ctx, apiTimeout)
}

func newLayout(c *fiber.Ctx, title, page string) viewmodel.Layout {
	userCtx := usercontext.GetUserContext(c)
	csrfToken, _ := c.Locals("csrf").(string)

	var msg fiber.Map
	if fm := flash.Get(c); len(fm) > 0 {
		msg = fm
	}

	return viewmodel.Layout{
		Title:      title,
		Page:       page,
		IsLoggedIn: userCtx.CanCallAPI(),
		Username:   userCtx.Username,
		CSRF:       csrfToken,
		Msg:        msg,
	}
}

func isHTMXRequest(c *fiber.Ctx) bool {
	return c.Get("HX-Request") == "true"
}
