package controllers

import (
	"context"
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/ManuelReschke/RechargeFox/internal/pkg/constants"
	"github.com/ManuelReschke/RechargeFox/internal/pkg/logger"
	"github.com/ManuelReschke/RechargeFox/internal/pkg/recharge"
	"github.com/ManuelReschke/RechargeFox/internal/pkg/rechargeapi"
	"github.com/ManuelReschke/RechargeFox/internal/pkg/usercontext"
	"github.com/ManuelReschke/RechargeFox/internal/pkg/viewmodel"
)

// HandlePlans renders the plan catalogue filtered by the ?tab= selection.
// Without a tab the default tab is shown; the choice is never stored.
func HandlePlans(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	tab := recharge.ParseTab(c.Query("tab"))

	ctx, cancel := apiContext(c)
	defer cancel()
	plans, fallback := loadPlans(ctx)

	page := viewmodel.NewPlansPage(newLayout(c, " | Plans", "plans"), plans, tab)
	page.Phone = userCtx.Phone
	page.Fallback = fallback

	if isHTMXRequest(c) {
		return c.Render("plans/list", page)
	}
	return c.Render("plans/index", page, "layouts/main")
}

// loadPlans fetches and normalizes the catalogue. An unreachable API yields
// the default plans; a rejected request yields an empty list.
func loadPlans(ctx context.Context) ([]recharge.Plan, bool) {
	log := logger.L()

	res := api.FetchPlans(ctx)
	switch res.Outcome {
	case rechargeapi.OutcomeFailed:
		if errors.Is(res.Err, rechargeapi.ErrTransport) {
			log.Warn("plans unavailable, showing default plans", zap.Error(res.Err))
			return recharge.NormalizePlans(recharge.DefaultPlans()), true
		}
		log.Error("failed to fetch plans", zap.Error(res.Err))
		return []recharge.Plan{}, false
	case rechargeapi.OutcomeEmpty:
		return []recharge.Plan{}, false
	}

	if log.Core().Enabled(zap.DebugLevel) {
		for _, r := range res.Records {
			f := recharge.Inspect(r)
			log.Debug("classified plan",
				zap.Float64("price", f.Price),
				zap.Int("days", f.Days),
				zap.Bool("has_days", f.HasDays),
				zap.String("data", f.Data),
				zap.String("call", f.Call),
				zap.String("category", string(recharge.Classify(r))),
			)
		}
	}
	return recharge.NormalizePlans(res.Records), false
}

func plansURL(tab string) string {
	return constants.PlansRoute + "?tab=" + url.QueryEscape(string(recharge.ParseTab(tab)))
}
