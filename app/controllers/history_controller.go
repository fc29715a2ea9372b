package controllers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/ManuelReschke/RechargeFox/internal/pkg/logger"
	"github.com/ManuelReschke/RechargeFox/internal/pkg/recharge"
	"github.com/ManuelReschke/RechargeFox/internal/pkg/rechargeapi"
	"github.com/ManuelReschke/RechargeFox/internal/pkg/usercontext"
	"github.com/ManuelReschke/RechargeFox/internal/pkg/viewmodel"
)

// HandleHistory renders the history shell. For a logged-in user the shell
// shows the loading message and pulls the list from /history/list.
func HandleHistory(c *fiber.Ctx) error {
	page := viewmodel.HistoryPage{
		Layout: newLayout(c, " | Recharge History", "history"),
		State:  viewmodel.HistoryLoading,
	}
	if !usercontext.GetUserContext(c).CanCallAPI() {
		page.State = viewmodel.HistoryUnauthenticated
	}
	return c.Render("history/index", page, "layouts/main")
}

// HandleHistoryList fetches the history and renders the list fragment.
// Failed fetches, timeouts included, render as an empty history.
func HandleHistoryList(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	page := viewmodel.HistoryPage{State: viewmodel.HistoryUnauthenticated}
	if !userCtx.CanCallAPI() {
		return c.Render("history/list", page)
	}

	ctx, cancel := apiContext(c)
	defer cancel()

	res := api.FetchHistory(ctx, userCtx.UserID, userCtx.Token)
	if errors.Is(ctx.Err(), context.Canceled) {
		// nobody is waiting for this result any more
		logger.L().Debug("dropping stale history result", zap.String("user_id", userCtx.UserID))
		return c.SendStatus(fiber.StatusNoContent)
	}

	logger.L().Debug("history fetched", zap.String("user_id", userCtx.UserID), zap.Stringer("outcome", res.Outcome))

	var entries []recharge.HistoryEntry
	switch res.Outcome {
	case rechargeapi.OutcomeOK:
		entries = recharge.NormalizeHistoryList(res.Records, location)
	case rechargeapi.OutcomeFailed:
		logger.L().Error("failed to fetch history", zap.String("user_id", userCtx.UserID), zap.Error(res.Err))
	}

	page.Entries = entries
	page.State = viewmodel.LoadedHistoryState(entries)
	return c.Render("history/list", page)
}
