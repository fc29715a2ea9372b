package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/RechargeFox/app/controllers"
	"github.com/ManuelReschke/RechargeFox/internal/pkg/constants"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	app.Get(constants.HealthRoute, controllers.HandleHealth)
	app.Get(constants.HistoryListRoute, controllers.HandleHistoryList)
}
