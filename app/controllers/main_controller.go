package controllers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/RechargeFox/internal/pkg/cache"
	"github.com/ManuelReschke/RechargeFox/internal/pkg/constants"
	"github.com/ManuelReschke/RechargeFox/internal/pkg/env"
)

func HandleStart(c *fiber.Ctx) error {
	return c.Redirect(constants.PlansRoute, fiber.StatusSeeOther)
}

// HandleHealth reports liveness and, when sessions live in Redis, whether
// the cache answers.
func HandleHealth(c *fiber.Ctx) error {
	if env.GetEnv("SESSION_STORAGE", "redis") == "memory" {
		return c.JSON(fiber.Map{"status": "ok", "cache": "disabled"})
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	if err := cache.Ping(ctx); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":  "degraded",
			"cache":   "unreachable",
			"message": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"status": "ok", "cache": "ok"})
}
