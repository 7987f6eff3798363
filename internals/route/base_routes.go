package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"

	helper "nestflow_backend/internals/helpers"
)

func BaseRoutes(app *fiber.App) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return helper.JsonOK(c, "OK", fiber.Map{
			"status": "healthy",
			"uptime": time.Since(startTime).Round(time.Second).String(),
		})
	})
}
