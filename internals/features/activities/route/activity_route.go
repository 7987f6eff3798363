package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "nestflow_backend/internals/features/activities/controller"
)

func ActivityRoutes(api fiber.Router, db *gorm.DB) {
	h := controller.NewActivityController(db)

	activities := api.Group("/activities")
	activities.Get("/", h.List)
	activities.Post("/", h.Create)
	activities.Post("/bulk", h.BulkCreate)
}
