package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "nestflow_backend/internals/features/messages/controller"
)

func MessageRoutes(api fiber.Router, db *gorm.DB) {
	h := controller.NewMessageController(db)

	messages := api.Group("/messages")
	messages.Get("/", h.List)
	messages.Post("/", h.Send)
	messages.Patch("/:id/read", h.MarkRead)
}
