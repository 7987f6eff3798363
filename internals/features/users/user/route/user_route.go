package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "nestflow_backend/internals/features/users/user/controller"
)

func UserRoutes(api fiber.Router, db *gorm.DB) {
	h := controller.NewUserController(db)

	users := api.Group("/users")
	users.Get("/", h.List)
}
