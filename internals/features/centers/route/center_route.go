package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"nestflow_backend/internals/constants"
	controller "nestflow_backend/internals/features/centers/controller"
	authMW "nestflow_backend/internals/middlewares/auth"
)

func CenterRoutes(api fiber.Router, db *gorm.DB) {
	h := controller.NewCenterController(db)

	centers := api.Group("/centers")
	centers.Get("/me", h.GetMine)
	centers.Put("/me", authMW.OnlyRoles("Only admins can update the center", constants.RoleAdmin), h.UpdateMine)
}
