package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"nestflow_backend/internals/constants"
	controller "nestflow_backend/internals/features/staff/controller"
	authMW "nestflow_backend/internals/middlewares/auth"
)

func StaffRoutes(api fiber.Router, db *gorm.DB) {
	h := controller.NewStaffController(db)

	adminOnly := authMW.OnlyRoles("Only admins can manage staff", constants.RoleAdmin)

	staff := api.Group("/staff")
	staff.Get("/", h.List)
	staff.Get("/:id", h.GetByID)
	staff.Post("/", adminOnly, h.Create)
	staff.Put("/:id", adminOnly, h.Update)
	staff.Delete("/:id", adminOnly, h.Delete)
}
