package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"nestflow_backend/internals/constants"
	controller "nestflow_backend/internals/features/leads/controller"
	authMW "nestflow_backend/internals/middlewares/auth"
)

func LeadRoutes(api fiber.Router, db *gorm.DB) {
	h := controller.NewLeadController(db)

	staffOnly := authMW.OnlyRoles("Only staff can manage leads", constants.RoleAdmin, constants.RoleTeacher)
	adminOnly := authMW.OnlyRoles("Only admins can delete leads", constants.RoleAdmin)

	leads := api.Group("/leads", staffOnly)
	leads.Get("/", h.List)
	leads.Post("/", h.Create)
	leads.Put("/:id", h.Update)
	leads.Delete("/:id", adminOnly, h.Delete)
}
