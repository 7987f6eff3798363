package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"nestflow_backend/internals/constants"
	controller "nestflow_backend/internals/features/children/controller"
	authMW "nestflow_backend/internals/middlewares/auth"
)

func ChildrenRoutes(api fiber.Router, db *gorm.DB) {
	h := controller.NewChildController(db)
	g := controller.NewGuardianController(db)

	staffOnly := authMW.OnlyRoles("Only staff can manage children", constants.RoleAdmin, constants.RoleTeacher)
	adminOnly := authMW.OnlyRoles("Only admins can delete children", constants.RoleAdmin)

	children := api.Group("/children")
	children.Get("/", h.List)
	children.Get("/:id", h.GetByID)
	children.Post("/", staffOnly, h.Create)
	children.Put("/:id", staffOnly, h.Update)
	children.Delete("/:id", adminOnly, h.Delete)

	children.Get("/:id/guardians", g.ListForChild)
	children.Post("/:id/guardians", staffOnly, g.CreateForChild)
}
