package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"nestflow_backend/internals/constants"
	controller "nestflow_backend/internals/features/classrooms/controller"
	authMW "nestflow_backend/internals/middlewares/auth"
)

func ClassroomRoutes(api fiber.Router, db *gorm.DB) {
	h := controller.NewClassroomController(db)
	adminOnly := authMW.OnlyRoles("Only admins can manage classrooms", constants.RoleAdmin)

	classrooms := api.Group("/classrooms")
	classrooms.Get("/", h.List)
	classrooms.Get("/:id", h.GetByID)
	classrooms.Post("/", adminOnly, h.Create)
	classrooms.Put("/:id", adminOnly, h.Update)
	classrooms.Delete("/:id", adminOnly, h.Delete)
}
