package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"nestflow_backend/internals/constants"
	controller "nestflow_backend/internals/features/health/controller"
	authMW "nestflow_backend/internals/middlewares/auth"
)

func HealthRoutes(api fiber.Router, db *gorm.DB) {
	h := controller.NewHealthController(db)

	staffOnly := authMW.OnlyRoles("Only staff can manage health records", constants.RoleAdmin, constants.RoleTeacher)

	children := api.Group("/children/:childId")
	children.Get("/health", h.GetProfile)
	children.Put("/health", staffOnly, h.UpsertProfile)
	children.Get("/immunizations", h.ListImmunizations)
	children.Post("/immunizations", staffOnly, h.CreateImmunization)
	children.Get("/medications", h.ListMedications)
	children.Post("/medications", staffOnly, h.CreateMedication)
	children.Post("/medications/:id/administer", staffOnly, h.AdministerMedication)
}
