package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"nestflow_backend/internals/constants"
	controller "nestflow_backend/internals/features/consents/controller"
	authMW "nestflow_backend/internals/middlewares/auth"
)

func ConsentRoutes(api fiber.Router, db *gorm.DB) {
	h := controller.NewConsentController(db)

	adminOnly := authMW.OnlyRoles("Only admins can manage consent templates", constants.RoleAdmin)

	consents := api.Group("/consents")
	consents.Get("/templates", h.ListTemplates)
	consents.Post("/templates", adminOnly, h.CreateTemplate)
	consents.Get("/forms", h.ListForms)
	consents.Post("/forms/sign", h.Sign)
}
