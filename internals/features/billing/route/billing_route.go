package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"nestflow_backend/internals/constants"
	controller "nestflow_backend/internals/features/billing/controller"
	authMW "nestflow_backend/internals/middlewares/auth"
)

func BillingRoutes(api fiber.Router, db *gorm.DB) {
	h := controller.NewInvoiceController(db)

	adminOnly := authMW.OnlyRoles("Only admins can manage invoices", constants.RoleAdmin)

	billing := api.Group("/billing")
	billing.Get("/invoices", h.List)
	billing.Post("/invoices", adminOnly, h.Create)
	billing.Put("/invoices/:id", adminOnly, h.Update)
	billing.Delete("/invoices/:id", adminOnly, h.Delete)
	billing.Post("/invoices/:id/pay", h.Pay)

	// Gateway callback, skipped by the auth middleware.
	billing.Post("/notification", h.Notification)
}
