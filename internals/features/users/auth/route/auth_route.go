package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "nestflow_backend/internals/features/users/auth/controller"
	middlewares "nestflow_backend/internals/middlewares"
	authMW "nestflow_backend/internals/middlewares/auth"
)

// AuthRoutes: login/register are public (rate limited); logout/me need auth.
func AuthRoutes(api fiber.Router, db *gorm.DB) {
	h := controller.NewAuthController(db)

	auth := api.Group("/auth")
	auth.Post("/login", middlewares.LoginRateLimiter(), h.Login)
	auth.Post("/register", middlewares.RegisterRateLimiter(), h.Register)

	auth.Post("/logout", authMW.AuthMiddleware(db), h.Logout)
	auth.Get("/me", authMW.AuthMiddleware(db), h.Me)
}
