package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "nestflow_backend/internals/features/attendance/controller"
)

func AttendanceRoutes(api fiber.Router, db *gorm.DB) {
	h := controller.NewAttendanceController(db)

	attendance := api.Group("/attendance")
	attendance.Get("/", h.List)
	attendance.Post("/check-in", h.CheckIn)
	attendance.Post("/check-out", h.CheckOut)
}
