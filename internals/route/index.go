package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	activityRoute "nestflow_backend/internals/features/activities/route"
	attendanceRoute "nestflow_backend/internals/features/attendance/route"
	billingRoute "nestflow_backend/internals/features/billing/route"
	centerRoute "nestflow_backend/internals/features/centers/route"
	childrenRoute "nestflow_backend/internals/features/children/route"
	classroomRoute "nestflow_backend/internals/features/classrooms/route"
	consentRoute "nestflow_backend/internals/features/consents/route"
	healthRoute "nestflow_backend/internals/features/health/route"
	leadRoute "nestflow_backend/internals/features/leads/route"
	messageRoute "nestflow_backend/internals/features/messages/route"
	staffRoute "nestflow_backend/internals/features/staff/route"
	authRoute "nestflow_backend/internals/features/users/auth/route"
	userRoute "nestflow_backend/internals/features/users/user/route"
	authMW "nestflow_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app)

	// ===================== AUTH =====================
	// Login and register manage their own guards.
	log.Println("[INFO] Setting up AuthRoutes...")
	authRoute.AuthRoutes(app.Group("/api"), db)

	// ===================== PRIVATE =====================
	log.Println("[INFO] Setting up private /api group...")
	api := app.Group("/api", authMW.AuthMiddleware(db))

	userRoute.UserRoutes(api, db)
	centerRoute.CenterRoutes(api, db)
	classroomRoute.ClassroomRoutes(api, db)
	childrenRoute.ChildrenRoutes(api, db)
	healthRoute.HealthRoutes(api, db)
	activityRoute.ActivityRoutes(api, db)
	attendanceRoute.AttendanceRoutes(api, db)
	messageRoute.MessageRoutes(api, db)
	billingRoute.BillingRoutes(api, db)
	consentRoute.ConsentRoutes(api, db)
	staffRoute.StaffRoutes(api, db)
	leadRoute.LeadRoutes(api, db)
}
