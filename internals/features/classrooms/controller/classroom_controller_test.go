package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	database "nestflow_backend/internals/databases"
	centerModel "nestflow_backend/internals/features/centers/model"
	childModel "nestflow_backend/internals/features/children/model"
	classroomModel "nestflow_backend/internals/features/classrooms/model"
)

func newClassroomTestApp(t *testing.T) (*fiber.App, *gorm.DB, uuid.UUID) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	centerID := uuid.New()
	require.NoError(t, db.Create(&centerModel.CenterModel{ID: centerID, Name: "Test Center"}).Error)

	app := fiber.New()
	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Locals("user_id", uuid.NewString())
		c.Locals("center_id", centerID.String())
		c.Locals("userRole", "ADMIN")
		return c.Next()
	})

	h := NewClassroomController(db)
	classrooms := api.Group("/classrooms")
	classrooms.Get("/", h.List)
	classrooms.Get("/:id", h.GetByID)

	return app, db, centerID
}

func TestEnrolledCountIsDerived(t *testing.T) {
	app, db, centerID := newClassroomTestApp(t)

	classroomID := uuid.New()
	require.NoError(t, db.Create(&classroomModel.ClassroomModel{
		ID: classroomID, CenterID: centerID, Name: "Toddlers 1A", Capacity: 12,
	}).Error)

	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&childModel.ChildModel{
			ID: uuid.New(), CenterID: centerID, ClassroomID: &classroomID,
			FirstName: fmt.Sprintf("Child%d", i), LastName: "Test",
			Status: childModel.StatusAbsent, EnrollmentStatus: childModel.EnrollmentEnrolled,
		}).Error)
	}

	req := httptest.NewRequest("GET", "/api/classrooms/"+classroomID.String(), nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	envelope := map[string]interface{}{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	data := envelope["data"].(map[string]interface{})
	assert.EqualValues(t, 3, data["enrolled"])
}

func TestGetClassroomMasksOtherTenants(t *testing.T) {
	app, db, _ := newClassroomTestApp(t)

	otherCenter := uuid.New()
	require.NoError(t, db.Create(&centerModel.CenterModel{ID: otherCenter, Name: "Other"}).Error)
	foreign := uuid.New()
	require.NoError(t, db.Create(&classroomModel.ClassroomModel{
		ID: foreign, CenterID: otherCenter, Name: "Foreign Room", Capacity: 10,
	}).Error)

	req := httptest.NewRequest("GET", "/api/classrooms/"+foreign.String(), nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
