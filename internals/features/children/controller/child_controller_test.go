package controller_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	database "nestflow_backend/internals/databases"
	activityModel "nestflow_backend/internals/features/activities/model"
	attendanceModel "nestflow_backend/internals/features/attendance/model"
	billingModel "nestflow_backend/internals/features/billing/model"
	centerModel "nestflow_backend/internals/features/centers/model"
	childModel "nestflow_backend/internals/features/children/model"
	childrenRoute "nestflow_backend/internals/features/children/route"
	userModel "nestflow_backend/internals/features/users/user/model"
)

type childTestEnv struct {
	app      *fiber.App
	db       *gorm.DB
	centerID uuid.UUID
	userID   uuid.UUID
}

func newChildTestEnv(t *testing.T) *childTestEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	env := &childTestEnv{db: db, centerID: uuid.New(), userID: uuid.New()}
	require.NoError(t, db.Create(&centerModel.CenterModel{ID: env.centerID, Name: "Test Center"}).Error)
	require.NoError(t, db.Create(&userModel.UserModel{
		ID: env.userID, CenterID: &env.centerID, Email: "admin@test.local",
		PasswordHash: "x", Role: "ADMIN", IsActive: true,
	}).Error)

	app := fiber.New()
	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Locals("user_id", env.userID.String())
		c.Locals("center_id", env.centerID.String())
		c.Locals("userRole", "ADMIN")
		return c.Next()
	})
	childrenRoute.ChildrenRoutes(api, db)

	env.app = app
	return env
}

func (e *childTestEnv) do(t *testing.T, method, path string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)

	envelope := map[string]interface{}{}
	_ = json.NewDecoder(resp.Body).Decode(&envelope)
	return resp, envelope
}

func (e *childTestEnv) seedChild(t *testing.T, centerID uuid.UUID) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, e.db.Create(&childModel.ChildModel{
		ID: id, CenterID: centerID, FirstName: "Emma", LastName: "Stone",
		Status: childModel.StatusAbsent, EnrollmentStatus: childModel.EnrollmentEnrolled,
	}).Error)
	return id
}

func TestGetChildMasksOtherTenants(t *testing.T) {
	env := newChildTestEnv(t)

	otherCenter := uuid.New()
	require.NoError(t, env.db.Create(&centerModel.CenterModel{ID: otherCenter, Name: "Other"}).Error)
	foreign := env.seedChild(t, otherCenter)
	own := env.seedChild(t, env.centerID)

	resp, _ := env.do(t, "GET", "/api/children/"+own.String(), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := env.do(t, "GET", "/api/children/"+foreign.String(), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Child not found", body["message"])
}

func TestDeleteChildCascades(t *testing.T) {
	env := newChildTestEnv(t)
	childID := env.seedChild(t, env.centerID)

	require.NoError(t, env.db.Create(&activityModel.ActivityModel{
		ID: uuid.New(), ChildID: childID, Type: activityModel.TypeNote, Title: "Note",
	}).Error)
	require.NoError(t, env.db.Create(&attendanceModel.AttendanceModel{
		ID: uuid.New(), ChildID: childID,
		Date: attendanceModel.DateOnly(time.Now()), CheckInTime: time.Now(),
	}).Error)
	require.NoError(t, env.db.Create(&childModel.GuardianModel{
		ID: uuid.New(), ChildID: childID, Name: "Pat Stone", Relation: "Mother",
	}).Error)
	require.NoError(t, env.db.Create(&billingModel.InvoiceModel{
		ID: uuid.New(), ChildID: childID, Title: "Tuition", Amount: 100,
		Status: billingModel.InvoicePending, DueDate: time.Now(),
	}).Error)

	resp, _ := env.do(t, "DELETE", "/api/children/"+childID.String(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	for name, model := range map[string]interface{}{
		"child":      &childModel.ChildModel{},
		"activity":   &activityModel.ActivityModel{},
		"attendance": &attendanceModel.AttendanceModel{},
		"invoice":    &billingModel.InvoiceModel{},
	} {
		var count int64
		q := env.db.Model(model)
		if name == "child" {
			q = q.Where("id = ?", childID)
		} else {
			q = q.Where("child_id = ?", childID)
		}
		require.NoError(t, q.Count(&count).Error)
		assert.EqualValues(t, 0, count, "%s rows should be gone", name)
	}

	var guardians int64
	require.NoError(t, env.db.Model(&childModel.GuardianModel{}).
		Where("child_id = ?", childID).Count(&guardians).Error)
	assert.EqualValues(t, 0, guardians)
}
