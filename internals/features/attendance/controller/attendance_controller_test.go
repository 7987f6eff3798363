package controller

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
	centerModel "nestflow_backend/internals/features/centers/model"
	childModel "nestflow_backend/internals/features/children/model"
	userModel "nestflow_backend/internals/features/users/user/model"
)

type testEnv struct {
	app      *fiber.App
	db       *gorm.DB
	centerID uuid.UUID
	userID   uuid.UUID
	childID  uuid.UUID
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	env := &testEnv{
		db:       db,
		centerID: uuid.New(),
		userID:   uuid.New(),
		childID:  uuid.New(),
	}

	require.NoError(t, db.Create(&centerModel.CenterModel{ID: env.centerID, Name: "Test Center"}).Error)
	require.NoError(t, db.Create(&userModel.UserModel{
		ID:           env.userID,
		CenterID:     &env.centerID,
		Email:        "teacher@test.local",
		PasswordHash: "x",
		Role:         "TEACHER",
		IsActive:     true,
	}).Error)
	require.NoError(t, db.Create(&childModel.ChildModel{
		ID:        env.childID,
		CenterID:  env.centerID,
		FirstName: "Emma",
		LastName:  "Stone",
		Status:    childModel.StatusAbsent,
	}).Error)

	app := fiber.New()
	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Locals("user_id", env.userID.String())
		c.Locals("center_id", env.centerID.String())
		c.Locals("userRole", "TEACHER")
		return c.Next()
	})

	h := NewAttendanceController(db)
	attendance := api.Group("/attendance")
	attendance.Get("/", h.List)
	attendance.Post("/check-in", h.CheckIn)
	attendance.Post("/check-out", h.CheckOut)

	env.app = app
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)

	var envelope map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp, envelope
}

func TestCheckInOpensRecordAndMirrorsStatus(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, "POST", "/api/attendance/check-in", fiber.Map{"childId": env.childID.String()})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, env.childID.String(), data["childId"])
	assert.Nil(t, data["checkOutTime"])

	var child childModel.ChildModel
	require.NoError(t, env.db.First(&child, "id = ?", env.childID).Error)
	assert.Equal(t, childModel.StatusPresent, child.Status)

	var audit activityModel.ActivityModel
	require.NoError(t, env.db.First(&audit, "child_id = ? AND type = ?", env.childID, activityModel.TypeCheckIn).Error)
	assert.Contains(t, audit.Title, "Emma")
}

func TestDoubleCheckInConflicts(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.do(t, "POST", "/api/attendance/check-in", fiber.Map{"childId": env.childID.String()})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := env.do(t, "POST", "/api/attendance/check-in", fiber.Map{"childId": env.childID.String()})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Child is already checked in", body["message"])

	var count int64
	require.NoError(t, env.db.Model(&attendanceModel.AttendanceModel{}).
		Where("child_id = ?", env.childID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCheckOutClosesRecord(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.do(t, "POST", "/api/attendance/check-in", fiber.Map{"childId": env.childID.String()})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := env.do(t, "POST", "/api/attendance/check-out", fiber.Map{"childId": env.childID.String()})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	assert.NotNil(t, data["checkOutTime"])

	var child childModel.ChildModel
	require.NoError(t, env.db.First(&child, "id = ?", env.childID).Error)
	assert.Equal(t, childModel.StatusCheckedOut, child.Status)

	var audit activityModel.ActivityModel
	require.NoError(t, env.db.First(&audit, "child_id = ? AND type = ?", env.childID, activityModel.TypeCheckOut).Error)
}

func TestCheckOutWithoutOpenRecord(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, "POST", "/api/attendance/check-out", fiber.Map{"childId": env.childID.String()})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "No active check-in found for today", body["message"])
}

func TestCheckInRequiresChildID(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, "POST", "/api/attendance/check-in", fiber.Map{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "childId is required", body["message"])
}

func TestCheckInMasksForeignChild(t *testing.T) {
	env := newTestEnv(t)

	otherCenter := uuid.New()
	require.NoError(t, env.db.Create(&centerModel.CenterModel{ID: otherCenter, Name: "Other"}).Error)
	foreignChild := uuid.New()
	require.NoError(t, env.db.Create(&childModel.ChildModel{
		ID:        foreignChild,
		CenterID:  otherCenter,
		FirstName: "Liam",
		LastName:  "Gray",
		Status:    childModel.StatusAbsent,
	}).Error)

	resp, body := env.do(t, "POST", "/api/attendance/check-in", fiber.Map{"childId": foreignChild.String()})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Child not found", body["message"])
}

func TestListFiltersByChildAndDate(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.do(t, "POST", "/api/attendance/check-in", fiber.Map{"childId": env.childID.String()})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	today := attendanceModel.DateOnly(time.Now()).Format("2006-01-02")
	resp, body := env.do(t, "GET", "/api/attendance/?childId="+env.childID.String()+"&date="+today, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["data"].([]interface{}), 1)

	resp, body = env.do(t, "GET", "/api/attendance/?childId="+uuid.NewString(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body["data"])
}
