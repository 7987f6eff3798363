package controller

import (
	"bytes"
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
	activityModel "nestflow_backend/internals/features/activities/model"
	centerModel "nestflow_backend/internals/features/centers/model"
	childModel "nestflow_backend/internals/features/children/model"
	userModel "nestflow_backend/internals/features/users/user/model"
)

type activityTestEnv struct {
	app      *fiber.App
	db       *gorm.DB
	centerID uuid.UUID
	userID   uuid.UUID
	children []uuid.UUID
}

func newActivityTestEnv(t *testing.T, childCount int) *activityTestEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	env := &activityTestEnv{db: db, centerID: uuid.New(), userID: uuid.New()}
	require.NoError(t, db.Create(&centerModel.CenterModel{ID: env.centerID, Name: "Test Center"}).Error)

	first := "Sarah"
	require.NoError(t, db.Create(&userModel.UserModel{
		ID:           env.userID,
		CenterID:     &env.centerID,
		Email:        "teacher@test.local",
		PasswordHash: "x",
		Role:         "TEACHER",
		FirstName:    &first,
		IsActive:     true,
	}).Error)

	for i := 0; i < childCount; i++ {
		id := uuid.New()
		require.NoError(t, db.Create(&childModel.ChildModel{
			ID:        id,
			CenterID:  env.centerID,
			FirstName: fmt.Sprintf("Child%d", i),
			LastName:  "Test",
			Status:    childModel.StatusAbsent,
		}).Error)
		env.children = append(env.children, id)
	}

	app := fiber.New()
	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Locals("user_id", env.userID.String())
		c.Locals("center_id", env.centerID.String())
		c.Locals("userRole", "TEACHER")
		return c.Next()
	})

	h := NewActivityController(db)
	activities := api.Group("/activities")
	activities.Get("/", h.List)
	activities.Post("/", h.Create)
	activities.Post("/bulk", h.BulkCreate)

	env.app = app
	return env
}

func (e *activityTestEnv) do(t *testing.T, method, path string, body interface{}) (*http.Response, map[string]interface{}) {
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
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp, envelope
}

func TestCreateActivityWithMetadata(t *testing.T) {
	env := newActivityTestEnv(t, 1)

	resp, body := env.do(t, "POST", "/api/activities/", fiber.Map{
		"child_id": env.children[0].String(),
		"type":     activityModel.TypeMeal,
		"title":    "Lunch",
		"metadata": fiber.Map{"menu": "pasta", "portion": "full"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Sarah", data["author_name"])

	var m activityModel.ActivityModel
	require.NoError(t, env.db.First(&m, "child_id = ?", env.children[0]).Error)
	assert.Contains(t, string(m.Metadata), "pasta")
}

func TestCreateActivityRejectsForeignChild(t *testing.T) {
	env := newActivityTestEnv(t, 0)

	resp, body := env.do(t, "POST", "/api/activities/", fiber.Map{
		"child_id": uuid.NewString(),
		"type":     activityModel.TypeNote,
		"title":    "Hello",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Child not found", body["message"])
}

func TestBulkCreateFansOutPerChild(t *testing.T) {
	env := newActivityTestEnv(t, 3)

	ids := []string{env.children[0].String(), env.children[1].String(), env.children[2].String()}
	resp, body := env.do(t, "POST", "/api/activities/bulk", fiber.Map{
		"child_ids": ids,
		"type":      activityModel.TypeNap,
		"title":     "Afternoon nap",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Len(t, body["data"].([]interface{}), 3)

	var count int64
	require.NoError(t, env.db.Model(&activityModel.ActivityModel{}).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

func TestBulkCreateRollsBackOnForeignChild(t *testing.T) {
	env := newActivityTestEnv(t, 2)

	ids := []string{env.children[0].String(), uuid.NewString(), env.children[1].String()}
	resp, _ := env.do(t, "POST", "/api/activities/bulk", fiber.Map{
		"child_ids": ids,
		"type":      activityModel.TypePhoto,
		"title":     "Group photo",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var count int64
	require.NoError(t, env.db.Model(&activityModel.ActivityModel{}).Count(&count).Error)
	assert.EqualValues(t, 0, count, "partial writes must roll back")
}

func TestBulkCreateRequiresChildIDs(t *testing.T) {
	env := newActivityTestEnv(t, 0)

	resp, body := env.do(t, "POST", "/api/activities/bulk", fiber.Map{
		"child_ids": []string{},
		"type":      activityModel.TypeNote,
		"title":     "Empty",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "childIds must be a non-empty array", body["message"])
}

func TestListScopedToCenterAndChild(t *testing.T) {
	env := newActivityTestEnv(t, 2)

	for _, id := range env.children {
		resp, _ := env.do(t, "POST", "/api/activities/", fiber.Map{
			"child_id": id.String(),
			"type":     activityModel.TypeNote,
			"title":    "Note",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, body := env.do(t, "GET", "/api/activities/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["data"].([]interface{}), 2)

	resp, body = env.do(t, "GET", "/api/activities/?childId="+env.children[0].String(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["data"].([]interface{}), 1)
}
