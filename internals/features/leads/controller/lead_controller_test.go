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
	centerModel "nestflow_backend/internals/features/centers/model"
	leadModel "nestflow_backend/internals/features/leads/model"
)

type leadTestEnv struct {
	app      *fiber.App
	db       *gorm.DB
	centerID uuid.UUID
}

func newLeadTestEnv(t *testing.T) *leadTestEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	env := &leadTestEnv{db: db, centerID: uuid.New()}
	require.NoError(t, db.Create(&centerModel.CenterModel{ID: env.centerID, Name: "Test Center"}).Error)

	app := fiber.New()
	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Locals("user_id", uuid.NewString())
		c.Locals("center_id", env.centerID.String())
		c.Locals("userRole", "ADMIN")
		return c.Next()
	})

	h := NewLeadController(db)
	leads := api.Group("/leads")
	leads.Get("/", h.List)
	leads.Post("/", h.Create)
	leads.Put("/:id", h.Update)
	leads.Delete("/:id", h.Delete)

	env.app = app
	return env
}

func (e *leadTestEnv) do(t *testing.T, method, path string, body interface{}) (*http.Response, map[string]interface{}) {
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

func TestLeadStageMove(t *testing.T) {
	env := newLeadTestEnv(t)

	resp, body := env.do(t, "POST", "/api/leads/", fiber.Map{
		"parentName": "Jamie Doe",
		"childName":  "Sam",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, leadModel.StageNew, data["stage"])
	leadID := data["id"].(string)

	resp, body = env.do(t, "PUT", "/api/leads/"+leadID, fiber.Map{
		"stage": leadModel.StageEnrolled,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, leadModel.StageEnrolled, body["data"].(map[string]interface{})["stage"])
}

func TestMalformedLeadIDIsNotFound(t *testing.T) {
	env := newLeadTestEnv(t)

	resp, body := env.do(t, "PUT", "/api/leads/not-a-uuid", fiber.Map{
		"parentName": "x",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Lead not found", body["message"])

	resp, body = env.do(t, "DELETE", "/api/leads/also-not-a-uuid", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Lead not found", body["message"])
}

func TestLeadListFiltersByStageAndPaginates(t *testing.T) {
	env := newLeadTestEnv(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, env.db.Create(&leadModel.LeadModel{
			CenterID:   env.centerID,
			ParentName: fmt.Sprintf("Parent %d", i),
			Stage:      leadModel.StageNew,
		}).Error)
	}
	require.NoError(t, env.db.Create(&leadModel.LeadModel{
		CenterID:   env.centerID,
		ParentName: "Lost Cause",
		Stage:      leadModel.StageLost,
	}).Error)

	resp, body := env.do(t, "GET", "/api/leads/?stage=NEW", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["data"].([]interface{}), 3)
	assert.Equal(t, float64(3), body["pagination"].(map[string]interface{})["total"])

	resp, body = env.do(t, "GET", "/api/leads/?stage=NEW&per_page=2", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["data"].([]interface{}), 2)
	assert.Equal(t, float64(2), body["pagination"].(map[string]interface{})["total_pages"])
}
