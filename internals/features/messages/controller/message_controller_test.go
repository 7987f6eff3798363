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
	centerModel "nestflow_backend/internals/features/centers/model"
	messageModel "nestflow_backend/internals/features/messages/model"
	userModel "nestflow_backend/internals/features/users/user/model"
)

type messageTestEnv struct {
	app       *fiber.App
	db        *gorm.DB
	centerID  uuid.UUID
	current   *uuid.UUID
	teacherID uuid.UUID
	parentID  uuid.UUID
}

func newMessageTestEnv(t *testing.T) *messageTestEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	env := &messageTestEnv{
		db:        db,
		centerID:  uuid.New(),
		teacherID: uuid.New(),
		parentID:  uuid.New(),
	}
	env.current = &env.teacherID

	require.NoError(t, db.Create(&centerModel.CenterModel{ID: env.centerID, Name: "Test Center"}).Error)
	sarah, parent := "Sarah", "Pat"
	require.NoError(t, db.Create(&userModel.UserModel{
		ID: env.teacherID, CenterID: &env.centerID, Email: "teacher@test.local",
		PasswordHash: "x", Role: "TEACHER", FirstName: &sarah, IsActive: true,
	}).Error)
	require.NoError(t, db.Create(&userModel.UserModel{
		ID: env.parentID, CenterID: &env.centerID, Email: "parent@test.local",
		PasswordHash: "x", Role: "PARENT", FirstName: &parent, IsActive: true,
	}).Error)

	app := fiber.New()
	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Locals("user_id", env.current.String())
		c.Locals("center_id", env.centerID.String())
		c.Locals("userRole", "TEACHER")
		return c.Next()
	})

	h := NewMessageController(db)
	messages := api.Group("/messages")
	messages.Get("/", h.List)
	messages.Post("/", h.Send)
	messages.Patch("/:id/read", h.MarkRead)

	env.app = app
	return env
}

func (e *messageTestEnv) do(t *testing.T, method, path string, body interface{}) (*http.Response, map[string]interface{}) {
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

func TestSendAndListConversation(t *testing.T) {
	env := newMessageTestEnv(t)

	resp, body := env.do(t, "POST", "/api/messages/", fiber.Map{
		"recipientId": env.parentID.String(),
		"content":     "Emma had a great day!",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Sarah", data["senderName"])
	assert.Equal(t, false, data["isRead"])

	resp, body = env.do(t, "GET", "/api/messages/?conversationWith="+env.parentID.String(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["data"].([]interface{}), 1)

	// A conversation with someone else stays empty.
	resp, body = env.do(t, "GET", "/api/messages/?conversationWith="+uuid.NewString(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body["data"])
}

func TestListReturnsNewestFirstAndPaginates(t *testing.T) {
	env := newMessageTestEnv(t)

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, content := range []string{"oldest", "middle", "newest"} {
		require.NoError(t, env.db.Create(&messageModel.MessageModel{
			SenderID:    env.teacherID,
			RecipientID: env.parentID,
			Content:     content,
			CreatedAt:   base.Add(time.Duration(i) * time.Hour),
		}).Error)
	}

	resp, body := env.do(t, "GET", "/api/messages/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := body["data"].([]interface{})
	require.Len(t, data, 3)
	assert.Equal(t, "newest", data[0].(map[string]interface{})["content"])
	assert.Equal(t, "oldest", data[2].(map[string]interface{})["content"])

	resp, body = env.do(t, "GET", "/api/messages/?page=2&per_page=2", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data = body["data"].([]interface{})
	require.Len(t, data, 1)
	assert.Equal(t, "oldest", data[0].(map[string]interface{})["content"])

	pagination := body["pagination"].(map[string]interface{})
	assert.Equal(t, float64(3), pagination["total"])
	assert.Equal(t, float64(2), pagination["total_pages"])
	assert.Equal(t, true, pagination["has_prev"])
}

func TestSendRequiresRecipientAndContent(t *testing.T) {
	env := newMessageTestEnv(t)

	for _, payload := range []fiber.Map{
		{"content": "no recipient"},
		{"recipientId": env.parentID.String()},
		{},
	} {
		resp, body := env.do(t, "POST", "/api/messages/", payload)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "recipientId and content are required", body["message"])
	}
}

func TestSendRejectsForeignRecipient(t *testing.T) {
	env := newMessageTestEnv(t)

	otherCenter := uuid.New()
	require.NoError(t, env.db.Create(&centerModel.CenterModel{ID: otherCenter, Name: "Other"}).Error)
	outsider := uuid.New()
	require.NoError(t, env.db.Create(&userModel.UserModel{
		ID: outsider, CenterID: &otherCenter, Email: "outsider@test.local",
		PasswordHash: "x", Role: "PARENT", IsActive: true,
	}).Error)

	resp, body := env.do(t, "POST", "/api/messages/", fiber.Map{
		"recipientId": outsider.String(),
		"content":     "hi",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Recipient not found", body["message"])
}

func TestMarkReadIsRecipientOnly(t *testing.T) {
	env := newMessageTestEnv(t)

	resp, body := env.do(t, "POST", "/api/messages/", fiber.Map{
		"recipientId": env.parentID.String(),
		"content":     "please read",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	msgID := body["data"].(map[string]interface{})["id"].(string)

	// The sender cannot mark their own outgoing message read.
	resp, _ = env.do(t, "PATCH", "/api/messages/"+msgID+"/read", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// The recipient can.
	env.current = &env.parentID
	resp, body = env.do(t, "PATCH", "/api/messages/"+msgID+"/read", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["data"].(map[string]interface{})["isRead"])

	var m messageModel.MessageModel
	require.NoError(t, env.db.First(&m, "id = ?", msgID).Error)
	assert.True(t, m.IsRead)
}
