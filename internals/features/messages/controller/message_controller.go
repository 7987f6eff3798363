package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	messageDTO "nestflow_backend/internals/features/messages/dto"
	messageModel "nestflow_backend/internals/features/messages/model"
	userModel "nestflow_backend/internals/features/users/user/model"
	helper "nestflow_backend/internals/helpers"
	helperAuth "nestflow_backend/internals/helpers/auth"
)

type MessageController struct{ DB *gorm.DB }

func NewMessageController(db *gorm.DB) *MessageController {
	return &MessageController{DB: db}
}

var validateMessage = validator.New()

func (h *MessageController) senderName(senderID uuid.UUID) string {
	var u userModel.UserModel
	if err := h.DB.Select("first_name", "last_name").First(&u, "id = ?", senderID).Error; err != nil {
		return ""
	}
	return u.FullName()
}

// ===================== LIST =====================
// GET /api/messages?conversationWith=&page=&per_page=
// Returns messages the caller sent or received, newest first. A
// conversationWith id narrows to that two-party thread.
func (h *MessageController) List(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	p := helper.ResolvePaging(c, 50, 200)

	q := h.DB.Model(&messageModel.MessageModel{})
	if other := c.Query("conversationWith"); other != "" {
		q = q.Where(
			"(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userID, other, other, userID,
		)
	} else {
		q = q.Where("sender_id = ? OR recipient_id = ?", userID, userID)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	var messages []messageModel.MessageModel
	if err := q.Order("created_at DESC").Limit(p.Limit).Offset(p.Offset).Find(&messages).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	out := make([]*messageDTO.MessageResponse, 0, len(messages))
	for i := range messages {
		out = append(out, messageDTO.NewMessageResponse(&messages[i], h.senderName(messages[i].SenderID)))
	}
	return helper.JsonList(c, "OK", out, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// ===================== SEND =====================
// POST /api/messages
func (h *MessageController) Send(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	centerID, err := helperAuth.GetCenterIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req messageDTO.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.RecipientID == "" || req.Content == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "recipientId and content are required")
	}
	if err := validateMessage.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	// Recipients outside the caller's center look like they don't exist.
	var recipient userModel.UserModel
	if err := h.DB.Select("id").
		First(&recipient, "id = ? AND center_id = ?", req.RecipientID, centerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Recipient not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	m, err := req.ToModel(userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.DB.Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to send message")
	}

	return helper.JsonCreated(c, "Message sent", messageDTO.NewMessageResponse(m, h.senderName(userID)))
}

// ===================== MARK READ =====================
// PATCH /api/messages/:id/read
// Only the recipient can mark a message read. Anyone else gets 404.
func (h *MessageController) MarkRead(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var m messageModel.MessageModel
	if err := h.DB.First(&m, "id = ? AND recipient_id = ?", c.Params("id"), userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Message not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	if err := h.DB.Model(&m).Update("is_read", true).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update message")
	}
	m.IsRead = true

	return helper.JsonOK(c, "Message marked as read", messageDTO.NewMessageResponse(&m, h.senderName(m.SenderID)))
}
