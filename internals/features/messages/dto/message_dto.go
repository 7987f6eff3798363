package dto

import (
	"time"

	"github.com/google/uuid"

	"nestflow_backend/internals/features/messages/model"
)

// ===================== REQUEST DTO =====================

type SendMessageRequest struct {
	RecipientID string  `json:"recipientId" validate:"required,uuid"`
	Content     string  `json:"content" validate:"required"`
	ChildID     *string `json:"childId" validate:"omitempty,uuid"`
}

func (r *SendMessageRequest) ToModel(senderID uuid.UUID) (*model.MessageModel, error) {
	recipientID, err := uuid.Parse(r.RecipientID)
	if err != nil {
		return nil, err
	}
	m := &model.MessageModel{
		ID:          uuid.New(),
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     r.Content,
	}
	if r.ChildID != nil && *r.ChildID != "" {
		childID, err := uuid.Parse(*r.ChildID)
		if err != nil {
			return nil, err
		}
		m.ChildID = &childID
	}
	return m, nil
}

// ===================== RESPONSE DTO =====================

type MessageResponse struct {
	ID          uuid.UUID  `json:"id"`
	SenderID    uuid.UUID  `json:"senderId"`
	RecipientID uuid.UUID  `json:"recipientId"`
	ChildID     *uuid.UUID `json:"childId,omitempty"`
	Content     string     `json:"content"`
	IsRead      bool       `json:"isRead"`
	SenderName  string     `json:"senderName,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func NewMessageResponse(m *model.MessageModel, senderName string) *MessageResponse {
	return &MessageResponse{
		ID:          m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		ChildID:     m.ChildID,
		Content:     m.Content,
		IsRead:      m.IsRead,
		SenderName:  senderName,
		CreatedAt:   m.CreatedAt,
	}
}
