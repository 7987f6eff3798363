package dto

import (
	"time"

	"github.com/google/uuid"

	"nestflow_backend/internals/features/consents/model"
)

// ===================== REQUEST DTO =====================

type CreateTemplateRequest struct {
	Title      string `json:"title" validate:"required,max=200"`
	Content    string `json:"content" validate:"required"`
	IsRequired bool   `json:"isRequired"`
}

func (r *CreateTemplateRequest) ToModel(centerID uuid.UUID) *model.ConsentTemplateModel {
	return &model.ConsentTemplateModel{
		ID:         uuid.New(),
		CenterID:   centerID,
		Title:      r.Title,
		Content:    r.Content,
		IsRequired: r.IsRequired,
	}
}

type SignConsentRequest struct {
	ChildID      string  `json:"childId" validate:"required,uuid"`
	TemplateID   string  `json:"templateId" validate:"required,uuid"`
	SignatureURL *string `json:"signatureUrl"`
}

// ===================== RESPONSE DTO =====================

type TemplateResponse struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	IsRequired bool      `json:"isRequired"`
	CreatedAt  time.Time `json:"createdAt"`
}

func NewTemplateResponse(m *model.ConsentTemplateModel) *TemplateResponse {
	return &TemplateResponse{
		ID:         m.ID,
		Title:      m.Title,
		Content:    m.Content,
		IsRequired: m.IsRequired,
		CreatedAt:  m.CreatedAt,
	}
}

type SignedFormResponse struct {
	ID            uuid.UUID  `json:"id"`
	ChildID       uuid.UUID  `json:"childId"`
	TemplateID    uuid.UUID  `json:"templateId"`
	TemplateTitle string     `json:"templateTitle,omitempty"`
	Status        string     `json:"status"`
	SignedBy      *uuid.UUID `json:"signedBy,omitempty"`
	SignedAt      *time.Time `json:"signedAt,omitempty"`
	SignatureURL  *string    `json:"signatureUrl,omitempty"`
}

func NewSignedFormResponse(m *model.SignedConsentFormModel, templateTitle string) *SignedFormResponse {
	return &SignedFormResponse{
		ID:            m.ID,
		ChildID:       m.ChildID,
		TemplateID:    m.TemplateID,
		TemplateTitle: templateTitle,
		Status:        m.Status,
		SignedBy:      m.SignedBy,
		SignedAt:      m.SignedAt,
		SignatureURL:  m.SignatureURL,
	}
}
