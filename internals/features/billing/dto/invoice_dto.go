package dto

import (
	"time"

	"github.com/google/uuid"

	"nestflow_backend/internals/features/billing/model"
)

// ===================== REQUEST DTO =====================

type CreateInvoiceRequest struct {
	ChildID     string  `json:"childId" validate:"required,uuid"`
	Title       string  `json:"title" validate:"required,max=200"`
	Description *string `json:"description"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	DueDate     string  `json:"dueDate" validate:"required,datetime=2006-01-02"`
}

func (r *CreateInvoiceRequest) ToModel() (*model.InvoiceModel, error) {
	childID, err := uuid.Parse(r.ChildID)
	if err != nil {
		return nil, err
	}
	due, err := time.Parse("2006-01-02", r.DueDate)
	if err != nil {
		return nil, err
	}
	return &model.InvoiceModel{
		ID:          uuid.New(),
		ChildID:     childID,
		Title:       r.Title,
		Description: r.Description,
		Amount:      r.Amount,
		Status:      model.InvoicePending,
		DueDate:     due,
	}, nil
}

type UpdateInvoiceRequest struct {
	Title       *string  `json:"title" validate:"omitempty,max=200"`
	Description *string  `json:"description"`
	Amount      *float64 `json:"amount" validate:"omitempty,gt=0"`
	Status      *string  `json:"status" validate:"omitempty,oneof=PENDING PAID OVERDUE"`
	DueDate     *string  `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
}

func (r *UpdateInvoiceRequest) ApplyToModel(m *model.InvoiceModel) error {
	if r.Title != nil {
		m.Title = *r.Title
	}
	if r.Description != nil {
		m.Description = r.Description
	}
	if r.Amount != nil {
		m.Amount = *r.Amount
	}
	if r.Status != nil {
		m.Status = *r.Status
		if *r.Status == model.InvoicePaid && m.PaidAt == nil {
			now := time.Now()
			m.PaidAt = &now
		}
	}
	if r.DueDate != nil {
		due, err := time.Parse("2006-01-02", *r.DueDate)
		if err != nil {
			return err
		}
		m.DueDate = due
	}
	return nil
}

// ===================== RESPONSE DTO =====================

type InvoiceResponse struct {
	ID          uuid.UUID  `json:"id"`
	ChildID     uuid.UUID  `json:"childId"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Amount      float64    `json:"amount"`
	Status      string     `json:"status"`
	DueDate     string     `json:"dueDate"`
	PaidAt      *time.Time `json:"paidAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func NewInvoiceResponse(m *model.InvoiceModel) *InvoiceResponse {
	return &InvoiceResponse{
		ID:          m.ID,
		ChildID:     m.ChildID,
		Title:       m.Title,
		Description: m.Description,
		Amount:      m.Amount,
		Status:      m.Status,
		DueDate:     m.DueDate.Format("2006-01-02"),
		PaidAt:      m.PaidAt,
		CreatedAt:   m.CreatedAt,
	}
}

type PayInvoiceResponse struct {
	InvoiceID   uuid.UUID `json:"invoiceId"`
	SnapToken   string    `json:"snapToken"`
	RedirectURL string    `json:"redirectUrl"`
}
