package dto

import (
	"time"

	"github.com/google/uuid"

	"nestflow_backend/internals/features/leads/model"
)

// ===================== REQUEST DTO =====================

type CreateLeadRequest struct {
	ParentName string  `json:"parentName" validate:"required,max=100"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Phone      *string `json:"phone" validate:"omitempty,max=30"`
	ChildName  *string `json:"childName" validate:"omitempty,max=100"`
	ChildAge   *int    `json:"childAge" validate:"omitempty,gte=0,lte=12"`
	Source     *string `json:"source" validate:"omitempty,max=50"`
	Notes      *string `json:"notes"`
}

func (r *CreateLeadRequest) ToModel(centerID uuid.UUID) *model.LeadModel {
	return &model.LeadModel{
		ID:         uuid.New(),
		CenterID:   centerID,
		ParentName: r.ParentName,
		Email:      r.Email,
		Phone:      r.Phone,
		ChildName:  r.ChildName,
		ChildAge:   r.ChildAge,
		Stage:      model.StageNew,
		Source:     r.Source,
		Notes:      r.Notes,
	}
}

type UpdateLeadRequest struct {
	ParentName *string `json:"parentName" validate:"omitempty,max=100"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Phone      *string `json:"phone" validate:"omitempty,max=30"`
	ChildName  *string `json:"childName" validate:"omitempty,max=100"`
	ChildAge   *int    `json:"childAge" validate:"omitempty,gte=0,lte=12"`
	Stage      *string `json:"stage" validate:"omitempty,oneof=NEW TOUR_SCHEDULED TOURED WAITLIST ENROLLED LOST"`
	Source     *string `json:"source" validate:"omitempty,max=50"`
	TourDate   *string `json:"tourDate" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Notes      *string `json:"notes"`
}

func (r *UpdateLeadRequest) ApplyToModel(m *model.LeadModel) error {
	if r.ParentName != nil {
		m.ParentName = *r.ParentName
	}
	if r.Email != nil {
		m.Email = r.Email
	}
	if r.Phone != nil {
		m.Phone = r.Phone
	}
	if r.ChildName != nil {
		m.ChildName = r.ChildName
	}
	if r.ChildAge != nil {
		m.ChildAge = r.ChildAge
	}
	if r.Stage != nil {
		m.Stage = *r.Stage
	}
	if r.Source != nil {
		m.Source = r.Source
	}
	if r.TourDate != nil {
		t, err := time.Parse(time.RFC3339, *r.TourDate)
		if err != nil {
			return err
		}
		m.TourDate = &t
	}
	if r.Notes != nil {
		m.Notes = r.Notes
	}
	return nil
}

// ===================== RESPONSE DTO =====================

type LeadResponse struct {
	ID         uuid.UUID  `json:"id"`
	ParentName string     `json:"parentName"`
	Email      *string    `json:"email,omitempty"`
	Phone      *string    `json:"phone,omitempty"`
	ChildName  *string    `json:"childName,omitempty"`
	ChildAge   *int       `json:"childAge,omitempty"`
	Stage      string     `json:"stage"`
	Source     *string    `json:"source,omitempty"`
	TourDate   *time.Time `json:"tourDate,omitempty"`
	Notes      *string    `json:"notes,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

func NewLeadResponse(m *model.LeadModel) *LeadResponse {
	return &LeadResponse{
		ID:         m.ID,
		ParentName: m.ParentName,
		Email:      m.Email,
		Phone:      m.Phone,
		ChildName:  m.ChildName,
		ChildAge:   m.ChildAge,
		Stage:      m.Stage,
		Source:     m.Source,
		TourDate:   m.TourDate,
		Notes:      m.Notes,
		CreatedAt:  m.CreatedAt,
	}
}
