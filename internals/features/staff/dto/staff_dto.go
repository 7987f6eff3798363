package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"nestflow_backend/internals/features/staff/model"
)

// ===================== REQUEST DTO =====================

type CreateStaffRequest struct {
	FirstName    string   `json:"firstName" validate:"required,max=50"`
	LastName     string   `json:"lastName" validate:"required,max=50"`
	Title        string   `json:"title" validate:"required,max=100"`
	Email        *string  `json:"email" validate:"omitempty,email"`
	Phone        *string  `json:"phone" validate:"omitempty,max=30"`
	HireDate     *string  `json:"hireDate" validate:"omitempty,datetime=2006-01-02"`
	ClassroomIDs []string `json:"classroomIds" validate:"omitempty,dive,uuid"`
}

func (r *CreateStaffRequest) ToModel(centerID uuid.UUID) (*model.StaffMemberModel, error) {
	m := &model.StaffMemberModel{
		ID:           uuid.New(),
		CenterID:     centerID,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Title:        r.Title,
		Email:        r.Email,
		Phone:        r.Phone,
		ClassroomIDs: pq.StringArray(r.ClassroomIDs),
		IsActive:     true,
	}
	if r.HireDate != nil {
		t, err := time.Parse("2006-01-02", *r.HireDate)
		if err != nil {
			return nil, err
		}
		m.HireDate = &t
	}
	return m, nil
}

type UpdateStaffRequest struct {
	FirstName    *string   `json:"firstName" validate:"omitempty,max=50"`
	LastName     *string   `json:"lastName" validate:"omitempty,max=50"`
	Title        *string   `json:"title" validate:"omitempty,max=100"`
	Email        *string   `json:"email" validate:"omitempty,email"`
	Phone        *string   `json:"phone" validate:"omitempty,max=30"`
	HireDate     *string   `json:"hireDate" validate:"omitempty,datetime=2006-01-02"`
	ClassroomIDs *[]string `json:"classroomIds" validate:"omitempty,dive,uuid"`
	IsActive     *bool     `json:"isActive"`
}

func (r *UpdateStaffRequest) ApplyToModel(m *model.StaffMemberModel) error {
	if r.FirstName != nil {
		m.FirstName = *r.FirstName
	}
	if r.LastName != nil {
		m.LastName = *r.LastName
	}
	if r.Title != nil {
		m.Title = *r.Title
	}
	if r.Email != nil {
		m.Email = r.Email
	}
	if r.Phone != nil {
		m.Phone = r.Phone
	}
	if r.HireDate != nil {
		t, err := time.Parse("2006-01-02", *r.HireDate)
		if err != nil {
			return err
		}
		m.HireDate = &t
	}
	if r.ClassroomIDs != nil {
		m.ClassroomIDs = pq.StringArray(*r.ClassroomIDs)
	}
	if r.IsActive != nil {
		m.IsActive = *r.IsActive
	}
	return nil
}

// ===================== RESPONSE DTO =====================

type StaffResponse struct {
	ID           uuid.UUID  `json:"id"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Title        string     `json:"title"`
	Email        *string    `json:"email,omitempty"`
	Phone        *string    `json:"phone,omitempty"`
	HireDate     *time.Time `json:"hireDate,omitempty"`
	ClassroomIDs []string   `json:"classroomIds"`
	IsActive     bool       `json:"isActive"`
}

func NewStaffResponse(m *model.StaffMemberModel) *StaffResponse {
	ids := []string(m.ClassroomIDs)
	if ids == nil {
		ids = []string{}
	}
	return &StaffResponse{
		ID:           m.ID,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Title:        m.Title,
		Email:        m.Email,
		Phone:        m.Phone,
		HireDate:     m.HireDate,
		ClassroomIDs: ids,
		IsActive:     m.IsActive,
	}
}
