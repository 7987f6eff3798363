package dto

import (
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	model "nestflow_backend/internals/features/classrooms/model"
)

/* ===================== REQUESTS ===================== */

// Create: center_id comes from the token, never from the body.
type CreateClassroomRequest struct {
	Name     string   `json:"name" validate:"required,min=2,max=120"`
	Capacity int      `json:"capacity" validate:"gte=0"`
	AgeGroup *string  `json:"age_group" validate:"omitempty,max=40"`
	StaffIDs []string `json:"staff_ids" validate:"omitempty,dive,uuid"`
}

func (r CreateClassroomRequest) ToModel(centerID uuid.UUID) *model.ClassroomModel {
	return &model.ClassroomModel{
		CenterID: centerID,
		Name:     strings.TrimSpace(r.Name),
		Capacity: r.Capacity,
		AgeGroup: r.AgeGroup,
		StaffIDs: pq.StringArray(r.StaffIDs),
	}
}

type UpdateClassroomRequest struct {
	Name     *string  `json:"name" validate:"omitempty,min=2,max=120"`
	Capacity *int     `json:"capacity" validate:"omitempty,gte=0"`
	AgeGroup *string  `json:"age_group" validate:"omitempty,max=40"`
	StaffIDs []string `json:"staff_ids" validate:"omitempty,dive,uuid"`
}

// ApplyToModel applies only the fields that were sent.
func (r *UpdateClassroomRequest) ApplyToModel(m *model.ClassroomModel) {
	if r.Name != nil {
		m.Name = strings.TrimSpace(*r.Name)
	}
	if r.Capacity != nil {
		m.Capacity = *r.Capacity
	}
	if r.AgeGroup != nil {
		m.AgeGroup = r.AgeGroup
	}
	if r.StaffIDs != nil {
		m.StaffIDs = pq.StringArray(r.StaffIDs)
	}
}

/* ===================== RESPONSES ===================== */

type ClassroomResponse struct {
	ID       uuid.UUID `json:"id"`
	CenterID uuid.UUID `json:"center_id"`
	Name     string    `json:"name"`
	Capacity int       `json:"capacity"`
	AgeGroup *string   `json:"age_group,omitempty"`
	StaffIDs []string  `json:"staff_ids"`
	Enrolled int64     `json:"enrolled"`
}

func NewClassroomResponse(m *model.ClassroomModel, enrolled int64) *ClassroomResponse {
	if m == nil {
		return nil
	}
	return &ClassroomResponse{
		ID:       m.ID,
		CenterID: m.CenterID,
		Name:     m.Name,
		Capacity: m.Capacity,
		AgeGroup: m.AgeGroup,
		StaffIDs: []string(m.StaffIDs),
		Enrolled: enrolled,
	}
}
