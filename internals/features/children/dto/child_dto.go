package dto

import (
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	model "nestflow_backend/internals/features/children/model"
)

/* ===================== REQUESTS ===================== */

// Create: center_id comes from the token, never from the body.
type CreateChildRequest struct {
	FirstName        string     `json:"first_name" validate:"required,min=1,max=80"`
	LastName         string     `json:"last_name" validate:"required,min=1,max=80"`
	DOB              *string    `json:"dob" validate:"omitempty,datetime=2006-01-02"`
	ClassroomID      *uuid.UUID `json:"classroom_id" validate:"omitempty"`
	AvatarURL        *string    `json:"avatar_url" validate:"omitempty,max=2048"`
	Allergies        []string   `json:"allergies" validate:"omitempty,dive,max=120"`
	Notes            *string    `json:"notes" validate:"omitempty"`
	EnrollmentStatus *string    `json:"enrollment_status" validate:"omitempty,oneof=ENROLLED WAITLIST PENDING ARCHIVED"`
}

func (r CreateChildRequest) ToModel(centerID uuid.UUID) *model.ChildModel {
	m := &model.ChildModel{
		CenterID:         centerID,
		ClassroomID:      r.ClassroomID,
		FirstName:        strings.TrimSpace(r.FirstName),
		LastName:         strings.TrimSpace(r.LastName),
		DOB:              r.DOB,
		AvatarURL:        r.AvatarURL,
		Allergies:        pq.StringArray(r.Allergies),
		Notes:            r.Notes,
		Status:           model.StatusAbsent,
		EnrollmentStatus: model.EnrollmentPending,
	}
	if r.EnrollmentStatus != nil {
		m.EnrollmentStatus = *r.EnrollmentStatus
	}
	return m
}

// Update: everything optional (partial update).
type UpdateChildRequest struct {
	FirstName        *string    `json:"first_name" validate:"omitempty,min=1,max=80"`
	LastName         *string    `json:"last_name" validate:"omitempty,min=1,max=80"`
	DOB              *string    `json:"dob" validate:"omitempty,datetime=2006-01-02"`
	ClassroomID      *uuid.UUID `json:"classroom_id" validate:"omitempty"`
	AvatarURL        *string    `json:"avatar_url" validate:"omitempty,max=2048"`
	Allergies        []string   `json:"allergies" validate:"omitempty,dive,max=120"`
	Notes            *string    `json:"notes" validate:"omitempty"`
	Status           *string    `json:"status" validate:"omitempty,oneof=PRESENT ABSENT CHECKED_OUT"`
	EnrollmentStatus *string    `json:"enrollment_status" validate:"omitempty,oneof=ENROLLED WAITLIST PENDING ARCHIVED"`
}

// ApplyToModel applies only the fields that were sent.
func (r *UpdateChildRequest) ApplyToModel(m *model.ChildModel) {
	if r.FirstName != nil {
		m.FirstName = strings.TrimSpace(*r.FirstName)
	}
	if r.LastName != nil {
		m.LastName = strings.TrimSpace(*r.LastName)
	}
	if r.DOB != nil {
		m.DOB = r.DOB
	}
	if r.ClassroomID != nil {
		m.ClassroomID = r.ClassroomID
	}
	if r.AvatarURL != nil {
		m.AvatarURL = r.AvatarURL
	}
	if r.Allergies != nil {
		m.Allergies = pq.StringArray(r.Allergies)
	}
	if r.Notes != nil {
		m.Notes = r.Notes
	}
	if r.Status != nil {
		m.Status = *r.Status
	}
	if r.EnrollmentStatus != nil {
		m.EnrollmentStatus = *r.EnrollmentStatus
	}
}

/* ===================== RESPONSES ===================== */

type ChildResponse struct {
	ID               uuid.UUID  `json:"id"`
	CenterID         uuid.UUID  `json:"center_id"`
	ClassroomID      *uuid.UUID `json:"classroom_id,omitempty"`
	ClassroomName    *string    `json:"classroom_name,omitempty"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	DOB              *string    `json:"dob,omitempty"`
	AvatarURL        *string    `json:"avatar_url,omitempty"`
	Allergies        []string   `json:"allergies"`
	Notes            *string    `json:"notes,omitempty"`
	Status           string     `json:"status"`
	EnrollmentStatus string     `json:"enrollment_status"`
	DisplayStatus    string     `json:"display_status"`
}

// DisplayStatusFor derives the label clients show: a non-enrolled child is
// labeled by its admissions stage regardless of the attendance flag.
func DisplayStatusFor(m *model.ChildModel) string {
	switch m.EnrollmentStatus {
	case model.EnrollmentWaitlist:
		return "On Waitlist"
	case model.EnrollmentPending:
		return "Pending Enrollment"
	case model.EnrollmentArchived:
		return "Archived"
	}
	switch m.Status {
	case model.StatusPresent:
		return "Present"
	case model.StatusCheckedOut:
		return "Checked Out"
	default:
		return "Absent"
	}
}

func NewChildResponse(m *model.ChildModel, classroomName *string) *ChildResponse {
	if m == nil {
		return nil
	}
	allergies := []string(m.Allergies)
	if allergies == nil {
		allergies = []string{}
	}
	return &ChildResponse{
		ID:               m.ID,
		CenterID:         m.CenterID,
		ClassroomID:      m.ClassroomID,
		ClassroomName:    classroomName,
		FirstName:        m.FirstName,
		LastName:         m.LastName,
		DOB:              m.DOB,
		AvatarURL:        m.AvatarURL,
		Allergies:        allergies,
		Notes:            m.Notes,
		Status:           m.Status,
		EnrollmentStatus: m.EnrollmentStatus,
		DisplayStatus:    DisplayStatusFor(m),
	}
}
