package dto

import (
	"time"

	"github.com/google/uuid"

	"nestflow_backend/internals/features/attendance/model"
)

// ===================== REQUEST DTO =====================

type CheckInRequest struct {
	ChildID      string  `json:"childId" validate:"required,uuid"`
	SignatureURL *string `json:"signatureUrl"`
	Notes        *string `json:"notes"`
}

type CheckOutRequest struct {
	ChildID      string  `json:"childId" validate:"required,uuid"`
	SignatureURL *string `json:"signatureUrl"`
	Notes        *string `json:"notes"`
}

// ===================== RESPONSE DTO =====================

type AttendanceResponse struct {
	ID           uuid.UUID  `json:"id"`
	ChildID      uuid.UUID  `json:"childId"`
	Date         string     `json:"date"`
	CheckInTime  time.Time  `json:"checkInTime"`
	CheckOutTime *time.Time `json:"checkOutTime"`
	CheckedInBy  *uuid.UUID `json:"checkedInBy,omitempty"`
	CheckedOutBy *uuid.UUID `json:"checkedOutBy,omitempty"`
	SignatureURL *string    `json:"signatureUrl,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
}

func NewAttendanceResponse(m model.AttendanceModel) AttendanceResponse {
	return AttendanceResponse{
		ID:           m.ID,
		ChildID:      m.ChildID,
		Date:         m.Date.Format("2006-01-02"),
		CheckInTime:  m.CheckInTime,
		CheckOutTime: m.CheckOutTime,
		CheckedInBy:  m.CheckedInBy,
		CheckedOutBy: m.CheckedOutBy,
		SignatureURL: m.SignatureURL,
		Notes:        m.Notes,
	}
}

func NewAttendanceResponses(ms []model.AttendanceModel) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, NewAttendanceResponse(m))
	}
	return out
}
