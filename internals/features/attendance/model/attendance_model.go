package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttendanceModel: one row per check-in. A null CheckOutTime marks the open
// record; closing it is the check-out. At most one open row per child per
// day (partial unique index on Postgres).
type AttendanceModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ChildID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"child_id"`
	Date         time.Time  `gorm:"not null;index" json:"date"`
	CheckInTime  time.Time  `gorm:"not null" json:"check_in_time"`
	CheckOutTime *time.Time `json:"check_out_time"`
	CheckedInBy  *uuid.UUID `gorm:"type:uuid" json:"checked_in_by,omitempty"`
	CheckedOutBy *uuid.UUID `gorm:"type:uuid" json:"checked_out_by,omitempty"`
	SignatureURL *string    `gorm:"type:text" json:"signature_url,omitempty"`
	Notes        *string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (AttendanceModel) TableName() string {
	return "attendance"
}

// DateOnly normalizes a timestamp to its UTC calendar day, the key the
// one-open-record invariant is scoped by.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (m *AttendanceModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
