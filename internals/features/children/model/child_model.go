package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Attendance status values (same-day presence).
const (
	StatusPresent    = "PRESENT"
	StatusAbsent     = "ABSENT"
	StatusCheckedOut = "CHECKED_OUT"
)

// Enrollment status values (admissions lifecycle, independent of attendance).
const (
	EnrollmentEnrolled = "ENROLLED"
	EnrollmentWaitlist = "WAITLIST"
	EnrollmentPending  = "PENDING"
	EnrollmentArchived = "ARCHIVED"
)

// ChildModel carries two independent status fields: attendance status is a
// denormalized mirror of the attendance table, enrollment status is the
// admissions stage.
type ChildModel struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CenterID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"center_id"`
	ClassroomID      *uuid.UUID     `gorm:"type:uuid;index" json:"classroom_id,omitempty"`
	FirstName        string         `gorm:"size:80;not null" json:"first_name"`
	LastName         string         `gorm:"size:80;not null" json:"last_name"`
	DOB              *string        `gorm:"type:date" json:"dob,omitempty"`
	AvatarURL        *string        `gorm:"type:text" json:"avatar_url,omitempty"`
	Allergies        pq.StringArray `gorm:"type:text[]" json:"allergies"`
	Notes            *string        `gorm:"type:text" json:"notes,omitempty"`
	Status           string         `gorm:"type:varchar(20);not null;default:'ABSENT'" json:"status"`
	EnrollmentStatus string         `gorm:"type:varchar(20);not null;default:'PENDING'" json:"enrollment_status"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ChildModel) TableName() string {
	return "children"
}

func (m *ChildModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
