package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type StaffMemberModel struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CenterID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"center_id"`
	UserID       *uuid.UUID     `gorm:"type:uuid;index" json:"user_id,omitempty"`
	FirstName    string         `gorm:"size:50;not null" json:"first_name"`
	LastName     string         `gorm:"size:50;not null" json:"last_name"`
	Title        string         `gorm:"size:100;not null" json:"title"`
	Email        *string        `gorm:"size:255" json:"email,omitempty"`
	Phone        *string        `gorm:"size:30" json:"phone,omitempty"`
	HireDate     *time.Time     `json:"hire_date,omitempty"`
	ClassroomIDs pq.StringArray `gorm:"type:text[]" json:"classroom_ids"`
	IsActive     bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (StaffMemberModel) TableName() string {
	return "staff_members"
}

func (m *StaffMemberModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
