package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ClassroomModel belongs to a center. The enrolled count is derived from
// children rows at read time and never stored here.
type ClassroomModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CenterID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"center_id"`
	Name      string         `gorm:"size:120;not null" json:"name"`
	Capacity  int            `gorm:"not null;default:0" json:"capacity"`
	AgeGroup  *string        `gorm:"size:40" json:"age_group,omitempty"`
	StaffIDs  pq.StringArray `gorm:"type:text[]" json:"staff_ids"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ClassroomModel) TableName() string {
	return "classrooms"
}

func (m *ClassroomModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
