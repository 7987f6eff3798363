package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GuardianModel is a contact record tied to one child.
type GuardianModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ChildID   uuid.UUID `gorm:"type:uuid;not null;index" json:"child_id"`
	Name      string    `gorm:"size:160;not null" json:"name"`
	Relation  string    `gorm:"size:60;not null" json:"relation"`
	Phone     *string   `gorm:"size:32" json:"phone,omitempty"`
	Email     *string   `gorm:"size:255" json:"email,omitempty"`
	AvatarURL *string   `gorm:"type:text" json:"avatar_url,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (GuardianModel) TableName() string {
	return "guardians"
}

func (m *GuardianModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
