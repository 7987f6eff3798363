package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Activity types.
const (
	TypeCheckIn    = "CHECK_IN"
	TypeCheckOut   = "CHECK_OUT"
	TypePhoto      = "PHOTO"
	TypeMeal       = "MEAL"
	TypeNap        = "NAP"
	TypeIncident   = "INCIDENT"
	TypeNote       = "NOTE"
	TypeMedication = "MEDICATION"
)

// ActivityModel is an append-only event record: one child, one author,
// timestamp fixed at creation. Never updated or deleted in normal flow.
type ActivityModel struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ChildID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"child_id"`
	AuthorID    *uuid.UUID     `gorm:"type:uuid" json:"author_id,omitempty"`
	Type        string         `gorm:"type:varchar(20);not null" json:"type"`
	Title       string         `gorm:"size:200;not null" json:"title"`
	Description *string        `gorm:"type:text" json:"description,omitempty"`
	MediaURL    *string        `gorm:"type:text" json:"media_url,omitempty"`
	Metadata    datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
}

func (ActivityModel) TableName() string {
	return "activities"
}

func (m *ActivityModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
