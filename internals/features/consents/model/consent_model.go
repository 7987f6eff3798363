package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ConsentPending = "PENDING"
	ConsentSigned  = "SIGNED"
)

type ConsentTemplateModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CenterID   uuid.UUID `gorm:"type:uuid;not null;index" json:"center_id"`
	Title      string    `gorm:"size:200;not null" json:"title"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	IsRequired bool      `gorm:"not null;default:false" json:"is_required"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ConsentTemplateModel) TableName() string {
	return "consent_templates"
}

// SignedConsentFormModel is keyed by (child, template): signing again
// overwrites the previous signature instead of appending a new row.
type SignedConsentFormModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ChildID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_consent_child_template" json:"child_id"`
	TemplateID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_consent_child_template" json:"template_id"`
	Status       string     `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	SignedBy     *uuid.UUID `gorm:"type:uuid" json:"signed_by,omitempty"`
	SignedAt     *time.Time `json:"signed_at,omitempty"`
	SignatureURL *string    `gorm:"type:text" json:"signature_url,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SignedConsentFormModel) TableName() string {
	return "signed_consent_forms"
}

func (m *ConsentTemplateModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (m *SignedConsentFormModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
