package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HealthProfileModel holds the per-child medical summary. One row per
// child; writes go through an upsert.
type HealthProfileModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ChildID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"child_id"`
	BloodType     *string   `gorm:"size:5" json:"blood_type,omitempty"`
	Conditions    *string   `gorm:"type:text" json:"conditions,omitempty"`
	DoctorName    *string   `gorm:"size:100" json:"doctor_name,omitempty"`
	DoctorPhone   *string   `gorm:"size:30" json:"doctor_phone,omitempty"`
	InsuranceInfo *string   `gorm:"type:text" json:"insurance_info,omitempty"`
	Notes         *string   `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (HealthProfileModel) TableName() string {
	return "health_profiles"
}

type ImmunizationModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ChildID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"child_id"`
	Name        string     `gorm:"size:100;not null" json:"name"`
	DateGiven   *time.Time `json:"date_given,omitempty"`
	NextDueDate *time.Time `json:"next_due_date,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (ImmunizationModel) TableName() string {
	return "immunizations"
}

type MedicationModel struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ChildID          uuid.UUID  `gorm:"type:uuid;not null;index" json:"child_id"`
	Name             string     `gorm:"size:100;not null" json:"name"`
	Dosage           *string    `gorm:"size:100" json:"dosage,omitempty"`
	Frequency        *string    `gorm:"size:100" json:"frequency,omitempty"`
	Instructions     *string    `gorm:"type:text" json:"instructions,omitempty"`
	LastAdministered *time.Time `json:"last_administered,omitempty"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (MedicationModel) TableName() string {
	return "medications"
}

func (m *HealthProfileModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (m *ImmunizationModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (m *MedicationModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
