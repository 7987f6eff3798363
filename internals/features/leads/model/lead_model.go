package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StageNew           = "NEW"
	StageTourScheduled = "TOUR_SCHEDULED"
	StageToured        = "TOURED"
	StageWaitlist      = "WAITLIST"
	StageEnrolled      = "ENROLLED"
	StageLost          = "LOST"
)

var AllStages = []string{
	StageNew,
	StageTourScheduled,
	StageToured,
	StageWaitlist,
	StageEnrolled,
	StageLost,
}

type LeadModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CenterID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"center_id"`
	ParentName string     `gorm:"size:100;not null" json:"parent_name"`
	Email      *string    `gorm:"size:255" json:"email,omitempty"`
	Phone      *string    `gorm:"size:30" json:"phone,omitempty"`
	ChildName  *string    `gorm:"size:100" json:"child_name,omitempty"`
	ChildAge   *int       `json:"child_age,omitempty"`
	Stage      string     `gorm:"type:varchar(20);not null;default:'NEW';index" json:"stage"`
	Source     *string    `gorm:"size:50" json:"source,omitempty"`
	TourDate   *time.Time `json:"tour_date,omitempty"`
	Notes      *string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (LeadModel) TableName() string {
	return "leads"
}

func (m *LeadModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
