package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	InvoicePending = "PENDING"
	InvoicePaid    = "PAID"
	InvoiceOverdue = "OVERDUE"
)

type InvoiceModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ChildID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"child_id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description *string    `gorm:"type:text" json:"description,omitempty"`
	Amount      float64    `gorm:"not null" json:"amount"`
	Status      string     `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	DueDate     time.Time  `gorm:"not null" json:"due_date"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
	// OrderID correlates the Midtrans transaction back to this invoice in
	// webhook notifications.
	OrderID   *string   `gorm:"size:100;uniqueIndex" json:"order_id,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (InvoiceModel) TableName() string {
	return "invoices"
}

func (m *InvoiceModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
