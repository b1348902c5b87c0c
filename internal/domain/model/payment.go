package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment represents a manually recorded team payment
type Payment struct {
	ID            string          `gorm:"primaryKey;type:varchar(36)"`
	TeamID        string          `gorm:"type:varchar(36);not null;index"`
	PaymentMethod string          `gorm:"size:30;not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Description   string          `gorm:"type:text"`
	CreatedAt     time.Time       `gorm:"index"`
	UpdatedAt     time.Time

	// Relations
	Team *Team `gorm:"foreignKey:TeamID"`
}

// TableName specifies the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	assignID(&p.ID)
	return nil
}
