package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Team represents an approved participant
type Team struct {
	ID                 string                             `gorm:"primaryKey;type:varchar(36)"`
	TeamName           string                             `gorm:"size:200;not null;index"`
	CoachName          string                             `gorm:"size:200;not null"`
	PhoneNumber        string                             `gorm:"size:50;not null"`
	Stage              string                             `gorm:"size:20;not null;index"`
	AgeGroups          datatypes.JSONSlice[string]        `gorm:"not null"`
	AgeGroupTeamCounts datatypes.JSONType[map[string]int] `gorm:"not null"`
	AthletePrice       decimal.Decimal                    `gorm:"type:decimal(12,2);not null;default:0"`
	ParentPrice        decimal.Decimal                    `gorm:"type:decimal(12,2);not null;default:0"`
	Description        string                             `gorm:"type:text"`
	LogoURL            string                             `gorm:"column:logo_url;size:500"`
	ApplicationID      *string                            `gorm:"type:varchar(36);index"`
	CreatedAt          time.Time                          `gorm:"index"`
	UpdatedAt          time.Time
}

// TableName specifies the table name for GORM
func (Team) TableName() string {
	return "teams"
}

func (t *Team) BeforeCreate(tx *gorm.DB) error {
	assignID(&t.ID)
	return nil
}
