package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TeamApplication represents a submitted registration form
type TeamApplication struct {
	ID                 string                             `gorm:"primaryKey;type:varchar(36)"`
	TeamName           string                             `gorm:"size:200;not null;index:idx_team_applications_identity"`
	CoachName          string                             `gorm:"size:200;not null;index:idx_team_applications_identity"`
	PhoneNumber        string                             `gorm:"size:50;not null;index:idx_team_applications_identity"`
	Email              string                             `gorm:"size:255"`
	Website            string                             `gorm:"size:255"`
	Instagram          string                             `gorm:"size:255"`
	Twitter            string                             `gorm:"size:255"`
	Facebook           string                             `gorm:"size:255"`
	Stage              string                             `gorm:"size:20;not null"`
	AgeGroups          datatypes.JSONSlice[string]        `gorm:"not null"`
	AgeGroupTeamCounts datatypes.JSONType[map[string]int] `gorm:"not null"`
	AthletePrice       decimal.Decimal                    `gorm:"type:decimal(12,2);not null;default:0"`
	ParentPrice        decimal.Decimal                    `gorm:"type:decimal(12,2);not null;default:0"`
	Description        string                             `gorm:"type:text"`
	LogoURL            string                             `gorm:"column:logo_url;size:500"`
	Status             string                             `gorm:"size:20;not null;default:PENDING;index"`
	CreatedAt          time.Time                          `gorm:"index"`
	UpdatedAt          time.Time
}

// TableName specifies the table name for GORM
func (TeamApplication) TableName() string {
	return "team_applications"
}

func (a *TeamApplication) BeforeCreate(tx *gorm.DB) error {
	assignID(&a.ID)
	return nil
}
