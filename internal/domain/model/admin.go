package model

import (
	"time"

	"gorm.io/gorm"
)

// Admin represents an operator account
type Admin struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	Email     string `gorm:"size:255;not null;uniqueIndex"`
	Name      string `gorm:"size:200;not null"`
	Password  string `gorm:"size:255;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (Admin) TableName() string {
	return "admins"
}

func (a *Admin) BeforeCreate(tx *gorm.DB) error {
	assignID(&a.ID)
	return nil
}

// Setting is a free-form key/value row
type Setting struct {
	Key       string `gorm:"primaryKey;size:100"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (Setting) TableName() string {
	return "settings"
}
