package repository

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	domainRepo "github.com/celebigilfatih/omt/internal/domain/repository"
)

// NewRepositories wires every gorm repository to one database handle.
func NewRepositories(db *gorm.DB, logger *zap.Logger) *domainRepo.Repositories {
	return &domainRepo.Repositories{
		Applications: NewApplicationRepository(db, logger),
		Teams:        NewTeamRepository(db, logger),
		Payments:     NewPaymentRepository(db, logger),
		Admins:       NewAdminRepository(db, logger),
		Settings:     NewSettingsRepository(db),
		Tx:           NewTxManager(db, logger),
		Pinger:       NewPinger(db),
	}
}
