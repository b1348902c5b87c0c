package repository

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/celebigilfatih/omt/internal/domain/entity"
	"github.com/celebigilfatih/omt/internal/domain/model"
	domainRepo "github.com/celebigilfatih/omt/internal/domain/repository"
)

type applicationRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewApplicationRepository creates a gorm-backed application store.
func NewApplicationRepository(db *gorm.DB, logger *zap.Logger) domainRepo.ApplicationRepository {
	return &applicationRepository{db: db, logger: logger}
}

func (r *applicationRepository) Create(ctx context.Context, application *entity.TeamApplication) error {
	m := toApplicationModel(application)
	if err := conn(ctx, r.db).Create(m).Error; err != nil {
		return fmt.Errorf("failed to create application: %w", translate(err))
	}

	application.ID = m.ID
	application.Status = entity.ApplicationStatus(m.Status)
	application.CreatedAt = m.CreatedAt
	application.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *applicationRepository) GetByID(ctx context.Context, id string) (*entity.TeamApplication, error) {
	var m model.TeamApplication
	if err := conn(ctx, r.db).First(&m, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return toApplicationEntity(&m), nil
}

func (r *applicationRepository) List(ctx context.Context, filter entity.ApplicationFilter) ([]*entity.TeamApplication, error) {
	query := conn(ctx, r.db).Model(&model.TeamApplication{})

	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(team_name) LIKE ? OR LOWER(coach_name) LIKE ?", pattern, pattern)
	}

	var rows []model.TeamApplication
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	out := make([]*entity.TeamApplication, len(rows))
	for i := range rows {
		out[i] = toApplicationEntity(&rows[i])
	}
	return out, nil
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, id string, status entity.ApplicationStatus) error {
	result := conn(ctx, r.db).Model(&model.TeamApplication{}).
		Where("id = ?", id).
		Update("status", string(status))
	if result.Error != nil {
		return fmt.Errorf("failed to update application status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainRepo.ErrNotFound
	}

	r.logger.Debug("Application status updated",
		zap.String("application_id", id),
		zap.String("status", string(status)),
	)
	return nil
}

func (r *applicationRepository) FindApprovedByIdentity(ctx context.Context, teamName, coachName, phoneNumber string) (*entity.TeamApplication, error) {
	var m model.TeamApplication
	err := conn(ctx, r.db).
		Where("team_name = ? AND coach_name = ? AND phone_number = ? AND status = ?",
			teamName, coachName, phoneNumber, string(entity.ApplicationStatusApproved)).
		Where("NOT EXISTS (SELECT 1 FROM teams WHERE teams.application_id = team_applications.id)").
		Order("created_at ASC").
		First(&m).Error
	if err != nil {
		return nil, translate(err)
	}
	return toApplicationEntity(&m), nil
}

func (r *applicationRepository) DeleteAll(ctx context.Context) (int64, error) {
	result := conn(ctx, r.db).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.TeamApplication{})
	return result.RowsAffected, result.Error
}

func (r *applicationRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := conn(ctx, r.db).Model(&model.TeamApplication{}).Count(&n).Error
	return n, err
}
