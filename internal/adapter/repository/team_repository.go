package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/celebigilfatih/omt/internal/domain/entity"
	"github.com/celebigilfatih/omt/internal/domain/model"
	domainRepo "github.com/celebigilfatih/omt/internal/domain/repository"
)

type teamRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewTeamRepository creates a gorm-backed team store.
func NewTeamRepository(db *gorm.DB, logger *zap.Logger) domainRepo.TeamRepository {
	return &teamRepository{db: db, logger: logger}
}

func (r *teamRepository) Create(ctx context.Context, team *entity.Team) error {
	m := toTeamModel(team)
	if err := conn(ctx, r.db).Create(m).Error; err != nil {
		return fmt.Errorf("failed to create team: %w", translate(err))
	}

	team.ID = m.ID
	team.CreatedAt = m.CreatedAt
	team.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *teamRepository) GetByID(ctx context.Context, id string) (*entity.Team, error) {
	var m model.Team
	if err := conn(ctx, r.db).First(&m, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return toTeamEntity(&m), nil
}

func (r *teamRepository) GetForUpdate(ctx context.Context, id string) (*entity.Team, error) {
	var m model.Team
	err := conn(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).First(&m, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return toTeamEntity(&m), nil
}

func (r *teamRepository) List(ctx context.Context) ([]*entity.Team, error) {
	var rows []model.Team
	if err := conn(ctx, r.db).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}

	out := make([]*entity.Team, len(rows))
	for i := range rows {
		out[i] = toTeamEntity(&rows[i])
	}
	return out, nil
}

// Update overwrites every mutable column, including zero values.
func (r *teamRepository) Update(ctx context.Context, team *entity.Team) error {
	m := toTeamModel(team)
	m.UpdatedAt = r.db.NowFunc()
	result := conn(ctx, r.db).Model(&model.Team{}).
		Where("id = ?", team.ID).
		Select("team_name", "coach_name", "phone_number", "stage", "age_groups",
			"age_group_team_counts", "athlete_price", "parent_price", "description", "logo_url", "updated_at").
		Updates(m)
	if result.Error != nil {
		return fmt.Errorf("failed to update team: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainRepo.ErrNotFound
	}
	team.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *teamRepository) Delete(ctx context.Context, id string) error {
	result := conn(ctx, r.db).Delete(&model.Team{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete team: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainRepo.ErrNotFound
	}
	return nil
}

func (r *teamRepository) DeleteAll(ctx context.Context) (int64, error) {
	result := conn(ctx, r.db).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Team{})
	return result.RowsAffected, result.Error
}

func (r *teamRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := conn(ctx, r.db).Model(&model.Team{}).Count(&n).Error
	return n, err
}
