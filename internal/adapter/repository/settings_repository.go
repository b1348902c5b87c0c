package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/celebigilfatih/omt/internal/domain/entity"
	"github.com/celebigilfatih/omt/internal/domain/model"
	domainRepo "github.com/celebigilfatih/omt/internal/domain/repository"
)

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a gorm-backed key/value settings store.
func NewSettingsRepository(db *gorm.DB) domainRepo.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) List(ctx context.Context) ([]*entity.Setting, error) {
	var rows []model.Setting
	if err := conn(ctx, r.db).Order("key ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}

	out := make([]*entity.Setting, len(rows))
	for i, row := range rows {
		out[i] = &entity.Setting{Key: row.Key, Value: row.Value, UpdatedAt: row.UpdatedAt}
	}
	return out, nil
}

func (r *settingsRepository) Get(ctx context.Context, key string) (*entity.Setting, error) {
	var row model.Setting
	if err := conn(ctx, r.db).First(&row, "key = ?", key).Error; err != nil {
		return nil, translate(err)
	}
	return &entity.Setting{Key: row.Key, Value: row.Value, UpdatedAt: row.UpdatedAt}, nil
}

func (r *settingsRepository) Upsert(ctx context.Context, setting *entity.Setting) error {
	row := model.Setting{Key: setting.Key, Value: setting.Value, UpdatedAt: r.db.NowFunc()}
	err := conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to save setting: %w", err)
	}
	setting.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *settingsRepository) DeleteAll(ctx context.Context) (int64, error) {
	result := conn(ctx, r.db).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Setting{})
	return result.RowsAffected, result.Error
}
