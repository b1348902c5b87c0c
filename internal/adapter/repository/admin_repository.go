package repository

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/celebigilfatih/omt/internal/domain/entity"
	"github.com/celebigilfatih/omt/internal/domain/model"
	domainRepo "github.com/celebigilfatih/omt/internal/domain/repository"
)

type adminRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewAdminRepository creates a gorm-backed admin store.
func NewAdminRepository(db *gorm.DB, logger *zap.Logger) domainRepo.AdminRepository {
	return &adminRepository{db: db, logger: logger}
}

func (r *adminRepository) Create(ctx context.Context, admin *entity.Admin) error {
	m := toAdminModel(admin)
	if err := conn(ctx, r.db).Create(m).Error; err != nil {
		return fmt.Errorf("failed to create admin: %w", translate(err))
	}

	admin.ID = m.ID
	admin.CreatedAt = m.CreatedAt
	admin.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *adminRepository) GetByID(ctx context.Context, id string) (*entity.Admin, error) {
	var m model.Admin
	if err := conn(ctx, r.db).First(&m, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return toAdminEntity(&m), nil
}

// GetByEmail matches case-insensitively.
func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*entity.Admin, error) {
	var m model.Admin
	err := conn(ctx, r.db).Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).First(&m).Error
	if err != nil {
		return nil, translate(err)
	}
	return toAdminEntity(&m), nil
}

func (r *adminRepository) List(ctx context.Context) ([]*entity.Admin, error) {
	var rows []model.Admin
	if err := conn(ctx, r.db).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}

	out := make([]*entity.Admin, len(rows))
	for i := range rows {
		out[i] = toAdminEntity(&rows[i])
	}
	return out, nil
}

func (r *adminRepository) Update(ctx context.Context, admin *entity.Admin) error {
	m := toAdminModel(admin)
	m.UpdatedAt = r.db.NowFunc()
	result := conn(ctx, r.db).Model(&model.Admin{}).
		Where("id = ?", admin.ID).
		Select("email", "name", "password", "updated_at").
		Updates(m)
	if result.Error != nil {
		return fmt.Errorf("failed to update admin: %w", translate(result.Error))
	}
	if result.RowsAffected == 0 {
		return domainRepo.ErrNotFound
	}
	admin.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *adminRepository) Delete(ctx context.Context, id string) error {
	result := conn(ctx, r.db).Delete(&model.Admin{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete admin: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainRepo.ErrNotFound
	}
	return nil
}

// Count locks the admin rows on databases that support it, so a concurrent
// delete inside another transaction cannot remove the last admin.
func (r *adminRepository) Count(ctx context.Context) (int64, error) {
	db := conn(ctx, r.db)
	if db.Dialector.Name() == "postgres" {
		var ids []string
		if err := db.Model(&model.Admin{}).Clauses(clause.Locking{Strength: "UPDATE"}).Pluck("id", &ids).Error; err != nil {
			return 0, err
		}
		return int64(len(ids)), nil
	}

	var n int64
	err := db.Model(&model.Admin{}).Count(&n).Error
	return n, err
}
