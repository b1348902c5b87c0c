package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/celebigilfatih/omt/internal/domain/entity"
	"github.com/celebigilfatih/omt/internal/domain/model"
	domainRepo "github.com/celebigilfatih/omt/internal/domain/repository"
)

type paymentRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewPaymentRepository creates a gorm-backed payment ledger.
func NewPaymentRepository(db *gorm.DB, logger *zap.Logger) domainRepo.PaymentRepository {
	return &paymentRepository{db: db, logger: logger}
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	m := toPaymentModel(payment)
	if err := conn(ctx, r.db).Omit("Team").Create(m).Error; err != nil {
		return fmt.Errorf("failed to create payment: %w", translate(err))
	}

	payment.ID = m.ID
	payment.CreatedAt = m.CreatedAt
	payment.UpdatedAt = m.UpdatedAt

	r.logger.Info("Payment recorded",
		zap.String("payment_id", m.ID),
		zap.String("team_id", m.TeamID),
		zap.String("amount", m.Amount.StringFixed(2)),
		zap.String("method", m.PaymentMethod),
	)
	return nil
}

func (r *paymentRepository) GetByID(ctx context.Context, id string) (*entity.Payment, error) {
	var m model.Payment
	if err := conn(ctx, r.db).Preload("Team").First(&m, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return toPaymentEntity(&m), nil
}

func (r *paymentRepository) List(ctx context.Context, teamID string) ([]*entity.Payment, error) {
	query := conn(ctx, r.db).Preload("Team")
	if teamID != "" {
		query = query.Where("team_id = ?", teamID)
	}

	var rows []model.Payment
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	out := make([]*entity.Payment, len(rows))
	for i := range rows {
		out[i] = toPaymentEntity(&rows[i])
	}
	return out, nil
}

func (r *paymentRepository) Update(ctx context.Context, payment *entity.Payment) error {
	m := toPaymentModel(payment)
	m.UpdatedAt = r.db.NowFunc()
	result := conn(ctx, r.db).Model(&model.Payment{}).
		Where("id = ?", payment.ID).
		Select("payment_method", "amount", "description", "updated_at").
		Updates(m)
	if result.Error != nil {
		return fmt.Errorf("failed to update payment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainRepo.ErrNotFound
	}
	payment.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *paymentRepository) Delete(ctx context.Context, id string) error {
	result := conn(ctx, r.db).Delete(&model.Payment{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete payment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainRepo.ErrNotFound
	}
	return nil
}

func (r *paymentRepository) CountByTeam(ctx context.Context, teamID string) (int64, error) {
	var n int64
	err := conn(ctx, r.db).Model(&model.Payment{}).Where("team_id = ?", teamID).Count(&n).Error
	return n, err
}

func (r *paymentRepository) DeleteAll(ctx context.Context) (int64, error) {
	result := conn(ctx, r.db).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Payment{})
	return result.RowsAffected, result.Error
}

func (r *paymentRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := conn(ctx, r.db).Model(&model.Payment{}).Count(&n).Error
	return n, err
}
