package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	domainRepo "github.com/celebigilfatih/omt/internal/domain/repository"
)

type txKey struct{}

// TxManager stores the active *gorm.DB transaction in the context so every
// repository call made with that context joins it.
type TxManager struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewTxManager(db *gorm.DB, logger *zap.Logger) *TxManager {
	return &TxManager{db: db, logger: logger}
}

// WithinTransaction commits when fn returns nil and rolls back otherwise.
// Nested calls reuse the outer transaction.
func (m *TxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}

	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
			m.logger.Debug("Transaction rolled back", zap.Error(err))
			return err
		}
		return nil
	})
}

// conn returns the transaction bound to ctx, or db scoped to ctx.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}

// translate maps gorm errors onto the store-neutral repository errors.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domainRepo.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errors.Join(domainRepo.ErrDuplicate, err)
	default:
		return err
	}
}

// Pinger checks that the database answers.
type Pinger struct {
	db *gorm.DB
}

func NewPinger(db *gorm.DB) *Pinger {
	return &Pinger{db: db}
}

func (p *Pinger) Ping(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

var _ domainRepo.TxManager = (*TxManager)(nil)
