package repository

import (
	"context"
	"errors"

	"github.com/celebigilfatih/omt/internal/domain/entity"
)

var (
	// ErrNotFound is returned by Get/Update/Delete when no row matches.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint rejects a write.
	ErrDuplicate = errors.New("duplicate key")
)

// TxManager runs fn inside a store transaction. Repositories called with the
// ctx passed to fn join that transaction.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type ApplicationRepository interface {
	Create(ctx context.Context, application *entity.TeamApplication) error
	GetByID(ctx context.Context, id string) (*entity.TeamApplication, error)
	// List returns applications newest first.
	List(ctx context.Context, filter entity.ApplicationFilter) ([]*entity.TeamApplication, error)
	UpdateStatus(ctx context.Context, id string, status entity.ApplicationStatus) error
	// FindApprovedByIdentity returns the oldest APPROVED application with the
	// given team, coach and phone that no existing team links to, or ErrNotFound.
	FindApprovedByIdentity(ctx context.Context, teamName, coachName, phoneNumber string) (*entity.TeamApplication, error)
	DeleteAll(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type TeamRepository interface {
	Create(ctx context.Context, team *entity.Team) error
	GetByID(ctx context.Context, id string) (*entity.Team, error)
	// GetForUpdate loads the team and locks its row until the surrounding
	// transaction ends. Stores without row locks fall back to GetByID.
	GetForUpdate(ctx context.Context, id string) (*entity.Team, error)
	// List returns every team newest first.
	List(ctx context.Context) ([]*entity.Team, error)
	Update(ctx context.Context, team *entity.Team) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	// GetByID returns the payment with its team snapshot.
	GetByID(ctx context.Context, id string) (*entity.Payment, error)
	// List returns payments with team snapshots, newest first.
	List(ctx context.Context, teamID string) ([]*entity.Payment, error)
	Update(ctx context.Context, payment *entity.Payment) error
	Delete(ctx context.Context, id string) error
	CountByTeam(ctx context.Context, teamID string) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type AdminRepository interface {
	Create(ctx context.Context, admin *entity.Admin) error
	GetByID(ctx context.Context, id string) (*entity.Admin, error)
	GetByEmail(ctx context.Context, email string) (*entity.Admin, error)
	List(ctx context.Context) ([]*entity.Admin, error)
	Update(ctx context.Context, admin *entity.Admin) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type SettingsRepository interface {
	List(ctx context.Context) ([]*entity.Setting, error)
	Get(ctx context.Context, key string) (*entity.Setting, error)
	Upsert(ctx context.Context, setting *entity.Setting) error
	DeleteAll(ctx context.Context) (int64, error)
}

// EventPublisher delivers domain events after commit. Implementations must
// not block the caller on slow brokers for long.
type EventPublisher interface {
	Publish(ctx context.Context, event entity.Event) error
}

// Pinger reports store connectivity for health checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Repositories bundles every store the usecases need.
type Repositories struct {
	Applications ApplicationRepository
	Teams        TeamRepository
	Payments     PaymentRepository
	Admins       AdminRepository
	Settings     SettingsRepository
	Tx           TxManager
	Pinger       Pinger
}
