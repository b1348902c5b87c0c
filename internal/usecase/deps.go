package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/celebigilfatih/omt/internal/domain/entity"
	domainErrors "github.com/celebigilfatih/omt/internal/domain/errors"
	"github.com/celebigilfatih/omt/internal/domain/repository"
)

// Metrics receives domain counters. See infrastructure/metrics.
type Metrics interface {
	ApplicationSubmitted(stage entity.Stage)
	ApplicationDecided(status entity.ApplicationStatus)
	ApplicationReopened()
	PaymentRecorded(method entity.PaymentMethod, amount decimal.Decimal)
	LoginAttempt(success bool)
}

type nopMetrics struct{}

func (nopMetrics) ApplicationSubmitted(entity.Stage)                     {}
func (nopMetrics) ApplicationDecided(entity.ApplicationStatus)           {}
func (nopMetrics) ApplicationReopened()                                  {}
func (nopMetrics) PaymentRecorded(entity.PaymentMethod, decimal.Decimal) {}
func (nopMetrics) LoginAttempt(bool)                                     {}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, entity.Event) error { return nil }

// Deps are the collaborators shared by every service.
type Deps struct {
	Repos     *repository.Repositories
	Publisher repository.EventPublisher
	Metrics   Metrics
	Validator *Validator
	Clock     clockwork.Clock
	Logger    *zap.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Publisher == nil {
		d.Publisher = nopPublisher{}
	}
	if d.Metrics == nil {
		d.Metrics = nopMetrics{}
	}
	if d.Validator == nil {
		d.Validator = NewValidator()
	}
	if d.Clock == nil {
		d.Clock = clockwork.NewRealClock()
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	return d
}

const publishTimeout = 2 * time.Second

// publish emits an event after the unit of work committed. Failures are
// logged and never surfaced to the caller.
func (d Deps) publish(ctx context.Context, eventType entity.EventType, resourceID string, attrs map[string]string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	event := entity.Event{
		Type:       eventType,
		ResourceID: resourceID,
		Attributes: attrs,
		OccurredAt: d.Clock.Now().UTC(),
	}
	if err := d.Publisher.Publish(ctx, event); err != nil {
		d.Logger.Warn("Failed to publish event",
			zap.String("event_type", string(eventType)),
			zap.String("resource_id", resourceID),
			zap.Error(err))
	}
}

// storeError converts a repository failure into the domain taxonomy.
func storeError(err error, resource, id, op string) error {
	switch {
	case err == nil:
		return nil
	case isNotFound(err):
		return domainErrors.NewNotFoundError(resource, id)
	default:
		return domainErrors.NewInternalError("failed to "+op, err)
	}
}

func isNotFound(err error) bool {
	return err != nil && errors.Is(err, repository.ErrNotFound)
}
