package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celebigilfatih/omt/internal/domain/entity"
	domainErrors "github.com/celebigilfatih/omt/internal/domain/errors"
	domainRepo "github.com/celebigilfatih/omt/internal/domain/repository"
	"github.com/celebigilfatih/omt/internal/usecase"
	apperrors "github.com/celebigilfatih/omt/pkg/errors"
)

func TestPaymentService_Record(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := usecase.NewPaymentService(env.deps)
	team := newTeam(t, env, "Kartal")

	payment, err := svc.Record(ctx, usecase.RecordPaymentInput{
		TeamID:        team.ID,
		PaymentMethod: "IBAN",
		Amount:        decimal.RequireFromString("1250.75"),
		Description:   "first instalment",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, payment.ID)
	require.NotNil(t, payment.Team)
	assert.Equal(t, "Kartal", payment.Team.TeamName)

	t.Run("unknown team", func(t *testing.T) {
		_, err := svc.Record(ctx, usecase.RecordPaymentInput{
			TeamID:        "missing",
			PaymentMethod: "CASH",
			Amount:        decimal.RequireFromString("10"),
		})
		assert.True(t, domainErrors.IsNotFound(err))
	})

	t.Run("negative amount and unknown method", func(t *testing.T) {
		_, err := svc.Record(ctx, usecase.RecordPaymentInput{
			TeamID:        team.ID,
			PaymentMethod: "BITCOIN",
			Amount:        decimal.RequireFromString("-1"),
		})
		assert.True(t, domainErrors.IsValidation(err))
	})
}

// trackingTx marks when a transaction is open.
type trackingTx struct {
	domainRepo.TxManager
	open bool
}

func (tx *trackingTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return tx.TxManager.WithinTransaction(ctx, func(ctx context.Context) error {
		tx.open = true
		defer func() { tx.open = false }()
		return fn(ctx)
	})
}

// lockedTeams records whether the team row was locked inside a transaction.
type lockedTeams struct {
	domainRepo.TeamRepository
	tx             *trackingTx
	lockedInsideTx bool
}

func (r *lockedTeams) GetForUpdate(ctx context.Context, id string) (*entity.Team, error) {
	r.lockedInsideTx = r.tx.open
	return r.TeamRepository.GetForUpdate(ctx, id)
}

type failingPayments struct {
	domainRepo.PaymentRepository
}

func (failingPayments) Create(context.Context, *entity.Payment) error {
	return errors.New("disk I/O error")
}

func TestPaymentService_RecordLocksTeam(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	team := newTeam(t, env, "Martı")

	tx := &trackingTx{TxManager: env.repos.Tx}
	teams := &lockedTeams{TeamRepository: env.repos.Teams, tx: tx}
	repos := *env.repos
	repos.Tx = tx
	repos.Teams = teams
	deps := env.deps
	deps.Repos = &repos

	_, err := usecase.NewPaymentService(deps).Record(ctx, usecase.RecordPaymentInput{
		TeamID:        team.ID,
		PaymentMethod: "CASH",
		Amount:        decimal.RequireFromString("40"),
	})
	require.NoError(t, err)
	assert.True(t, teams.lockedInsideTx)

	repos.Payments = failingPayments{PaymentRepository: env.repos.Payments}
	_, err = usecase.NewPaymentService(deps).Record(ctx, usecase.RecordPaymentInput{
		TeamID:        team.ID,
		PaymentMethod: "CASH",
		Amount:        decimal.RequireFromString("60"),
	})
	assert.Equal(t, apperrors.ErrInternal, apperrors.CodeOf(err))

	count, err := env.repos.Payments.CountByTeam(ctx, team.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestPaymentService_SummarizeByTeam(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := usecase.NewPaymentService(env.deps)
	team := newTeam(t, env, "X")
	other := newTeam(t, env, "Z")

	for i := 0; i < 2; i++ {
		_, err := svc.Record(ctx, usecase.RecordPaymentInput{
			TeamID:        team.ID,
			PaymentMethod: "CASH",
			Amount:        decimal.RequireFromString("150.50"),
		})
		require.NoError(t, err)
	}
	_, err := svc.Record(ctx, usecase.RecordPaymentInput{
		TeamID:        other.ID,
		PaymentMethod: "POS",
		Amount:        decimal.RequireFromString("99.99"),
	})
	require.NoError(t, err)

	summary, err := svc.SummarizeByTeam(ctx)
	require.NoError(t, err)
	require.Len(t, summary.Teams, 2)

	top := summary.Teams[0]
	assert.Equal(t, team.ID, top.Team.ID)
	assert.Equal(t, "301.00", top.TotalAmount.StringFixed(2))
	assert.Equal(t, 2, top.PaymentCount)
	assert.Equal(t, []entity.PaymentMethod{entity.PaymentMethodCash}, top.Methods)

	assert.Equal(t, "400.99", summary.GrandTotal.StringFixed(2))
	assert.Equal(t, 3, summary.PaymentCount)

	t.Run("recomputed after changes", func(t *testing.T) {
		payments, err := svc.List(ctx, entity.PaymentFilter{TeamID: team.ID})
		require.NoError(t, err)
		require.Len(t, payments, 2)

		require.NoError(t, svc.Delete(ctx, payments[0].ID))
		_, err = svc.Update(ctx, payments[1].ID, usecase.UpdatePaymentInput{
			PaymentMethod: "HAND_DELIVERY",
			Amount:        decimal.RequireFromString("10"),
		})
		require.NoError(t, err)

		summary, err := svc.SummarizeByTeam(ctx)
		require.NoError(t, err)
		assert.Equal(t, other.ID, summary.Teams[0].Team.ID)
		assert.Equal(t, "10.00", summary.Teams[1].TotalAmount.StringFixed(2))
		assert.Equal(t, []entity.PaymentMethod{entity.PaymentMethodHandDelivery}, summary.Teams[1].Methods)
	})
}

func TestPaymentService_List(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := usecase.NewPaymentService(env.deps)
	kartal := newTeam(t, env, "Kartal")
	marti := newTeam(t, env, "Martı")

	record := func(teamID, method string) {
		_, err := svc.Record(ctx, usecase.RecordPaymentInput{TeamID: teamID, PaymentMethod: method, Amount: decimal.NewFromInt(5)})
		require.NoError(t, err)
	}
	record(kartal.ID, "CASH")
	record(marti.ID, "MAIL_ORDER")

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{name: "team name", query: "kartal", want: 1},
		{name: "coach name", query: "martı coach", want: 1},
		{name: "method code", query: "mail_order", want: 1},
		{name: "method label", query: "nakit", want: 1},
		{name: "stage label", query: "1. etap", want: 2},
		{name: "no match", query: "final", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payments, err := svc.List(ctx, entity.PaymentFilter{Query: tt.query})
			require.NoError(t, err)
			assert.Len(t, payments, tt.want)
		})
	}
}
