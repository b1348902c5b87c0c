package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/celebigilfatih/omt/internal/domain/entity"
	domainErrors "github.com/celebigilfatih/omt/internal/domain/errors"
)

type RecordPaymentInput struct {
	TeamID        string          `json:"teamId" validate:"required,max=36"`
	PaymentMethod string          `json:"paymentMethod" validate:"required,paymentmethod"`
	Amount        decimal.Decimal `json:"amount" validate:"gte=0"`
	Description   string          `json:"description" validate:"omitempty,max=2000"`
}

type UpdatePaymentInput struct {
	PaymentMethod string          `json:"paymentMethod" validate:"required,paymentmethod"`
	Amount        decimal.Decimal `json:"amount" validate:"gte=0"`
	Description   string          `json:"description" validate:"omitempty,max=2000"`
}

// PaymentService is the manual payment ledger.
type PaymentService struct {
	Deps
}

func NewPaymentService(deps Deps) *PaymentService {
	return &PaymentService{Deps: deps.withDefaults()}
}

// Record stores a payment for an existing team and returns it with the team snapshot.
func (s *PaymentService) Record(ctx context.Context, in RecordPaymentInput) (*entity.Payment, error) {
	in.TeamID = trim(in.TeamID)
	if violations := s.Validator.Check(in); len(violations) > 0 {
		return nil, domainErrors.NewValidationError(violations...)
	}

	var (
		team    *entity.Team
		payment *entity.Payment
	)
	// The team row stays locked until the payment is written, so a concurrent
	// team delete either sees the payment or runs first.
	err := s.Repos.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		team, err = s.Repos.Teams.GetForUpdate(ctx, in.TeamID)
		if err != nil {
			return storeError(err, "team", in.TeamID, "load team")
		}

		payment = &entity.Payment{
			TeamID:        team.ID,
			PaymentMethod: entity.PaymentMethod(in.PaymentMethod),
			Amount:        in.Amount.Round(2),
			Description:   trim(in.Description),
		}
		if err := s.Repos.Payments.Create(ctx, payment); err != nil {
			return domainErrors.NewInternalError("failed to record payment", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	payment.Team = team.Snapshot()

	s.Metrics.PaymentRecorded(payment.PaymentMethod, payment.Amount)
	s.publish(ctx, entity.EventPaymentRecorded, payment.ID, map[string]string{
		"teamId": team.ID,
		"amount": payment.Amount.StringFixed(2),
		"method": string(payment.PaymentMethod),
	})

	return payment, nil
}

// List returns payments newest first, optionally narrowed to one team and a
// free-text query over team name, coach, method and stage label.
func (s *PaymentService) List(ctx context.Context, filter entity.PaymentFilter) ([]*entity.Payment, error) {
	payments, err := s.Repos.Payments.List(ctx, trim(filter.TeamID))
	if err != nil {
		return nil, domainErrors.NewInternalError("failed to list payments", err)
	}

	query := strings.ToLower(trim(filter.Query))
	if query == "" {
		return payments, nil
	}

	out := make([]*entity.Payment, 0, len(payments))
	for _, p := range payments {
		if paymentMatches(p, query) {
			out = append(out, p)
		}
	}
	return out, nil
}

func paymentMatches(p *entity.Payment, query string) bool {
	if containsFold(string(p.PaymentMethod), query) || containsFold(p.PaymentMethod.Label(), query) {
		return true
	}
	if p.Team == nil {
		return false
	}
	return containsFold(p.Team.TeamName, query) ||
		containsFold(p.Team.CoachName, query) ||
		containsFold(p.Team.Stage.Label(), query)
}

func (s *PaymentService) Get(ctx context.Context, id string) (*entity.Payment, error) {
	payment, err := s.Repos.Payments.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "payment", id, "load payment")
	}
	return payment, nil
}

// Update replaces method, amount and description.
func (s *PaymentService) Update(ctx context.Context, id string, in UpdatePaymentInput) (*entity.Payment, error) {
	if violations := s.Validator.Check(in); len(violations) > 0 {
		return nil, domainErrors.NewValidationError(violations...)
	}

	payment, err := s.Repos.Payments.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "payment", id, "load payment")
	}

	payment.PaymentMethod = entity.PaymentMethod(in.PaymentMethod)
	payment.Amount = in.Amount.Round(2)
	payment.Description = trim(in.Description)

	if err := s.Repos.Payments.Update(ctx, payment); err != nil {
		return nil, storeError(err, "payment", id, "update payment")
	}

	s.Logger.Info("Payment updated", zap.String("payment_id", id))
	return payment, nil
}

func (s *PaymentService) Delete(ctx context.Context, id string) error {
	if err := s.Repos.Payments.Delete(ctx, id); err != nil {
		return storeError(err, "payment", id, "delete payment")
	}
	s.Logger.Info("Payment deleted", zap.String("payment_id", id))
	return nil
}

// SummarizeByTeam aggregates every payment per team, highest total first.
// It is recomputed on each call.
func (s *PaymentService) SummarizeByTeam(ctx context.Context) (*entity.PaymentSummary, error) {
	payments, err := s.Repos.Payments.List(ctx, "")
	if err != nil {
		return nil, domainErrors.NewInternalError("failed to list payments", err)
	}

	byTeam := make(map[string]*entity.TeamPaymentSummary)
	methods := make(map[string]map[entity.PaymentMethod]struct{})
	summary := &entity.PaymentSummary{GrandTotal: decimal.Zero}

	for _, p := range payments {
		row, ok := byTeam[p.TeamID]
		if !ok {
			team := p.Team
			if team == nil {
				team = &entity.TeamSnapshot{ID: p.TeamID}
			}
			row = &entity.TeamPaymentSummary{Team: team, TotalAmount: decimal.Zero}
			byTeam[p.TeamID] = row
			methods[p.TeamID] = make(map[entity.PaymentMethod]struct{})
		}
		row.TotalAmount = row.TotalAmount.Add(p.Amount)
		row.PaymentCount++
		methods[p.TeamID][p.PaymentMethod] = struct{}{}

		summary.GrandTotal = summary.GrandTotal.Add(p.Amount)
		summary.PaymentCount++
	}

	summary.Teams = make([]*entity.TeamPaymentSummary, 0, len(byTeam))
	for teamID, row := range byTeam {
		for m := range methods[teamID] {
			row.Methods = append(row.Methods, m)
		}
		sort.Slice(row.Methods, func(i, j int) bool { return row.Methods[i] < row.Methods[j] })
		summary.Teams = append(summary.Teams, row)
	}

	sort.Slice(summary.Teams, func(i, j int) bool {
		a, b := summary.Teams[i], summary.Teams[j]
		if c := a.TotalAmount.Cmp(b.TotalAmount); c != 0 {
			return c > 0
		}
		return a.Team.TeamName < b.Team.TeamName
	})

	return summary, nil
}
