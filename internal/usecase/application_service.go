package usecase

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/celebigilfatih/omt/internal/domain/entity"
	domainErrors "github.com/celebigilfatih/omt/internal/domain/errors"
)

// SubmitApplicationInput is the public registration form.
type SubmitApplicationInput struct {
	TeamName           string          `json:"teamName" validate:"required,max=200"`
	CoachName          string          `json:"coachName" validate:"required,max=200"`
	PhoneNumber        string          `json:"phoneNumber" validate:"required,max=50"`
	Email              string          `json:"email" validate:"omitempty,email,max=255"`
	Website            string          `json:"website" validate:"omitempty,max=255"`
	Instagram          string          `json:"instagram" validate:"omitempty,max=255"`
	Twitter            string          `json:"twitter" validate:"omitempty,max=255"`
	Facebook           string          `json:"facebook" validate:"omitempty,max=255"`
	Stage              string          `json:"stage" validate:"required,stage"`
	AgeGroups          []string        `json:"ageGroups" validate:"required,min=1,dive,agegroup"`
	AgeGroupTeamCounts map[string]int  `json:"ageGroupTeamCounts" validate:"omitempty,dive,keys,agegroup,endkeys,min=1,max=10"`
	AthletePrice       decimal.Decimal `json:"athletePrice" validate:"gte=0"`
	ParentPrice        decimal.Decimal `json:"parentPrice" validate:"gte=0"`
	Description        string          `json:"description" validate:"omitempty,max=5000"`
	LogoURL            string          `json:"logoUrl" validate:"omitempty,max=500"`
}

// ApplicationService runs the application review workflow.
type ApplicationService struct {
	Deps
}

func NewApplicationService(deps Deps) *ApplicationService {
	return &ApplicationService{Deps: deps.withDefaults()}
}

// Submit validates the form and stores a PENDING application.
func (s *ApplicationService) Submit(ctx context.Context, in SubmitApplicationInput) (*entity.TeamApplication, error) {
	in.TeamName, in.CoachName, in.PhoneNumber = trim(in.TeamName), trim(in.CoachName), trim(in.PhoneNumber)
	in.Email = trim(in.Email)

	violations := s.Validator.Check(in)
	groups, counts, ageViolations := ageGroupRules(in.AgeGroups, in.AgeGroupTeamCounts)
	violations = append(violations, ageViolations...)
	if len(violations) > 0 {
		return nil, domainErrors.NewValidationError(violations...)
	}

	application := &entity.TeamApplication{
		TeamName:    in.TeamName,
		CoachName:   in.CoachName,
		PhoneNumber: in.PhoneNumber,
		Email:       in.Email,
		SocialLinks: entity.SocialLinks{
			Website:   trim(in.Website),
			Instagram: trim(in.Instagram),
			Twitter:   trim(in.Twitter),
			Facebook:  trim(in.Facebook),
		},
		Stage:              entity.Stage(in.Stage),
		AgeGroups:          groups,
		AgeGroupTeamCounts: counts,
		AthletePrice:       in.AthletePrice.Round(2),
		ParentPrice:        in.ParentPrice.Round(2),
		Description:        trim(in.Description),
		LogoURL:            trim(in.LogoURL),
		Status:             entity.ApplicationStatusPending,
	}

	if err := s.Repos.Applications.Create(ctx, application); err != nil {
		return nil, domainErrors.NewInternalError("failed to create application", err)
	}

	s.Logger.Info("Application submitted",
		zap.String("application_id", application.ID),
		zap.String("team_name", application.TeamName),
		zap.String("stage", string(application.Stage)))
	s.Metrics.ApplicationSubmitted(application.Stage)
	s.publish(ctx, entity.EventApplicationSubmitted, application.ID, map[string]string{
		"teamName": application.TeamName,
		"stage":    string(application.Stage),
	})

	return application, nil
}

// List returns applications newest first.
func (s *ApplicationService) List(ctx context.Context, filter entity.ApplicationFilter) ([]*entity.TeamApplication, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, domainErrors.NewValidationError(errField("status", "must be one of PENDING, APPROVED, REJECTED"))
	}
	filter.Query = trim(filter.Query)

	applications, err := s.Repos.Applications.List(ctx, filter)
	if err != nil {
		return nil, domainErrors.NewInternalError("failed to list applications", err)
	}
	return applications, nil
}

func (s *ApplicationService) Get(ctx context.Context, id string) (*entity.TeamApplication, error) {
	application, err := s.Repos.Applications.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "application", id, "load application")
	}
	return application, nil
}

// DecisionResult carries the updated application and, on approval, the new team.
type DecisionResult struct {
	Application *entity.TeamApplication
	Team        *entity.Team
}

// Decide approves or rejects a PENDING application. Approval materializes a
// Team in the same transaction as the status change.
func (s *ApplicationService) Decide(ctx context.Context, id string, action string) (*DecisionResult, error) {
	decision := entity.Decision(action)
	status, ok := decision.Status()
	if !ok {
		return nil, domainErrors.ErrInvalidAction
	}

	result := &DecisionResult{}
	err := s.Repos.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		application, err := s.Repos.Applications.GetByID(ctx, id)
		if err != nil {
			return storeError(err, "application", id, "load application")
		}
		if application.IsDecided() {
			return domainErrors.ErrApplicationAlreadyDecided
		}

		if err := s.Repos.Applications.UpdateStatus(ctx, id, status); err != nil {
			return storeError(err, "application", id, "update application status")
		}
		application.Status = status
		application.UpdatedAt = s.Clock.Now().UTC()
		result.Application = application

		if decision == entity.DecisionApprove {
			team := application.Materialize()
			if err := s.Repos.Teams.Create(ctx, team); err != nil {
				return domainErrors.NewInternalError("failed to create team", err)
			}
			result.Team = team
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields := []zap.Field{
		zap.String("application_id", id),
		zap.String("status", string(status)),
	}
	attrs := map[string]string{"status": string(status)}
	if result.Team != nil {
		fields = append(fields, zap.String("team_id", result.Team.ID))
		attrs["teamId"] = result.Team.ID
	}
	s.Logger.Info("Application decided", fields...)
	s.Metrics.ApplicationDecided(status)
	s.publish(ctx, entity.EventApplicationDecided, id, attrs)

	return result, nil
}
