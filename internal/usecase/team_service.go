package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/celebigilfatih/omt/internal/domain/entity"
	domainErrors "github.com/celebigilfatih/omt/internal/domain/errors"
	apperrors "github.com/celebigilfatih/omt/pkg/errors"
)

// UpdateTeamInput replaces every editable team field.
type UpdateTeamInput struct {
	TeamName           string          `json:"teamName" validate:"required,max=200"`
	CoachName          string          `json:"coachName" validate:"required,max=200"`
	PhoneNumber        string          `json:"phoneNumber" validate:"required,max=50"`
	Stage              string          `json:"stage" validate:"required,stage"`
	AgeGroups          []string        `json:"ageGroups" validate:"omitempty,dive,agegroup"`
	AgeGroupTeamCounts map[string]int  `json:"ageGroupTeamCounts" validate:"omitempty,dive,keys,agegroup,endkeys,min=1,max=10"`
	AthletePrice       decimal.Decimal `json:"athletePrice" validate:"gte=0"`
	ParentPrice        decimal.Decimal `json:"parentPrice" validate:"gte=0"`
	Description        string          `json:"description" validate:"omitempty,max=5000"`
	LogoURL            string          `json:"logoUrl" validate:"omitempty,max=500"`
}

// TeamService manages approved teams.
type TeamService struct {
	Deps
	defaultLimit int
	maxLimit     int
}

func NewTeamService(deps Deps, defaultLimit, maxLimit int) *TeamService {
	return &TeamService{Deps: deps.withDefaults(), defaultLimit: defaultLimit, maxLimit: maxLimit}
}

// List filters, sorts and paginates the team list. Default order is newest first.
func (s *TeamService) List(ctx context.Context, filter entity.TeamFilter) (*entity.PaginatedTeams, error) {
	if v := validateTeamFilter(&filter); len(v) > 0 {
		return nil, domainErrors.NewValidationError(v...)
	}
	filter.PaginationParams.Normalize(s.defaultLimit, s.maxLimit)

	teams, err := s.Repos.Teams.List(ctx)
	if err != nil {
		return nil, domainErrors.NewInternalError("failed to list teams", err)
	}

	matched := filterTeams(teams, filter)
	sortTeams(matched, filter.Sort, filter.Order)

	return &entity.PaginatedTeams{
		Data:       entity.Page(matched, filter.PaginationParams),
		Pagination: entity.NewPaginationMeta(filter.Page, filter.Limit, int64(len(matched))),
	}, nil
}

func (s *TeamService) Get(ctx context.Context, id string) (*entity.Team, error) {
	team, err := s.Repos.Teams.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "team", id, "load team")
	}
	return team, nil
}

// Update overwrites the team. Changes do not propagate to the source application.
func (s *TeamService) Update(ctx context.Context, id string, in UpdateTeamInput) (*entity.Team, error) {
	in.TeamName, in.CoachName, in.PhoneNumber = trim(in.TeamName), trim(in.CoachName), trim(in.PhoneNumber)

	violations := s.Validator.Check(in)
	groups, counts, ageViolations := ageGroupRules(in.AgeGroups, in.AgeGroupTeamCounts)
	violations = append(violations, ageViolations...)
	if len(violations) > 0 {
		return nil, domainErrors.NewValidationError(violations...)
	}

	team, err := s.Repos.Teams.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "team", id, "load team")
	}

	team.TeamName = in.TeamName
	team.CoachName = in.CoachName
	team.PhoneNumber = in.PhoneNumber
	team.Stage = entity.Stage(in.Stage)
	team.AgeGroups = groups
	team.AgeGroupTeamCounts = counts
	team.AthletePrice = in.AthletePrice.Round(2)
	team.ParentPrice = in.ParentPrice.Round(2)
	team.Description = trim(in.Description)
	team.LogoURL = trim(in.LogoURL)

	if err := s.Repos.Teams.Update(ctx, team); err != nil {
		return nil, storeError(err, "team", id, "update team")
	}

	s.Logger.Info("Team updated", zap.String("team_id", id))
	return team, nil
}

// DeleteTeamResult reports whether the source application was re-opened.
type DeleteTeamResult struct {
	Team          *entity.Team `json:"-"`
	Reverted      bool         `json:"reverted"`
	ApplicationID string       `json:"applicationId,omitempty"`
}

// Delete removes a team without payments and re-opens its APPROVED
// application, found by stored link or, for unlinked teams, by team, coach
// and phone.
func (s *TeamService) Delete(ctx context.Context, id string) (*DeleteTeamResult, error) {
	result := &DeleteTeamResult{}

	err := s.Repos.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		team, err := s.Repos.Teams.GetForUpdate(ctx, id)
		if err != nil {
			return storeError(err, "team", id, "load team")
		}
		result.Team = team

		payments, err := s.Repos.Payments.CountByTeam(ctx, id)
		if err != nil {
			return domainErrors.NewInternalError("failed to count team payments", err)
		}
		if payments > 0 {
			return domainErrors.ErrTeamHasPayments
		}

		if err := s.Repos.Teams.Delete(ctx, id); err != nil {
			return storeError(err, "team", id, "delete team")
		}

		application, err := s.findSourceApplication(ctx, team)
		if err != nil {
			return err
		}
		if application == nil {
			return nil
		}

		if err := s.Repos.Applications.UpdateStatus(ctx, application.ID, entity.ApplicationStatusPending); err != nil {
			return storeError(err, "application", application.ID, "re-open application")
		}
		result.Reverted = true
		result.ApplicationID = application.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Info("Team deleted",
		zap.String("team_id", id),
		zap.Bool("application_reverted", result.Reverted))
	s.publish(ctx, entity.EventTeamDeleted, id, map[string]string{"teamName": result.Team.TeamName})

	if result.Reverted {
		s.Logger.Info("Application re-opened",
			zap.String("application_id", result.ApplicationID),
			zap.String("team_id", id))
		s.Metrics.ApplicationReopened()
		s.publish(ctx, entity.EventApplicationReopened, result.ApplicationID, map[string]string{"teamId": id})
	}

	return result, nil
}

// findSourceApplication returns the APPROVED application a team came from, or
// nil. A stored link is authoritative; the identity match only applies to
// teams created without one.
func (s *TeamService) findSourceApplication(ctx context.Context, team *entity.Team) (*entity.TeamApplication, error) {
	if team.ApplicationID != nil && *team.ApplicationID != "" {
		application, err := s.Repos.Applications.GetByID(ctx, *team.ApplicationID)
		switch {
		case err == nil && application.Status == entity.ApplicationStatusApproved:
			return application, nil
		case err == nil || isNotFound(err):
			return nil, nil
		default:
			return nil, domainErrors.NewInternalError("failed to load source application", err)
		}
	}

	application, err := s.Repos.Applications.FindApprovedByIdentity(ctx, team.TeamName, team.CoachName, team.PhoneNumber)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, domainErrors.NewInternalError("failed to look up source application", err)
	}
	return application, nil
}

// Stats summarizes the team list.
func (s *TeamService) Stats(ctx context.Context) (*entity.TeamStats, error) {
	teams, err := s.Repos.Teams.List(ctx)
	if err != nil {
		return nil, domainErrors.NewInternalError("failed to list teams", err)
	}

	stats := &entity.TeamStats{ByStage: make(map[entity.Stage]int)}
	for _, stage := range entity.Stages() {
		stats.ByStage[stage] = 0
	}
	for _, team := range teams {
		stats.TotalTeams++
		stats.ByStage[team.Stage]++
		stats.AgeGroupCount += len(team.AgeGroups)
		stats.TotalSubTeams += team.AgeGroupTeamCounts.Total()
	}
	return stats, nil
}

func validateTeamFilter(filter *entity.TeamFilter) []apperrors.FieldError {
	var out []apperrors.FieldError
	filter.Query = strings.ToLower(trim(filter.Query))

	if filter.Stage != "" && !filter.Stage.Valid() {
		out = append(out, errField("stage", "must be one of STAGE_1, STAGE_2, STAGE_3, STAGE_4, FINAL"))
	}
	if filter.AgeGroup != "" && !filter.AgeGroup.Valid() {
		out = append(out, errField("age_group", "must be an age group between Y2012 and Y2022"))
	}
	if filter.Sort != "" && !filter.Sort.Valid() {
		out = append(out, errField("sort", "is not a sortable field"))
	}
	switch filter.Order {
	case "", entity.SortAsc, entity.SortDesc:
	default:
		out = append(out, errField("order", "must be asc or desc"))
	}
	return out
}

func filterTeams(teams []*entity.Team, filter entity.TeamFilter) []*entity.Team {
	out := make([]*entity.Team, 0, len(teams))
	for _, team := range teams {
		if filter.Stage != "" && team.Stage != filter.Stage {
			continue
		}
		if filter.AgeGroup != "" && !hasAgeGroup(team, filter.AgeGroup) {
			continue
		}
		if filter.Query != "" &&
			!containsFold(team.TeamName, filter.Query) &&
			!containsFold(team.CoachName, filter.Query) &&
			!containsFold(team.PhoneNumber, filter.Query) {
			continue
		}
		out = append(out, team)
	}
	return out
}

func hasAgeGroup(team *entity.Team, group entity.AgeGroup) bool {
	for _, g := range team.AgeGroups {
		if g == group {
			return true
		}
	}
	return false
}

// sortTeams orders in place. Without a field the repository order (newest
// first) is kept.
func sortTeams(teams []*entity.Team, field entity.TeamSortField, order entity.SortOrder) {
	if field == "" {
		if order == entity.SortAsc {
			for i, j := 0, len(teams)-1; i < j; i, j = i+1, j-1 {
				teams[i], teams[j] = teams[j], teams[i]
			}
		}
		return
	}

	compare := func(a, b *entity.Team) int {
		switch field {
		case entity.TeamSortTeamName:
			return strings.Compare(strings.ToLower(a.TeamName), strings.ToLower(b.TeamName))
		case entity.TeamSortCoachName:
			return strings.Compare(strings.ToLower(a.CoachName), strings.ToLower(b.CoachName))
		case entity.TeamSortPhoneNumber:
			return strings.Compare(a.PhoneNumber, b.PhoneNumber)
		case entity.TeamSortStage:
			return stageRank(a.Stage) - stageRank(b.Stage)
		case entity.TeamSortAthletePrice:
			return a.AthletePrice.Cmp(b.AthletePrice)
		case entity.TeamSortParentPrice:
			return a.ParentPrice.Cmp(b.ParentPrice)
		default:
			return a.CreatedAt.Compare(b.CreatedAt)
		}
	}

	sort.SliceStable(teams, func(i, j int) bool {
		c := compare(teams[i], teams[j])
		if order == entity.SortDesc {
			return c > 0
		}
		return c < 0
	})
}

func stageRank(stage entity.Stage) int {
	for i, s := range entity.Stages() {
		if s == stage {
			return i
		}
	}
	return len(entity.Stages())
}
