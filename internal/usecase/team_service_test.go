package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celebigilfatih/omt/internal/domain/entity"
	domainErrors "github.com/celebigilfatih/omt/internal/domain/errors"
	"github.com/celebigilfatih/omt/internal/usecase"
)

func approvedTeam(t *testing.T, env *testEnv) (*entity.TeamApplication, *entity.Team) {
	t.Helper()
	apps := usecase.NewApplicationService(env.deps)

	app, err := apps.Submit(context.Background(), validApplication())
	require.NoError(t, err)
	result, err := apps.Decide(context.Background(), app.ID, "approve")
	require.NoError(t, err)
	return result.Application, result.Team
}

func TestTeamService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("reverts the linked application to pending", func(t *testing.T) {
		env := newTestEnv(t)
		svc := usecase.NewTeamService(env.deps, 10, 100)
		app, team := approvedTeam(t, env)

		result, err := svc.Delete(ctx, team.ID)
		require.NoError(t, err)
		assert.True(t, result.Reverted)
		assert.Equal(t, app.ID, result.ApplicationID)

		stored, err := env.repos.Applications.GetByID(ctx, app.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.ApplicationStatusPending, stored.Status)

		_, err = svc.Get(ctx, team.ID)
		assert.True(t, domainErrors.IsNotFound(err))
	})

	t.Run("re-opened application can be approved again", func(t *testing.T) {
		env := newTestEnv(t)
		svc := usecase.NewTeamService(env.deps, 10, 100)
		app, team := approvedTeam(t, env)

		_, err := svc.Delete(ctx, team.ID)
		require.NoError(t, err)

		result, err := usecase.NewApplicationService(env.deps).Decide(ctx, app.ID, "approve")
		require.NoError(t, err)
		assert.NotNil(t, result.Team)
	})

	t.Run("falls back to name coach and phone match", func(t *testing.T) {
		env := newTestEnv(t)
		svc := usecase.NewTeamService(env.deps, 10, 100)
		app, team := approvedTeam(t, env)
		require.NoError(t, env.repos.Teams.Delete(ctx, team.ID))

		// a team created before the stored link existed
		unlinked := &entity.Team{
			TeamName:    team.TeamName,
			CoachName:   team.CoachName,
			PhoneNumber: team.PhoneNumber,
			Stage:       team.Stage,
		}
		require.NoError(t, env.repos.Teams.Create(ctx, unlinked))

		result, err := svc.Delete(ctx, unlinked.ID)
		require.NoError(t, err)
		assert.True(t, result.Reverted)
		assert.Equal(t, app.ID, result.ApplicationID)
	})

	t.Run("identity match skips applications whose team still exists", func(t *testing.T) {
		env := newTestEnv(t)
		svc := usecase.NewTeamService(env.deps, 10, 100)
		first, firstTeam := approvedTeam(t, env)
		second, secondTeam := approvedTeam(t, env)

		unlinked := &entity.Team{
			TeamName:    firstTeam.TeamName,
			CoachName:   firstTeam.CoachName,
			PhoneNumber: firstTeam.PhoneNumber,
			Stage:       firstTeam.Stage,
		}
		require.NoError(t, env.repos.Teams.Create(ctx, unlinked))

		result, err := svc.Delete(ctx, unlinked.ID)
		require.NoError(t, err)
		assert.False(t, result.Reverted)

		result, err = svc.Delete(ctx, firstTeam.ID)
		require.NoError(t, err)
		assert.True(t, result.Reverted)
		assert.Equal(t, first.ID, result.ApplicationID)

		stored, err := env.repos.Applications.GetByID(ctx, second.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.ApplicationStatusApproved, stored.Status)
		_, err = svc.Get(ctx, secondTeam.ID)
		assert.NoError(t, err)
	})

	t.Run("stored link is never replaced by an identity match", func(t *testing.T) {
		env := newTestEnv(t)
		svc := usecase.NewTeamService(env.deps, 10, 100)
		first, firstTeam := approvedTeam(t, env)
		second, secondTeam := approvedTeam(t, env)

		// the linked application is no longer APPROVED and the other
		// APPROVED application with the same identity has lost its team
		require.NoError(t, env.repos.Applications.UpdateStatus(ctx, first.ID, entity.ApplicationStatusPending))
		require.NoError(t, env.repos.Teams.Delete(ctx, secondTeam.ID))

		result, err := svc.Delete(ctx, firstTeam.ID)
		require.NoError(t, err)
		assert.False(t, result.Reverted)
		assert.Empty(t, result.ApplicationID)

		stored, err := env.repos.Applications.GetByID(ctx, second.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.ApplicationStatusApproved, stored.Status)
	})

	t.Run("no matching application means no reversal", func(t *testing.T) {
		env := newTestEnv(t)
		svc := usecase.NewTeamService(env.deps, 10, 100)
		team := newTeam(t, env, "Bağımsız")

		result, err := svc.Delete(ctx, team.ID)
		require.NoError(t, err)
		assert.False(t, result.Reverted)
		assert.Empty(t, result.ApplicationID)
	})

	t.Run("reversal happens exactly once", func(t *testing.T) {
		env := newTestEnv(t)
		svc := usecase.NewTeamService(env.deps, 10, 100)
		_, team := approvedTeam(t, env)

		first, err := svc.Delete(ctx, team.ID)
		require.NoError(t, err)
		assert.True(t, first.Reverted)

		_, err = svc.Delete(ctx, team.ID)
		assert.True(t, domainErrors.IsNotFound(err))
	})

	t.Run("blocked while payments exist", func(t *testing.T) {
		env := newTestEnv(t)
		svc := usecase.NewTeamService(env.deps, 10, 100)
		app, team := approvedTeam(t, env)

		_, err := usecase.NewPaymentService(env.deps).Record(ctx, usecase.RecordPaymentInput{
			TeamID:        team.ID,
			PaymentMethod: "CASH",
			Amount:        decimal.RequireFromString("100"),
		})
		require.NoError(t, err)

		_, err = svc.Delete(ctx, team.ID)
		assert.ErrorIs(t, err, domainErrors.ErrTeamHasPayments)

		_, err = svc.Get(ctx, team.ID)
		assert.NoError(t, err)
		stored, err := env.repos.Applications.GetByID(ctx, app.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.ApplicationStatusApproved, stored.Status)
	})
}

func TestTeamService_Update(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := usecase.NewTeamService(env.deps, 10, 100)
	app, team := approvedTeam(t, env)

	updated, err := svc.Update(ctx, team.ID, usecase.UpdateTeamInput{
		TeamName:           "X United",
		CoachName:          "Y",
		PhoneNumber:        "0500",
		Stage:              "STAGE_2",
		AgeGroups:          []string{"Y2012", "Y2013"},
		AgeGroupTeamCounts: map[string]int{"Y2012": 3, "Y2013": 1},
		AthletePrice:       decimal.RequireFromString("2000"),
	})
	require.NoError(t, err)
	assert.Equal(t, "X United", updated.TeamName)

	stored, err := svc.Get(ctx, team.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StageTwo, stored.Stage)
	assert.Equal(t, entity.AgeGroupCounts{"Y2012": 3, "Y2013": 1}, stored.AgeGroupTeamCounts)
	assert.True(t, decimal.RequireFromString("2000").Equal(stored.AthletePrice))

	source, err := env.repos.Applications.GetByID(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, "X", source.TeamName, "edits do not propagate to the application")

	_, err = svc.Update(ctx, team.ID, usecase.UpdateTeamInput{TeamName: "only name"})
	assert.True(t, domainErrors.IsValidation(err))

	_, err = svc.Update(ctx, "missing", usecase.UpdateTeamInput{
		TeamName: "a", CoachName: "b", PhoneNumber: "c", Stage: "FINAL",
	})
	assert.True(t, domainErrors.IsNotFound(err))
}

func TestTeamService_List(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := usecase.NewTeamService(env.deps, 2, 100)

	names := []string{"Alfa", "Bravo", "Charlie", "Delta", "Echo"}
	for i, name := range names {
		team := newTeam(t, env, name)
		if i%2 == 1 {
			team.Stage = entity.StageTwo
			team.AgeGroups = []entity.AgeGroup{"Y2016"}
			team.AgeGroupTeamCounts = entity.AgeGroupCounts{"Y2016": 2}
			require.NoError(t, env.repos.Teams.Update(ctx, team))
		}
		env.clock.Advance(time.Minute)
	}

	t.Run("default order is newest first with default page size", func(t *testing.T) {
		page, err := svc.List(ctx, entity.TeamFilter{})
		require.NoError(t, err)
		require.Len(t, page.Data, 2)
		assert.Equal(t, "Echo", page.Data[0].TeamName)
		assert.Equal(t, int64(5), page.Pagination.Total)
		assert.Equal(t, 3, page.Pagination.TotalPages)
		assert.Equal(t, 1, page.Pagination.CurrentPage)
	})

	t.Run("filter by stage and age group", func(t *testing.T) {
		page, err := svc.List(ctx, entity.TeamFilter{Stage: entity.StageTwo, AgeGroup: "Y2016"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), page.Pagination.Total)
	})

	t.Run("search is case insensitive", func(t *testing.T) {
		page, err := svc.List(ctx, entity.TeamFilter{Query: "CHAR"})
		require.NoError(t, err)
		require.Len(t, page.Data, 1)
		assert.Equal(t, "Charlie", page.Data[0].TeamName)
	})

	t.Run("sort and paginate", func(t *testing.T) {
		page, err := svc.List(ctx, entity.TeamFilter{
			Sort:             entity.TeamSortTeamName,
			Order:            entity.SortDesc,
			PaginationParams: entity.PaginationParams{Page: 2, Limit: 2},
		})
		require.NoError(t, err)
		require.Len(t, page.Data, 2)
		assert.Equal(t, "Charlie", page.Data[0].TeamName)
		assert.Equal(t, "Bravo", page.Data[1].TeamName)
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		page, err := svc.List(ctx, entity.TeamFilter{PaginationParams: entity.PaginationParams{Page: 9}})
		require.NoError(t, err)
		assert.Empty(t, page.Data)
	})

	t.Run("unknown sort field", func(t *testing.T) {
		_, err := svc.List(ctx, entity.TeamFilter{Sort: "password"})
		assert.True(t, domainErrors.IsValidation(err))
	})

	t.Run("stats", func(t *testing.T) {
		stats, err := svc.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 5, stats.TotalTeams)
		assert.Equal(t, 3, stats.ByStage[entity.StageOne])
		assert.Equal(t, 2, stats.ByStage[entity.StageTwo])
		assert.Equal(t, 0, stats.ByStage[entity.StageFinal])
		assert.Equal(t, 5, stats.AgeGroupCount)
		assert.Equal(t, 7, stats.TotalSubTeams)
	})
}
