package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/celebigilfatih/omt/internal/adapter/repository"
	"github.com/celebigilfatih/omt/internal/domain/entity"
	domainRepo "github.com/celebigilfatih/omt/internal/domain/repository"
	"github.com/celebigilfatih/omt/internal/testutil"
	"github.com/celebigilfatih/omt/internal/usecase"
)

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event entity.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type testEnv struct {
	deps      usecase.Deps
	repos     *domainRepo.Repositories
	clock     *clockwork.FakeClock
	publisher *MockEventPublisher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	clock := clockwork.NewFakeClockAt(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
	db := testutil.NewDB(t, clock)
	repos := repository.NewRepositories(db, zap.NewNop())

	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()

	return &testEnv{
		deps: usecase.Deps{
			Repos:     repos,
			Publisher: publisher,
			Clock:     clock,
			Logger:    zap.NewNop(),
		},
		repos:     repos,
		clock:     clock,
		publisher: publisher,
	}
}

func validApplication() usecase.SubmitApplicationInput {
	return usecase.SubmitApplicationInput{
		TeamName:           "X",
		CoachName:          "Y",
		PhoneNumber:        "0500",
		Stage:              "STAGE_1",
		AgeGroups:          []string{"Y2012"},
		AgeGroupTeamCounts: map[string]int{"Y2012": 2},
	}
}

func newTeam(t *testing.T, env *testEnv, name string) *entity.Team {
	t.Helper()
	team := &entity.Team{
		TeamName:           name,
		CoachName:          name + " Coach",
		PhoneNumber:        "0555 000 00 00",
		Stage:              entity.StageOne,
		AgeGroups:          []entity.AgeGroup{"Y2014"},
		AgeGroupTeamCounts: entity.AgeGroupCounts{"Y2014": 1},
		AthletePrice:       decimal.RequireFromString("1500"),
		ParentPrice:        decimal.RequireFromString("750"),
	}
	require.NoError(t, env.repos.Teams.Create(context.Background(), team))
	return team
}
