package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/celebigilfatih/omt/internal/domain/entity"
	domainErrors "github.com/celebigilfatih/omt/internal/domain/errors"
	"github.com/celebigilfatih/omt/internal/usecase"
)

// MockTokenIssuer is a mock implementation of TokenIssuer
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(p entity.Principal) (string, time.Time, error) {
	args := m.Called(p)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

var legacy = usecase.LegacyCredential{Enabled: true, Identifier: "admin", Password: "admin123"}

func newAdminService(env *testEnv, tokens usecase.TokenIssuer, legacy usecase.LegacyCredential) *usecase.AdminService {
	return usecase.NewAdminService(env.deps, tokens, legacy, bcrypt.MinCost)
}

func TestAdminService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("legacy credential works on an empty store", func(t *testing.T) {
		env := newTestEnv(t)
		tokens := new(MockTokenIssuer)
		tokens.On("Issue", mock.MatchedBy(func(p entity.Principal) bool { return p.ID == usecase.LegacyAdminID })).
			Return("signed", env.clock.Now().Add(time.Hour), nil)
		svc := newAdminService(env, tokens, legacy)

		result, err := svc.Login(ctx, usecase.LoginInput{Identifier: "admin", Password: "admin123"})
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, "signed", result.Token)
		assert.Equal(t, usecase.LegacyAdminID, result.User.ID)
		tokens.AssertExpectations(t)
	})

	t.Run("legacy credential can be disabled", func(t *testing.T) {
		env := newTestEnv(t)
		svc := newAdminService(env, new(MockTokenIssuer), usecase.LegacyCredential{})

		_, err := svc.Login(ctx, usecase.LoginInput{Identifier: "admin", Password: "admin123"})
		assert.ErrorIs(t, err, domainErrors.ErrInvalidCredentials)
	})

	t.Run("stored admin with bcrypt password", func(t *testing.T) {
		env := newTestEnv(t)
		tokens := new(MockTokenIssuer)
		tokens.On("Issue", mock.Anything).Return("signed", env.clock.Now(), nil)
		svc := newAdminService(env, tokens, legacy)

		admin, err := svc.Create(ctx, usecase.CreateAdminInput{Email: "Ops@Example.com", Name: "Ops", Password: "secret1"})
		require.NoError(t, err)
		assert.Equal(t, "ops@example.com", admin.Email)
		assert.NotEqual(t, "secret1", admin.PasswordHash)

		result, err := svc.Login(ctx, usecase.LoginInput{Identifier: "ops@example.com", Password: "secret1"})
		require.NoError(t, err)
		assert.Equal(t, admin.ID, result.User.ID)
	})

	t.Run("unknown user and wrong password look the same", func(t *testing.T) {
		env := newTestEnv(t)
		svc := newAdminService(env, new(MockTokenIssuer), legacy)

		_, err := svc.Create(ctx, usecase.CreateAdminInput{Email: "ops@example.com", Name: "Ops", Password: "secret1"})
		require.NoError(t, err)

		_, wrongPassword := svc.Login(ctx, usecase.LoginInput{Identifier: "ops@example.com", Password: "nope"})
		_, unknownUser := svc.Login(ctx, usecase.LoginInput{Identifier: "who@example.com", Password: "secret1"})

		assert.ErrorIs(t, wrongPassword, domainErrors.ErrInvalidCredentials)
		assert.ErrorIs(t, unknownUser, domainErrors.ErrInvalidCredentials)
		assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
	})

	t.Run("malformed input is an auth error too", func(t *testing.T) {
		env := newTestEnv(t)
		svc := newAdminService(env, new(MockTokenIssuer), legacy)

		_, emptyPassword := svc.Login(ctx, usecase.LoginInput{Identifier: "ops@example.com"})
		_, longPassword := svc.Login(ctx, usecase.LoginInput{Identifier: "ops@example.com", Password: strings.Repeat("x", 73)})

		assert.ErrorIs(t, emptyPassword, domainErrors.ErrInvalidCredentials)
		assert.ErrorIs(t, longPassword, domainErrors.ErrInvalidCredentials)
		assert.True(t, domainErrors.IsAuth(emptyPassword))
	})
}

func TestAdminService_Accounts(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := newAdminService(env, new(MockTokenIssuer), legacy)

	first, err := svc.Create(ctx, usecase.CreateAdminInput{Email: "a@example.com", Name: "Ayşe", Password: "secret1"})
	require.NoError(t, err)

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		_, err := svc.Create(ctx, usecase.CreateAdminInput{Email: "A@example.com", Name: "Ali", Password: "secret1"})
		assert.True(t, domainErrors.IsConflict(err))
	})

	t.Run("short password and name rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, usecase.CreateAdminInput{Email: "b@example.com", Name: "B", Password: "123"})
		assert.True(t, domainErrors.IsValidation(err))
	})

	t.Run("deleting the last admin is refused", func(t *testing.T) {
		err := svc.Delete(ctx, first.ID)
		assert.ErrorIs(t, err, domainErrors.ErrLastAdmin)
		assert.True(t, domainErrors.IsPolicy(err))
	})

	second, err := svc.Create(ctx, usecase.CreateAdminInput{Email: "b@example.com", Name: "Burak", Password: "secret1"})
	require.NoError(t, err)

	t.Run("profile update re-checks email uniqueness", func(t *testing.T) {
		taken := "a@example.com"
		_, err := svc.UpdateProfile(ctx, second.ID, usecase.UpdateProfileInput{Email: &taken})
		assert.True(t, domainErrors.IsConflict(err))

		name := "Burak Yılmaz"
		updated, err := svc.UpdateProfile(ctx, second.ID, usecase.UpdateProfileInput{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Burak Yılmaz", updated.Name)
		assert.Equal(t, "b@example.com", updated.Email)
	})

	t.Run("change password", func(t *testing.T) {
		_, err := svc.ChangePassword(ctx, second.ID, usecase.ChangePasswordInput{Password: "another1"})
		require.NoError(t, err)

		stored, err := svc.Get(ctx, second.ID)
		require.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("another1")))
	})

	t.Run("delete succeeds when another admin remains", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, second.ID))

		admins, err := svc.List(ctx)
		require.NoError(t, err)
		require.Len(t, admins, 1)
		assert.Equal(t, first.ID, admins[0].ID)

		err = svc.VerifyAccount(ctx, &entity.Principal{ID: second.ID})
		assert.True(t, domainErrors.IsNotFound(err))
	})

	t.Run("unknown admin", func(t *testing.T) {
		assert.True(t, domainErrors.IsNotFound(svc.Delete(ctx, "missing")))
	})
}
