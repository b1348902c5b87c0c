package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/celebigilfatih/omt/internal/domain/entity"
	domainErrors "github.com/celebigilfatih/omt/internal/domain/errors"
	"github.com/celebigilfatih/omt/internal/domain/repository"
)

// LegacyAdminID is the token subject of the fixed fallback credential.
const LegacyAdminID = "admin"

// TokenIssuer signs session tokens for authenticated admins.
type TokenIssuer interface {
	Issue(p entity.Principal) (string, time.Time, error)
}

// LegacyCredential is the documented fallback login. Disabled when Enabled is false.
type LegacyCredential struct {
	Enabled    bool
	Identifier string
	Password   string
}

type LoginInput struct {
	Identifier string `json:"identifier" validate:"required,max=255"`
	Password   string `json:"password" validate:"required,max=72"`
}

type CreateAdminInput struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Name     string `json:"name" validate:"required,min=2,max=200"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// UpdateProfileInput changes only the fields that are set.
type UpdateProfileInput struct {
	Email *string `json:"email" validate:"omitempty,email,max=255"`
	Name  *string `json:"name" validate:"omitempty,min=2,max=200"`
}

type ChangePasswordInput struct {
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Success   bool             `json:"success"`
	User      entity.Principal `json:"user"`
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expiresAt"`
}

// AdminService manages admin accounts and credentials.
type AdminService struct {
	Deps
	tokens     TokenIssuer
	legacy     LegacyCredential
	bcryptCost int
}

func NewAdminService(deps Deps, tokens TokenIssuer, legacy LegacyCredential, bcryptCost int) *AdminService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AdminService{Deps: deps.withDefaults(), tokens: tokens, legacy: legacy, bcryptCost: bcryptCost}
}

// Login checks the legacy credential first, then the admin table. Every
// mismatch, malformed input included, yields the same ErrInvalidCredentials.
func (s *AdminService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	if violations := s.Validator.Check(in); len(violations) > 0 {
		s.Metrics.LoginAttempt(false)
		return nil, domainErrors.ErrInvalidCredentials
	}

	principal, err := s.authenticate(ctx, trim(in.Identifier), in.Password)
	if err != nil {
		s.Metrics.LoginAttempt(false)
		return nil, err
	}

	token, expiresAt, err := s.tokens.Issue(*principal)
	if err != nil {
		return nil, domainErrors.NewInternalError("failed to issue session token", err)
	}

	s.Metrics.LoginAttempt(true)
	s.Logger.Info("Admin logged in", zap.String("admin_id", principal.ID))

	return &LoginResult{Success: true, User: *principal, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *AdminService) authenticate(ctx context.Context, identifier, password string) (*entity.Principal, error) {
	if s.isLegacy(identifier, password) {
		s.Logger.Warn("Legacy admin credential used")
		return s.legacyPrincipal(), nil
	}

	admin, err := s.Repos.Admins.GetByEmail(ctx, identifier)
	if err != nil {
		if isNotFound(err) {
			// keep timing equal to the wrong-password path
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, domainErrors.ErrInvalidCredentials
		}
		return nil, domainErrors.NewInternalError("failed to load admin", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, domainErrors.ErrInvalidCredentials
	}

	return &entity.Principal{ID: admin.ID, Email: admin.Email, Name: admin.Name}, nil
}

var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("omt-dummy-password"), bcrypt.MinCost)

func (s *AdminService) isLegacy(identifier, password string) bool {
	if !s.legacy.Enabled || s.legacy.Identifier == "" {
		return false
	}
	idOK := subtle.ConstantTimeCompare([]byte(identifier), []byte(s.legacy.Identifier)) == 1
	pwOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.legacy.Password)) == 1
	return idOK && pwOK
}

func (s *AdminService) legacyPrincipal() *entity.Principal {
	return &entity.Principal{ID: LegacyAdminID, Email: s.legacy.Identifier, Name: "Admin"}
}

// VerifyAccount rejects tokens whose admin was deleted since issue.
func (s *AdminService) VerifyAccount(ctx context.Context, p *entity.Principal) error {
	if p.ID == LegacyAdminID {
		if s.legacy.Enabled {
			return nil
		}
		return domainErrors.NewNotFoundError("admin", p.ID)
	}

	if _, err := s.Repos.Admins.GetByID(ctx, p.ID); err != nil {
		return storeError(err, "admin", p.ID, "load admin")
	}
	return nil
}

func (s *AdminService) Create(ctx context.Context, in CreateAdminInput) (*entity.Admin, error) {
	in.Email = strings.ToLower(trim(in.Email))
	in.Name = trim(in.Name)
	if violations := s.Validator.Check(in); len(violations) > 0 {
		return nil, domainErrors.NewValidationError(violations...)
	}

	if err := s.ensureEmailFree(ctx, in.Email, ""); err != nil {
		return nil, err
	}

	hash, err := s.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	admin := &entity.Admin{Email: in.Email, Name: in.Name, PasswordHash: hash}
	if err := s.Repos.Admins.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domainErrors.NewConflictError("email already in use")
		}
		return nil, domainErrors.NewInternalError("failed to create admin", err)
	}

	s.Logger.Info("Admin created", zap.String("admin_id", admin.ID), zap.String("email", admin.Email))
	return admin, nil
}

func (s *AdminService) List(ctx context.Context) ([]*entity.Admin, error) {
	admins, err := s.Repos.Admins.List(ctx)
	if err != nil {
		return nil, domainErrors.NewInternalError("failed to list admins", err)
	}
	return admins, nil
}

func (s *AdminService) Get(ctx context.Context, id string) (*entity.Admin, error) {
	admin, err := s.Repos.Admins.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "admin", id, "load admin")
	}
	return admin, nil
}

func (s *AdminService) ChangePassword(ctx context.Context, id string, in ChangePasswordInput) (*entity.Admin, error) {
	if violations := s.Validator.Check(in); len(violations) > 0 {
		return nil, domainErrors.NewValidationError(violations...)
	}

	admin, err := s.Repos.Admins.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "admin", id, "load admin")
	}

	hash, err := s.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	admin.PasswordHash = hash

	if err := s.Repos.Admins.Update(ctx, admin); err != nil {
		return nil, storeError(err, "admin", id, "update admin")
	}

	s.Logger.Info("Admin password changed", zap.String("admin_id", id))
	return admin, nil
}

func (s *AdminService) UpdateProfile(ctx context.Context, id string, in UpdateProfileInput) (*entity.Admin, error) {
	if in.Email != nil {
		email := strings.ToLower(trim(*in.Email))
		in.Email = &email
	}
	if in.Name != nil {
		name := trim(*in.Name)
		in.Name = &name
	}
	if violations := s.Validator.Check(in); len(violations) > 0 {
		return nil, domainErrors.NewValidationError(violations...)
	}

	admin, err := s.Repos.Admins.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "admin", id, "load admin")
	}

	if in.Email != nil && *in.Email != admin.Email {
		if err := s.ensureEmailFree(ctx, *in.Email, id); err != nil {
			return nil, err
		}
		admin.Email = *in.Email
	}
	if in.Name != nil {
		admin.Name = *in.Name
	}

	if err := s.Repos.Admins.Update(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domainErrors.NewConflictError("email already in use")
		}
		return nil, storeError(err, "admin", id, "update admin")
	}

	s.Logger.Info("Admin profile updated", zap.String("admin_id", id))
	return admin, nil
}

// Delete removes an admin unless it is the last one.
func (s *AdminService) Delete(ctx context.Context, id string) error {
	err := s.Repos.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.Repos.Admins.GetByID(ctx, id); err != nil {
			return storeError(err, "admin", id, "load admin")
		}

		count, err := s.Repos.Admins.Count(ctx)
		if err != nil {
			return domainErrors.NewInternalError("failed to count admins", err)
		}
		if count <= 1 {
			return domainErrors.ErrLastAdmin
		}

		if err := s.Repos.Admins.Delete(ctx, id); err != nil {
			return storeError(err, "admin", id, "delete admin")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.Logger.Info("Admin deleted", zap.String("admin_id", id))
	return nil
}

func (s *AdminService) ensureEmailFree(ctx context.Context, email, selfID string) error {
	existing, err := s.Repos.Admins.GetByEmail(ctx, email)
	switch {
	case isNotFound(err):
		return nil
	case err != nil:
		return domainErrors.NewInternalError("failed to check email", err)
	case existing.ID != selfID:
		return domainErrors.NewConflictError("email already in use")
	}
	return nil
}

func (s *AdminService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", domainErrors.NewInternalError("failed to hash password", err)
	}
	return string(hash), nil
}
