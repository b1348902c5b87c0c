package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/celebigilfatih/omt/internal/domain/entity"
	domainErrors "github.com/celebigilfatih/omt/internal/domain/errors"
)

type SetSettingInput struct {
	Key   string `json:"key" validate:"required,max=100,excludesall= /"`
	Value string `json:"value" validate:"max=10000"`
}

// SettingsService exposes the key/value settings table.
type SettingsService struct {
	Deps
}

func NewSettingsService(deps Deps) *SettingsService {
	return &SettingsService{Deps: deps.withDefaults()}
}

func (s *SettingsService) List(ctx context.Context) ([]*entity.Setting, error) {
	settings, err := s.Repos.Settings.List(ctx)
	if err != nil {
		return nil, domainErrors.NewInternalError("failed to list settings", err)
	}
	return settings, nil
}

func (s *SettingsService) Get(ctx context.Context, key string) (*entity.Setting, error) {
	setting, err := s.Repos.Settings.Get(ctx, key)
	if err != nil {
		return nil, storeError(err, "setting", key, "load setting")
	}
	return setting, nil
}

// Set creates or replaces a setting.
func (s *SettingsService) Set(ctx context.Context, in SetSettingInput) (*entity.Setting, error) {
	in.Key = trim(in.Key)
	if violations := s.Validator.Check(in); len(violations) > 0 {
		return nil, domainErrors.NewValidationError(violations...)
	}

	setting := &entity.Setting{Key: in.Key, Value: in.Value}
	if err := s.Repos.Settings.Upsert(ctx, setting); err != nil {
		return nil, domainErrors.NewInternalError("failed to save setting", err)
	}

	s.Logger.Info("Setting saved", zap.String("key", in.Key))
	return setting, nil
}
