package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/celebigilfatih/omt/internal/domain/entity"
)

// StoreStatus counts rows per table.
type StoreStatus struct {
	Admins       int64 `json:"admins" yaml:"admins"`
	Applications int64 `json:"applications" yaml:"applications"`
	Teams        int64 `json:"teams" yaml:"teams"`
	Payments     int64 `json:"payments" yaml:"payments"`
}

// ResetResult counts deleted rows.
type ResetResult struct {
	Payments     int64
	Teams        int64
	Applications int64
	Settings     int64
}

// MaintenanceService backs the operator CLI.
type MaintenanceService struct {
	Deps
}

func NewMaintenanceService(deps Deps) *MaintenanceService {
	return &MaintenanceService{Deps: deps.withDefaults()}
}

func (s *MaintenanceService) Status(ctx context.Context) (*StoreStatus, error) {
	var status StoreStatus
	var err error

	if status.Admins, err = s.Repos.Admins.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count admins: %w", err)
	}
	if status.Applications, err = s.Repos.Applications.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count applications: %w", err)
	}
	if status.Teams, err = s.Repos.Teams.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count teams: %w", err)
	}
	if status.Payments, err = s.Repos.Payments.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count payments: %w", err)
	}
	return &status, nil
}

// Reset deletes tournament data but keeps admins. With teamsOnly, payments,
// teams and applications go and settings stay; applications never outlive
// their teams as APPROVED.
func (s *MaintenanceService) Reset(ctx context.Context, teamsOnly bool) (*ResetResult, error) {
	result := &ResetResult{}
	err := s.Repos.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if result.Payments, err = s.Repos.Payments.DeleteAll(ctx); err != nil {
			return fmt.Errorf("failed to delete payments: %w", err)
		}
		if result.Teams, err = s.Repos.Teams.DeleteAll(ctx); err != nil {
			return fmt.Errorf("failed to delete teams: %w", err)
		}
		if result.Applications, err = s.Repos.Applications.DeleteAll(ctx); err != nil {
			return fmt.Errorf("failed to delete applications: %w", err)
		}
		if teamsOnly {
			return nil
		}
		if result.Settings, err = s.Repos.Settings.DeleteAll(ctx); err != nil {
			return fmt.Errorf("failed to delete settings: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Info("Data reset",
		zap.Bool("teams_only", teamsOnly),
		zap.Int64("payments", result.Payments),
		zap.Int64("teams", result.Teams),
		zap.Int64("applications", result.Applications))
	return result, nil
}

// ImportTeams inserts teams in one transaction.
func (s *MaintenanceService) ImportTeams(ctx context.Context, teams []*entity.Team) error {
	return s.Repos.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, team := range teams {
			if err := s.Repos.Teams.Create(ctx, team); err != nil {
				return fmt.Errorf("failed to import team %q: %w", team.TeamName, err)
			}
		}
		return nil
	})
}
