// Package seed loads team fixtures for the omtctl seed command.
package seed

import (
	_ "embed"
	"errors"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/celebigilfatih/omt/internal/domain/entity"
)

//go:embed fixtures/default.yaml
var defaultFixture []byte

type Fixture struct {
	Teams []TeamFixture `yaml:"teams"`
}

type TeamFixture struct {
	TeamName           string         `yaml:"teamName"`
	CoachName          string         `yaml:"coachName"`
	PhoneNumber        string         `yaml:"phoneNumber"`
	Stage              string         `yaml:"stage"`
	AgeGroups          []string       `yaml:"ageGroups"`
	AgeGroupTeamCounts map[string]int `yaml:"ageGroupTeamCounts"`
	AthletePrice       string         `yaml:"athletePrice"`
	ParentPrice        string         `yaml:"parentPrice"`
	Description        string         `yaml:"description"`
	LogoURL            string         `yaml:"logoUrl"`
}

// Default returns the bundled sample clubs.
func Default() (*Fixture, error) {
	return Parse(defaultFixture)
}

// Load reads a fixture from r.
func Load(r io.Reader) (*Fixture, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}
	if len(f.Teams) == 0 {
		return nil, errors.New("fixture has no teams")
	}
	return &f, nil
}

// Entities converts the fixture into teams, rejecting invalid rows.
func (f *Fixture) Entities() ([]*entity.Team, error) {
	teams := make([]*entity.Team, 0, len(f.Teams))
	for i, t := range f.Teams {
		team, err := t.entity()
		if err != nil {
			return nil, fmt.Errorf("team %d (%s): %w", i+1, t.TeamName, err)
		}
		teams = append(teams, team)
	}
	return teams, nil
}

func (t TeamFixture) entity() (*entity.Team, error) {
	if t.TeamName == "" || t.CoachName == "" || t.PhoneNumber == "" {
		return nil, errors.New("teamName, coachName and phoneNumber are required")
	}

	stage := entity.Stage(t.Stage)
	if !stage.Valid() {
		return nil, fmt.Errorf("unknown stage %q", t.Stage)
	}

	groups := make([]entity.AgeGroup, 0, len(t.AgeGroups))
	for _, g := range t.AgeGroups {
		group := entity.AgeGroup(g)
		if !group.Valid() {
			return nil, fmt.Errorf("unknown age group %q", g)
		}
		groups = append(groups, group)
	}

	counts := entity.AgeGroupCounts{}
	for _, group := range groups {
		n, ok := t.AgeGroupTeamCounts[string(group)]
		if !ok {
			n = 1
		}
		if n < 1 || n > 10 {
			return nil, fmt.Errorf("count for %s must be between 1 and 10", group)
		}
		counts[group] = n
	}
	for key := range t.AgeGroupTeamCounts {
		if _, ok := counts[entity.AgeGroup(key)]; !ok {
			return nil, fmt.Errorf("count given for unselected age group %q", key)
		}
	}

	athletePrice, err := price(t.AthletePrice)
	if err != nil {
		return nil, fmt.Errorf("athletePrice: %w", err)
	}
	parentPrice, err := price(t.ParentPrice)
	if err != nil {
		return nil, fmt.Errorf("parentPrice: %w", err)
	}

	return &entity.Team{
		TeamName:           t.TeamName,
		CoachName:          t.CoachName,
		PhoneNumber:        t.PhoneNumber,
		Stage:              stage,
		AgeGroups:          groups,
		AgeGroupTeamCounts: counts,
		AthletePrice:       athletePrice,
		ParentPrice:        parentPrice,
		Description:        t.Description,
		LogoURL:            t.LogoURL,
	}, nil
}

func price(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, errors.New("must not be negative")
	}
	return d.Round(2), nil
}
