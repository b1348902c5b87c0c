package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Team is an approved participant, independent of its application once created.
type Team struct {
	ID                 string          `json:"id"`
	TeamName           string          `json:"teamName"`
	CoachName          string          `json:"coachName"`
	PhoneNumber        string          `json:"phoneNumber"`
	Stage              Stage           `json:"stage"`
	AgeGroups          []AgeGroup      `json:"ageGroups"`
	AgeGroupTeamCounts AgeGroupCounts  `json:"ageGroupTeamCounts"`
	AthletePrice       decimal.Decimal `json:"athletePrice"`
	ParentPrice        decimal.Decimal `json:"parentPrice"`
	Description        string          `json:"description,omitempty"`
	LogoURL            string          `json:"logoUrl,omitempty"`
	ApplicationID      *string         `json:"applicationId,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

// TeamSnapshot is the team view embedded in payment responses.
type TeamSnapshot struct {
	ID          string `json:"id"`
	TeamName    string `json:"teamName"`
	CoachName   string `json:"coachName"`
	PhoneNumber string `json:"phoneNumber"`
	Stage       Stage  `json:"stage"`
}

func (t *Team) Snapshot() *TeamSnapshot {
	return &TeamSnapshot{
		ID:          t.ID,
		TeamName:    t.TeamName,
		CoachName:   t.CoachName,
		PhoneNumber: t.PhoneNumber,
		Stage:       t.Stage,
	}
}

// TeamStats aggregates the team list for the public landing page.
type TeamStats struct {
	TotalTeams    int           `json:"totalTeams"`
	ByStage       map[Stage]int `json:"byStage"`
	AgeGroupCount int           `json:"ageGroupCount"`
	TotalSubTeams int           `json:"totalSubTeams"`
}
