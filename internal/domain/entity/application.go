package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SocialLinks are optional club profile links.
type SocialLinks struct {
	Website   string `json:"website,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
}

// TeamApplication is a club's request to enter the tournament.
type TeamApplication struct {
	ID          string `json:"id"`
	TeamName    string `json:"teamName"`
	CoachName   string `json:"coachName"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email,omitempty"`
	SocialLinks
	Stage              Stage             `json:"stage"`
	AgeGroups          []AgeGroup        `json:"ageGroups"`
	AgeGroupTeamCounts AgeGroupCounts    `json:"ageGroupTeamCounts"`
	AthletePrice       decimal.Decimal   `json:"athletePrice"`
	ParentPrice        decimal.Decimal   `json:"parentPrice"`
	Description        string            `json:"description,omitempty"`
	LogoURL            string            `json:"logoUrl,omitempty"`
	Status             ApplicationStatus `json:"status"`
	CreatedAt          time.Time         `json:"createdAt"`
	UpdatedAt          time.Time         `json:"updatedAt"`
}

// IsDecided reports whether an admin already approved or rejected it.
func (a *TeamApplication) IsDecided() bool {
	return a.Status != ApplicationStatusPending
}

// Materialize copies the application snapshot into a new Team linked back to it.
func (a *TeamApplication) Materialize() *Team {
	groups := make([]AgeGroup, len(a.AgeGroups))
	copy(groups, a.AgeGroups)

	applicationID := a.ID
	return &Team{
		TeamName:           a.TeamName,
		CoachName:          a.CoachName,
		PhoneNumber:        a.PhoneNumber,
		Stage:              a.Stage,
		AgeGroups:          groups,
		AgeGroupTeamCounts: a.AgeGroupTeamCounts.Clone(),
		AthletePrice:       a.AthletePrice,
		ParentPrice:        a.ParentPrice,
		Description:        a.Description,
		LogoURL:            a.LogoURL,
		ApplicationID:      &applicationID,
	}
}

// Decision is the admin action applied to a pending application.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// Status returns the status the decision moves an application to.
func (d Decision) Status() (ApplicationStatus, bool) {
	switch d {
	case DecisionApprove:
		return ApplicationStatusApproved, true
	case DecisionReject:
		return ApplicationStatusRejected, true
	}
	return "", false
}
