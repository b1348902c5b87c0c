package entity

// ApplicationFilter narrows listApplications. Zero values mean no filter.
type ApplicationFilter struct {
	Status ApplicationStatus
	Query  string
}

// SortOrder is asc or desc.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// TeamSortField is a sortable scalar column of Team.
type TeamSortField string

const (
	TeamSortTeamName     TeamSortField = "teamName"
	TeamSortCoachName    TeamSortField = "coachName"
	TeamSortPhoneNumber  TeamSortField = "phoneNumber"
	TeamSortStage        TeamSortField = "stage"
	TeamSortAthletePrice TeamSortField = "athletePrice"
	TeamSortParentPrice  TeamSortField = "parentPrice"
	TeamSortCreatedAt    TeamSortField = "createdAt"
)

func (f TeamSortField) Valid() bool {
	switch f {
	case TeamSortTeamName, TeamSortCoachName, TeamSortPhoneNumber, TeamSortStage,
		TeamSortAthletePrice, TeamSortParentPrice, TeamSortCreatedAt:
		return true
	}
	return false
}

// TeamFilter narrows and orders listTeams.
type TeamFilter struct {
	Stage    Stage
	AgeGroup AgeGroup
	Query    string
	Sort     TeamSortField
	Order    SortOrder
	PaginationParams
}

// PaymentFilter narrows listPayments.
type PaymentFilter struct {
	TeamID string
	Query  string
}
