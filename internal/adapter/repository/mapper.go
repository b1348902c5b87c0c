package repository

import (
	"github.com/celebigilfatih/omt/internal/domain/entity"
	"github.com/celebigilfatih/omt/internal/domain/model"
	"gorm.io/datatypes"
)

func toAgeGroupStrings(groups []entity.AgeGroup) datatypes.JSONSlice[string] {
	out := make(datatypes.JSONSlice[string], len(groups))
	for i, g := range groups {
		out[i] = string(g)
	}
	return out
}

func toAgeGroups(groups datatypes.JSONSlice[string]) []entity.AgeGroup {
	out := make([]entity.AgeGroup, len(groups))
	for i, g := range groups {
		out[i] = entity.AgeGroup(g)
	}
	return out
}

func toCountsColumn(counts entity.AgeGroupCounts) datatypes.JSONType[map[string]int] {
	m := make(map[string]int, len(counts))
	for k, v := range counts {
		m[string(k)] = v
	}
	return datatypes.NewJSONType(m)
}

func toCounts(column datatypes.JSONType[map[string]int]) entity.AgeGroupCounts {
	data := column.Data()
	out := make(entity.AgeGroupCounts, len(data))
	for k, v := range data {
		out[entity.AgeGroup(k)] = v
	}
	return out
}

func toApplicationModel(a *entity.TeamApplication) *model.TeamApplication {
	return &model.TeamApplication{
		ID:                 a.ID,
		TeamName:           a.TeamName,
		CoachName:          a.CoachName,
		PhoneNumber:        a.PhoneNumber,
		Email:              a.Email,
		Website:            a.Website,
		Instagram:          a.Instagram,
		Twitter:            a.Twitter,
		Facebook:           a.Facebook,
		Stage:              string(a.Stage),
		AgeGroups:          toAgeGroupStrings(a.AgeGroups),
		AgeGroupTeamCounts: toCountsColumn(a.AgeGroupTeamCounts),
		AthletePrice:       a.AthletePrice,
		ParentPrice:        a.ParentPrice,
		Description:        a.Description,
		LogoURL:            a.LogoURL,
		Status:             string(a.Status),
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

func toApplicationEntity(m *model.TeamApplication) *entity.TeamApplication {
	return &entity.TeamApplication{
		ID:          m.ID,
		TeamName:    m.TeamName,
		CoachName:   m.CoachName,
		PhoneNumber: m.PhoneNumber,
		Email:       m.Email,
		SocialLinks: entity.SocialLinks{
			Website:   m.Website,
			Instagram: m.Instagram,
			Twitter:   m.Twitter,
			Facebook:  m.Facebook,
		},
		Stage:              entity.Stage(m.Stage),
		AgeGroups:          toAgeGroups(m.AgeGroups),
		AgeGroupTeamCounts: toCounts(m.AgeGroupTeamCounts),
		AthletePrice:       m.AthletePrice,
		ParentPrice:        m.ParentPrice,
		Description:        m.Description,
		LogoURL:            m.LogoURL,
		Status:             entity.ApplicationStatus(m.Status),
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func toTeamModel(t *entity.Team) *model.Team {
	return &model.Team{
		ID:                 t.ID,
		TeamName:           t.TeamName,
		CoachName:          t.CoachName,
		PhoneNumber:        t.PhoneNumber,
		Stage:              string(t.Stage),
		AgeGroups:          toAgeGroupStrings(t.AgeGroups),
		AgeGroupTeamCounts: toCountsColumn(t.AgeGroupTeamCounts),
		AthletePrice:       t.AthletePrice,
		ParentPrice:        t.ParentPrice,
		Description:        t.Description,
		LogoURL:            t.LogoURL,
		ApplicationID:      t.ApplicationID,
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}
}

func toTeamEntity(m *model.Team) *entity.Team {
	return &entity.Team{
		ID:                 m.ID,
		TeamName:           m.TeamName,
		CoachName:          m.CoachName,
		PhoneNumber:        m.PhoneNumber,
		Stage:              entity.Stage(m.Stage),
		AgeGroups:          toAgeGroups(m.AgeGroups),
		AgeGroupTeamCounts: toCounts(m.AgeGroupTeamCounts),
		AthletePrice:       m.AthletePrice,
		ParentPrice:        m.ParentPrice,
		Description:        m.Description,
		LogoURL:            m.LogoURL,
		ApplicationID:      m.ApplicationID,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func toPaymentModel(p *entity.Payment) *model.Payment {
	return &model.Payment{
		ID:            p.ID,
		TeamID:        p.TeamID,
		PaymentMethod: string(p.PaymentMethod),
		Amount:        p.Amount,
		Description:   p.Description,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toPaymentEntity(m *model.Payment) *entity.Payment {
	p := &entity.Payment{
		ID:            m.ID,
		TeamID:        m.TeamID,
		PaymentMethod: entity.PaymentMethod(m.PaymentMethod),
		Amount:        m.Amount,
		Description:   m.Description,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.Team != nil {
		p.Team = toTeamEntity(m.Team).Snapshot()
	}
	return p
}

func toAdminModel(a *entity.Admin) *model.Admin {
	return &model.Admin{
		ID:        a.ID,
		Email:     a.Email,
		Name:      a.Name,
		Password:  a.PasswordHash,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func toAdminEntity(m *model.Admin) *entity.Admin {
	return &entity.Admin{
		ID:           m.ID,
		Email:        m.Email,
		Name:         m.Name,
		PasswordHash: m.Password,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
