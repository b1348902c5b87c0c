package seed

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celebigilfatih/omt/internal/domain/entity"
)

func TestDefault_FiveSampleClubs(t *testing.T) {
	fixture, err := Default()
	require.NoError(t, err)

	teams, err := fixture.Entities()
	require.NoError(t, err)
	require.Len(t, teams, 5)

	assert.Equal(t, "Galatasaray Futbol Akademisi", teams[0].TeamName)
	assert.Equal(t, entity.AgeGroupCounts{"Y2012": 2, "Y2013": 3, "Y2014": 1}, teams[0].AgeGroupTeamCounts)
	assert.Equal(t, entity.StageFinal, teams[3].Stage)
	assert.True(t, teams[4].AthletePrice.IsZero())
}

func TestLoad_DefaultsMissingCounts(t *testing.T) {
	fixture, err := Load(strings.NewReader(`
teams:
  - teamName: Test
    coachName: Coach
    phoneNumber: "0500"
    stage: STAGE_4
    ageGroups: [Y2019, Y2020]
    ageGroupTeamCounts: {Y2019: 3}
    athletePrice: "150.5"
`))
	require.NoError(t, err)

	teams, err := fixture.Entities()
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, entity.AgeGroupCounts{"Y2019": 3, "Y2020": 1}, teams[0].AgeGroupTeamCounts)
	assert.Equal(t, "150.50", teams[0].AthletePrice.StringFixed(2))
}

func TestEntities_RejectsInvalidRows(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown stage", `{teams: [{teamName: a, coachName: b, phoneNumber: c, stage: STAGE_9, ageGroups: [Y2012]}]}`},
		{"unknown age group", `{teams: [{teamName: a, coachName: b, phoneNumber: c, stage: STAGE_1, ageGroups: [Y1999]}]}`},
		{"count out of range", `{teams: [{teamName: a, coachName: b, phoneNumber: c, stage: STAGE_1, ageGroups: [Y2012], ageGroupTeamCounts: {Y2012: 11}}]}`},
		{"count for unselected group", `{teams: [{teamName: a, coachName: b, phoneNumber: c, stage: STAGE_1, ageGroups: [Y2012], ageGroupTeamCounts: {Y2013: 1}}]}`},
		{"negative price", `{teams: [{teamName: a, coachName: b, phoneNumber: c, stage: STAGE_1, ageGroups: [Y2012], parentPrice: "-1"}]}`},
		{"missing name", `{teams: [{coachName: b, phoneNumber: c, stage: STAGE_1, ageGroups: [Y2012]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fixture, err := Parse([]byte(tt.yaml))
			require.NoError(t, err)

			_, err = fixture.Entities()
			assert.Error(t, err)
		})
	}
}

func TestParse_Empty(t *testing.T) {
	_, err := Parse([]byte("teams: []"))
	assert.Error(t, err)
}
