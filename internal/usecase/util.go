package usecase

import (
	"strings"

	"github.com/celebigilfatih/omt/internal/domain/entity"
	apperrors "github.com/celebigilfatih/omt/pkg/errors"
)

// ageGroupRules enforces the age group invariants shared by applications and
// teams: no duplicates, counts only for selected groups, counts in [1,10].
// Selected groups without a count get one sub-team.
func ageGroupRules(groups []string, counts map[string]int) ([]entity.AgeGroup, entity.AgeGroupCounts, []apperrors.FieldError) {
	var violations []apperrors.FieldError

	selected := make(map[string]bool, len(groups))
	out := make([]entity.AgeGroup, 0, len(groups))
	for _, g := range groups {
		if selected[g] {
			violations = append(violations, apperrors.FieldError{Field: "ageGroups", Message: "must not contain duplicates"})
			continue
		}
		selected[g] = true
		out = append(out, entity.AgeGroup(g))
	}

	outCounts := make(entity.AgeGroupCounts, len(out))
	for g, n := range counts {
		if !selected[g] {
			violations = append(violations, apperrors.FieldError{
				Field:   "ageGroupTeamCounts[" + g + "]",
				Message: "age group is not selected",
			})
			continue
		}
		outCounts[entity.AgeGroup(g)] = n
	}
	for _, g := range out {
		if _, ok := outCounts[g]; !ok {
			outCounts[g] = 1
		}
	}

	return out, outCounts, violations
}

func trim(s string) string {
	return strings.TrimSpace(s)
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}

func errField(field, msg string) apperrors.FieldError {
	return apperrors.FieldError{Field: field, Message: msg}
}
