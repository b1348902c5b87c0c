package entity

import "math"

// PaginationParams represents pagination request parameters
type PaginationParams struct {
	Page  int `json:"page" query:"page"`
	Limit int `json:"limit" query:"limit"`
}

// PaginationMeta represents pagination metadata in responses
type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultPage     = 1
)

// Normalize clamps page and limit. Zero limits fall back to defaultLimit.
func (p *PaginationParams) Normalize(defaultLimit, maxLimit int) {
	if defaultLimit <= 0 {
		defaultLimit = DefaultPageSize
	}
	if maxLimit <= 0 {
		maxLimit = MaxPageSize
	}

	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	} else if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	if maxPage := math.MaxInt / maxLimit; p.Page > maxPage {
		p.Page = maxPage
	}
}

// Offset is the index of the first item on the page. It saturates at
// math.MaxInt instead of overflowing.
func (p *PaginationParams) Offset() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// NewPaginationMeta creates pagination metadata from parameters and total count
func NewPaginationMeta(page, limit int, total int64) PaginationMeta {
	totalPages := int(total) / limit
	if int(total)%limit > 0 {
		totalPages++
	}

	return PaginationMeta{
		CurrentPage: page,
		PerPage:     limit,
		Total:       total,
		TotalPages:  totalPages,
	}
}

// Page slices items to the requested page. Pages past the end are empty.
func Page[T any](items []T, params PaginationParams) []T {
	start := params.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := len(items)
	if params.Limit > 0 && params.Limit < end-start {
		end = start + params.Limit
	}
	return items[start:end]
}

// PaginatedTeams is a page of teams.
type PaginatedTeams struct {
	Data       []*Team        `json:"data"`
	Pagination PaginationMeta `json:"pagination"`
}
