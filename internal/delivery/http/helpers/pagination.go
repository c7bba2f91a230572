package helpers

import (
	"net/http"
	"strconv"

	"eventsmanager/internal/domain"
)

// Pagination query parameter defaults and limits.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ParsePagination reads page and page_size from the request query string,
// clamps them to valid ranges, and returns domain.PaginationParams.
// Invalid or missing values fall back to defaults.
func ParsePagination(r *http.Request) domain.PaginationParams {
	page := DefaultPage
	if s := r.URL.Query().Get("page"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 1 {
			page = v
		}
	}
	pageSize := DefaultPageSize
	if s := r.URL.Query().Get("page_size"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 1 {
			pageSize = v
			if pageSize > MaxPageSize {
				pageSize = MaxPageSize
			}
		}
	}
	return domain.PaginationParams{Page: page, PageSize: pageSize}
}

// PaginatedList is the data payload for paginated list responses. Count is
// the total number of matching rows across all pages.
// swagger:model PaginatedList
type PaginatedList struct {
	Count      int `json:"count"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
	Results    any `json:"results"`
}

// NewPaginatedList builds a PaginatedList from the results, the current
// pagination params, and the total count. TotalPages is
// ceiling(count / pageSize); if pageSize is 0, TotalPages is 0.
func NewPaginatedList(results any, params domain.PaginationParams, count int) PaginatedList {
	totalPages := 0
	if params.PageSize > 0 {
		totalPages = (count + params.PageSize - 1) / params.PageSize
	}
	return PaginatedList{
		Count:      count,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: totalPages,
		Results:    results,
	}
}
