package models

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 500
	MaxPage         = 100000
)

// ListParams holds pagination and the optional OPD filter of list endpoints.
type ListParams struct {
	Page  int
	Limit int
	OPDID *uuid.UUID
}

// Offset returns the row offset of the current page.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ParseListParams reads page, limit and opd_id from the query string.
// opd_id "all" or empty means no filter.
func ParseListParams(r *http.Request) (ListParams, error) {
	q := r.URL.Query()
	params := ListParams{Page: 1, Limit: DefaultPageSize}

	if s := q.Get("page"); s != "" {
		p, err := strconv.Atoi(s)
		if err != nil || p < 1 || p > MaxPage {
			return params, fmt.Errorf("invalid page %q", s)
		}
		params.Page = p
	}
	if s := q.Get("limit"); s != "" {
		l, err := strconv.Atoi(s)
		if err != nil || l < 1 {
			return params, fmt.Errorf("invalid limit %q", s)
		}
		if l > MaxPageSize {
			l = MaxPageSize
		}
		params.Limit = l
	}
	if s := q.Get("opd_id"); s != "" && s != "all" {
		id, err := uuid.Parse(s)
		if err != nil {
			return params, fmt.Errorf("invalid opd_id %q", s)
		}
		params.OPDID = &id
	}
	return params, nil
}

// Page is the envelope of paginated list responses.
type Page[T any] struct {
	Data  []T   `json:"data"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}
