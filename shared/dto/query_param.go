package dto

import (
	"roombooking/shared/constant"
	"strings"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty,min=1"`
	Limit   int    `json:"limit"    validate:"omitempty,min=1"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// Normalize upper-cases the sort direction, drops invalid values and, when
// withDefaults is set, fills page and limit.
func (q *QueryParams) Normalize(withDefaults bool) {
	if q.Page < 0 {
		q.Page = 0
	}

	if q.Limit < 0 {
		q.Limit = 0
	}

	dir := strings.ToUpper(q.SortDir)
	if dir == SortDirAsc || dir == SortDirDesc {
		q.SortDir = dir
	} else {
		q.SortDir = constant.Empty
	}

	if q.SortBy != constant.Empty && q.SortDir == constant.Empty {
		q.SortDir = SortDirAsc
	}

	if withDefaults {
		if q.Page == 0 {
			q.Page = constant.DefaultValuePage
		}

		if q.Limit == 0 {
			q.Limit = constant.DefaultValueLimit
		}
	}
}
