package domain

import (
	"strings"

	apperrors "enquirycrm/pkg/errors"
)

const (
	// MaxPageSize caps every paginated request.
	MaxPageSize = 500
)

// Page is one slice of an ordered result set.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

// NewPage assembles a page and derives TotalPages from total and size.
func NewPage[T any](content []T, number, size int, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	pages := 0
	if size > 0 {
		pages = int((total + int64(size) - 1) / int64(size))
	}
	return Page[T]{
		Content:       content,
		Number:        number,
		Size:          size,
		TotalElements: total,
		TotalPages:    pages,
	}
}

// Sort is a resolved ORDER BY. Column is always a whitelisted column name.
type Sort struct {
	Column string
	Desc   bool
}

// PageRequest is a zero-based page, a page size and an ordering.
type PageRequest struct {
	Page int
	Size int
	Sort Sort
}

// Offset returns the row offset of the requested page.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

var enquirySortColumns = map[string]string{
	"id":             "id",
	"createdAt":      "created_at",
	"updatedAt":      "updated_at",
	"customerName":   "customer_name",
	"status":         "status",
	"interestLevel":  "interest_level",
	"priority":       "priority",
	"nextFollowUpAt": "next_follow_up_at",
	"source":         "source",
}

// DefaultEnquirySort orders newest first.
var DefaultEnquirySort = Sort{Column: "created_at", Desc: true}

// ParseEnquirySort resolves an API sort key and direction. Empty values fall
// back to createdAt descending; unknown keys are rejected.
func ParseEnquirySort(field, dir string) (Sort, error) {
	sort := DefaultEnquirySort
	if field != "" {
		col, ok := enquirySortColumns[field]
		if !ok {
			return Sort{}, apperrors.Validation("unsupported sort field %q", field)
		}
		sort.Column = col
	}
	switch strings.ToLower(strings.TrimSpace(dir)) {
	case "":
	case "asc":
		sort.Desc = false
	case "desc":
		sort.Desc = true
	default:
		return Sort{}, apperrors.Validation("unsupported sort direction %q", dir)
	}
	return sort, nil
}
