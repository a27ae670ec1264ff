package utils

import "math"

const (
	// DefaultPage is used when no page is requested
	DefaultPage = 1
	// DefaultLimit is the page size used when no limit is requested
	DefaultLimit = 50
	// MaxLimit caps the page size of list endpoints
	MaxLimit = 1000
)

// Pagination describes one page of a list result
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// NormalizePage applies defaults and bounds to a requested page and limit
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// Offset returns the number of rows to skip for page (1-based).
// It saturates at math.MaxInt rather than wrapping negative.
func Offset(page, limit int) int {
	if page <= 1 || limit < 1 {
		return 0
	}
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

// TotalPages is ceil(total / limit); zero when there are no rows
func TotalPages(total int64, limit int) int {
	if limit < 1 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// NewPagination builds the pagination block for a page of total rows
func NewPagination(page, limit int, total int64) Pagination {
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: TotalPages(total, limit),
	}
}
