package models

// Sort keys accepted by the list endpoint.
const (
	SortByDate      = "date"
	SortByCustomer  = "customer"
	SortByAmount    = "amount"
	SortByCreatedAt = "createdAt"
)

const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

const (
	DefaultPage      = 1
	DefaultLimit     = 10
	MaxLimit         = 100
	DefaultSortBy    = SortByDate
	DefaultSortOrder = SortDesc
)

// OrderQuery carries the raw list-query parameters. Zero values mean
// "not provided"; Normalize in pkg/orders applies defaults and validates.
type OrderQuery struct {
	Page      int    `form:"page" json:"page"`
	Limit     int    `form:"limit" json:"limit"`
	SortBy    string `form:"sortBy" json:"sortBy"`
	SortOrder string `form:"sortOrder" json:"sortOrder"`
	Category  string `form:"category" json:"category,omitempty"`
	Source    string `form:"source" json:"source,omitempty"`
	Geo       string `form:"geo" json:"geo,omitempty"`
	DateFrom  string `form:"dateFrom" json:"dateFrom,omitempty"`
	DateTo    string `form:"dateTo" json:"dateTo,omitempty"`
	Search    string `form:"search" json:"search,omitempty"`
}

// Criteria is the store-agnostic filter produced from a validated query.
// When Search is non-empty it replaces the Category/Source/Geo filters.
type Criteria struct {
	TenantID string
	Category string
	Source   string
	Geo      string
	DateFrom string
	DateTo   string
	Search   string
}

type SortSpec struct {
	Field      string
	Descending bool
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// NewPagination derives the page metadata from the pre-pagination total.
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    int64(page) < totalPages,
		HasPrev:    page > 1,
	}
}

// AppliedFilters echoes the filters a list response was computed with.
type AppliedFilters struct {
	Category string `json:"category,omitempty"`
	Source   string `json:"source,omitempty"`
	Geo      string `json:"geo,omitempty"`
	DateFrom string `json:"dateFrom,omitempty"`
	DateTo   string `json:"dateTo,omitempty"`
	Search   string `json:"search,omitempty"`
}

type OrderList struct {
	Orders     []Order        `json:"orders"`
	Pagination Pagination     `json:"pagination"`
	Filters    AppliedFilters `json:"filters"`
}

type Statistics struct {
	Total         int64            `json:"total"`
	TotalAmount   float64          `json:"totalAmount"`
	AverageAmount float64          `json:"averageAmount"`
	ByCategory    map[string]int64 `json:"byCategory"`
	BySource      map[string]int64 `json:"bySource"`
	ByLocation    map[string]int64 `json:"byLocation"`
}
