package orders

import (
	"github.com/example/ordercrm/pkg/models"
)

// BuildCriteria turns a normalized query plus the tenant scope into the
// store-agnostic filter. The tenant scope is always applied. A free-text
// search term replaces the per-field substring filters; the two are
// mutually exclusive execution paths.
func BuildCriteria(tenantID string, q models.OrderQuery) models.Criteria {
	c := models.Criteria{
		TenantID: tenantID,
		DateFrom: q.DateFrom,
		DateTo:   q.DateTo,
	}
	if q.Search != "" {
		c.Search = q.Search
		return c
	}
	c.Category = q.Category
	c.Source = q.Source
	c.Geo = q.Geo
	return c
}

// BuildSort maps the query's sort parameters onto a sort spec.
func BuildSort(q models.OrderQuery) models.SortSpec {
	return models.SortSpec{
		Field:      q.SortBy,
		Descending: q.SortOrder == models.SortDesc,
	}
}

// AppliedFilters echoes the filters that were actually applied, for
// inclusion in the list response.
func AppliedFilters(c models.Criteria) models.AppliedFilters {
	return models.AppliedFilters{
		Category: c.Category,
		Source:   c.Source,
		Geo:      c.Geo,
		DateFrom: c.DateFrom,
		DateTo:   c.DateTo,
		Search:   c.Search,
	}
}
