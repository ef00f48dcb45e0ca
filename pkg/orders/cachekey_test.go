package orders

import (
	"testing"

	"github.com/example/ordercrm/pkg/models"
)

func TestListCacheKeyDeterministic(t *testing.T) {
	a := models.OrderQuery{Page: 1, Limit: 10, SortBy: "date", SortOrder: "desc", Category: "Food", DateFrom: "2025-01-01"}
	b := models.OrderQuery{DateFrom: "2025-01-01", Category: "Food", SortOrder: "desc", SortBy: "date", Limit: 10, Page: 1}

	if listCacheKey("t1", a) != listCacheKey("t1", b) {
		t.Error("semantically identical queries produced different keys")
	}
}

func TestListCacheKeyTenantScoped(t *testing.T) {
	q := models.OrderQuery{Page: 1, Limit: 10, SortBy: "date", SortOrder: "desc"}
	if listCacheKey("t1", q) == listCacheKey("t2", q) {
		t.Error("different tenants share a cache key")
	}
}

func TestListCacheKeyDistinguishesQueries(t *testing.T) {
	base := models.OrderQuery{Page: 1, Limit: 10, SortBy: "date", SortOrder: "desc"}
	page2 := base
	page2.Page = 2
	if listCacheKey("t1", base) == listCacheKey("t1", page2) {
		t.Error("different pages share a cache key")
	}
}

func TestListCacheKeyEscapesSeparators(t *testing.T) {
	// A filter value containing the separator characters must not alias
	// a different query's key.
	a := models.OrderQuery{Page: 1, Limit: 10, SortBy: "date", SortOrder: "desc", Category: "x|geo=y"}
	b := models.OrderQuery{Page: 1, Limit: 10, SortBy: "date", SortOrder: "desc", Category: "x", Geo: "y"}

	if listCacheKey("t1", a) == listCacheKey("t1", b) {
		t.Error("distinct queries alias the same cache key")
	}
}

func TestListCacheKeySearchReplacesFilters(t *testing.T) {
	// Search and the field filters are mutually exclusive execution paths,
	// so the field filters must not leak into a search key.
	withSearch := models.OrderQuery{Page: 1, Limit: 10, SortBy: "date", SortOrder: "desc", Search: "alice", Category: "Food"}
	searchOnly := models.OrderQuery{Page: 1, Limit: 10, SortBy: "date", SortOrder: "desc", Search: "alice"}

	if listCacheKey("t1", withSearch) != listCacheKey("t1", searchOnly) {
		t.Error("ignored field filters changed the search cache key")
	}
}

func TestStatsCacheKey(t *testing.T) {
	if statsCacheKey("t1") == statsCacheKey("t2") {
		t.Error("different tenants share a stats key")
	}
}
