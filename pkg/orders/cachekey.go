package orders

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/example/ordercrm/pkg/models"
)

// Cache keys are canonical: parameters are serialized in sorted-key order
// so that semantically identical queries always map to the same entry,
// regardless of how the query was constructed. Values are escaped so a
// filter value containing the separator characters cannot alias another
// query's key.

func listCacheKey(tenantID string, q models.OrderQuery) string {
	params := map[string]string{
		"page":      strconv.Itoa(q.Page),
		"limit":     strconv.Itoa(q.Limit),
		"sortBy":    q.SortBy,
		"sortOrder": q.SortOrder,
	}
	if q.Search != "" {
		params["search"] = q.Search
	} else {
		if q.Category != "" {
			params["category"] = q.Category
		}
		if q.Source != "" {
			params["source"] = q.Source
		}
		if q.Geo != "" {
			params["geo"] = q.Geo
		}
	}
	if q.DateFrom != "" {
		params["dateFrom"] = q.DateFrom
	}
	if q.DateTo != "" {
		params["dateTo"] = q.DateTo
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("orders:list:")
	b.WriteString(tenantID)
	for _, k := range keys {
		b.WriteByte('|')
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(params[k]))
	}
	return b.String()
}

func statsCacheKey(tenantID string) string {
	return "orders:stats:" + tenantID
}
