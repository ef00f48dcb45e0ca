package orders

import (
	"github.com/shopspring/decimal"

	"github.com/example/ordercrm/pkg/models"
)

// AggregateOrders computes the statistics for a full order set. Absent
// amounts contribute 0 to the sum but still count toward the total, so
// each breakdown map's values sum to Total. Zero orders yield zeroes and
// empty maps, not an error.
func AggregateOrders(orders []models.Order) *models.Statistics {
	stats := &models.Statistics{
		Total:      int64(len(orders)),
		ByCategory: make(map[string]int64),
		BySource:   make(map[string]int64),
		ByLocation: make(map[string]int64),
	}

	sum := decimal.Zero
	for i := range orders {
		o := &orders[i]
		if o.Amount != nil {
			sum = sum.Add(decimal.NewFromFloat(*o.Amount))
		}
		stats.ByCategory[o.Category]++
		stats.BySource[o.Source]++
		stats.ByLocation[o.Location]++
	}

	stats.TotalAmount = sum.InexactFloat64()
	if stats.Total > 0 {
		stats.AverageAmount = sum.Div(decimal.NewFromInt(stats.Total)).InexactFloat64()
	}
	return stats
}
