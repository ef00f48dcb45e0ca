package orders

import (
	"testing"

	"github.com/example/ordercrm/pkg/models"
)

func amt(v float64) *float64 {
	return &v
}

func TestAggregateOrders(t *testing.T) {
	stats := AggregateOrders([]models.Order{
		{Customer: "Alice", Category: "Electronics", Source: "Website", Location: "Berlin", Amount: amt(100)},
		{Customer: "Bob", Category: "Clothing", Source: "Store", Location: "Hamburg", Amount: amt(200)},
	})

	if stats.Total != 2 {
		t.Errorf("got total %d, want 2", stats.Total)
	}
	if stats.TotalAmount != 300 {
		t.Errorf("got totalAmount %v, want 300", stats.TotalAmount)
	}
	if stats.AverageAmount != 150 {
		t.Errorf("got averageAmount %v, want 150", stats.AverageAmount)
	}
	if stats.ByCategory["Electronics"] != 1 || stats.ByCategory["Clothing"] != 1 {
		t.Errorf("unexpected byCategory: %v", stats.ByCategory)
	}
}

func TestAggregateOrdersEmpty(t *testing.T) {
	stats := AggregateOrders(nil)

	if stats.Total != 0 || stats.TotalAmount != 0 || stats.AverageAmount != 0 {
		t.Errorf("zero orders must yield zeroes, got %+v", stats)
	}
	if len(stats.ByCategory) != 0 || len(stats.BySource) != 0 || len(stats.ByLocation) != 0 {
		t.Errorf("zero orders must yield empty maps, got %+v", stats)
	}
}

func TestAggregateOrdersAbsentAmount(t *testing.T) {
	stats := AggregateOrders([]models.Order{
		{Category: "Food", Source: "Phone", Location: "Munich", Amount: amt(50)},
		{Category: "Food", Source: "Phone", Location: "Munich"},
	})

	// An absent amount contributes 0 but still counts toward the total.
	if stats.Total != 2 {
		t.Errorf("got total %d, want 2", stats.Total)
	}
	if stats.TotalAmount != 50 {
		t.Errorf("got totalAmount %v, want 50", stats.TotalAmount)
	}
	if stats.AverageAmount != 25 {
		t.Errorf("got averageAmount %v, want 25", stats.AverageAmount)
	}
}

func TestAggregateOrdersBreakdownsSumToTotal(t *testing.T) {
	set := []models.Order{
		{Category: "Electronics", Source: "Website", Location: "Berlin"},
		{Category: "Electronics", Source: "Mobile", Location: "Berlin"},
		{Category: "Books", Source: "Website", Location: "Hamburg"},
		{Category: "Toys", Source: "Marketplace", Location: "Munich", Amount: amt(12.5)},
	}
	stats := AggregateOrders(set)

	for name, m := range map[string]map[string]int64{
		"byCategory": stats.ByCategory,
		"bySource":   stats.BySource,
		"byLocation": stats.ByLocation,
	} {
		var sum int64
		for _, v := range m {
			sum += v
		}
		if sum != stats.Total {
			t.Errorf("%s sums to %d, want %d", name, sum, stats.Total)
		}
	}
}
