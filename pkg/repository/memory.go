package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/example/ordercrm/pkg/models"
	"github.com/example/ordercrm/pkg/orders"
)

// MemoryOrderStore keeps orders in process memory. It implements the same
// store contract as MongoOrderStore with pure Go filtering, sorting, and
// aggregation, and backs the test suite and the embedded mode.
type MemoryOrderStore struct {
	mu     sync.RWMutex
	orders []models.Order
}

func NewMemoryOrderStore() *MemoryOrderStore {
	return &MemoryOrderStore{}
}

func (s *MemoryOrderStore) Find(_ context.Context, c models.Criteria, sortSpec models.SortSpec, skip, limit int64) ([]models.Order, int64, error) {
	s.mu.RLock()
	matched := make([]models.Order, 0)
	for _, o := range s.orders {
		if matches(&o, c) {
			matched = append(matched, o)
		}
	}
	s.mu.RUnlock()

	sortOrders(matched, sortSpec)

	total := int64(len(matched))
	if skip >= total {
		return []models.Order{}, total, nil
	}
	end := skip + limit
	if end > total {
		end = total
	}
	return matched[skip:end], total, nil
}

func (s *MemoryOrderStore) FindOne(_ context.Context, tenantID, id string) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders {
		if o.ID == id && o.TenantID == tenantID {
			out := o
			return &out, nil
		}
	}
	return nil, nil
}

func (s *MemoryOrderStore) Aggregate(_ context.Context, tenantID string) (*models.Statistics, error) {
	s.mu.RLock()
	scoped := make([]models.Order, 0)
	for _, o := range s.orders {
		if o.TenantID == tenantID {
			scoped = append(scoped, o)
		}
	}
	s.mu.RUnlock()

	return orders.AggregateOrders(scoped), nil
}

func (s *MemoryOrderStore) Insert(_ context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append(s.orders, *o)
	return nil
}

func (s *MemoryOrderStore) UpdateOne(_ context.Context, tenantID, id string, u models.OrderUpdate) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		o := &s.orders[i]
		if o.ID != id || o.TenantID != tenantID {
			continue
		}
		if u.Customer != nil {
			o.Customer = *u.Customer
		}
		if u.Category != nil {
			o.Category = *u.Category
		}
		if u.Date != nil {
			o.Date = *u.Date
		}
		if u.Source != nil {
			o.Source = *u.Source
		}
		if u.Location != nil {
			o.Location = *u.Location
		}
		if u.Amount != nil {
			amount := *u.Amount
			o.Amount = &amount
		}
		if u.Status != nil {
			o.Status = *u.Status
		}
		o.UpdatedAt = time.Now().UTC()
		out := *o
		return &out, nil
	}
	return nil, nil
}

func (s *MemoryOrderStore) DeleteOne(_ context.Context, tenantID, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == id && s.orders[i].TenantID == tenantID {
			s.orders = append(s.orders[:i], s.orders[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func matches(o *models.Order, c models.Criteria) bool {
	if o.TenantID != c.TenantID {
		return false
	}
	if c.DateFrom != "" && o.Date < c.DateFrom {
		return false
	}
	if c.DateTo != "" && o.Date > c.DateTo {
		return false
	}
	if c.Search != "" {
		// Broad match: first hit in any field qualifies.
		return containsFold(o.Customer, c.Search) ||
			containsFold(o.ID, c.Search) ||
			containsFold(o.Category, c.Search) ||
			containsFold(o.Source, c.Search) ||
			containsFold(o.Location, c.Search)
	}
	if c.Category != "" && !containsFold(o.Category, c.Category) {
		return false
	}
	if c.Source != "" && !containsFold(o.Source, c.Source) {
		return false
	}
	if c.Geo != "" && !containsFold(o.Location, c.Geo) {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// sortOrders sorts in place. Ties keep the underlying collection order.
func sortOrders(list []models.Order, spec models.SortSpec) {
	var less func(a, b *models.Order) bool
	switch spec.Field {
	case models.SortByCustomer:
		less = func(a, b *models.Order) bool {
			return strings.ToLower(a.Customer) < strings.ToLower(b.Customer)
		}
	case models.SortByAmount:
		less = func(a, b *models.Order) bool {
			return a.AmountOrZero() < b.AmountOrZero()
		}
	case models.SortByCreatedAt:
		less = func(a, b *models.Order) bool {
			return a.CreatedAt.Before(b.CreatedAt)
		}
	default:
		less = func(a, b *models.Order) bool {
			return a.Date < b.Date
		}
	}

	sort.SliceStable(list, func(i, j int) bool {
		if spec.Descending {
			return less(&list[j], &list[i])
		}
		return less(&list[i], &list[j])
	})
}
