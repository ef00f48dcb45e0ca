// Package orders implements the order query engine: criteria building,
// cached list queries, statistics aggregation, and write-through mutations
// with coarse cache invalidation.
package orders

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/example/ordercrm/pkg/cache"
	"github.com/example/ordercrm/pkg/models"
)

const (
	DefaultListTTL  = 5 * time.Minute
	DefaultStatsTTL = 10 * time.Minute
)

// Options tunes the service. Zero TTLs fall back to the defaults.
// Singleflight collapses concurrent identical cache-miss computations;
// it is off by default, in which case concurrent misses for the same key
// each compute and store the same entry (wasteful but not incorrect).
type Options struct {
	ListTTL      time.Duration
	StatsTTL     time.Duration
	Singleflight bool
}

// Service orchestrates order reads and writes. Reads go cache-first; on a
// miss the store computes a fresh page which is cached before returning.
// Writes go straight to the store and clear the whole cache on success.
type Service struct {
	store    Store
	cache    cache.Cache
	logger   *zap.Logger
	listTTL  time.Duration
	statsTTL time.Duration
	group    *singleflight.Group
}

func NewService(store Store, c cache.Cache, logger *zap.Logger, opts Options) *Service {
	if opts.ListTTL <= 0 {
		opts.ListTTL = DefaultListTTL
	}
	if opts.StatsTTL <= 0 {
		opts.StatsTTL = DefaultStatsTTL
	}
	s := &Service{
		store:    store,
		cache:    c,
		logger:   logger,
		listTTL:  opts.ListTTL,
		statsTTL: opts.StatsTTL,
	}
	if opts.Singleflight {
		s.group = new(singleflight.Group)
	}
	return s
}

// List returns one page of the tenant's orders for the given query.
func (s *Service) List(ctx context.Context, tenantID string, q models.OrderQuery) (*models.OrderList, error) {
	q, err := NormalizeQuery(q)
	if err != nil {
		return nil, err
	}

	key := listCacheKey(tenantID, q)
	if payload, ok := s.cache.Get(ctx, key); ok {
		var cached models.OrderList
		if err := json.Unmarshal(payload, &cached); err == nil {
			return &cached, nil
		}
	}

	if s.group != nil {
		v, err, _ := s.group.Do(key, func() (interface{}, error) {
			return s.listMiss(ctx, key, tenantID, q)
		})
		if err != nil {
			return nil, err
		}
		return v.(*models.OrderList), nil
	}
	return s.listMiss(ctx, key, tenantID, q)
}

func (s *Service) listMiss(ctx context.Context, key, tenantID string, q models.OrderQuery) (*models.OrderList, error) {
	criteria := BuildCriteria(tenantID, q)
	skip := int64(q.Page-1) * int64(q.Limit)

	records, total, err := s.store.Find(ctx, criteria, BuildSort(q), skip, int64(q.Limit))
	if err != nil {
		s.logger.Error("order query failed",
			zap.String("tenant_id", tenantID),
			zap.Error(err))
		return nil, &StoreError{Op: "find", Err: err}
	}
	if records == nil {
		records = []models.Order{}
	}

	result := &models.OrderList{
		Orders:     records,
		Pagination: models.NewPagination(q.Page, q.Limit, total),
		Filters:    AppliedFilters(criteria),
	}
	s.cachePut(ctx, key, result, s.listTTL)
	return result, nil
}

// Stats returns the tenant's aggregate statistics, cached under a fixed
// per-tenant key.
func (s *Service) Stats(ctx context.Context, tenantID string) (*models.Statistics, error) {
	key := statsCacheKey(tenantID)
	if payload, ok := s.cache.Get(ctx, key); ok {
		var cached models.Statistics
		if err := json.Unmarshal(payload, &cached); err == nil {
			return &cached, nil
		}
	}

	if s.group != nil {
		v, err, _ := s.group.Do(key, func() (interface{}, error) {
			return s.statsMiss(ctx, key, tenantID)
		})
		if err != nil {
			return nil, err
		}
		return v.(*models.Statistics), nil
	}
	return s.statsMiss(ctx, key, tenantID)
}

func (s *Service) statsMiss(ctx context.Context, key, tenantID string) (*models.Statistics, error) {
	stats, err := s.store.Aggregate(ctx, tenantID)
	if err != nil {
		s.logger.Error("order aggregation failed",
			zap.String("tenant_id", tenantID),
			zap.Error(err))
		return nil, &StoreError{Op: "aggregate", Err: err}
	}
	s.cachePut(ctx, key, stats, s.statsTTL)
	return stats, nil
}

// Get fetches a single order.
func (s *Service) Get(ctx context.Context, tenantID, id string) (*models.Order, error) {
	order, err := s.store.FindOne(ctx, tenantID, id)
	if err != nil {
		s.logger.Error("order lookup failed",
			zap.String("tenant_id", tenantID),
			zap.String("order_id", id),
			zap.Error(err))
		return nil, &StoreError{Op: "find_one", Err: err}
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// Create validates and stores a new order, then clears the result cache.
func (s *Service) Create(ctx context.Context, tenantID string, in models.OrderInput) (*models.Order, error) {
	if err := ValidateInput(&in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order := &models.Order{
		ID:        uuid.NewString(),
		TenantID:  tenantID,
		Customer:  in.Customer,
		Category:  in.Category,
		Date:      in.Date,
		Source:    in.Source,
		Location:  in.Location,
		Amount:    in.Amount,
		Status:    in.Status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.Insert(ctx, order); err != nil {
		s.logger.Error("order insert failed",
			zap.String("tenant_id", tenantID),
			zap.Error(err))
		return nil, &StoreError{Op: "insert", Err: err}
	}

	s.cache.Clear(ctx)
	return order, nil
}

// Update merges the provided fields into an existing order and clears the
// result cache. A failed or not-found write leaves the cache untouched.
func (s *Service) Update(ctx context.Context, tenantID, id string, u models.OrderUpdate) (*models.Order, error) {
	if err := ValidateUpdate(&u); err != nil {
		return nil, err
	}

	order, err := s.store.UpdateOne(ctx, tenantID, id, u)
	if err != nil {
		s.logger.Error("order update failed",
			zap.String("tenant_id", tenantID),
			zap.String("order_id", id),
			zap.Error(err))
		return nil, &StoreError{Op: "update_one", Err: err}
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	s.cache.Clear(ctx)
	return order, nil
}

// Delete removes an order and clears the result cache.
func (s *Service) Delete(ctx context.Context, tenantID, id string) error {
	deleted, err := s.store.DeleteOne(ctx, tenantID, id)
	if err != nil {
		s.logger.Error("order delete failed",
			zap.String("tenant_id", tenantID),
			zap.String("order_id", id),
			zap.Error(err))
		return &StoreError{Op: "delete_one", Err: err}
	}
	if !deleted {
		return ErrOrderNotFound
	}

	s.cache.Clear(ctx)
	return nil
}

func (s *Service) cachePut(ctx context.Context, key string, v interface{}, ttl time.Duration) {
	payload, err := json.Marshal(v)
	if err != nil {
		return
	}
	s.cache.Set(ctx, key, payload, ttl)
}
