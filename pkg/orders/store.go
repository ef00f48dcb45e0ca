package orders

import (
	"context"

	"github.com/example/ordercrm/pkg/models"
)

// Store is the persistence collaborator. Implementations translate the
// store-agnostic criteria into their native query form; sorting and
// pagination happen store-side. UpdateOne and FindOne return (nil, nil)
// when no order matches, and DeleteOne returns false; the service maps
// those to the not-found outcome.
type Store interface {
	Find(ctx context.Context, c models.Criteria, sort models.SortSpec, skip, limit int64) ([]models.Order, int64, error)
	FindOne(ctx context.Context, tenantID, id string) (*models.Order, error)
	Aggregate(ctx context.Context, tenantID string) (*models.Statistics, error)
	Insert(ctx context.Context, o *models.Order) error
	UpdateOne(ctx context.Context, tenantID, id string, u models.OrderUpdate) (*models.Order, error)
	DeleteOne(ctx context.Context, tenantID, id string) (bool, error)
}
