package repository

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/example/ordercrm/pkg/config"
	"github.com/example/ordercrm/pkg/models"
)

// MongoOrderStore persists orders in a MongoDB collection. List queries
// and statistics both run as single aggregation pipelines so that
// filtering, sorting, pagination, and counting happen store-side in one
// round trip.
type MongoOrderStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

func NewMongoOrderStore(cfg *config.MongoDBConfig) (*MongoOrderStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, err
	}

	return &MongoOrderStore{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

func (s *MongoOrderStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *MongoOrderStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes the list and stats pipelines rely on.
func (s *MongoOrderStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "tenant_id", Value: 1}, {Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "tenant_id", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	return err
}

func (s *MongoOrderStore) Find(ctx context.Context, c models.Criteria, sort models.SortSpec, skip, limit int64) ([]models.Order, int64, error) {
	dir := 1
	if sort.Descending {
		dir = -1
	}

	pipeline := []bson.M{{"$match": matchFilter(c)}}

	var sortKey string
	switch sort.Field {
	case models.SortByCustomer:
		// Lexicographic case-insensitive order.
		pipeline = append(pipeline, bson.M{"$addFields": bson.M{
			"customer_sort": bson.M{"$toLower": "$customer"},
		}})
		sortKey = "customer_sort"
	case models.SortByAmount:
		// Absent amount sorts as 0.
		pipeline = append(pipeline, bson.M{"$addFields": bson.M{
			"amount_sort": bson.M{"$ifNull": bson.A{"$amount", 0}},
		}})
		sortKey = "amount_sort"
	case models.SortByCreatedAt:
		sortKey = "created_at"
	default:
		sortKey = "date"
	}

	pipeline = append(pipeline,
		bson.M{"$sort": bson.M{sortKey: dir}},
		bson.M{"$facet": bson.M{
			"data": bson.A{
				bson.M{"$skip": skip},
				bson.M{"$limit": limit},
			},
			"total": bson.A{
				bson.M{"$count": "count"},
			},
		}},
	)

	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var pages []struct {
		Data  []models.Order `bson:"data"`
		Total []struct {
			Count int64 `bson:"count"`
		} `bson:"total"`
	}
	if err := cursor.All(ctx, &pages); err != nil {
		return nil, 0, err
	}
	if len(pages) == 0 {
		return nil, 0, nil
	}

	var total int64
	if len(pages[0].Total) > 0 {
		total = pages[0].Total[0].Count
	}
	return pages[0].Data, total, nil
}

func (s *MongoOrderStore) FindOne(ctx context.Context, tenantID, id string) (*models.Order, error) {
	var order models.Order
	err := s.collection.FindOne(ctx, bson.M{"_id": id, "tenant_id": tenantID}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *MongoOrderStore) Aggregate(ctx context.Context, tenantID string) (*models.Statistics, error) {
	countBy := func(field string) bson.A {
		return bson.A{bson.M{"$group": bson.M{
			"_id":   "$" + field,
			"count": bson.M{"$sum": 1},
		}}}
	}

	pipeline := []bson.M{
		{"$match": bson.M{"tenant_id": tenantID}},
		{"$facet": bson.M{
			"totals": bson.A{bson.M{"$group": bson.M{
				"_id":         nil,
				"total":       bson.M{"$sum": 1},
				"totalAmount": bson.M{"$sum": bson.M{"$ifNull": bson.A{"$amount", 0}}},
			}}},
			"byCategory": countBy("category"),
			"bySource":   countBy("source"),
			"byLocation": countBy("location"),
		}},
	}

	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	type bucket struct {
		ID    string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	var facets []struct {
		Totals []struct {
			Total       int64   `bson:"total"`
			TotalAmount float64 `bson:"totalAmount"`
		} `bson:"totals"`
		ByCategory []bucket `bson:"byCategory"`
		BySource   []bucket `bson:"bySource"`
		ByLocation []bucket `bson:"byLocation"`
	}
	if err := cursor.All(ctx, &facets); err != nil {
		return nil, err
	}

	stats := &models.Statistics{
		ByCategory: make(map[string]int64),
		BySource:   make(map[string]int64),
		ByLocation: make(map[string]int64),
	}
	if len(facets) == 0 {
		return stats, nil
	}

	f := facets[0]
	if len(f.Totals) > 0 {
		stats.Total = f.Totals[0].Total
		stats.TotalAmount = f.Totals[0].TotalAmount
		if stats.Total > 0 {
			stats.AverageAmount = stats.TotalAmount / float64(stats.Total)
		}
	}
	for _, b := range f.ByCategory {
		stats.ByCategory[b.ID] = b.Count
	}
	for _, b := range f.BySource {
		stats.BySource[b.ID] = b.Count
	}
	for _, b := range f.ByLocation {
		stats.ByLocation[b.ID] = b.Count
	}
	return stats, nil
}

func (s *MongoOrderStore) Insert(ctx context.Context, o *models.Order) error {
	_, err := s.collection.InsertOne(ctx, o)
	return err
}

func (s *MongoOrderStore) UpdateOne(ctx context.Context, tenantID, id string, u models.OrderUpdate) (*models.Order, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if u.Customer != nil {
		set["customer"] = *u.Customer
	}
	if u.Category != nil {
		set["category"] = *u.Category
	}
	if u.Date != nil {
		set["date"] = *u.Date
	}
	if u.Source != nil {
		set["source"] = *u.Source
	}
	if u.Location != nil {
		set["location"] = *u.Location
	}
	if u.Amount != nil {
		set["amount"] = *u.Amount
	}
	if u.Status != nil {
		set["status"] = *u.Status
	}

	var order models.Order
	err := s.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "tenant_id": tenantID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *MongoOrderStore) DeleteOne(ctx context.Context, tenantID, id string) (bool, error) {
	res, err := s.collection.DeleteOne(ctx, bson.M{"_id": id, "tenant_id": tenantID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func matchFilter(c models.Criteria) bson.M {
	filter := bson.M{"tenant_id": c.TenantID}

	if c.Search != "" {
		re := containsRegex(c.Search)
		filter["$or"] = bson.A{
			bson.M{"customer": re},
			bson.M{"_id": re},
			bson.M{"category": re},
			bson.M{"source": re},
			bson.M{"location": re},
		}
	} else {
		if c.Category != "" {
			filter["category"] = containsRegex(c.Category)
		}
		if c.Source != "" {
			filter["source"] = containsRegex(c.Source)
		}
		if c.Geo != "" {
			filter["location"] = containsRegex(c.Geo)
		}
	}

	if c.DateFrom != "" || c.DateTo != "" {
		dateRange := bson.M{}
		if c.DateFrom != "" {
			dateRange["$gte"] = c.DateFrom
		}
		if c.DateTo != "" {
			dateRange["$lte"] = c.DateTo
		}
		filter["date"] = dateRange
	}

	return filter
}

// containsRegex builds a case-insensitive substring match.
func containsRegex(term string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
}
