package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mawasim/internal/errs"
	"mawasim/internal/models"
)

// MongoOrderRepository is a MongoDB implementation of OrderRepository.
type MongoOrderRepository struct {
	collection *mongo.Collection
}

// NewMongoOrderRepository creates a new instance of MongoOrderRepository.
func NewMongoOrderRepository(db *mongo.Database) *MongoOrderRepository {
	return &MongoOrderRepository{
		collection: db.Collection("orders"),
	}
}

// GetAll retrieves all orders, newest first.
func (r *MongoOrderRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "orderDate", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, nil
}

// GetByID retrieves a single order by its sequential id.
func (r *MongoOrderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.NotFound("order", id)
		}
		return nil, fmt.Errorf("failed to get order %d: %w", id, err)
	}
	return &order, nil
}

// Create inserts a new order document.
func (r *MongoOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if _, err := r.collection.InsertOne(ctx, order); err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// Update replaces the stored order document.
func (r *MongoOrderRepository) Update(ctx context.Context, order *models.Order) error {
	res, err := r.collection.ReplaceOne(ctx, bson.M{"id": order.ID}, order)
	if err != nil {
		return fmt.Errorf("failed to update order %d: %w", order.ID, err)
	}
	if res.MatchedCount == 0 {
		return errs.NotFound("order", order.ID)
	}
	return nil
}

// Delete removes an order by its id.
func (r *MongoOrderRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete order %d: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return errs.NotFound("order", id)
	}
	return nil
}

// Stats aggregates order counts by status and total revenue across all
// non-cancelled orders.
func (r *MongoOrderRepository) Stats(ctx context.Context) (*models.OrderStats, error) {
	stats := &models.OrderStats{}

	var err error
	if stats.TotalOrders, err = r.collection.CountDocuments(ctx, bson.M{}); err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}
	if stats.PendingOrders, err = r.collection.CountDocuments(ctx, bson.M{"status": models.StatusPending}); err != nil {
		return nil, fmt.Errorf("failed to count pending orders: %w", err)
	}
	if stats.DeliveredOrders, err = r.collection.CountDocuments(ctx, bson.M{"status": models.StatusDelivered}); err != nil {
		return nil, fmt.Errorf("failed to count delivered orders: %w", err)
	}
	if stats.CancelledOrders, err = r.collection.CountDocuments(ctx, bson.M{"status": models.StatusCancelled}); err != nil {
		return nil, fmt.Errorf("failed to count cancelled orders: %w", err)
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": bson.M{"$ne": models.StatusCancelled}}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$total"}}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate revenue: %w", err)
	}
	var results []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode revenue aggregation: %w", err)
	}
	if len(results) > 0 {
		stats.TotalRevenue = results[0].Total
	}
	return stats, nil
}

// CreateIndexes sets up the order collection indexes.
func (r *MongoOrderRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "customerEmail", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "orderDate", Value: -1}}},
	}
	if _, err := r.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create order indexes: %w", err)
	}
	return nil
}
