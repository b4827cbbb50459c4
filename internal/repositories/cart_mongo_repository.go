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

// MongoCartRepository is a MongoDB implementation of CartRepository. Each
// cart item is its own document; a user's cart is simply the set of their
// documents.
type MongoCartRepository struct {
	collection *mongo.Collection
}

// NewMongoCartRepository creates a new instance of MongoCartRepository.
func NewMongoCartRepository(db *mongo.Database) *MongoCartRepository {
	return &MongoCartRepository{
		collection: db.Collection("cart_items"),
	}
}

// ListByUser retrieves all cart items for a user, newest first.
func (r *MongoCartRepository) ListByUser(ctx context.Context, userID string) ([]models.CartItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items for %s: %w", userID, err)
	}
	var items []models.CartItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode cart items: %w", err)
	}
	return items, nil
}

// GetByID retrieves a cart item owned by the user.
func (r *MongoCartRepository) GetByID(ctx context.Context, userID string, itemID int64) (*models.CartItem, error) {
	var item models.CartItem
	err := r.collection.FindOne(ctx, bson.M{"id": itemID, "userId": userID}).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.NotFound("cart item", itemID)
		}
		return nil, fmt.Errorf("failed to get cart item %d: %w", itemID, err)
	}
	return &item, nil
}

// FindByProductAndOptions locates the item matching the product and the exact
// selected options. Option maps are compared in Go rather than as embedded
// documents; document equality in the database is field-order sensitive and
// maps do not marshal in a stable order.
func (r *MongoCartRepository) FindByProductAndOptions(ctx context.Context, userID string, productID int64, selectedOptions map[string]string) (*models.CartItem, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID, "productId": productID})
	if err != nil {
		return nil, fmt.Errorf("failed to find cart items for product %d: %w", productID, err)
	}
	var items []models.CartItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode cart items: %w", err)
	}
	for i := range items {
		if models.OptionsEqual(items[i].SelectedOptions, selectedOptions) {
			return &items[i], nil
		}
	}
	return nil, errs.NotFound("cart item", productID)
}

// Create inserts a new cart item document.
func (r *MongoCartRepository) Create(ctx context.Context, item *models.CartItem) error {
	if _, err := r.collection.InsertOne(ctx, item); err != nil {
		return fmt.Errorf("failed to create cart item: %w", err)
	}
	return nil
}

// Update replaces the stored cart item document.
func (r *MongoCartRepository) Update(ctx context.Context, item *models.CartItem) error {
	res, err := r.collection.ReplaceOne(ctx, bson.M{"id": item.ID, "userId": item.UserID}, item)
	if err != nil {
		return fmt.Errorf("failed to update cart item %d: %w", item.ID, err)
	}
	if res.MatchedCount == 0 {
		return errs.NotFound("cart item", item.ID)
	}
	return nil
}

// Delete removes a cart item owned by the user.
func (r *MongoCartRepository) Delete(ctx context.Context, userID string, itemID int64) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"id": itemID, "userId": userID})
	if err != nil {
		return fmt.Errorf("failed to delete cart item %d: %w", itemID, err)
	}
	if res.DeletedCount == 0 {
		return errs.NotFound("cart item", itemID)
	}
	return nil
}

// DeleteByProduct removes the user's cart item for a product.
func (r *MongoCartRepository) DeleteByProduct(ctx context.Context, userID string, productID int64) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"userId": userID, "productId": productID})
	if err != nil {
		return fmt.Errorf("failed to delete cart item for product %d: %w", productID, err)
	}
	if res.DeletedCount == 0 {
		return errs.NotFound("cart item", productID)
	}
	return nil
}

// Clear removes every cart item for the user.
func (r *MongoCartRepository) Clear(ctx context.Context, userID string) error {
	if _, err := r.collection.DeleteMany(ctx, bson.M{"userId": userID}); err != nil {
		return fmt.Errorf("failed to clear cart for %s: %w", userID, err)
	}
	return nil
}

// CreateIndexes sets up the cart collection indexes.
func (r *MongoCartRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "productId", Value: 1}}},
	}
	if _, err := r.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create cart indexes: %w", err)
	}
	return nil
}
