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

// MongoWishlistRepository is a MongoDB implementation of WishlistRepository.
type MongoWishlistRepository struct {
	collection *mongo.Collection
}

// NewMongoWishlistRepository creates a new instance of MongoWishlistRepository.
func NewMongoWishlistRepository(db *mongo.Database) *MongoWishlistRepository {
	return &MongoWishlistRepository{
		collection: db.Collection("wishlist_items"),
	}
}

// ListByUser retrieves all wishlist items for a user, newest first.
func (r *MongoWishlistRepository) ListByUser(ctx context.Context, userID string) ([]models.WishlistItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist for %s: %w", userID, err)
	}
	var items []models.WishlistItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode wishlist items: %w", err)
	}
	return items, nil
}

// Find retrieves the user's wishlist entry for a product.
func (r *MongoWishlistRepository) Find(ctx context.Context, userID string, productID int64) (*models.WishlistItem, error) {
	var item models.WishlistItem
	err := r.collection.FindOne(ctx, bson.M{"userId": userID, "productId": productID}).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.NotFound("wishlist item", productID)
		}
		return nil, fmt.Errorf("failed to find wishlist item: %w", err)
	}
	return &item, nil
}

// Create inserts a new wishlist item document.
func (r *MongoWishlistRepository) Create(ctx context.Context, item *models.WishlistItem) error {
	if _, err := r.collection.InsertOne(ctx, item); err != nil {
		return fmt.Errorf("failed to create wishlist item: %w", err)
	}
	return nil
}

// DeleteByProduct removes the user's wishlist entry for a product.
func (r *MongoWishlistRepository) DeleteByProduct(ctx context.Context, userID string, productID int64) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"userId": userID, "productId": productID})
	if err != nil {
		return fmt.Errorf("failed to delete wishlist item for product %d: %w", productID, err)
	}
	if res.DeletedCount == 0 {
		return errs.NotFound("wishlist item", productID)
	}
	return nil
}

// CreateIndexes sets up the wishlist collection indexes.
func (r *MongoWishlistRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "productId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := r.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create wishlist indexes: %w", err)
	}
	return nil
}
