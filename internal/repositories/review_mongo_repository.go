package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mawasim/internal/errs"
	"mawasim/internal/models"
)

// MongoReviewRepository is a MongoDB implementation of ReviewRepository.
type MongoReviewRepository struct {
	collection *mongo.Collection
}

// NewMongoReviewRepository creates a new instance of MongoReviewRepository.
func NewMongoReviewRepository(db *mongo.Database) *MongoReviewRepository {
	return &MongoReviewRepository{
		collection: db.Collection("reviews"),
	}
}

// GetAll retrieves all reviews, newest first.
func (r *MongoReviewRepository) GetAll(ctx context.Context) ([]models.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}

// ListByProduct retrieves all reviews for a product, newest first.
func (r *MongoReviewRepository) ListByProduct(ctx context.Context, productID int64) ([]models.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"productId": productID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews for product %d: %w", productID, err)
	}
	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}

// Create inserts a new review document.
func (r *MongoReviewRepository) Create(ctx context.Context, review *models.Review) error {
	if _, err := r.collection.InsertOne(ctx, review); err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// Delete removes a review by its id.
func (r *MongoReviewRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete review %d: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return errs.NotFound("review", id)
	}
	return nil
}
