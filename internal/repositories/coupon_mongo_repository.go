package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mawasim/internal/errs"
	"mawasim/internal/models"
)

// MongoCouponRepository is a MongoDB implementation of CouponRepository.
type MongoCouponRepository struct {
	collection *mongo.Collection
}

// NewMongoCouponRepository creates a new instance of MongoCouponRepository.
func NewMongoCouponRepository(db *mongo.Database) *MongoCouponRepository {
	return &MongoCouponRepository{
		collection: db.Collection("coupons"),
	}
}

// GetAll retrieves all coupons, newest first.
func (r *MongoCouponRepository) GetAll(ctx context.Context) ([]models.Coupon, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}
	var coupons []models.Coupon
	if err := cursor.All(ctx, &coupons); err != nil {
		return nil, fmt.Errorf("failed to decode coupons: %w", err)
	}
	return coupons, nil
}

// GetByID retrieves a single coupon by its sequential id.
func (r *MongoCouponRepository) GetByID(ctx context.Context, id int64) (*models.Coupon, error) {
	var coupon models.Coupon
	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&coupon)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.NotFound("coupon", id)
		}
		return nil, fmt.Errorf("failed to get coupon %d: %w", id, err)
	}
	return &coupon, nil
}

// GetActiveByCode retrieves an active coupon by its code. Codes are stored
// upper-cased, so the lookup is effectively case-insensitive.
func (r *MongoCouponRepository) GetActiveByCode(ctx context.Context, code string) (*models.Coupon, error) {
	code = strings.ToUpper(code)
	var coupon models.Coupon
	err := r.collection.FindOne(ctx, bson.M{"code": code, "isActive": true}).Decode(&coupon)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.NotFound("coupon", code)
		}
		return nil, fmt.Errorf("failed to get coupon by code %s: %w", code, err)
	}
	return &coupon, nil
}

// Create inserts a new coupon document.
func (r *MongoCouponRepository) Create(ctx context.Context, coupon *models.Coupon) error {
	if _, err := r.collection.InsertOne(ctx, coupon); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errs.Conflict("coupon code %s already exists", coupon.Code)
		}
		return fmt.Errorf("failed to create coupon: %w", err)
	}
	return nil
}

// Update replaces the stored coupon document.
func (r *MongoCouponRepository) Update(ctx context.Context, coupon *models.Coupon) error {
	res, err := r.collection.ReplaceOne(ctx, bson.M{"id": coupon.ID}, coupon)
	if err != nil {
		return fmt.Errorf("failed to update coupon %d: %w", coupon.ID, err)
	}
	if res.MatchedCount == 0 {
		return errs.NotFound("coupon", coupon.ID)
	}
	return nil
}

// Delete removes a coupon by its id.
func (r *MongoCouponRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete coupon %d: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return errs.NotFound("coupon", id)
	}
	return nil
}

// IncrementUsage bumps usedCount by one, conditional on the usage limit not
// being reached at write time. The filter re-checks the limit inside the same
// atomic update, so two concurrent checkouts can never both increment past it.
func (r *MongoCouponRepository) IncrementUsage(ctx context.Context, id int64) error {
	filter := bson.M{
		"id": id,
		"$or": bson.A{
			bson.M{"usageLimit": bson.M{"$lte": 0}},
			bson.M{"usageLimit": bson.M{"$exists": false}},
			bson.M{"$expr": bson.M{"$lt": bson.A{"$usedCount", "$usageLimit"}}},
		},
	}
	update := bson.M{
		"$inc": bson.M{"usedCount": int64(1)},
		"$set": bson.M{"updatedAt": time.Now()},
	}

	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to increment usage for coupon %d: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return errs.Conflict("coupon %d usage limit reached", id)
	}
	return nil
}

// CreateIndexes sets up the coupon collection indexes.
func (r *MongoCouponRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "code", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "isActive", Value: 1}}},
		{Keys: bson.D{{Key: "expiryDate", Value: 1}}},
	}
	if _, err := r.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create coupon indexes: %w", err)
	}
	return nil
}
