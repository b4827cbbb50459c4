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

// MongoProductRepository is a MongoDB implementation of ProductRepository.
type MongoProductRepository struct {
	collection *mongo.Collection
}

// NewMongoProductRepository creates a new instance of MongoProductRepository.
func NewMongoProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{
		collection: db.Collection("products"),
	}
}

// GetAll retrieves all products.
func (r *MongoProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its sequential id.
func (r *MongoProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.NotFound("product", id)
		}
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return &product, nil
}

// GetByCategory retrieves all active products in a category.
func (r *MongoProductRepository) GetByCategory(ctx context.Context, categoryID int64) ([]models.Product, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"categoryId": categoryID, "isActive": true})
	if err != nil {
		return nil, fmt.Errorf("failed to list products for category %d: %w", categoryID, err)
	}
	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

// Create inserts a new product document.
func (r *MongoProductRepository) Create(ctx context.Context, product *models.Product) error {
	if _, err := r.collection.InsertOne(ctx, product); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update replaces the stored product document.
func (r *MongoProductRepository) Update(ctx context.Context, product *models.Product) error {
	res, err := r.collection.ReplaceOne(ctx, bson.M{"id": product.ID}, product)
	if err != nil {
		return fmt.Errorf("failed to update product %d: %w", product.ID, err)
	}
	if res.MatchedCount == 0 {
		return errs.NotFound("product", product.ID)
	}
	return nil
}

// Delete removes a product by its id.
func (r *MongoProductRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return errs.NotFound("product", id)
	}
	return nil
}

// CreateIndexes sets up the product collection indexes.
func (r *MongoProductRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "categoryId", Value: 1}}},
		{Keys: bson.D{{Key: "isActive", Value: 1}}},
	}
	if _, err := r.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create product indexes: %w", err)
	}
	return nil
}

// MongoCategoryRepository is a MongoDB implementation of CategoryRepository.
type MongoCategoryRepository struct {
	collection *mongo.Collection
}

// NewMongoCategoryRepository creates a new instance of MongoCategoryRepository.
func NewMongoCategoryRepository(db *mongo.Database) *MongoCategoryRepository {
	return &MongoCategoryRepository{
		collection: db.Collection("categories"),
	}
}

// GetAll retrieves all categories.
func (r *MongoCategoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	var categories []models.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	return categories, nil
}

// GetByID retrieves a single category by its sequential id.
func (r *MongoCategoryRepository) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	var category models.Category
	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&category)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.NotFound("category", id)
		}
		return nil, fmt.Errorf("failed to get category %d: %w", id, err)
	}
	return &category, nil
}

// Create inserts a new category document.
func (r *MongoCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	if _, err := r.collection.InsertOne(ctx, category); err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// Update replaces the stored category document.
func (r *MongoCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	res, err := r.collection.ReplaceOne(ctx, bson.M{"id": category.ID}, category)
	if err != nil {
		return fmt.Errorf("failed to update category %d: %w", category.ID, err)
	}
	if res.MatchedCount == 0 {
		return errs.NotFound("category", category.ID)
	}
	return nil
}

// Delete removes a category by its id.
func (r *MongoCategoryRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete category %d: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return errs.NotFound("category", id)
	}
	return nil
}
