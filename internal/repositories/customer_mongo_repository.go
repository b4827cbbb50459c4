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

// MongoCustomerRepository is a MongoDB implementation of CustomerRepository.
type MongoCustomerRepository struct {
	collection *mongo.Collection
}

// NewMongoCustomerRepository creates a new instance of MongoCustomerRepository.
func NewMongoCustomerRepository(db *mongo.Database) *MongoCustomerRepository {
	return &MongoCustomerRepository{
		collection: db.Collection("customers"),
	}
}

// GetAll retrieves all customers, newest first.
func (r *MongoCustomerRepository) GetAll(ctx context.Context) ([]models.Customer, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	var customers []models.Customer
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, fmt.Errorf("failed to decode customers: %w", err)
	}
	return customers, nil
}

// GetByID retrieves a single customer by its sequential id.
func (r *MongoCustomerRepository) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	var customer models.Customer
	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&customer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.NotFound("customer", id)
		}
		return nil, fmt.Errorf("failed to get customer %d: %w", id, err)
	}
	return &customer, nil
}

// GetByEmail retrieves a customer by lower-cased email.
func (r *MongoCustomerRepository) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	email = strings.ToLower(email)
	var customer models.Customer
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&customer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.NotFound("customer", email)
		}
		return nil, fmt.Errorf("failed to get customer by email: %w", err)
	}
	return &customer, nil
}

// Create inserts a new customer document.
func (r *MongoCustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	if _, err := r.collection.InsertOne(ctx, customer); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errs.Conflict("email %s already registered", customer.Email)
		}
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

// Update replaces the stored customer document.
func (r *MongoCustomerRepository) Update(ctx context.Context, customer *models.Customer) error {
	res, err := r.collection.ReplaceOne(ctx, bson.M{"id": customer.ID}, customer)
	if err != nil {
		return fmt.Errorf("failed to update customer %d: %w", customer.ID, err)
	}
	if res.MatchedCount == 0 {
		return errs.NotFound("customer", customer.ID)
	}
	return nil
}

// Delete removes a customer by its id.
func (r *MongoCustomerRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete customer %d: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return errs.NotFound("customer", id)
	}
	return nil
}

// Stats aggregates account counts for the admin dashboard.
func (r *MongoCustomerRepository) Stats(ctx context.Context) (*models.CustomerStats, error) {
	stats := &models.CustomerStats{}

	var err error
	if stats.TotalCustomers, err = r.collection.CountDocuments(ctx, bson.M{}); err != nil {
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}
	if stats.ActiveCustomers, err = r.collection.CountDocuments(ctx, bson.M{"status": "active"}); err != nil {
		return nil, fmt.Errorf("failed to count active customers: %w", err)
	}
	monthStart := time.Now().AddDate(0, -1, 0)
	if stats.NewThisMonth, err = r.collection.CountDocuments(ctx, bson.M{"createdAt": bson.M{"$gte": monthStart}}); err != nil {
		return nil, fmt.Errorf("failed to count new customers: %w", err)
	}
	return stats, nil
}

// CreateIndexes sets up the customer collection indexes.
func (r *MongoCustomerRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := r.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create customer indexes: %w", err)
	}
	return nil
}
