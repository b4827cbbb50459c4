package repositories

import (
	"context"

	"mawasim/internal/models"
)

// CustomerRepository defines the interface for customer account data access.
type CustomerRepository interface {
	GetAll(ctx context.Context) ([]models.Customer, error)
	GetByID(ctx context.Context, id int64) (*models.Customer, error)
	// GetByEmail looks up a customer by lower-cased email.
	GetByEmail(ctx context.Context, email string) (*models.Customer, error)
	Create(ctx context.Context, customer *models.Customer) error
	Update(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*models.CustomerStats, error)
}
