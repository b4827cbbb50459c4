package repositories

import (
	"context"

	"mawasim/internal/models"
)

// ReviewRepository defines the interface for product review data access.
type ReviewRepository interface {
	GetAll(ctx context.Context) ([]models.Review, error)
	ListByProduct(ctx context.Context, productID int64) ([]models.Review, error)
	Create(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id int64) error
}
