package repositories

import (
	"context"

	"mawasim/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	GetAll(ctx context.Context) ([]models.Order, error)
	GetByID(ctx context.Context, id int64) (*models.Order, error)
	Create(ctx context.Context, order *models.Order) error
	Update(ctx context.Context, order *models.Order) error
	// Delete is an administrative override; the order lifecycle itself never
	// removes orders.
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*models.OrderStats, error)
}
