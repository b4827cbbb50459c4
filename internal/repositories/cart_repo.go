package repositories

import (
	"context"

	"mawasim/internal/models"
)

// CartRepository defines the interface for cart item data access. Items are
// always scoped to their owning userId; lookups for another user's items
// report not found.
type CartRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.CartItem, error)
	GetByID(ctx context.Context, userID string, itemID int64) (*models.CartItem, error)
	// FindByProductAndOptions locates the item matching (userId, productId,
	// selectedOptions) so adds can merge instead of duplicating.
	FindByProductAndOptions(ctx context.Context, userID string, productID int64, selectedOptions map[string]string) (*models.CartItem, error)
	Create(ctx context.Context, item *models.CartItem) error
	Update(ctx context.Context, item *models.CartItem) error
	Delete(ctx context.Context, userID string, itemID int64) error
	DeleteByProduct(ctx context.Context, userID string, productID int64) error
	// Clear removes every item for the user. Clearing an empty cart is not
	// an error.
	Clear(ctx context.Context, userID string) error
}
