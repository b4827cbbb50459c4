package repositories

import (
	"context"

	"mawasim/internal/models"
)

// WishlistRepository defines the interface for wishlist data access.
type WishlistRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.WishlistItem, error)
	Find(ctx context.Context, userID string, productID int64) (*models.WishlistItem, error)
	Create(ctx context.Context, item *models.WishlistItem) error
	DeleteByProduct(ctx context.Context, userID string, productID int64) error
}
