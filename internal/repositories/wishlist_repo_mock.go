package repositories

import (
	"context"
	"sort"
	"sync"

	"mawasim/internal/errs"
	"mawasim/internal/models"
)

// MockWishlistRepository is an in-memory implementation of WishlistRepository.
type MockWishlistRepository struct {
	mu    sync.RWMutex
	items map[int64]models.WishlistItem
}

// NewMockWishlistRepository creates a new instance of MockWishlistRepository.
func NewMockWishlistRepository() *MockWishlistRepository {
	return &MockWishlistRepository{
		items: make(map[int64]models.WishlistItem),
	}
}

// ListByUser returns all wishlist items for a user, newest first.
func (r *MockWishlistRepository) ListByUser(_ context.Context, userID string) ([]models.WishlistItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var itemList []models.WishlistItem
	for _, item := range r.items {
		if item.UserID == userID {
			itemList = append(itemList, item)
		}
	}
	sort.Slice(itemList, func(i, j int) bool {
		return itemList[i].CreatedAt.After(itemList[j].CreatedAt)
	})
	return itemList, nil
}

// Find returns the user's wishlist entry for a product.
func (r *MockWishlistRepository) Find(_ context.Context, userID string, productID int64) (*models.WishlistItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.UserID == userID && item.ProductID == productID {
			i := item
			return &i, nil
		}
	}
	return nil, errs.NotFound("wishlist item", productID)
}

// Create adds a new wishlist item.
func (r *MockWishlistRepository) Create(_ context.Context, item *models.WishlistItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = *item
	return nil
}

// DeleteByProduct removes the user's wishlist entry for a product.
func (r *MockWishlistRepository) DeleteByProduct(_ context.Context, userID string, productID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, item := range r.items {
		if item.UserID == userID && item.ProductID == productID {
			delete(r.items, id)
			return nil
		}
	}
	return errs.NotFound("wishlist item", productID)
}
