package repositories

import (
	"context"
	"sort"
	"sync"

	"mawasim/internal/errs"
	"mawasim/internal/models"
)

// MockCartRepository is an in-memory implementation of CartRepository.
type MockCartRepository struct {
	mu    sync.RWMutex
	items map[int64]models.CartItem
}

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{
		items: make(map[int64]models.CartItem),
	}
}

// ListByUser returns all cart items for a user, newest first.
func (r *MockCartRepository) ListByUser(_ context.Context, userID string) ([]models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var itemList []models.CartItem
	for _, item := range r.items {
		if item.UserID == userID {
			itemList = append(itemList, item)
		}
	}
	sort.Slice(itemList, func(i, j int) bool {
		if itemList[i].CreatedAt.Equal(itemList[j].CreatedAt) {
			return itemList[i].ID > itemList[j].ID
		}
		return itemList[i].CreatedAt.After(itemList[j].CreatedAt)
	})
	return itemList, nil
}

// GetByID returns a cart item owned by the user.
func (r *MockCartRepository) GetByID(_ context.Context, userID string, itemID int64) (*models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[itemID]
	if !ok || item.UserID != userID {
		return nil, errs.NotFound("cart item", itemID)
	}
	return &item, nil
}

// FindByProductAndOptions locates the item matching the product and options.
func (r *MockCartRepository) FindByProductAndOptions(_ context.Context, userID string, productID int64, selectedOptions map[string]string) (*models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.UserID == userID && item.ProductID == productID && models.OptionsEqual(item.SelectedOptions, selectedOptions) {
			i := item
			return &i, nil
		}
	}
	return nil, errs.NotFound("cart item", productID)
}

// Create adds a new cart item.
func (r *MockCartRepository) Create(_ context.Context, item *models.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = *item
	return nil
}

// Update replaces a stored cart item.
func (r *MockCartRepository) Update(_ context.Context, item *models.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[item.ID]
	if !ok || existing.UserID != item.UserID {
		return errs.NotFound("cart item", item.ID)
	}
	r.items[item.ID] = *item
	return nil
}

// Delete removes a cart item owned by the user.
func (r *MockCartRepository) Delete(_ context.Context, userID string, itemID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[itemID]
	if !ok || item.UserID != userID {
		return errs.NotFound("cart item", itemID)
	}
	delete(r.items, itemID)
	return nil
}

// DeleteByProduct removes the user's cart item for a product.
func (r *MockCartRepository) DeleteByProduct(_ context.Context, userID string, productID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, item := range r.items {
		if item.UserID == userID && item.ProductID == productID {
			delete(r.items, id)
			return nil
		}
	}
	return errs.NotFound("cart item", productID)
}

// Clear removes every cart item for the user.
func (r *MockCartRepository) Clear(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, item := range r.items {
		if item.UserID == userID {
			delete(r.items, id)
		}
	}
	return nil
}
