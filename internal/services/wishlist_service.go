package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mawasim/internal/errs"
	"mawasim/internal/models"
	"mawasim/internal/repositories"
)

// WishlistService handles business logic for wishlists.
type WishlistService struct {
	wishlistRepo repositories.WishlistRepository
	productRepo  repositories.ProductRepository
	seqRepo      repositories.SequenceRepository
}

// NewWishlistService creates a new WishlistService.
func NewWishlistService(wishlistRepo repositories.WishlistRepository, productRepo repositories.ProductRepository, seqRepo repositories.SequenceRepository) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
		seqRepo:      seqRepo,
	}
}

// Add saves a product to the user's wishlist. Adding a product that is
// already saved is an error.
func (s *WishlistService) Add(ctx context.Context, userID string, productID int64) (*models.WishlistItem, error) {
	if userID == "" {
		userID = models.GuestUserID
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if _, err := s.wishlistRepo.Find(ctx, userID, productID); err == nil {
		return nil, errs.Conflict("product %d already in wishlist", productID)
	}

	id, err := s.seqRepo.Next(ctx, repositories.SeqWishlist)
	if err != nil {
		return nil, fmt.Errorf("failed to assign wishlist item id: %w", err)
	}

	item := &models.WishlistItem{
		ID:          id,
		UserID:      userID,
		ProductID:   product.ID,
		ProductName: product.Name,
		Price:       product.Price,
		Image:       product.MainImage,
		CreatedAt:   time.Now(),
	}
	if err := s.wishlistRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Remove deletes the user's wishlist entry for a product.
func (s *WishlistService) Remove(ctx context.Context, userID string, productID int64) error {
	if userID == "" {
		userID = models.GuestUserID
	}
	return s.wishlistRepo.DeleteByProduct(ctx, userID, productID)
}

// Contains reports whether the product is in the user's wishlist.
func (s *WishlistService) Contains(ctx context.Context, userID string, productID int64) (bool, error) {
	if userID == "" {
		userID = models.GuestUserID
	}
	if _, err := s.wishlistRepo.Find(ctx, userID, productID); err != nil {
		var nf *errs.NotFoundError
		if errors.As(err, &nf) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// List returns the user's wishlist joined with live product data.
func (s *WishlistService) List(ctx context.Context, userID string) ([]models.WishlistLine, error) {
	if userID == "" {
		userID = models.GuestUserID
	}

	items, err := s.wishlistRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	lines := make([]models.WishlistLine, 0, len(items))
	for _, item := range items {
		line := models.WishlistLine{
			ID:        item.ID,
			ProductID: item.ProductID,
			UserID:    item.UserID,
			AddedAt:   item.CreatedAt,
		}
		if product, err := s.productRepo.GetByID(ctx, item.ProductID); err == nil {
			line.Product = product
		}
		lines = append(lines, line)
	}
	return lines, nil
}
