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

// CartService handles business logic for shopping carts. A cart is the live
// set of a user's items; it is created implicitly on first add and cleared on
// checkout.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
	seqRepo     repositories.SequenceRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository, seqRepo repositories.SequenceRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		seqRepo:     seqRepo,
	}
}

// AddItemInput carries the caller's add-to-cart request.
type AddItemInput struct {
	UserID          string
	ProductID       int64
	Quantity        int
	SelectedOptions map[string]string
	OptionsPricing  map[string]float64
	Attachments     models.Attachments
}

// AddItem adds a product to the user's cart, snapshotting the product's
// current name, price and image. When an item with the same product and
// selected options already exists its quantity is incremented instead;
// attachments overwrite the existing ones only when non-empty.
func (s *CartService) AddItem(ctx context.Context, in AddItemInput) (*models.CartItem, error) {
	if in.UserID == "" {
		in.UserID = models.GuestUserID
	}
	if in.Quantity < 1 {
		return nil, errs.Validation("quantity", "must be at least 1")
	}

	product, err := s.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}

	existing, err := s.cartRepo.FindByProductAndOptions(ctx, in.UserID, in.ProductID, in.SelectedOptions)
	if err == nil {
		existing.Quantity += in.Quantity
		if !in.Attachments.Empty() {
			existing.Attachments = in.Attachments
		}
		if err := s.cartRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}
	var nf *errs.NotFoundError
	if !errors.As(err, &nf) {
		return nil, err
	}

	id, err := s.seqRepo.Next(ctx, repositories.SeqCartItems)
	if err != nil {
		return nil, fmt.Errorf("failed to assign cart item id: %w", err)
	}

	item := &models.CartItem{
		ID:              id,
		UserID:          in.UserID,
		ProductID:       product.ID,
		ProductName:     product.Name,
		Price:           product.Price,
		Quantity:        in.Quantity,
		Image:           product.MainImage,
		SelectedOptions: in.SelectedOptions,
		OptionsPricing:  in.OptionsPricing,
		Attachments:     in.Attachments,
		CreatedAt:       time.Now(),
	}
	if err := s.cartRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItemInput carries a partial cart item update; nil fields are left
// untouched.
type UpdateItemInput struct {
	Quantity        *int
	SelectedOptions map[string]string
	OptionsPricing  map[string]float64
	Attachments     *models.Attachments
}

// UpdateItem mutates an existing item owned by the user.
func (s *CartService) UpdateItem(ctx context.Context, userID string, itemID int64, in UpdateItemInput) (*models.CartItem, error) {
	if userID == "" {
		userID = models.GuestUserID
	}

	item, err := s.cartRepo.GetByID(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	if in.Quantity != nil {
		if *in.Quantity < 1 {
			return nil, errs.Validation("quantity", "must be at least 1")
		}
		item.Quantity = *in.Quantity
	}
	if in.SelectedOptions != nil {
		item.SelectedOptions = in.SelectedOptions
	}
	if in.OptionsPricing != nil {
		item.OptionsPricing = in.OptionsPricing
	}
	if in.Attachments != nil {
		item.Attachments = *in.Attachments
	}

	if err := s.cartRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveItem removes an item by its id. Removing an absent item is an error,
// not a no-op; callers retrying a removal must tolerate NotFound.
func (s *CartService) RemoveItem(ctx context.Context, userID string, itemID int64) error {
	if userID == "" {
		userID = models.GuestUserID
	}
	return s.cartRepo.Delete(ctx, userID, itemID)
}

// RemoveByProduct removes the user's item for a product.
func (s *CartService) RemoveByProduct(ctx context.Context, userID string, productID int64) error {
	if userID == "" {
		userID = models.GuestUserID
	}
	return s.cartRepo.DeleteByProduct(ctx, userID, productID)
}

// Clear removes all items for the user. Clearing an empty cart succeeds.
func (s *CartService) Clear(ctx context.Context, userID string) error {
	if userID == "" {
		userID = models.GuestUserID
	}
	return s.cartRepo.Clear(ctx, userID)
}

// List returns the user's cart items joined with live product data. Prices
// and stock reflect the catalog at read time; items whose product has been
// removed from the catalog carry a nil Product.
func (s *CartService) List(ctx context.Context, userID string) ([]models.CartLine, error) {
	if userID == "" {
		userID = models.GuestUserID
	}

	items, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	lines := make([]models.CartLine, 0, len(items))
	for _, item := range items {
		line := models.CartLine{
			ID:              item.ID,
			ProductID:       item.ProductID,
			Quantity:        item.Quantity,
			SelectedOptions: item.SelectedOptions,
			OptionsPricing:  item.OptionsPricing,
			Attachments:     item.Attachments,
		}
		if product, err := s.productRepo.GetByID(ctx, item.ProductID); err == nil {
			line.Product = product
		}
		lines = append(lines, line)
	}
	return lines, nil
}
