package services

import (
	"context"
	"fmt"
	"time"

	"mawasim/internal/errs"
	"mawasim/internal/models"
	"mawasim/internal/repositories"
)

// ReviewService handles business logic for product reviews.
type ReviewService struct {
	reviewRepo  repositories.ReviewRepository
	productRepo repositories.ProductRepository
	seqRepo     repositories.SequenceRepository
}

// NewReviewService creates a new ReviewService.
func NewReviewService(reviewRepo repositories.ReviewRepository, productRepo repositories.ProductRepository, seqRepo repositories.SequenceRepository) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		seqRepo:     seqRepo,
	}
}

// GetAllReviews retrieves all reviews.
func (s *ReviewService) GetAllReviews(ctx context.Context) ([]models.Review, error) {
	return s.reviewRepo.GetAll(ctx)
}

// GetProductReviews retrieves all reviews for a product.
func (s *ReviewService) GetProductReviews(ctx context.Context, productID int64) ([]models.Review, error) {
	return s.reviewRepo.ListByProduct(ctx, productID)
}

// CreateReview adds a review to an existing product.
func (s *ReviewService) CreateReview(ctx context.Context, review *models.Review) error {
	if review.Rating < 1 || review.Rating > 5 {
		return errs.Validation("rating", "must be between 1 and 5")
	}
	if review.CustomerName == "" {
		return errs.Validation("customerName", "customer name is required")
	}

	if _, err := s.productRepo.GetByID(ctx, review.ProductID); err != nil {
		return err
	}

	id, err := s.seqRepo.Next(ctx, repositories.SeqReviews)
	if err != nil {
		return fmt.Errorf("failed to assign review id: %w", err)
	}
	review.ID = id
	review.CreatedAt = time.Now()
	return s.reviewRepo.Create(ctx, review)
}

// DeleteReview removes a review by its ID.
func (s *ReviewService) DeleteReview(ctx context.Context, id int64) error {
	return s.reviewRepo.Delete(ctx, id)
}
