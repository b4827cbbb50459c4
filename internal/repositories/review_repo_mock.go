package repositories

import (
	"context"
	"sort"
	"sync"

	"mawasim/internal/errs"
	"mawasim/internal/models"
)

// MockReviewRepository is an in-memory implementation of ReviewRepository.
type MockReviewRepository struct {
	mu      sync.RWMutex
	reviews map[int64]models.Review
}

// NewMockReviewRepository creates a new instance of MockReviewRepository.
func NewMockReviewRepository() *MockReviewRepository {
	return &MockReviewRepository{
		reviews: make(map[int64]models.Review),
	}
}

// GetAll returns all reviews, newest first.
func (r *MockReviewRepository) GetAll(_ context.Context) ([]models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reviewList := make([]models.Review, 0, len(r.reviews))
	for _, review := range r.reviews {
		reviewList = append(reviewList, review)
	}
	sort.Slice(reviewList, func(i, j int) bool {
		return reviewList[i].CreatedAt.After(reviewList[j].CreatedAt)
	})
	return reviewList, nil
}

// ListByProduct returns all reviews for a product, newest first.
func (r *MockReviewRepository) ListByProduct(_ context.Context, productID int64) ([]models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var reviewList []models.Review
	for _, review := range r.reviews {
		if review.ProductID == productID {
			reviewList = append(reviewList, review)
		}
	}
	sort.Slice(reviewList, func(i, j int) bool {
		return reviewList[i].CreatedAt.After(reviewList[j].CreatedAt)
	})
	return reviewList, nil
}

// Create adds a new review.
func (r *MockReviewRepository) Create(_ context.Context, review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reviews[review.ID] = *review
	return nil
}

// Delete removes a review by its id.
func (r *MockReviewRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.reviews[id]; !ok {
		return errs.NotFound("review", id)
	}
	delete(r.reviews, id)
	return nil
}
