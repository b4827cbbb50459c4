package repositories

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"mawasim/internal/errs"
	"mawasim/internal/models"
)

// MockCouponRepository is an in-memory implementation of CouponRepository.
type MockCouponRepository struct {
	mu      sync.RWMutex
	coupons map[int64]models.Coupon
}

// NewMockCouponRepository creates a new instance of MockCouponRepository.
func NewMockCouponRepository() *MockCouponRepository {
	return &MockCouponRepository{
		coupons: make(map[int64]models.Coupon),
	}
}

// GetAll returns all coupons, newest first.
func (r *MockCouponRepository) GetAll(_ context.Context) ([]models.Coupon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	couponList := make([]models.Coupon, 0, len(r.coupons))
	for _, coupon := range r.coupons {
		couponList = append(couponList, coupon)
	}
	sort.Slice(couponList, func(i, j int) bool {
		return couponList[i].CreatedAt.After(couponList[j].CreatedAt)
	})
	return couponList, nil
}

// GetByID returns a coupon by its id.
func (r *MockCouponRepository) GetByID(_ context.Context, id int64) (*models.Coupon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	coupon, ok := r.coupons[id]
	if !ok {
		return nil, errs.NotFound("coupon", id)
	}
	return &coupon, nil
}

// GetActiveByCode returns an active coupon matching the code.
func (r *MockCouponRepository) GetActiveByCode(_ context.Context, code string) (*models.Coupon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	code = strings.ToUpper(code)
	for _, coupon := range r.coupons {
		if coupon.Code == code && coupon.IsActive {
			c := coupon
			return &c, nil
		}
	}
	return nil, errs.NotFound("coupon", code)
}

// Create adds a new coupon.
func (r *MockCouponRepository) Create(_ context.Context, coupon *models.Coupon) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.coupons {
		if existing.Code == coupon.Code {
			return errs.Conflict("coupon code %s already exists", coupon.Code)
		}
	}
	r.coupons[coupon.ID] = *coupon
	return nil
}

// Update replaces a stored coupon.
func (r *MockCouponRepository) Update(_ context.Context, coupon *models.Coupon) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.coupons[coupon.ID]; !ok {
		return errs.NotFound("coupon", coupon.ID)
	}
	r.coupons[coupon.ID] = *coupon
	return nil
}

// Delete removes a coupon by its id.
func (r *MockCouponRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.coupons[id]; !ok {
		return errs.NotFound("coupon", id)
	}
	delete(r.coupons, id)
	return nil
}

// IncrementUsage bumps usedCount while the limit is not yet reached. The
// check and increment run under one lock, mirroring the conditional update
// of the MongoDB implementation.
func (r *MockCouponRepository) IncrementUsage(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	coupon, ok := r.coupons[id]
	if !ok {
		return errs.NotFound("coupon", id)
	}
	if coupon.UsageLimit > 0 && coupon.UsedCount >= coupon.UsageLimit {
		return errs.Conflict("coupon %d usage limit reached", id)
	}
	coupon.UsedCount++
	coupon.UpdatedAt = time.Now()
	r.coupons[id] = coupon
	return nil
}
