package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mawasim/internal/errs"
	"mawasim/internal/models"
	"mawasim/internal/pricing"
	"mawasim/internal/repositories"
)

// CouponService handles business logic related to coupons.
type CouponService struct {
	couponRepo repositories.CouponRepository
	seqRepo    repositories.SequenceRepository
}

// NewCouponService creates a new CouponService.
func NewCouponService(couponRepo repositories.CouponRepository, seqRepo repositories.SequenceRepository) *CouponService {
	return &CouponService{
		couponRepo: couponRepo,
		seqRepo:    seqRepo,
	}
}

// GetAllCoupons retrieves all coupons.
func (s *CouponService) GetAllCoupons(ctx context.Context) ([]models.Coupon, error) {
	return s.couponRepo.GetAll(ctx)
}

// GetCouponByID retrieves a single coupon by its ID.
func (s *CouponService) GetCouponByID(ctx context.Context, id int64) (*models.Coupon, error) {
	return s.couponRepo.GetByID(ctx, id)
}

// CreateCoupon creates a new coupon. The code is upper-cased before storage
// so lookups are case-insensitive.
func (s *CouponService) CreateCoupon(ctx context.Context, coupon *models.Coupon) error {
	coupon.Code = strings.ToUpper(strings.TrimSpace(coupon.Code))
	if coupon.Code == "" {
		return errs.Validation("code", "coupon code is required")
	}
	if coupon.DiscountType != models.DiscountPercentage && coupon.DiscountType != models.DiscountFixed {
		return errs.Validation("discountType", "must be percentage or fixed")
	}
	if coupon.DiscountValue < 0 {
		return errs.Validation("discountValue", "must not be negative")
	}

	id, err := s.seqRepo.Next(ctx, repositories.SeqCoupons)
	if err != nil {
		return fmt.Errorf("failed to assign coupon id: %w", err)
	}
	coupon.ID = id
	now := time.Now()
	coupon.CreatedAt = now
	coupon.UpdatedAt = now
	return s.couponRepo.Create(ctx, coupon)
}

// UpdateCoupon updates an existing coupon.
func (s *CouponService) UpdateCoupon(ctx context.Context, coupon *models.Coupon) error {
	coupon.Code = strings.ToUpper(strings.TrimSpace(coupon.Code))
	coupon.UpdatedAt = time.Now()
	return s.couponRepo.Update(ctx, coupon)
}

// DeleteCoupon deletes a coupon by its ID.
func (s *CouponService) DeleteCoupon(ctx context.Context, id int64) error {
	return s.couponRepo.Delete(ctx, id)
}

// ValidateCode is the standalone coupon check used before checkout. Unlike
// checkout itself, a failing evaluation here is an error: callers get a
// CouponRejectedError carrying the reason, or NotFoundError when no active
// coupon matches the code.
func (s *CouponService) ValidateCode(ctx context.Context, code string, orderAmount float64) (*models.Coupon, *pricing.CouponResult, error) {
	coupon, err := s.couponRepo.GetActiveByCode(ctx, code)
	if err != nil {
		return nil, nil, err
	}

	result := pricing.EvaluateCoupon(coupon, orderAmount)
	if !result.Valid {
		return nil, nil, errs.CouponRejected(coupon.Code, result.Reason)
	}
	return coupon, &result, nil
}
