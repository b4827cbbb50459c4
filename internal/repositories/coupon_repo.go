package repositories

import (
	"context"

	"mawasim/internal/models"
)

// CouponRepository defines the interface for coupon data access.
type CouponRepository interface {
	GetAll(ctx context.Context) ([]models.Coupon, error)
	GetByID(ctx context.Context, id int64) (*models.Coupon, error)
	// GetActiveByCode looks up an active coupon by its upper-cased code.
	GetActiveByCode(ctx context.Context, code string) (*models.Coupon, error)
	Create(ctx context.Context, coupon *models.Coupon) error
	Update(ctx context.Context, coupon *models.Coupon) error
	Delete(ctx context.Context, id int64) error
	// IncrementUsage bumps usedCount by one, but only while the usage limit
	// is not yet reached at write time. Returns a ConflictError when the
	// conditional write loses to a concurrent checkout.
	IncrementUsage(ctx context.Context, id int64) error
}
