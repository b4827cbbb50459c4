package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"mawasim/internal/errs"
	"mawasim/internal/models"
	"mawasim/internal/repositories"
	"mawasim/internal/services"
)

func newCouponFixture(t *testing.T) *services.CouponService {
	t.Helper()
	return services.NewCouponService(
		repositories.NewMockCouponRepository(),
		repositories.NewMockSequenceRepository(),
	)
}

func TestCouponService_CreateCoupon_UpperCasesCode(t *testing.T) {
	service := newCouponFixture(t)

	coupon := &models.Coupon{
		Name:          "Twenty off",
		Code:          "save20",
		DiscountType:  models.DiscountPercentage,
		DiscountValue: 20,
		IsActive:      true,
	}
	err := service.CreateCoupon(context.Background(), coupon)

	assert.NoError(t, err)
	assert.NotZero(t, coupon.ID)
	assert.Equal(t, "SAVE20", coupon.Code)
}

func TestCouponService_CreateCoupon_InvalidDiscountType(t *testing.T) {
	service := newCouponFixture(t)

	err := service.CreateCoupon(context.Background(), &models.Coupon{
		Name:          "Broken",
		Code:          "BROKEN",
		DiscountType:  "bogo",
		DiscountValue: 20,
	})

	var ve *errs.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestCouponService_CreateCoupon_DuplicateCode(t *testing.T) {
	service := newCouponFixture(t)

	first := &models.Coupon{Name: "A", Code: "DUP", DiscountType: models.DiscountFixed, DiscountValue: 5}
	assert.NoError(t, service.CreateCoupon(context.Background(), first))

	err := service.CreateCoupon(context.Background(), &models.Coupon{
		Name: "B", Code: "dup", DiscountType: models.DiscountFixed, DiscountValue: 10,
	})

	var conflict *errs.ConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestCouponService_ValidateCode(t *testing.T) {
	service := newCouponFixture(t)
	assert.NoError(t, service.CreateCoupon(context.Background(), &models.Coupon{
		Name:          "Twenty off",
		Code:          "SAVE20",
		DiscountType:  models.DiscountPercentage,
		DiscountValue: 20,
		IsActive:      true,
	}))

	coupon, result, err := service.ValidateCode(context.Background(), "save20", 291)

	assert.NoError(t, err)
	assert.Equal(t, "SAVE20", coupon.Code)
	assert.Equal(t, 58.20, result.Discount)
}

func TestCouponService_ValidateCode_UnknownCode(t *testing.T) {
	service := newCouponFixture(t)

	_, _, err := service.ValidateCode(context.Background(), "NOPE", 100)

	var nf *errs.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestCouponService_ValidateCode_RejectionIsFatal(t *testing.T) {
	service := newCouponFixture(t)
	assert.NoError(t, service.CreateCoupon(context.Background(), &models.Coupon{
		Name:          "Big spender",
		Code:          "BIG",
		DiscountType:  models.DiscountFixed,
		DiscountValue: 50,
		MinimumAmount: 1000,
		IsActive:      true,
	}))

	_, _, err := service.ValidateCode(context.Background(), "BIG", 100)

	var rejected *errs.CouponRejectedError
	assert.ErrorAs(t, err, &rejected)
	assert.Equal(t, "BIG", rejected.Code)
	assert.Contains(t, rejected.Reason, "below minimum")
}
