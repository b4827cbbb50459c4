// Package pricing holds the money math for the storefront: coupon evaluation
// and order total derivation. All arithmetic runs on decimals and is rounded
// to 2 places (half away from zero) before converting back to float64, so
// repeated float accumulation never drifts totals.
package pricing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"mawasim/internal/models"
)

// Rejection reasons returned by EvaluateCoupon.
const (
	ReasonInactive  = "coupon inactive"
	ReasonExpired   = "coupon expired"
	ReasonExhausted = "usage limit exhausted"
)

// CouponResult is the outcome of evaluating a coupon against an order amount.
// Discount is zero whenever Valid is false.
type CouponResult struct {
	Valid    bool    `json:"valid"`
	Discount float64 `json:"discount"`
	Reason   string  `json:"reason,omitempty"`
}

// EvaluateCoupon validates a coupon against an order amount and computes the
// discount. It is pure: it never mutates the coupon and never touches the
// usage counter. Validation short-circuits on the first failure, in this
// order: active, expiry, usage limit, order minimum.
func EvaluateCoupon(c *models.Coupon, orderAmount float64) CouponResult {
	if !c.IsActive {
		return CouponResult{Reason: ReasonInactive}
	}
	if c.ExpiryDate != nil && time.Now().After(*c.ExpiryDate) {
		return CouponResult{Reason: ReasonExpired}
	}
	if c.UsageLimit > 0 && c.UsedCount >= c.UsageLimit {
		return CouponResult{Reason: ReasonExhausted}
	}
	if c.MinimumAmount > 0 && orderAmount < c.MinimumAmount {
		return CouponResult{
			Reason: fmt.Sprintf("order below minimum of %s", decimal.NewFromFloat(c.MinimumAmount)),
		}
	}

	amount := decimal.NewFromFloat(orderAmount)
	var discount decimal.Decimal

	if c.DiscountType == models.DiscountPercentage {
		discount = amount.Mul(decimal.NewFromFloat(c.DiscountValue)).Div(decimal.NewFromInt(100))
		if c.MaxDiscount > 0 {
			if max := decimal.NewFromFloat(c.MaxDiscount); discount.GreaterThan(max) {
				discount = max
			}
		}
	} else {
		discount = decimal.NewFromFloat(c.DiscountValue)
	}

	// A discount can never push the order negative.
	if discount.GreaterThan(amount) {
		discount = amount
	}

	return CouponResult{Valid: true, Discount: round2(discount)}
}

// ItemTotal computes the line total for a unit price and quantity.
func ItemTotal(price float64, quantity int) float64 {
	return round2(decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(quantity))))
}

// Subtotal sums the line totals of all items.
func Subtotal(items []models.OrderItem) float64 {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(decimal.NewFromFloat(item.TotalPrice))
	}
	return round2(sum)
}

// OrderTotal derives the payable total from its components, clamped to >= 0:
// subtotal + deliveryFee - discount - couponDiscount.
func OrderTotal(subtotal, deliveryFee, discount, couponDiscount float64) float64 {
	total := decimal.NewFromFloat(subtotal).
		Add(decimal.NewFromFloat(deliveryFee)).
		Sub(decimal.NewFromFloat(discount)).
		Sub(decimal.NewFromFloat(couponDiscount))
	if total.IsNegative() {
		total = decimal.Zero
	}
	return round2(total)
}

func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
