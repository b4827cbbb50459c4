package models

import "time"

// Coupon discount types.
const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

// Coupon is a discount code. Codes are case-insensitive and stored
// upper-cased. A zero MaxDiscount, MinimumAmount, UsageLimit or ExpiryDate
// means the corresponding constraint is not set.
type Coupon struct {
	ID            int64      `json:"id" bson:"id"`
	Name          string     `json:"name" bson:"name" validate:"required"`
	Code          string     `json:"code" bson:"code" validate:"required,min=2,max=50"`
	Description   string     `json:"description" bson:"description"`
	DiscountType  string     `json:"discountType" bson:"discountType" validate:"required,oneof=percentage fixed"`
	DiscountValue float64    `json:"discountValue" bson:"discountValue" validate:"gte=0"`
	MaxDiscount   float64    `json:"maxDiscount,omitempty" bson:"maxDiscount,omitempty" validate:"gte=0"`
	MinimumAmount float64    `json:"minimumAmount,omitempty" bson:"minimumAmount,omitempty" validate:"gte=0"`
	UsageLimit    int64      `json:"usageLimit,omitempty" bson:"usageLimit,omitempty" validate:"gte=0"`
	UsedCount     int64      `json:"usedCount" bson:"usedCount"`
	ExpiryDate    *time.Time `json:"expiryDate,omitempty" bson:"expiryDate,omitempty"`
	IsActive      bool       `json:"isActive" bson:"isActive"`
	CreatedAt     time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt" bson:"updatedAt"`
}
