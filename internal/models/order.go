package models

import "time"

// Order statuses. The happy path moves forward through these in declaration
// order; delivered and cancelled are terminal.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusPreparing = "preparing"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// Payment methods accepted at checkout.
const (
	PaymentCash         = "cash"
	PaymentCOD          = "cod"
	PaymentCard         = "card"
	PaymentBank         = "bank"
	PaymentBankTransfer = "bank_transfer"
	PaymentWallet       = "wallet"
)

// Payment statuses.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

// ValidStatus reports whether s is one of the known order statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// ValidPaymentMethod reports whether m is an accepted payment method.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentCOD, PaymentCard, PaymentBank, PaymentBankTransfer, PaymentWallet:
		return true
	}
	return false
}

// ValidPaymentStatus reports whether s is a known payment status.
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed:
		return true
	}
	return false
}

// OrderItem is a frozen snapshot of a purchased product line. It is copied
// into the order at creation time and never re-reads the catalog, so later
// catalog price changes do not affect placed orders.
type OrderItem struct {
	ProductID       int64              `json:"productId" bson:"productId" validate:"required"`
	ProductName     string             `json:"productName" bson:"productName"`
	Price           float64            `json:"price" bson:"price" validate:"gte=0"`
	Quantity        int                `json:"quantity" bson:"quantity" validate:"gte=1"`
	TotalPrice      float64            `json:"totalPrice" bson:"totalPrice"`
	SelectedOptions map[string]string  `json:"selectedOptions" bson:"selectedOptions"`
	OptionsPricing  map[string]float64 `json:"optionsPricing" bson:"optionsPricing"`
	ProductImage    string             `json:"productImage" bson:"productImage"`
	Attachments     Attachments        `json:"attachments" bson:"attachments"`
}

// Order is a customer order. Totals are always derived server-side:
// total = subtotal + deliveryFee - discount - couponDiscount, clamped to >= 0.
type Order struct {
	ID int64 `json:"id" bson:"id"`

	CustomerName  string `json:"customerName" bson:"customerName" validate:"required"`
	CustomerEmail string `json:"customerEmail" bson:"customerEmail" validate:"omitempty,email"`
	CustomerPhone string `json:"customerPhone" bson:"customerPhone"`

	Address string `json:"address" bson:"address" validate:"required"`
	City    string `json:"city" bson:"city" validate:"required"`

	Items          []OrderItem `json:"items" bson:"items" validate:"required,min=1,dive"`
	Subtotal       float64     `json:"subtotal" bson:"subtotal"`
	DeliveryFee    float64     `json:"deliveryFee" bson:"deliveryFee"`
	Discount       float64     `json:"discount" bson:"discount"`
	CouponCode     string      `json:"couponCode" bson:"couponCode"`
	CouponDiscount float64     `json:"couponDiscount" bson:"couponDiscount"`
	Total          float64     `json:"total" bson:"total"`

	Status        string `json:"status" bson:"status"`
	PaymentMethod string `json:"paymentMethod" bson:"paymentMethod"`
	PaymentStatus string `json:"paymentStatus" bson:"paymentStatus"`
	PaymentID     string `json:"paymentId,omitempty" bson:"paymentId,omitempty"`

	Notes string `json:"notes" bson:"notes"`

	OrderDate   time.Time  `json:"orderDate" bson:"orderDate"`
	DeliveredAt *time.Time `json:"deliveredAt,omitempty" bson:"deliveredAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// Terminal reports whether the order admits no further transitions via the
// named lifecycle operations.
func (o *Order) Terminal() bool {
	return o.Status == StatusDelivered || o.Status == StatusCancelled
}

// OrderStats is the admin dashboard summary: counts by status and revenue
// across all non-cancelled orders.
type OrderStats struct {
	TotalOrders     int64   `json:"totalOrders"`
	PendingOrders   int64   `json:"pendingOrders"`
	DeliveredOrders int64   `json:"deliveredOrders"`
	CancelledOrders int64   `json:"cancelledOrders"`
	TotalRevenue    float64 `json:"totalRevenue"`
}
