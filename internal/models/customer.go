package models

import "time"

// Customer roles.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Customer is a registered storefront account. Password always holds the
// bcrypt hash, never plaintext; it carries no json tag so it is never
// serialized into API responses.
type Customer struct {
	ID       int64  `json:"id" bson:"id"`
	Email    string `json:"email" bson:"email" validate:"required,email"`
	Password string `json:"-" bson:"password" validate:"required,min=6"`
	Name     string `json:"name" bson:"name" validate:"required"`
	Phone    string `json:"phone" bson:"phone"`
	Address  string `json:"address" bson:"address"`
	City     string `json:"city" bson:"city"`

	TotalOrders   int64      `json:"totalOrders" bson:"totalOrders"`
	TotalSpent    float64    `json:"totalSpent" bson:"totalSpent"`
	LastOrderDate *time.Time `json:"lastOrderDate,omitempty" bson:"lastOrderDate,omitempty"`

	Status    string    `json:"status" bson:"status"`
	Role      string    `json:"role" bson:"role"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// CustomerStats is the admin dashboard summary for accounts.
type CustomerStats struct {
	TotalCustomers  int64 `json:"totalCustomers"`
	ActiveCustomers int64 `json:"activeCustomers"`
	NewThisMonth    int64 `json:"newThisMonth"`
}
