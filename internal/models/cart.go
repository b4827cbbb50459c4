package models

import "time"

// GuestUserID is the sentinel cart owner used when no authenticated customer
// is present.
const GuestUserID = "guest"

// Attachments carries customer-supplied extras for a line item (uploaded
// image references plus free text). The payload is opaque to cart and order
// logic; no validation is performed on it.
type Attachments struct {
	Images []string `json:"images,omitempty" bson:"images,omitempty"`
	Text   string   `json:"text,omitempty" bson:"text,omitempty"`
}

// Empty reports whether the attachments carry no payload.
func (a Attachments) Empty() bool {
	return len(a.Images) == 0 && a.Text == ""
}

// CartItem is a single line in a user's cart. At most one item exists per
// (userId, productId, selectedOptions) combination; adding the same
// combination again increments quantity instead of duplicating.
type CartItem struct {
	ID              int64              `json:"id" bson:"id"`
	UserID          string             `json:"userId" bson:"userId"`
	ProductID       int64              `json:"productId" bson:"productId"`
	ProductName     string             `json:"productName" bson:"productName"`
	Price           float64            `json:"price" bson:"price"`
	Quantity        int                `json:"quantity" bson:"quantity"`
	Image           string             `json:"image" bson:"image"`
	SelectedOptions map[string]string  `json:"selectedOptions" bson:"selectedOptions"`
	OptionsPricing  map[string]float64 `json:"optionsPricing" bson:"optionsPricing"`
	Attachments     Attachments        `json:"attachments" bson:"attachments"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
}

// OptionsEqual reports whether two selected-option maps describe the same
// choice. Nil and empty maps compare equal.
func OptionsEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

// CartLine is a cart item joined with the current catalog state of its
// product. Unlike order items, the product data here is live: price and stock
// reflect the catalog at read time, not at the time the item was added.
type CartLine struct {
	ID              int64              `json:"id"`
	ProductID       int64              `json:"productId"`
	Quantity        int                `json:"quantity"`
	SelectedOptions map[string]string  `json:"selectedOptions"`
	OptionsPricing  map[string]float64 `json:"optionsPricing"`
	Attachments     Attachments        `json:"attachments"`
	Product         *Product           `json:"product"`
}
