package models

import "time"

// Specification is a single name/value pair describing a product attribute.
type Specification struct {
	Name  string `json:"name" bson:"name" validate:"required"`
	Value string `json:"value" bson:"value" validate:"required"`
}

// Product is a catalog entry. The cart and order core treats the catalog as
// read-only: prices and names are snapshotted into line items, and stock is
// never decremented by order placement.
type Product struct {
	ID             int64           `json:"id" bson:"id"`
	Name           string          `json:"name" bson:"name" validate:"required,min=3,max=200"`
	Description    string          `json:"description" bson:"description" validate:"omitempty,max=2000"`
	Price          float64         `json:"price" bson:"price" validate:"gte=0"`
	OriginalPrice  float64         `json:"originalPrice,omitempty" bson:"originalPrice,omitempty" validate:"gte=0"`
	Stock          int             `json:"stock" bson:"stock" validate:"gte=0"`
	CategoryID     int64           `json:"categoryId" bson:"categoryId" validate:"required"`
	MainImage      string          `json:"mainImage" bson:"mainImage"`
	DetailedImages []string        `json:"detailedImages" bson:"detailedImages"`
	Specifications []Specification `json:"specifications" bson:"specifications" validate:"dive"`
	IsActive       bool            `json:"isActive" bson:"isActive"`
	Featured       bool            `json:"featured" bson:"featured"`
	Tags           []string        `json:"tags" bson:"tags"`
	CreatedAt      time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt" bson:"updatedAt"`
}

// InStock reports whether the product has any units left.
func (p *Product) InStock() bool {
	return p.Stock > 0
}

// Category groups products for storefront navigation.
type Category struct {
	ID          int64     `json:"id" bson:"id"`
	Name        string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Description string    `json:"description" bson:"description" validate:"omitempty,max=500"`
	Image       string    `json:"image" bson:"image"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}
