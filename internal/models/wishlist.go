package models

import "time"

// WishlistItem marks a product as saved by a user. Unlike cart items there is
// no quantity; a product is either in the wishlist or not.
type WishlistItem struct {
	ID          int64     `json:"id" bson:"id"`
	UserID      string    `json:"userId" bson:"userId"`
	ProductID   int64     `json:"productId" bson:"productId"`
	ProductName string    `json:"productName" bson:"productName"`
	Price       float64   `json:"price" bson:"price"`
	Image       string    `json:"image" bson:"image"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}

// WishlistLine is a wishlist item joined with live product data for display.
type WishlistLine struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"productId"`
	UserID    string    `json:"userId"`
	AddedAt   time.Time `json:"addedAt"`
	Product   *Product  `json:"product"`
}
