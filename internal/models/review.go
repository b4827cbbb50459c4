package models

import "time"

// Review is a customer rating and comment on a product.
type Review struct {
	ID           int64     `json:"id" bson:"id"`
	ProductID    int64     `json:"productId" bson:"productId" validate:"required"`
	CustomerName string    `json:"customerName" bson:"customerName" validate:"required"`
	Rating       int       `json:"rating" bson:"rating" validate:"required,min=1,max=5"`
	Comment      string    `json:"comment" bson:"comment" validate:"omitempty,max=1000"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}
