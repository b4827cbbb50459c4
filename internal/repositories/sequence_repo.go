package repositories

import "context"

// Sequence names used across the store.
const (
	SeqOrders    = "orders"
	SeqCoupons   = "coupons"
	SeqCartItems = "cart_items"
	SeqProducts  = "products"
	SeqCategories = "categories"
	SeqCustomers = "customers"
	SeqWishlist  = "wishlist_items"
	SeqReviews   = "reviews"
)

// SequenceRepository hands out sequential integer ids. Next must be race-free
// under concurrent callers: two concurrent calls for the same sequence always
// receive distinct, monotonically increasing values.
type SequenceRepository interface {
	Next(ctx context.Context, name string) (int64, error)
}
