package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"mawasim/internal/errs"
	"mawasim/internal/models"
	"mawasim/internal/pricing"
	"mawasim/internal/repositories"
)

// EventPublisher publishes order events to the message broker. A nil
// publisher disables event publication.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// Notifier dispatches transactional email. Delivery is fire-and-forget: a
// failed send never fails the operation that triggered it.
type Notifier interface {
	SendOrderConfirmation(order *models.Order) error
	SendWelcome(customer *models.Customer) error
}

// OrderService handles order creation and the order status lifecycle.
type OrderService struct {
	orderRepo  repositories.OrderRepository
	couponRepo repositories.CouponRepository
	cartRepo   repositories.CartRepository
	seqRepo    repositories.SequenceRepository
	publisher  EventPublisher
	notifier   Notifier
}

// NewOrderService creates a new OrderService. publisher and notifier may be
// nil, disabling events and email respectively.
func NewOrderService(
	orderRepo repositories.OrderRepository,
	couponRepo repositories.CouponRepository,
	cartRepo repositories.CartRepository,
	seqRepo repositories.SequenceRepository,
	publisher EventPublisher,
	notifier Notifier,
) *OrderService {
	return &OrderService{
		orderRepo:  orderRepo,
		couponRepo: couponRepo,
		cartRepo:   cartRepo,
		seqRepo:    seqRepo,
		publisher:  publisher,
		notifier:   notifier,
	}
}

// GetAllOrders retrieves all orders, newest first.
func (s *OrderService) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	return s.orderRepo.GetAll(ctx)
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	return s.orderRepo.GetByID(ctx, id)
}

// GetStats retrieves the order dashboard statistics.
func (s *OrderService) GetStats(ctx context.Context) (*models.OrderStats, error) {
	return s.orderRepo.Stats(ctx)
}

// CheckoutInput is everything needed to materialize an order.
type CheckoutInput struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Address       string
	City          string
	Items         []models.OrderItem
	CouponCode    string
	PaymentMethod string
	PaymentStatus string
	PaymentID     string
	DeliveryFee   float64
	Notes         string
	// UserID identifies the cart the order originated from; when set, that
	// cart is cleared after the order is persisted.
	UserID string
}

// Checkout converts line items plus customer and delivery info into a
// persisted order. Totals are always derived server-side; caller-supplied
// line totals are advisory and recomputed from price and quantity. A coupon
// that fails lookup or evaluation does not fail the checkout: the order
// simply proceeds without the discount.
func (s *OrderService) Checkout(ctx context.Context, in CheckoutInput) (*models.Order, error) {
	if err := validateCheckout(in); err != nil {
		return nil, err
	}

	items := make([]models.OrderItem, len(in.Items))
	copy(items, in.Items)
	for i := range items {
		items[i].TotalPrice = pricing.ItemTotal(items[i].Price, items[i].Quantity)
	}
	subtotal := pricing.Subtotal(items)

	couponCode := ""
	couponDiscount := 0.0
	var appliedCoupon *models.Coupon
	if in.CouponCode != "" {
		couponCode = strings.ToUpper(in.CouponCode)
		coupon, err := s.couponRepo.GetActiveByCode(ctx, couponCode)
		if err != nil {
			log.Printf("Coupon %s not applied to checkout: %v", couponCode, err)
		} else if result := pricing.EvaluateCoupon(coupon, subtotal); result.Valid {
			couponDiscount = result.Discount
			appliedCoupon = coupon
		} else {
			log.Printf("Coupon %s rejected during checkout: %s", couponCode, result.Reason)
		}
	}

	id, err := s.seqRepo.Next(ctx, repositories.SeqOrders)
	if err != nil {
		return nil, fmt.Errorf("failed to assign order id: %w", err)
	}

	paymentMethod := in.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = models.PaymentCOD
	}
	if !models.ValidPaymentMethod(paymentMethod) {
		return nil, errs.Validation("paymentMethod", "unknown payment method %s", paymentMethod)
	}
	paymentStatus := in.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = models.PaymentStatusPending
	}
	if !models.ValidPaymentStatus(paymentStatus) {
		return nil, errs.Validation("paymentStatus", "unknown payment status %s", paymentStatus)
	}

	now := time.Now()
	order := &models.Order{
		ID:             id,
		CustomerName:   in.CustomerName,
		CustomerEmail:  in.CustomerEmail,
		CustomerPhone:  in.CustomerPhone,
		Address:        in.Address,
		City:           in.City,
		Items:          items,
		Subtotal:       subtotal,
		DeliveryFee:    in.DeliveryFee,
		CouponCode:     couponCode,
		CouponDiscount: couponDiscount,
		Total:          pricing.OrderTotal(subtotal, in.DeliveryFee, 0, couponDiscount),
		Status:         models.StatusPending,
		PaymentMethod:  paymentMethod,
		PaymentStatus:  paymentStatus,
		PaymentID:      in.PaymentID,
		Notes:          in.Notes,
		OrderDate:      now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}

	// The usage counter moves only after the order exists, and the write
	// re-checks the limit atomically. Losing that race leaves this order's
	// discount in place; the counter itself can never pass the limit.
	if appliedCoupon != nil {
		if err := s.couponRepo.IncrementUsage(ctx, appliedCoupon.ID); err != nil {
			var conflict *errs.ConflictError
			if errors.As(err, &conflict) {
				log.Printf("Coupon %s usage increment lost a race for order %d: %v", couponCode, order.ID, err)
			} else {
				log.Printf("Warning: failed to increment usage for coupon %s on order %d: %v", couponCode, order.ID, err)
			}
		}
	}

	if in.UserID != "" {
		if err := s.cartRepo.Clear(ctx, in.UserID); err != nil {
			log.Printf("Warning: failed to clear cart for %s after order %d: %v", in.UserID, order.ID, err)
		}
	}

	s.publishEvent("order.created", order)
	if s.notifier != nil && order.CustomerEmail != "" {
		go func(o models.Order) {
			if err := s.notifier.SendOrderConfirmation(&o); err != nil {
				log.Printf("Warning: failed to send confirmation email for order %d: %v", o.ID, err)
			}
		}(*order)
	}

	return order, nil
}

func validateCheckout(in CheckoutInput) error {
	if strings.TrimSpace(in.CustomerName) == "" {
		return errs.Validation("customerName", "customer name is required")
	}
	if strings.TrimSpace(in.Address) == "" {
		return errs.Validation("address", "delivery address is required")
	}
	if strings.TrimSpace(in.City) == "" {
		return errs.Validation("city", "delivery city is required")
	}
	if len(in.Items) == 0 {
		return errs.Validation("items", "order must contain at least one item")
	}
	for i, item := range in.Items {
		if item.Quantity < 1 {
			return errs.Validation("items", "item %d quantity must be at least 1", i)
		}
		if item.Price < 0 {
			return errs.Validation("items", "item %d price must not be negative", i)
		}
	}
	if in.DeliveryFee < 0 {
		return errs.Validation("deliveryFee", "must not be negative")
	}
	return nil
}

// Confirm moves a pending order to confirmed.
func (s *OrderService) Confirm(ctx context.Context, id int64) (*models.Order, error) {
	return s.transition(ctx, id, models.StatusConfirmed, models.StatusPending)
}

// Ship moves a confirmed or preparing order to shipped.
func (s *OrderService) Ship(ctx context.Context, id int64) (*models.Order, error) {
	return s.transition(ctx, id, models.StatusShipped, models.StatusConfirmed, models.StatusPreparing)
}

// Deliver moves a shipped order to delivered and stamps DeliveredAt.
func (s *OrderService) Deliver(ctx context.Context, id int64) (*models.Order, error) {
	return s.transition(ctx, id, models.StatusDelivered, models.StatusShipped)
}

// Cancel cancels an order from any non-terminal state.
func (s *OrderService) Cancel(ctx context.Context, id int64) (*models.Order, error) {
	return s.transition(ctx, id, models.StatusCancelled,
		models.StatusPending, models.StatusConfirmed, models.StatusPreparing, models.StatusShipped)
}

// transition applies a named lifecycle operation: the order must currently
// be in one of the allowed states.
func (s *OrderService) transition(ctx context.Context, id int64, target string, allowed ...string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	permitted := false
	for _, status := range allowed {
		if order.Status == status {
			permitted = true
			break
		}
	}
	if !permitted {
		return nil, errs.Validation("status", "cannot move order %d from %s to %s", id, order.Status, target)
	}

	return s.applyStatus(ctx, order, target)
}

// SetStatus is the administrative override: it validates the status value but
// does not constrain the transition to the forward-only graph. Moving an
// order out of delivered through this path clears DeliveredAt.
func (s *OrderService) SetStatus(ctx context.Context, id int64, status string) (*models.Order, error) {
	if !models.ValidStatus(status) {
		return nil, errs.Validation("status", "unknown order status %s", status)
	}
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.applyStatus(ctx, order, status)
}

func (s *OrderService) applyStatus(ctx context.Context, order *models.Order, status string) (*models.Order, error) {
	order.Status = status
	now := time.Now()
	if status == models.StatusDelivered {
		order.DeliveredAt = &now
	} else {
		order.DeliveredAt = nil
	}
	order.UpdatedAt = now

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	s.publishEvent("order.status_updated", order)
	return order, nil
}

// UpdatePayment records the outcome reported by the payment collaborator.
// The payment status is an opaque input here; no gateway logic lives in this
// service.
func (s *OrderService) UpdatePayment(ctx context.Context, id int64, paymentStatus, paymentID string) (*models.Order, error) {
	if !models.ValidPaymentStatus(paymentStatus) {
		return nil, errs.Validation("paymentStatus", "unknown payment status %s", paymentStatus)
	}
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	order.PaymentStatus = paymentStatus
	if paymentID != "" {
		order.PaymentID = paymentID
	}
	order.UpdatedAt = time.Now()
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// DeleteOrder removes an order entirely. This is an administrative override,
// not a lifecycle transition.
func (s *OrderService) DeleteOrder(ctx context.Context, id int64) error {
	return s.orderRepo.Delete(ctx, id)
}

func (s *OrderService) publishEvent(routingKey string, order *models.Order) {
	if s.publisher == nil {
		return
	}
	event := map[string]interface{}{
		"orderId": order.ID,
		"status":  order.Status,
		"total":   order.Total,
		"email":   order.CustomerEmail,
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal %s event for order %d: %v", routingKey, order.ID, err)
		return
	}
	if err := s.publisher.Publish("orders", routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event for order %d: %v", routingKey, order.ID, err)
	}
}
