package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"mawasim/internal/errs"
	"mawasim/internal/models"
	"mawasim/internal/repositories"
	"mawasim/internal/services"
)

type orderFixture struct {
	service    *services.OrderService
	orderRepo  *repositories.MockOrderRepository
	couponRepo *repositories.MockCouponRepository
	cartRepo   *repositories.MockCartRepository
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	orderRepo := repositories.NewMockOrderRepository()
	couponRepo := repositories.NewMockCouponRepository()
	cartRepo := repositories.NewMockCartRepository()
	service := services.NewOrderService(
		orderRepo, couponRepo, cartRepo,
		repositories.NewMockSequenceRepository(),
		nil, nil,
	)
	return &orderFixture{
		service:    service,
		orderRepo:  orderRepo,
		couponRepo: couponRepo,
		cartRepo:   cartRepo,
	}
}

func checkoutInput() services.CheckoutInput {
	return services.CheckoutInput{
		CustomerName: "Sara",
		Address:      "12 Harbor Road",
		City:         "Jeddah",
		DeliveryFee:  5,
		Items: []models.OrderItem{
			{ProductID: 1, ProductName: "teapot", Price: 97, Quantity: 3},
		},
	}
}

func (f *orderFixture) seedCoupon(t *testing.T, coupon models.Coupon) {
	t.Helper()
	assert.NoError(t, f.couponRepo.Create(context.Background(), &coupon))
}

func TestOrderService_Checkout_DerivesTotals(t *testing.T) {
	f := newOrderFixture(t)

	in := checkoutInput()
	// Caller-supplied line totals are ignored and recomputed.
	in.Items[0].TotalPrice = 1

	order, err := f.service.Checkout(context.Background(), in)

	assert.NoError(t, err)
	assert.NotZero(t, order.ID)
	assert.Equal(t, 291.0, order.Items[0].TotalPrice)
	assert.Equal(t, 291.0, order.Subtotal)
	assert.Equal(t, 296.0, order.Total)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, models.PaymentCOD, order.PaymentMethod)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
}

func TestOrderService_Checkout_AppliesCouponAndIncrementsUsage(t *testing.T) {
	f := newOrderFixture(t)
	f.seedCoupon(t, models.Coupon{
		ID:            1,
		Name:          "Twenty off",
		Code:          "SAVE20",
		DiscountType:  models.DiscountPercentage,
		DiscountValue: 20,
		IsActive:      true,
	})

	in := checkoutInput()
	in.CouponCode = "save20"

	order, err := f.service.Checkout(context.Background(), in)

	assert.NoError(t, err)
	assert.Equal(t, "SAVE20", order.CouponCode)
	assert.Equal(t, 58.20, order.CouponDiscount)
	assert.Equal(t, 237.80, order.Total)

	coupon, err := f.couponRepo.GetByID(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), coupon.UsedCount)
}

func TestOrderService_Checkout_UnknownCouponIsNonFatal(t *testing.T) {
	f := newOrderFixture(t)

	in := checkoutInput()
	in.CouponCode = "NOPE"

	order, err := f.service.Checkout(context.Background(), in)

	assert.NoError(t, err)
	assert.Zero(t, order.CouponDiscount)
	assert.Equal(t, 296.0, order.Total)
}

func TestOrderService_Checkout_RejectedCouponIsNonFatal(t *testing.T) {
	f := newOrderFixture(t)
	f.seedCoupon(t, models.Coupon{
		ID:            1,
		Name:          "Big spender",
		Code:          "BIG",
		DiscountType:  models.DiscountFixed,
		DiscountValue: 50,
		MinimumAmount: 1000,
		IsActive:      true,
	})

	in := checkoutInput()
	in.CouponCode = "BIG"

	order, err := f.service.Checkout(context.Background(), in)

	assert.NoError(t, err)
	assert.Zero(t, order.CouponDiscount)

	coupon, err := f.couponRepo.GetByID(context.Background(), 1)
	assert.NoError(t, err)
	assert.Zero(t, coupon.UsedCount)
}

func TestOrderService_Checkout_ExhaustedCouponGivesNoDiscount(t *testing.T) {
	f := newOrderFixture(t)
	f.seedCoupon(t, models.Coupon{
		ID:            1,
		Name:          "One shot",
		Code:          "ONCE",
		DiscountType:  models.DiscountFixed,
		DiscountValue: 10,
		UsageLimit:    1,
		IsActive:      true,
	})

	in := checkoutInput()
	in.CouponCode = "ONCE"

	first, err := f.service.Checkout(context.Background(), in)
	assert.NoError(t, err)
	assert.Equal(t, 10.0, first.CouponDiscount)

	second, err := f.service.Checkout(context.Background(), in)
	assert.NoError(t, err)
	assert.Zero(t, second.CouponDiscount)

	coupon, err := f.couponRepo.GetByID(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), coupon.UsedCount)
}

func TestOrderService_Checkout_ValidationFailures(t *testing.T) {
	f := newOrderFixture(t)

	cases := []struct {
		name   string
		mutate func(*services.CheckoutInput)
	}{
		{"missing name", func(in *services.CheckoutInput) { in.CustomerName = " " }},
		{"missing address", func(in *services.CheckoutInput) { in.Address = "" }},
		{"missing city", func(in *services.CheckoutInput) { in.City = "" }},
		{"no items", func(in *services.CheckoutInput) { in.Items = nil }},
		{"zero quantity", func(in *services.CheckoutInput) { in.Items[0].Quantity = 0 }},
		{"negative price", func(in *services.CheckoutInput) { in.Items[0].Price = -1 }},
		{"negative delivery fee", func(in *services.CheckoutInput) { in.DeliveryFee = -1 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := checkoutInput()
			tc.mutate(&in)
			_, err := f.service.Checkout(context.Background(), in)
			var ve *errs.ValidationError
			assert.ErrorAs(t, err, &ve)
		})
	}
}

func TestOrderService_Checkout_UnknownPaymentMethod(t *testing.T) {
	f := newOrderFixture(t)

	in := checkoutInput()
	in.PaymentMethod = "barter"

	_, err := f.service.Checkout(context.Background(), in)

	var ve *errs.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestOrderService_Checkout_ClearsCart(t *testing.T) {
	f := newOrderFixture(t)
	assert.NoError(t, f.cartRepo.Create(context.Background(), &models.CartItem{
		ID:        1,
		UserID:    "user-1",
		ProductID: 1,
		Quantity:  2,
	}))

	in := checkoutInput()
	in.UserID = "user-1"

	_, err := f.service.Checkout(context.Background(), in)
	assert.NoError(t, err)

	items, err := f.cartRepo.ListByUser(context.Background(), "user-1")
	assert.NoError(t, err)
	assert.Empty(t, items)
}

func TestOrderService_Lifecycle_HappyPath(t *testing.T) {
	f := newOrderFixture(t)
	order, err := f.service.Checkout(context.Background(), checkoutInput())
	assert.NoError(t, err)

	order, err = f.service.Confirm(context.Background(), order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, order.Status)

	order, err = f.service.Ship(context.Background(), order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusShipped, order.Status)

	order, err = f.service.Deliver(context.Background(), order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, order.Status)
	assert.NotNil(t, order.DeliveredAt)
}

func TestOrderService_Lifecycle_InvalidTransitions(t *testing.T) {
	f := newOrderFixture(t)
	order, err := f.service.Checkout(context.Background(), checkoutInput())
	assert.NoError(t, err)

	// Cannot ship a pending order.
	_, err = f.service.Ship(context.Background(), order.ID)
	var ve *errs.ValidationError
	assert.ErrorAs(t, err, &ve)

	// Cannot deliver before shipping.
	_, err = f.service.Deliver(context.Background(), order.ID)
	assert.ErrorAs(t, err, &ve)
}

func TestOrderService_Cancel_TerminalStatesRejected(t *testing.T) {
	f := newOrderFixture(t)
	order, err := f.service.Checkout(context.Background(), checkoutInput())
	assert.NoError(t, err)

	_, err = f.service.Confirm(context.Background(), order.ID)
	assert.NoError(t, err)
	_, err = f.service.Ship(context.Background(), order.ID)
	assert.NoError(t, err)
	_, err = f.service.Deliver(context.Background(), order.ID)
	assert.NoError(t, err)

	// Delivered is terminal for the named lifecycle operations.
	_, err = f.service.Cancel(context.Background(), order.ID)
	var ve *errs.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestOrderService_Cancel_FromPending(t *testing.T) {
	f := newOrderFixture(t)
	order, err := f.service.Checkout(context.Background(), checkoutInput())
	assert.NoError(t, err)

	order, err = f.service.Cancel(context.Background(), order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, order.Status)

	// Cancelled is terminal too.
	_, err = f.service.Confirm(context.Background(), order.ID)
	var ve *errs.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestOrderService_SetStatus_BypassesTransitionGraph(t *testing.T) {
	f := newOrderFixture(t)
	order, err := f.service.Checkout(context.Background(), checkoutInput())
	assert.NoError(t, err)

	// The admin override jumps straight to delivered.
	order, err = f.service.SetStatus(context.Background(), order.ID, models.StatusDelivered)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, order.Status)
	assert.NotNil(t, order.DeliveredAt)

	// Moving back out of delivered clears the delivery timestamp.
	order, err = f.service.SetStatus(context.Background(), order.ID, models.StatusPreparing)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusPreparing, order.Status)
	assert.Nil(t, order.DeliveredAt)
}

func TestOrderService_SetStatus_RejectsUnknownStatus(t *testing.T) {
	f := newOrderFixture(t)
	order, err := f.service.Checkout(context.Background(), checkoutInput())
	assert.NoError(t, err)

	_, err = f.service.SetStatus(context.Background(), order.ID, "lost")

	var ve *errs.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestOrderService_UpdatePayment(t *testing.T) {
	f := newOrderFixture(t)
	order, err := f.service.Checkout(context.Background(), checkoutInput())
	assert.NoError(t, err)

	order, err = f.service.UpdatePayment(context.Background(), order.ID, models.PaymentStatusPaid, "txn-123")
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, order.PaymentStatus)
	assert.Equal(t, "txn-123", order.PaymentID)
}

func TestOrderService_GetStats_ExcludesCancelledRevenue(t *testing.T) {
	f := newOrderFixture(t)

	first, err := f.service.Checkout(context.Background(), checkoutInput())
	assert.NoError(t, err)
	second, err := f.service.Checkout(context.Background(), checkoutInput())
	assert.NoError(t, err)

	_, err = f.service.Cancel(context.Background(), second.ID)
	assert.NoError(t, err)

	stats, err := f.service.GetStats(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalOrders)
	assert.Equal(t, first.Total, stats.TotalRevenue)
}
