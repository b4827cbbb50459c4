package handlers

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"

	"mawasim/internal/models"
	"mawasim/internal/services"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/stats", h.HandleGetStats)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Post("/", h.HandleCheckout)
	orderRoutes.Put("/:id/status", h.HandleUpdateStatus)
	orderRoutes.Put("/:id/payment", h.HandleUpdatePayment)
	orderRoutes.Post("/:id/confirm", h.HandleConfirm)
	orderRoutes.Post("/:id/ship", h.HandleShip)
	orderRoutes.Post("/:id/deliver", h.HandleDeliver)
	orderRoutes.Post("/:id/cancel", h.HandleCancel)
	orderRoutes.Delete("/:id", h.HandleDelete)

	// Alternative checkout envelope kept for the storefront frontend.
	router.Post("/checkout", h.HandleCheckoutEnvelope)
}

// checkoutRequest is the flat order-creation payload.
type checkoutRequest struct {
	CustomerName  string             `json:"customerName"`
	CustomerEmail string             `json:"customerEmail"`
	CustomerPhone string             `json:"customerPhone"`
	Address       string             `json:"address"`
	City          string             `json:"city"`
	Items         []models.OrderItem `json:"items"`
	CouponCode    string             `json:"couponCode"`
	PaymentMethod string             `json:"paymentMethod"`
	PaymentStatus string             `json:"paymentStatus"`
	PaymentID     string             `json:"paymentId"`
	DeliveryFee   float64            `json:"deliveryFee"`
	Notes         string             `json:"notes"`
	UserID        string             `json:"userId"`
}

// HandleGetOrders retrieves all orders, newest first.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetAllOrders(c.Context())
	if err != nil {
		log.Printf("Error getting all orders: %v", err)
		return writeError(c, err)
	}
	return c.JSON(orders)
}

// HandleGetStats retrieves the order dashboard statistics.
func (h *OrderHandler) HandleGetStats(c *fiber.Ctx) error {
	stats, err := h.service.GetStats(c.Context())
	if err != nil {
		log.Printf("Error getting order stats: %v", err)
		return writeError(c, err)
	}
	return c.JSON(stats)
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	order, err := h.service.GetOrderByID(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(order)
}

// HandleCheckout creates a new order from the flat payload.
func (h *OrderHandler) HandleCheckout(c *fiber.Ctx) error {
	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	order, err := h.service.Checkout(c.Context(), services.CheckoutInput{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Address:       req.Address,
		City:          req.City,
		Items:         req.Items,
		CouponCode:    req.CouponCode,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: req.PaymentStatus,
		PaymentID:     req.PaymentID,
		DeliveryFee:   req.DeliveryFee,
		Notes:         req.Notes,
		UserID:        req.UserID,
	})
	if err != nil {
		log.Printf("Error creating order: %v", err)
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// checkoutEnvelope is the nested payload the storefront sends: customer and
// delivery info grouped under customerInfo. Totals in the payload are
// ignored; the order builder always recomputes them.
type checkoutEnvelope struct {
	Items        []models.OrderItem `json:"items"`
	CustomerInfo struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Address string `json:"address"`
		City    string `json:"city"`
		Notes   string `json:"notes"`
	} `json:"customerInfo"`
	PaymentMethod string  `json:"paymentMethod"`
	PaymentStatus string  `json:"paymentStatus"`
	PaymentID     string  `json:"paymentId"`
	DeliveryFee   float64 `json:"deliveryFee"`
	AppliedCoupon struct {
		Code string `json:"code"`
	} `json:"appliedCoupon"`
	UserID string `json:"userId"`
}

// HandleCheckoutEnvelope creates a new order from the nested storefront
// payload.
func (h *OrderHandler) HandleCheckoutEnvelope(c *fiber.Ctx) error {
	var req checkoutEnvelope
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	order, err := h.service.Checkout(c.Context(), services.CheckoutInput{
		CustomerName:  req.CustomerInfo.Name,
		CustomerEmail: req.CustomerInfo.Email,
		CustomerPhone: req.CustomerInfo.Phone,
		Address:       req.CustomerInfo.Address,
		City:          req.CustomerInfo.City,
		Items:         req.Items,
		CouponCode:    req.AppliedCoupon.Code,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: req.PaymentStatus,
		PaymentID:     req.PaymentID,
		DeliveryFee:   req.DeliveryFee,
		Notes:         req.CustomerInfo.Notes,
		UserID:        req.UserID,
	})
	if err != nil {
		log.Printf("Error creating order from checkout: %v", err)
		return writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Order placed successfully",
		"orderId": order.ID,
		"order":   order,
	})
}

// HandleUpdateStatus is the administrative status override. It accepts any of
// the six statuses without constraining the transition graph.
func (h *OrderHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil || req.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Status is required for order status update",
		})
	}

	order, err := h.service.SetStatus(c.Context(), id, req.Status)
	if err != nil {
		log.Printf("Error updating status for order %d: %v", id, err)
		return writeError(c, err)
	}
	return c.JSON(order)
}

// HandleUpdatePayment records the payment outcome for an order.
func (h *OrderHandler) HandleUpdatePayment(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	var req struct {
		PaymentStatus string `json:"paymentStatus"`
		PaymentID     string `json:"paymentId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	order, err := h.service.UpdatePayment(c.Context(), id, req.PaymentStatus, req.PaymentID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(order)
}

// HandleConfirm moves a pending order to confirmed.
func (h *OrderHandler) HandleConfirm(c *fiber.Ctx) error {
	return h.lifecycle(c, h.service.Confirm)
}

// HandleShip moves a confirmed or preparing order to shipped.
func (h *OrderHandler) HandleShip(c *fiber.Ctx) error {
	return h.lifecycle(c, h.service.Ship)
}

// HandleDeliver moves a shipped order to delivered.
func (h *OrderHandler) HandleDeliver(c *fiber.Ctx) error {
	return h.lifecycle(c, h.service.Deliver)
}

// HandleCancel cancels a non-terminal order.
func (h *OrderHandler) HandleCancel(c *fiber.Ctx) error {
	return h.lifecycle(c, h.service.Cancel)
}

func (h *OrderHandler) lifecycle(c *fiber.Ctx, op func(ctx context.Context, id int64) (*models.Order, error)) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	order, err := op(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(order)
}

// HandleDelete removes an order. This is an administrative override outside
// the lifecycle state machine.
func (h *OrderHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.service.DeleteOrder(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Order deleted successfully"})
}
