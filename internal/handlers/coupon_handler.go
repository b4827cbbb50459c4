package handlers

import (
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"mawasim/internal/models"
	"mawasim/internal/services"
)

// CouponHandler handles HTTP requests for coupons.
type CouponHandler struct {
	service  *services.CouponService
	validate *validator.Validate
}

// NewCouponHandler creates a new CouponHandler.
func NewCouponHandler(service *services.CouponService) *CouponHandler {
	return &CouponHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the coupon routes with the Fiber app.
func (h *CouponHandler) RegisterRoutes(router fiber.Router) {
	couponRoutes := router.Group("/coupons")
	couponRoutes.Get("/", h.HandleGetCoupons)
	couponRoutes.Get("/:id", h.HandleGetCouponByID)
	couponRoutes.Post("/", h.HandleCreateCoupon)
	couponRoutes.Post("/validate", h.HandleValidateCoupon)
	couponRoutes.Put("/:id", h.HandleUpdateCoupon)
	couponRoutes.Delete("/:id", h.HandleDeleteCoupon)
}

type couponRequest struct {
	Name          string     `json:"name" validate:"required"`
	Code          string     `json:"code" validate:"required,min=2,max=50"`
	Description   string     `json:"description"`
	DiscountType  string     `json:"discountType" validate:"required,oneof=percentage fixed"`
	DiscountValue float64    `json:"discountValue" validate:"gte=0"`
	MaxDiscount   float64    `json:"maxDiscount" validate:"gte=0"`
	MinimumAmount float64    `json:"minimumAmount" validate:"gte=0"`
	UsageLimit    int64      `json:"usageLimit" validate:"gte=0"`
	ExpiryDate    *time.Time `json:"expiryDate"`
	IsActive      *bool      `json:"isActive"`
}

// HandleGetCoupons retrieves all coupons.
func (h *CouponHandler) HandleGetCoupons(c *fiber.Ctx) error {
	coupons, err := h.service.GetAllCoupons(c.Context())
	if err != nil {
		log.Printf("Error getting all coupons: %v", err)
		return writeError(c, err)
	}
	return c.JSON(coupons)
}

// HandleGetCouponByID retrieves a single coupon by its ID.
func (h *CouponHandler) HandleGetCouponByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	coupon, err := h.service.GetCouponByID(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(coupon)
}

// HandleCreateCoupon creates a new coupon.
func (h *CouponHandler) HandleCreateCoupon(c *fiber.Ctx) error {
	var req couponRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	coupon := req.toModel()
	if err := h.service.CreateCoupon(c.Context(), coupon); err != nil {
		log.Printf("Error creating coupon: %v", err)
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(coupon)
}

// HandleUpdateCoupon updates an existing coupon.
func (h *CouponHandler) HandleUpdateCoupon(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	var req couponRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	coupon := req.toModel()
	coupon.ID = id
	if err := h.service.UpdateCoupon(c.Context(), coupon); err != nil {
		return writeError(c, err)
	}
	return c.JSON(coupon)
}

// HandleDeleteCoupon removes a coupon.
func (h *CouponHandler) HandleDeleteCoupon(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.service.DeleteCoupon(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Coupon deleted successfully"})
}

// HandleValidateCoupon checks a coupon code against an order amount and
// returns the discount it would grant. Nothing is consumed; usage is only
// counted at checkout.
func (h *CouponHandler) HandleValidateCoupon(c *fiber.Ctx) error {
	var req struct {
		Code        string  `json:"code"`
		OrderAmount float64 `json:"orderAmount"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	coupon, result, err := h.service.ValidateCode(c.Context(), req.Code, req.OrderAmount)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"valid":    true,
		"discount": result.Discount,
		"coupon":   coupon,
	})
}

func (r *couponRequest) toModel() *models.Coupon {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return &models.Coupon{
		Name:          r.Name,
		Code:          r.Code,
		Description:   r.Description,
		DiscountType:  r.DiscountType,
		DiscountValue: r.DiscountValue,
		MaxDiscount:   r.MaxDiscount,
		MinimumAmount: r.MinimumAmount,
		UsageLimit:    r.UsageLimit,
		ExpiryDate:    r.ExpiryDate,
		IsActive:      active,
	}
}
