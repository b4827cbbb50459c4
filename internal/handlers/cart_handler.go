package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"mawasim/internal/models"
	"mawasim/internal/services"
)

// CartHandler handles HTTP requests for the shopping cart.
type CartHandler struct {
	service *services.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service: service,
	}
}

// RegisterRoutes registers the cart routes with the Fiber app. All routes
// read the cart owner from the userId query parameter, defaulting to the
// guest cart.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/", h.HandleAddItem)
	cartRoutes.Put("/:id", h.HandleUpdateItem)
	cartRoutes.Delete("/clear", h.HandleClearCart)
	cartRoutes.Delete("/product/:productId", h.HandleRemoveByProduct)
	cartRoutes.Delete("/:id", h.HandleRemoveItem)
}

// HandleGetCart lists the cart joined against the live product catalog.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	lines, err := h.service.List(c.Context(), userID(c))
	if err != nil {
		log.Printf("Error listing cart: %v", err)
		return writeError(c, err)
	}
	return c.JSON(lines)
}

type addCartItemRequest struct {
	ProductID       int64              `json:"productId"`
	Quantity        int                `json:"quantity"`
	SelectedOptions map[string]string  `json:"selectedOptions"`
	OptionsPricing  map[string]float64 `json:"optionsPricing"`
	Attachments     models.Attachments `json:"attachments"`
}

// HandleAddItem adds a product to the cart, merging with an existing line
// when the product and selected options match.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req addCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	item, err := h.service.AddItem(c.Context(), services.AddItemInput{
		UserID:          userID(c),
		ProductID:       req.ProductID,
		Quantity:        req.Quantity,
		SelectedOptions: req.SelectedOptions,
		OptionsPricing:  req.OptionsPricing,
		Attachments:     req.Attachments,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

type updateCartItemRequest struct {
	Quantity        *int                `json:"quantity"`
	SelectedOptions map[string]string   `json:"selectedOptions"`
	OptionsPricing  map[string]float64  `json:"optionsPricing"`
	Attachments     *models.Attachments `json:"attachments"`
}

// HandleUpdateItem partially updates a cart item. Absent fields are left
// unchanged.
func (h *CartHandler) HandleUpdateItem(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	var req updateCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	item, err := h.service.UpdateItem(c.Context(), userID(c), id, services.UpdateItemInput{
		Quantity:        req.Quantity,
		SelectedOptions: req.SelectedOptions,
		OptionsPricing:  req.OptionsPricing,
		Attachments:     req.Attachments,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(item)
}

// HandleRemoveItem removes a single cart item by its ID.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.service.RemoveItem(c.Context(), userID(c), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Item removed from cart"})
}

// HandleRemoveByProduct removes every cart line for a product, regardless of
// selected options.
func (h *CartHandler) HandleRemoveByProduct(c *fiber.Ctx) error {
	productID, err := paramID(c, "productId")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.service.RemoveByProduct(c.Context(), userID(c), productID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product removed from cart"})
}

// HandleClearCart empties the cart. Clearing an already empty cart succeeds.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	if err := h.service.Clear(c.Context(), userID(c)); err != nil {
		log.Printf("Error clearing cart: %v", err)
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Cart cleared"})
}
