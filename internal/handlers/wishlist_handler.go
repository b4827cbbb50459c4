package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"mawasim/internal/services"
)

// WishlistHandler handles HTTP requests for customer wishlists.
type WishlistHandler struct {
	service *services.WishlistService
}

// NewWishlistHandler creates a new WishlistHandler.
func NewWishlistHandler(service *services.WishlistService) *WishlistHandler {
	return &WishlistHandler{
		service: service,
	}
}

// RegisterRoutes registers the wishlist routes with the Fiber app. Like the
// cart, the owner comes from the userId query parameter.
func (h *WishlistHandler) RegisterRoutes(router fiber.Router) {
	wishlistRoutes := router.Group("/wishlist")
	wishlistRoutes.Get("/", h.HandleGetWishlist)
	wishlistRoutes.Get("/contains/:productId", h.HandleContains)
	wishlistRoutes.Post("/", h.HandleAdd)
	wishlistRoutes.Delete("/:productId", h.HandleRemove)
}

// HandleGetWishlist lists the wishlist joined against the live catalog.
func (h *WishlistHandler) HandleGetWishlist(c *fiber.Ctx) error {
	lines, err := h.service.List(c.Context(), userID(c))
	if err != nil {
		log.Printf("Error listing wishlist: %v", err)
		return writeError(c, err)
	}
	return c.JSON(lines)
}

// HandleAdd adds a product to the wishlist.
func (h *WishlistHandler) HandleAdd(c *fiber.Ctx) error {
	var req struct {
		ProductID int64 `json:"productId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	item, err := h.service.Add(c.Context(), userID(c), req.ProductID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleRemove removes a product from the wishlist.
func (h *WishlistHandler) HandleRemove(c *fiber.Ctx) error {
	productID, err := paramID(c, "productId")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.service.Remove(c.Context(), userID(c), productID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product removed from wishlist"})
}

// HandleContains reports whether a product is on the wishlist.
func (h *WishlistHandler) HandleContains(c *fiber.Ctx) error {
	productID, err := paramID(c, "productId")
	if err != nil {
		return writeError(c, err)
	}
	contains, err := h.service.Contains(c.Context(), userID(c), productID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"inWishlist": contains})
}
