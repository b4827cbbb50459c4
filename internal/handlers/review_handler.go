package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"mawasim/internal/models"
	"mawasim/internal/services"
)

// ReviewHandler handles HTTP requests for product reviews.
type ReviewHandler struct {
	service  *services.ReviewService
	validate *validator.Validate
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(service *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the review routes with the Fiber app.
func (h *ReviewHandler) RegisterRoutes(router fiber.Router) {
	reviewRoutes := router.Group("/reviews")
	reviewRoutes.Get("/", h.HandleGetReviews)
	reviewRoutes.Get("/product/:productId", h.HandleGetProductReviews)
	reviewRoutes.Post("/", h.HandleCreateReview)
	reviewRoutes.Delete("/:id", h.HandleDeleteReview)
}

// HandleGetReviews retrieves all reviews.
func (h *ReviewHandler) HandleGetReviews(c *fiber.Ctx) error {
	reviews, err := h.service.GetAllReviews(c.Context())
	if err != nil {
		log.Printf("Error getting all reviews: %v", err)
		return writeError(c, err)
	}
	return c.JSON(reviews)
}

// HandleGetProductReviews retrieves the reviews for a product.
func (h *ReviewHandler) HandleGetProductReviews(c *fiber.Ctx) error {
	productID, err := paramID(c, "productId")
	if err != nil {
		return writeError(c, err)
	}
	reviews, err := h.service.GetProductReviews(c.Context(), productID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(reviews)
}

// HandleCreateReview creates a new review.
func (h *ReviewHandler) HandleCreateReview(c *fiber.Ctx) error {
	var review models.Review
	if err := c.BodyParser(&review); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(review); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	if err := h.service.CreateReview(c.Context(), &review); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// HandleDeleteReview removes a review.
func (h *ReviewHandler) HandleDeleteReview(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.service.DeleteReview(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Review deleted successfully"})
}
