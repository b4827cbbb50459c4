package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"mawasim/internal/models"
	"mawasim/internal/services"
)

// ProductHandler handles HTTP requests for the product catalog and its
// categories.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the catalog routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/category/:categoryId", h.HandleGetProductsByCategory)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)

	categoryRoutes := router.Group("/categories")
	categoryRoutes.Get("/", h.HandleGetCategories)
	categoryRoutes.Get("/:id", h.HandleGetCategoryByID)
	categoryRoutes.Post("/", h.HandleCreateCategory)
	categoryRoutes.Put("/:id", h.HandleUpdateCategory)
	categoryRoutes.Delete("/:id", h.HandleDeleteCategory)
}

// HandleGetProducts retrieves all products.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.Context())
	if err != nil {
		log.Printf("Error getting all products: %v", err)
		return writeError(c, err)
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	product, err := h.service.GetProductByID(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(product)
}

// HandleGetProductsByCategory retrieves the products in a category.
func (h *ProductHandler) HandleGetProductsByCategory(c *fiber.Ctx) error {
	categoryID, err := paramID(c, "categoryId")
	if err != nil {
		return writeError(c, err)
	}
	products, err := h.service.GetProductsByCategory(c.Context(), categoryID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(products)
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	if err := h.service.CreateProduct(c.Context(), &product); err != nil {
		log.Printf("Error creating product: %v", err)
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct updates an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	product.ID = id
	if err := h.service.UpdateProduct(c.Context(), &product); err != nil {
		return writeError(c, err)
	}
	return c.JSON(product)
}

// HandleDeleteProduct removes a product from the catalog.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.service.DeleteProduct(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}

// HandleGetCategories retrieves all categories.
func (h *ProductHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.service.GetAllCategories(c.Context())
	if err != nil {
		log.Printf("Error getting all categories: %v", err)
		return writeError(c, err)
	}
	return c.JSON(categories)
}

// HandleGetCategoryByID retrieves a single category by its ID.
func (h *ProductHandler) HandleGetCategoryByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	category, err := h.service.GetCategoryByID(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(category)
}

// HandleCreateCategory creates a new category.
func (h *ProductHandler) HandleCreateCategory(c *fiber.Ctx) error {
	var category models.Category
	if err := c.BodyParser(&category); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(category); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	if err := h.service.CreateCategory(c.Context(), &category); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// HandleUpdateCategory updates an existing category.
func (h *ProductHandler) HandleUpdateCategory(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	var category models.Category
	if err := c.BodyParser(&category); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(category); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	category.ID = id
	if err := h.service.UpdateCategory(c.Context(), &category); err != nil {
		return writeError(c, err)
	}
	return c.JSON(category)
}

// HandleDeleteCategory removes a category.
func (h *ProductHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.service.DeleteCategory(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Category deleted successfully"})
}
