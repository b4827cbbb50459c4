package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"mawasim/internal/models"
	"mawasim/internal/services"
)

// AuthHandler handles customer registration, login and account management.
type AuthHandler struct {
	service  *services.AuthService
	validate *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the auth routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/change-password", h.HandleChangePassword)
}

// RegisterAdminRoutes registers the customer administration routes. The
// caller is expected to guard the group with the admin middleware.
func (h *AuthHandler) RegisterAdminRoutes(router fiber.Router) {
	customerRoutes := router.Group("/customers")
	customerRoutes.Get("/", h.HandleGetCustomers)
	customerRoutes.Get("/stats", h.HandleGetCustomerStats)
	customerRoutes.Delete("/:id", h.HandleDeleteCustomer)
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
}

// HandleRegister creates a new customer account.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req registerRequest
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

	customer := &models.Customer{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
		City:     req.City,
	}
	if err := h.service.Register(c.Context(), customer); err != nil {
		log.Printf("Error registering customer: %v", err)
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Registration successful",
		"customer": customer,
	})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin authenticates a customer and returns a signed token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req loginRequest
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

	customer, token, err := h.service.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":  "Login successful",
		"token":    token,
		"customer": customer,
	})
}

type changePasswordRequest struct {
	Email           string `json:"email" validate:"required,email"`
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// HandleChangePassword replaces a customer password after verifying the
// current one.
func (h *AuthHandler) HandleChangePassword(c *fiber.Ctx) error {
	var req changePasswordRequest
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

	if err := h.service.ChangePassword(c.Context(), req.Email, req.CurrentPassword, req.NewPassword); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Password updated successfully"})
}

// HandleGetCustomers retrieves all registered customers.
func (h *AuthHandler) HandleGetCustomers(c *fiber.Ctx) error {
	customers, err := h.service.GetAllCustomers(c.Context())
	if err != nil {
		log.Printf("Error getting all customers: %v", err)
		return writeError(c, err)
	}
	return c.JSON(customers)
}

// HandleGetCustomerStats retrieves the customer dashboard statistics.
func (h *AuthHandler) HandleGetCustomerStats(c *fiber.Ctx) error {
	stats, err := h.service.GetCustomerStats(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(stats)
}

// HandleDeleteCustomer removes a customer account.
func (h *AuthHandler) HandleDeleteCustomer(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.service.DeleteCustomer(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Customer deleted successfully"})
}
