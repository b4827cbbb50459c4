package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"mawasim/internal/handlers"
	"mawasim/internal/middleware"
	"mawasim/internal/models"
	"mawasim/internal/repositories"
	"mawasim/internal/services"
)

// setupApp wires a Fiber app against in-memory repositories, mirroring the
// production route layout.
func setupApp() (*fiber.App, *services.AuthService) {
	seqRepo := repositories.NewMockSequenceRepository()
	orderRepo := repositories.NewMockOrderRepository()
	couponRepo := repositories.NewMockCouponRepository()
	cartRepo := repositories.NewMockCartRepository()
	productRepo := repositories.NewMockProductRepository()
	categoryRepo := repositories.NewMockCategoryRepository()
	customerRepo := repositories.NewMockCustomerRepository()
	wishlistRepo := repositories.NewMockWishlistRepository()
	reviewRepo := repositories.NewMockReviewRepository()

	orderService := services.NewOrderService(orderRepo, couponRepo, cartRepo, seqRepo, nil, nil)
	couponService := services.NewCouponService(couponRepo, seqRepo)
	cartService := services.NewCartService(cartRepo, productRepo, seqRepo)
	productService := services.NewProductService(productRepo, categoryRepo, seqRepo)
	authService := services.NewAuthService(customerRepo, seqRepo, nil, "test_jwt_secret")
	wishlistService := services.NewWishlistService(wishlistRepo, productRepo, seqRepo)
	reviewService := services.NewReviewService(reviewRepo, productRepo, seqRepo)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")

	handlers.NewOrderHandler(orderService).RegisterRoutes(apiV1)
	handlers.NewCouponHandler(couponService).RegisterRoutes(apiV1)
	handlers.NewCartHandler(cartService).RegisterRoutes(apiV1)
	handlers.NewProductHandler(productService).RegisterRoutes(apiV1)
	authHandler := handlers.NewAuthHandler(authService)
	authHandler.RegisterRoutes(apiV1)
	handlers.NewWishlistHandler(wishlistService).RegisterRoutes(apiV1)
	handlers.NewReviewHandler(reviewService).RegisterRoutes(apiV1)

	admin := apiV1.Group("/admin", middleware.AuthRequired(authService), middleware.AdminRequired())
	authHandler.RegisterAdminRoutes(admin)

	seedCatalog(productRepo)
	return app, authService
}

func seedCatalog(repo repositories.ProductRepository) {
	products := []models.Product{
		{ID: 1, Name: "Ceramic Teapot", Price: 97, Stock: 10, CategoryID: 1, IsActive: true},
		{ID: 2, Name: "Stoneware Mug", Price: 15, Stock: 25, CategoryID: 1, IsActive: true},
	}
	for i := range products {
		if err := repo.Create(context.Background(), &products[i]); err != nil {
			log.Printf("Failed to seed product %s: %v", products[i].Name, err)
		}
	}
}

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)

	var decoded map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	resp.Body.Close()
	if len(raw) > 0 && raw[0] == '{' {
		assert.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func TestCheckoutEnvelope(t *testing.T) {
	app, _ := setupApp()

	payload := map[string]interface{}{
		"items": []map[string]interface{}{
			{"productId": 1, "productName": "Ceramic Teapot", "price": 97, "quantity": 3},
		},
		"customerInfo": map[string]string{
			"name":    "Sara",
			"email":   "sara@example.com",
			"phone":   "0500000000",
			"address": "12 Harbor Road",
			"city":    "Jeddah",
		},
		"deliveryFee": 5,
	}
	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/checkout", payload)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Order placed successfully", body["message"])
	order := body["order"].(map[string]interface{})
	assert.Equal(t, 291.0, order["subtotal"])
	assert.Equal(t, 296.0, order["total"])
	assert.Equal(t, "pending", order["status"])
}

func TestCheckoutValidationFailure(t *testing.T) {
	app, _ := setupApp()

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/orders", map[string]interface{}{
		"customerName": "Sara",
		"address":      "12 Harbor Road",
		"city":         "Jeddah",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "items", body["field"])
}

func TestOrderLifecycleEndpoints(t *testing.T) {
	app, _ := setupApp()

	_, body := doJSON(t, app, http.MethodPost, "/api/v1/orders", map[string]interface{}{
		"customerName": "Sara",
		"address":      "12 Harbor Road",
		"city":         "Jeddah",
		"items": []map[string]interface{}{
			{"productId": 1, "price": 97, "quantity": 1},
		},
	})
	orderID := int64(body["id"].(float64))

	resp, body := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/v1/orders/%d/confirm", orderID), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "confirmed", body["status"])

	// Delivering a confirmed order skips shipped and is rejected.
	resp, _ = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/v1/orders/%d/deliver", orderID), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// The admin override is not constrained by the graph.
	resp, body = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/v1/orders/%d/status", orderID),
		map[string]string{"status": "delivered"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "delivered", body["status"])
	assert.NotNil(t, body["deliveredAt"])
}

func TestOrderNotFound(t *testing.T) {
	app, _ := setupApp()

	resp, _ := doJSON(t, app, http.MethodGet, "/api/v1/orders/999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/orders/not-a-number", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCouponValidateEndpoint(t *testing.T) {
	app, _ := setupApp()

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/coupons", map[string]interface{}{
		"name":          "Twenty off",
		"code":          "save20",
		"discountType":  "percentage",
		"discountValue": 20,
		"isActive":      true,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/coupons/validate", map[string]interface{}{
		"code":        "SAVE20",
		"orderAmount": 291,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["valid"])
	assert.Equal(t, 58.20, body["discount"])

	// Unknown codes map to 404.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/coupons/validate", map[string]interface{}{
		"code":        "NOPE",
		"orderAmount": 291,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCartFlow(t *testing.T) {
	app, _ := setupApp()

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/cart?userId=u1", map[string]interface{}{
		"productId": 1,
		"quantity":  2,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Ceramic Teapot", body["productName"])

	// Same product and options merge into one line.
	resp, body = doJSON(t, app, http.MethodPost, "/api/v1/cart?userId=u1", map[string]interface{}{
		"productId": 1,
		"quantity":  1,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, 3.0, body["quantity"])

	itemID := int64(body["id"].(float64))
	resp, body = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/v1/cart/%d?userId=u1", itemID),
		map[string]interface{}{"quantity": 5})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 5.0, body["quantity"])

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/v1/cart/clear?userId=u1", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Separate users have separate carts: u1's add never lands in guest.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	getResp, err := app.Test(req, -1)
	assert.NoError(t, err)
	defer getResp.Body.Close()
	var lines []map[string]interface{}
	assert.NoError(t, json.NewDecoder(getResp.Body).Decode(&lines))
	assert.Empty(t, lines)
}

func TestCartUnknownProduct(t *testing.T) {
	app, _ := setupApp()

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/cart", map[string]interface{}{
		"productId": 99,
		"quantity":  1,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAuthRegisterAndLogin(t *testing.T) {
	app, authService := setupApp()

	register := map[string]string{
		"name":     "Sara",
		"email":    "sara@example.com",
		"password": "secret123",
	}
	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", register)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// Duplicate registration conflicts.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/auth/register", register)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "sara@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	assert.NotEmpty(t, token)

	claims, err := authService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "sara@example.com", claims["email"])
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	app, _ := setupApp()

	// No token at all.
	resp, _ := doJSON(t, app, http.MethodGet, "/api/v1/admin/customers", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// A plain customer token is rejected.
	_, _ = doJSON(t, app, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"name": "Sara", "email": "sara@example.com", "password": "secret123",
	})
	_, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email": "sara@example.com", "password": "secret123",
	})
	token := body["token"].(string)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/customers", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	adminResp, err := app.Test(req, -1)
	assert.NoError(t, err)
	defer adminResp.Body.Close()
	assert.Equal(t, http.StatusForbidden, adminResp.StatusCode)
}

func TestWishlistEndpoints(t *testing.T) {
	app, _ := setupApp()

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/wishlist?userId=u1", map[string]interface{}{
		"productId": 1,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// Adding the same product twice conflicts.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/wishlist?userId=u1", map[string]interface{}{
		"productId": 1,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/wishlist/contains/1?userId=u1", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["inWishlist"])

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/v1/wishlist/1?userId=u1", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProductCRUD(t *testing.T) {
	app, _ := setupApp()

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/products", map[string]interface{}{
		"name":       "Copper Kettle",
		"price":      120,
		"stock":      4,
		"categoryId": 1,
		"isActive":   true,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	id := int64(body["id"].(float64))

	resp, body = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/products/%d", id), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Copper Kettle", body["name"])

	resp, _ = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/products/%d", id), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/products/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
