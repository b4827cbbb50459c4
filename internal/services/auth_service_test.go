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

func newAuthFixture(t *testing.T) (*services.AuthService, *repositories.MockCustomerRepository) {
	t.Helper()
	customerRepo := repositories.NewMockCustomerRepository()
	service := services.NewAuthService(customerRepo, repositories.NewMockSequenceRepository(), nil, "test-secret")
	return service, customerRepo
}

func registered(t *testing.T, service *services.AuthService) *models.Customer {
	t.Helper()
	customer := &models.Customer{
		Name:     "Sara",
		Email:    "Sara@Example.com",
		Password: "secret123",
	}
	assert.NoError(t, service.Register(context.Background(), customer))
	return customer
}

func TestAuthService_Register(t *testing.T) {
	service, repo := newAuthFixture(t)

	customer := registered(t, service)

	assert.NotZero(t, customer.ID)
	assert.Equal(t, "sara@example.com", customer.Email)
	assert.Equal(t, models.RoleCustomer, customer.Role)
	assert.NotEqual(t, "secret123", customer.Password, "password must be hashed")

	stored, err := repo.GetByEmail(context.Background(), "sara@example.com")
	assert.NoError(t, err)
	assert.Equal(t, customer.ID, stored.ID)
}

func TestAuthService_Register_ShortPassword(t *testing.T) {
	service, _ := newAuthFixture(t)

	err := service.Register(context.Background(), &models.Customer{
		Name:     "Sara",
		Email:    "sara@example.com",
		Password: "short",
	})

	var ve *errs.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	service, _ := newAuthFixture(t)
	registered(t, service)

	err := service.Register(context.Background(), &models.Customer{
		Name:     "Imposter",
		Email:    "SARA@example.com",
		Password: "secret123",
	})

	var conflict *errs.ConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestAuthService_Login(t *testing.T) {
	service, _ := newAuthFixture(t)
	registered(t, service)

	customer, token, err := service.Login(context.Background(), "sara@example.com", "secret123")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "sara@example.com", customer.Email)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "sara@example.com", claims["email"])
	assert.Equal(t, models.RoleCustomer, claims["role"])
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	service, _ := newAuthFixture(t)
	registered(t, service)

	_, _, err := service.Login(context.Background(), "sara@example.com", "wrong-password")
	assert.Error(t, err)

	// Unknown accounts produce the same error as a wrong password.
	_, _, unknownErr := service.Login(context.Background(), "nobody@example.com", "secret123")
	assert.Error(t, unknownErr)
	assert.Equal(t, err.Error(), unknownErr.Error())
}

func TestAuthService_ChangePassword(t *testing.T) {
	service, _ := newAuthFixture(t)
	registered(t, service)

	err := service.ChangePassword(context.Background(), "sara@example.com", "secret123", "new-secret")
	assert.NoError(t, err)

	_, _, err = service.Login(context.Background(), "sara@example.com", "secret123")
	assert.Error(t, err)

	_, _, err = service.Login(context.Background(), "sara@example.com", "new-secret")
	assert.NoError(t, err)
}

func TestAuthService_ChangePassword_WrongCurrent(t *testing.T) {
	service, _ := newAuthFixture(t)
	registered(t, service)

	err := service.ChangePassword(context.Background(), "sara@example.com", "wrong", "new-secret")

	var ve *errs.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestAuthService_ValidateToken_Garbage(t *testing.T) {
	service, _ := newAuthFixture(t)

	_, err := service.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestAuthService_ValidateToken_WrongSecret(t *testing.T) {
	service, _ := newAuthFixture(t)
	registered(t, service)
	_, token, err := service.Login(context.Background(), "sara@example.com", "secret123")
	assert.NoError(t, err)

	other := services.NewAuthService(
		repositories.NewMockCustomerRepository(),
		repositories.NewMockSequenceRepository(),
		nil, "different-secret",
	)
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}
