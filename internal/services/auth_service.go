package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"mawasim/internal/errs"
	"mawasim/internal/models"
	"mawasim/internal/repositories"
)

// AuthService handles customer accounts: registration, login and password
// changes. Passwords are bcrypt-hashed before persistence and never stored
// in plaintext; verification goes through bcrypt's constant-time compare.
type AuthService struct {
	customerRepo repositories.CustomerRepository
	seqRepo      repositories.SequenceRepository
	notifier     Notifier
	jwtSecret    []byte
	tokenTTL     time.Duration
}

// NewAuthService creates a new AuthService. notifier may be nil.
func NewAuthService(customerRepo repositories.CustomerRepository, seqRepo repositories.SequenceRepository, notifier Notifier, jwtSecret string) *AuthService {
	return &AuthService{
		customerRepo: customerRepo,
		seqRepo:      seqRepo,
		notifier:     notifier,
		jwtSecret:    []byte(jwtSecret),
		tokenTTL:     24 * time.Hour,
	}
}

// Register creates a new customer account with a hashed password and sends a
// welcome email. The email is lower-cased and must be unused.
func (s *AuthService) Register(ctx context.Context, customer *models.Customer) error {
	customer.Email = strings.ToLower(strings.TrimSpace(customer.Email))
	if customer.Email == "" || customer.Name == "" {
		return errs.Validation("email", "email and name are required")
	}
	if len(customer.Password) < 6 {
		return errs.Validation("password", "must be at least 6 characters")
	}

	if existing, err := s.customerRepo.GetByEmail(ctx, customer.Email); err == nil && existing != nil {
		return errs.Conflict("email %s already registered", customer.Email)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(customer.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	customer.Password = string(hashed)

	id, err := s.seqRepo.Next(ctx, repositories.SeqCustomers)
	if err != nil {
		return fmt.Errorf("failed to assign customer id: %w", err)
	}
	customer.ID = id
	if customer.Role == "" {
		customer.Role = models.RoleCustomer
	}
	customer.Status = "active"
	customer.CreatedAt = time.Now()

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return err
	}

	if s.notifier != nil {
		go func(c models.Customer) {
			if err := s.notifier.SendWelcome(&c); err != nil {
				log.Printf("Warning: failed to send welcome email to %s: %v", c.Email, err)
			}
		}(*customer)
	}
	return nil
}

// Login verifies credentials and returns the customer plus a signed JWT.
// Unknown email and wrong password both surface the same error so the
// endpoint does not leak which accounts exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.Customer, string, error) {
	customer, err := s.customerRepo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, "", errs.Validation("credentials", "invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(customer.Password), []byte(password)); err != nil {
		return nil, "", errs.Validation("credentials", "invalid email or password")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"customer_id": customer.ID,
		"email":       customer.Email,
		"role":        customer.Role,
		"exp":         time.Now().Add(s.tokenTTL).Unix(),
		"iat":         time.Now().Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return customer, signed, nil
}

// ChangePassword verifies the current password and stores a hash of the new
// one.
func (s *AuthService) ChangePassword(ctx context.Context, email, currentPassword, newPassword string) error {
	if len(newPassword) < 6 {
		return errs.Validation("newPassword", "must be at least 6 characters")
	}

	customer, err := s.customerRepo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(customer.Password), []byte(currentPassword)); err != nil {
		return errs.Validation("currentPassword", "current password is incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	customer.Password = string(hashed)
	return s.customerRepo.Update(ctx, customer)
}

// ValidateToken parses and validates a JWT, returning its claims.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// GetAllCustomers retrieves all customer accounts.
func (s *AuthService) GetAllCustomers(ctx context.Context) ([]models.Customer, error) {
	return s.customerRepo.GetAll(ctx)
}

// GetCustomerStats retrieves the account dashboard statistics.
func (s *AuthService) GetCustomerStats(ctx context.Context) (*models.CustomerStats, error) {
	return s.customerRepo.Stats(ctx)
}

// DeleteCustomer removes a customer account.
func (s *AuthService) DeleteCustomer(ctx context.Context, id int64) error {
	return s.customerRepo.Delete(ctx, id)
}
