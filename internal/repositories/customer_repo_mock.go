package repositories

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"mawasim/internal/errs"
	"mawasim/internal/models"
)

// MockCustomerRepository is an in-memory implementation of CustomerRepository.
type MockCustomerRepository struct {
	mu        sync.RWMutex
	customers map[int64]models.Customer
}

// NewMockCustomerRepository creates a new instance of MockCustomerRepository.
func NewMockCustomerRepository() *MockCustomerRepository {
	return &MockCustomerRepository{
		customers: make(map[int64]models.Customer),
	}
}

// GetAll returns all customers, newest first.
func (r *MockCustomerRepository) GetAll(_ context.Context) ([]models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customerList := make([]models.Customer, 0, len(r.customers))
	for _, customer := range r.customers {
		customerList = append(customerList, customer)
	}
	sort.Slice(customerList, func(i, j int) bool {
		return customerList[i].CreatedAt.After(customerList[j].CreatedAt)
	})
	return customerList, nil
}

// GetByID returns a customer by its id.
func (r *MockCustomerRepository) GetByID(_ context.Context, id int64) (*models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.customers[id]
	if !ok {
		return nil, errs.NotFound("customer", id)
	}
	return &customer, nil
}

// GetByEmail returns a customer by lower-cased email.
func (r *MockCustomerRepository) GetByEmail(_ context.Context, email string) (*models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	email = strings.ToLower(email)
	for _, customer := range r.customers {
		if customer.Email == email {
			c := customer
			return &c, nil
		}
	}
	return nil, errs.NotFound("customer", email)
}

// Create adds a new customer, rejecting duplicate emails.
func (r *MockCustomerRepository) Create(_ context.Context, customer *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.customers {
		if existing.Email == customer.Email {
			return errs.Conflict("email %s already registered", customer.Email)
		}
	}
	r.customers[customer.ID] = *customer
	return nil
}

// Update replaces a stored customer.
func (r *MockCustomerRepository) Update(_ context.Context, customer *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.customers[customer.ID]; !ok {
		return errs.NotFound("customer", customer.ID)
	}
	r.customers[customer.ID] = *customer
	return nil
}

// Delete removes a customer by its id.
func (r *MockCustomerRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.customers[id]; !ok {
		return errs.NotFound("customer", id)
	}
	delete(r.customers, id)
	return nil
}

// Stats computes account statistics over the in-memory set.
func (r *MockCustomerRepository) Stats(_ context.Context) (*models.CustomerStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := &models.CustomerStats{}
	monthStart := time.Now().AddDate(0, -1, 0)
	for _, customer := range r.customers {
		stats.TotalCustomers++
		if customer.Status == "active" {
			stats.ActiveCustomers++
		}
		if customer.CreatedAt.After(monthStart) {
			stats.NewThisMonth++
		}
	}
	return stats, nil
}
