package repositories

import (
	"context"
	"sort"
	"sync"

	"mawasim/internal/errs"
	"mawasim/internal/models"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
type MockOrderRepository struct {
	mu     sync.RWMutex
	orders map[int64]models.Order
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[int64]models.Order),
	}
}

// GetAll returns all orders, newest first.
func (r *MockOrderRepository) GetAll(_ context.Context) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		orderList = append(orderList, order)
	}
	sort.Slice(orderList, func(i, j int) bool {
		return orderList[i].OrderDate.After(orderList[j].OrderDate)
	})
	return orderList, nil
}

// GetByID returns an order by its id.
func (r *MockOrderRepository) GetByID(_ context.Context, id int64) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, errs.NotFound("order", id)
	}
	return &order, nil
}

// Create adds a new order.
func (r *MockOrderRepository) Create(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[order.ID] = *order
	return nil
}

// Update replaces a stored order.
func (r *MockOrderRepository) Update(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[order.ID]; !ok {
		return errs.NotFound("order", order.ID)
	}
	r.orders[order.ID] = *order
	return nil
}

// Delete removes an order by its id.
func (r *MockOrderRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[id]; !ok {
		return errs.NotFound("order", id)
	}
	delete(r.orders, id)
	return nil
}

// Stats computes order statistics over the in-memory set.
func (r *MockOrderRepository) Stats(_ context.Context) (*models.OrderStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := &models.OrderStats{}
	for _, order := range r.orders {
		stats.TotalOrders++
		switch order.Status {
		case models.StatusPending:
			stats.PendingOrders++
		case models.StatusDelivered:
			stats.DeliveredOrders++
		case models.StatusCancelled:
			stats.CancelledOrders++
		}
		if order.Status != models.StatusCancelled {
			stats.TotalRevenue += order.Total
		}
	}
	return stats, nil
}
