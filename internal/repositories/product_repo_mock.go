package repositories

import (
	"context"
	"sort"
	"sync"

	"mawasim/internal/errs"
	"mawasim/internal/models"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
type MockProductRepository struct {
	mu       sync.RWMutex
	products map[int64]models.Product
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[int64]models.Product),
	}
}

// GetAll returns all products ordered by id.
func (r *MockProductRepository) GetAll(_ context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, product := range r.products {
		productList = append(productList, product)
	}
	sort.Slice(productList, func(i, j int) bool { return productList[i].ID < productList[j].ID })
	return productList, nil
}

// GetByID returns a product by its id.
func (r *MockProductRepository) GetByID(_ context.Context, id int64) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, errs.NotFound("product", id)
	}
	return &product, nil
}

// GetByCategory returns all active products in a category.
func (r *MockProductRepository) GetByCategory(_ context.Context, categoryID int64) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var productList []models.Product
	for _, product := range r.products {
		if product.CategoryID == categoryID && product.IsActive {
			productList = append(productList, product)
		}
	}
	sort.Slice(productList, func(i, j int) bool { return productList[i].ID < productList[j].ID })
	return productList, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[product.ID] = *product
	return nil
}

// Update replaces a stored product.
func (r *MockProductRepository) Update(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return errs.NotFound("product", product.ID)
	}
	r.products[product.ID] = *product
	return nil
}

// Delete removes a product by its id.
func (r *MockProductRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return errs.NotFound("product", id)
	}
	delete(r.products, id)
	return nil
}

// MockCategoryRepository is an in-memory implementation of CategoryRepository.
type MockCategoryRepository struct {
	mu         sync.RWMutex
	categories map[int64]models.Category
}

// NewMockCategoryRepository creates a new instance of MockCategoryRepository.
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		categories: make(map[int64]models.Category),
	}
}

// GetAll returns all categories ordered by id.
func (r *MockCategoryRepository) GetAll(_ context.Context) ([]models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	categoryList := make([]models.Category, 0, len(r.categories))
	for _, category := range r.categories {
		categoryList = append(categoryList, category)
	}
	sort.Slice(categoryList, func(i, j int) bool { return categoryList[i].ID < categoryList[j].ID })
	return categoryList, nil
}

// GetByID returns a category by its id.
func (r *MockCategoryRepository) GetByID(_ context.Context, id int64) (*models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	category, ok := r.categories[id]
	if !ok {
		return nil, errs.NotFound("category", id)
	}
	return &category, nil
}

// Create adds a new category.
func (r *MockCategoryRepository) Create(_ context.Context, category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories[category.ID] = *category
	return nil
}

// Update replaces a stored category.
func (r *MockCategoryRepository) Update(_ context.Context, category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[category.ID]; !ok {
		return errs.NotFound("category", category.ID)
	}
	r.categories[category.ID] = *category
	return nil
}

// Delete removes a category by its id.
func (r *MockCategoryRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[id]; !ok {
		return errs.NotFound("category", id)
	}
	delete(r.categories, id)
	return nil
}
