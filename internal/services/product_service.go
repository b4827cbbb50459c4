package services

import (
	"context"
	"fmt"
	"time"

	"mawasim/internal/models"
	"mawasim/internal/repositories"
)

// ProductService handles business logic for the product catalog.
type ProductService struct {
	productRepo  repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
	seqRepo      repositories.SequenceRepository
}

// NewProductService creates a new ProductService.
func NewProductService(productRepo repositories.ProductRepository, categoryRepo repositories.CategoryRepository, seqRepo repositories.SequenceRepository) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		seqRepo:      seqRepo,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	return s.productRepo.GetAll(ctx)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

// GetProductsByCategory retrieves all active products in a category.
func (s *ProductService) GetProductsByCategory(ctx context.Context, categoryID int64) ([]models.Product, error) {
	return s.productRepo.GetByCategory(ctx, categoryID)
}

// CreateProduct creates a new product with a sequential id.
func (s *ProductService) CreateProduct(ctx context.Context, product *models.Product) error {
	id, err := s.seqRepo.Next(ctx, repositories.SeqProducts)
	if err != nil {
		return fmt.Errorf("failed to assign product id: %w", err)
	}
	product.ID = id
	// A markdown-style discount only makes sense when the original price is
	// actually higher.
	if product.OriginalPrice > 0 && product.OriginalPrice <= product.Price {
		product.OriginalPrice = 0
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	return s.productRepo.Create(ctx, product)
}

// UpdateProduct updates an existing product.
func (s *ProductService) UpdateProduct(ctx context.Context, product *models.Product) error {
	if product.OriginalPrice > 0 && product.OriginalPrice <= product.Price {
		product.OriginalPrice = 0
	}
	product.UpdatedAt = time.Now()
	return s.productRepo.Update(ctx, product)
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	return s.productRepo.Delete(ctx, id)
}

// GetAllCategories retrieves all categories.
func (s *ProductService) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	return s.categoryRepo.GetAll(ctx)
}

// GetCategoryByID retrieves a single category by its ID.
func (s *ProductService) GetCategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	return s.categoryRepo.GetByID(ctx, id)
}

// CreateCategory creates a new category with a sequential id.
func (s *ProductService) CreateCategory(ctx context.Context, category *models.Category) error {
	id, err := s.seqRepo.Next(ctx, repositories.SeqCategories)
	if err != nil {
		return fmt.Errorf("failed to assign category id: %w", err)
	}
	category.ID = id
	now := time.Now()
	category.CreatedAt = now
	category.UpdatedAt = now
	return s.categoryRepo.Create(ctx, category)
}

// UpdateCategory updates an existing category.
func (s *ProductService) UpdateCategory(ctx context.Context, category *models.Category) error {
	category.UpdatedAt = time.Now()
	return s.categoryRepo.Update(ctx, category)
}

// DeleteCategory deletes a category by its ID.
func (s *ProductService) DeleteCategory(ctx context.Context, id int64) error {
	return s.categoryRepo.Delete(ctx, id)
}
