package service

import (
	"context"
	"fmt"

	"products-api/internal/domain"
	"products-api/internal/repository"
)

// ProductService defines the interface for product business logic
type ProductService interface {
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	GetProductByID(ctx context.Context, id int64) (*domain.Product, error)
	CreateProduct(ctx context.Context, name string, price float64) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, name string, price float64, availability bool) (*domain.Product, error)
	ToggleAvailability(ctx context.Context, id int64) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type productService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new instance of ProductService
func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

// ListProducts returns every stored product, newest id first
func (s *productService) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetProductByID returns a single product or repository.ErrProductNotFound
func (s *productService) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

// CreateProduct stores a new product. The store assigns the id and the
// availability default (true).
func (s *productService) CreateProduct(ctx context.Context, name string, price float64) (*domain.Product, error) {
	product := &domain.Product{
		Name:  name,
		Price: price,
	}

	if err := s.productRepo.Insert(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

// UpdateProduct overwrites name, price, and availability of an existing
// product. The product is resolved first; no write happens when it is absent.
func (s *productService) UpdateProduct(ctx context.Context, id int64, name string, price float64, availability bool) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = name
	product.Price = price
	product.Availability = availability

	if err := s.productRepo.Replace(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}

// ToggleAvailability flips the availability flag of an existing product
func (s *productService) ToggleAvailability(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Availability = !product.Availability

	if err := s.productRepo.SetAvailability(ctx, id, product.Availability); err != nil {
		return nil, fmt.Errorf("failed to toggle availability: %w", err)
	}

	return product, nil
}

// DeleteProduct removes an existing product. The product is resolved first so
// a missing id surfaces as repository.ErrProductNotFound before any write.
func (s *productService) DeleteProduct(ctx context.Context, id int64) error {
	if _, err := s.productRepo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.productRepo.Remove(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}
