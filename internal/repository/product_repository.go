package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"products-api/internal/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines the interface for product data access. It is the
// only component that holds the live database handle.
type ProductRepository interface {
	List(ctx context.Context) ([]*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Insert(ctx context.Context, product *domain.Product) error
	Replace(ctx context.Context, product *domain.Product) error
	SetAvailability(ctx context.Context, id int64, availability bool) error
	Remove(ctx context.Context, id int64) error
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

// List retrieves all products ordered by id descending
func (r *productRepository) List(ctx context.Context) ([]*domain.Product, error) {
	query := `
		SELECT id, name, price, availability
		FROM products
		ORDER BY id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product := &domain.Product{}
		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Price,
			&product.Availability,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// GetByID retrieves a product by its id
func (r *productRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT id, name, price, availability, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	product := &domain.Product{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Price,
		&product.Availability,
		&product.CreatedAt,
		&product.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product by id: %w", err)
	}

	return product, nil
}

// Insert stores a new product. The id, availability default, and timestamps
// are assigned by the database and written back into the given product.
func (r *productRepository) Insert(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (name, price)
		VALUES ($1, $2)
		RETURNING id, availability, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query, product.Name, product.Price).Scan(
		&product.ID,
		&product.Availability,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}

	return nil
}

// Replace overwrites name, price, and availability of an existing product
func (r *productRepository) Replace(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET name = $2, price = $3, availability = $4, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Name,
		product.Price,
		product.Availability,
	)
	if err != nil {
		return fmt.Errorf("failed to replace product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// SetAvailability writes only the availability flag of an existing product
func (r *productRepository) SetAvailability(ctx context.Context, id int64, availability bool) error {
	query := `
		UPDATE products
		SET availability = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, availability)
	if err != nil {
		return fmt.Errorf("failed to set product availability: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Remove deletes a product by its id
func (r *productRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM products WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to remove product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}
