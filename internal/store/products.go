package store

import (
	"context"
	"database/sql"
	"errors"

	"shop-services/internal/models"

	"github.com/jmoiron/sqlx"
)

// ProductStore persists product rows for the product service.
type ProductStore struct {
	db *sqlx.DB
}

// NewProductStore creates a product store backed by the given database.
func NewProductStore(db *sqlx.DB) *ProductStore {
	return &ProductStore{db: db}
}

// Close closes the database connection
func (s *ProductStore) Close() error {
	return s.db.Close()
}

// CreateProduct inserts a new product row
func (s *ProductStore) CreateProduct(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (uuid, product_name, price)
		VALUES ($1, $2, $3)
		RETURNING id`

	return s.db.GetContext(ctx, &product.ID, query,
		product.UUID, product.ProductName, product.Price)
}

// GetProductByUUID retrieves a product by its external uuid
func (s *ProductStore) GetProductByUUID(ctx context.Context, uuid string) (*models.Product, error) {
	var product models.Product
	err := s.db.GetContext(ctx, &product, "SELECT * FROM products WHERE uuid = $1", uuid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProducts retrieves all products in insertion order
func (s *ProductStore) GetProducts(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	err := s.db.SelectContext(ctx, &products, "SELECT * FROM products ORDER BY id")
	return products, err
}

// UpdateProduct persists the merged name and price of an existing product
func (s *ProductStore) UpdateProduct(ctx context.Context, product *models.Product) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE products SET product_name = $1, price = $2 WHERE uuid = $3",
		product.ProductName, product.Price, product.UUID)
	return err
}

// ProductExistsByUUID reports whether a product with the uuid exists
func (s *ProductStore) ProductExistsByUUID(ctx context.Context, uuid string) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		"SELECT EXISTS(SELECT 1 FROM products WHERE uuid = $1)", uuid)
	return exists, err
}

// DeleteProductByUUID deletes a product by its external uuid
func (s *ProductStore) DeleteProductByUUID(ctx context.Context, uuid string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM products WHERE uuid = $1", uuid)
	return err
}
