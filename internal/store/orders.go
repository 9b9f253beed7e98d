package store

import (
	"context"
	"database/sql"
	"errors"

	"shop-services/internal/models"

	"github.com/jmoiron/sqlx"
)

// OrderStore persists order rows for the order service.
type OrderStore struct {
	db *sqlx.DB
}

// NewOrderStore creates an order store backed by the given database.
func NewOrderStore(db *sqlx.DB) *OrderStore {
	return &OrderStore{db: db}
}

// Close closes the database connection
func (s *OrderStore) Close() error {
	return s.db.Close()
}

// CreateOrder inserts a new order row
func (s *OrderStore) CreateOrder(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (uuid, product_uuid, quantity, total_price, order_date, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	return s.db.GetContext(ctx, &order.ID, query,
		order.UUID, order.ProductUUID, order.Quantity, order.TotalPrice, order.OrderDate, order.Status)
}

// GetOrderByUUID retrieves an order by its external uuid
func (s *OrderStore) GetOrderByUUID(ctx context.Context, uuid string) (*models.Order, error) {
	var order models.Order
	err := s.db.GetContext(ctx, &order, "SELECT * FROM orders WHERE uuid = $1", uuid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrders retrieves all orders in insertion order
func (s *OrderStore) GetOrders(ctx context.Context) ([]models.Order, error) {
	orders := []models.Order{}
	err := s.db.SelectContext(ctx, &orders, "SELECT * FROM orders ORDER BY id")
	return orders, err
}

// GetOrdersByProductUUID retrieves all orders referencing a product uuid
func (s *OrderStore) GetOrdersByProductUUID(ctx context.Context, productUUID string) ([]models.Order, error) {
	orders := []models.Order{}
	err := s.db.SelectContext(ctx, &orders,
		"SELECT * FROM orders WHERE product_uuid = $1 ORDER BY id", productUUID)
	return orders, err
}

// OrderExistsByUUID reports whether an order with the uuid exists
func (s *OrderStore) OrderExistsByUUID(ctx context.Context, uuid string) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		"SELECT EXISTS(SELECT 1 FROM orders WHERE uuid = $1)", uuid)
	return exists, err
}

// DeleteOrderByUUID deletes an order by its external uuid
func (s *OrderStore) DeleteOrderByUUID(ctx context.Context, uuid string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM orders WHERE uuid = $1", uuid)
	return err
}
