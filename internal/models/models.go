package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a product row in the product service's database.
// ID is the internal storage key and is never exposed; UUID is the
// external identifier used in all API and cross-service references.
type Product struct {
	ID          int64           `db:"id" json:"-"`
	UUID        string          `db:"uuid" json:"uuid"`
	ProductName string          `db:"product_name" json:"productName"`
	Price       decimal.Decimal `db:"price" json:"price"`
}

// Order represents an order row in the order service's database.
// ProductUUID is a soft reference to a product in the other service;
// it is resolved via remote lookup, never a local join.
type Order struct {
	ID          int64           `db:"id" json:"-"`
	UUID        string          `db:"uuid" json:"uuid"`
	ProductUUID string          `db:"product_uuid" json:"productUuid"`
	Quantity    int             `db:"quantity" json:"quantity"`
	TotalPrice  decimal.Decimal `db:"total_price" json:"totalPrice"`
	OrderDate   time.Time       `db:"order_date" json:"orderDate"`
	Status      string          `db:"status" json:"status"`
}

// Order statuses
const (
	OrderStatusPending   = "PENDING"
	OrderStatusConfirmed = "CONFIRMED"
	OrderStatusShipped   = "SHIPPED"
	OrderStatusDelivered = "DELIVERED"
	OrderStatusCancelled = "CANCELLED"
)

// ProductResponse is the externally visible product shape, shared by the
// product API and the order service's remote product lookups.
type ProductResponse struct {
	UUID        string          `json:"uuid"`
	ProductName string          `json:"productName"`
	Price       decimal.Decimal `json:"price"`
}

// OrderResponse is the order shape returned by the order API, with the
// referenced product embedded as it exists at read time.
type OrderResponse struct {
	UUID       string          `json:"uuid"`
	Product    ProductResponse `json:"product"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	OrderDate  time.Time       `json:"orderDate"`
	Status     string          `json:"status"`
}

// FlatOrderResponse is the order shape exchanged between the two services:
// the product is referenced by uuid only, not embedded.
type FlatOrderResponse struct {
	UUID        string          `json:"uuid"`
	ProductUUID string          `json:"productUuid"`
	Quantity    int             `json:"quantity"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	OrderDate   time.Time       `json:"orderDate"`
	Status      string          `json:"status"`
}

// ProductOrdersResponse is the composite returned by GET /products/{uuid}/orders.
type ProductOrdersResponse struct {
	Product ProductResponse     `json:"product"`
	Orders  []FlatOrderResponse `json:"orders"`
}

// Response converts a product row to its externally visible shape.
func (p *Product) Response() ProductResponse {
	return ProductResponse{
		UUID:        p.UUID,
		ProductName: p.ProductName,
		Price:       p.Price,
	}
}
