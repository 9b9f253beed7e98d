package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event types
const (
	EventTypeOrderCreated   = "ORDER_CREATED"
	EventTypeOrderDeleted   = "ORDER_DELETED"
	EventTypeProductCreated = "PRODUCT_CREATED"
	EventTypeProductUpdated = "PRODUCT_UPDATED"
	EventTypeProductDeleted = "PRODUCT_DELETED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderCreatedEvent published when an order is created
type OrderCreatedEvent struct {
	BaseEvent
	OrderUUID   string          `json:"order_uuid"`
	ProductUUID string          `json:"product_uuid"`
	Quantity    int             `json:"quantity"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// OrderDeletedEvent published when an order is deleted
type OrderDeletedEvent struct {
	BaseEvent
	OrderUUID string `json:"order_uuid"`
}

// ProductCreatedEvent published when a product is created
type ProductCreatedEvent struct {
	BaseEvent
	ProductUUID string          `json:"product_uuid"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
}

// ProductUpdatedEvent published when a product is updated
type ProductUpdatedEvent struct {
	BaseEvent
	ProductUUID string          `json:"product_uuid"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
}

// ProductDeletedEvent published when a product is deleted
type ProductDeletedEvent struct {
	BaseEvent
	ProductUUID string `json:"product_uuid"`
}
