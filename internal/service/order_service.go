package service

import (
	"context"
	"fmt"
	"time"

	"shop-services/internal/models"
	"shop-services/internal/util"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderRepository is the persistence handle the order service operates on.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByUUID(ctx context.Context, uuid string) (*models.Order, error)
	GetOrders(ctx context.Context) ([]models.Order, error)
	GetOrdersByProductUUID(ctx context.Context, productUUID string) ([]models.Order, error)
	OrderExistsByUUID(ctx context.Context, uuid string) (bool, error)
	DeleteOrderByUUID(ctx context.Context, uuid string) error
}

// OrderEventPublisher publishes order domain events. Publish failures are
// logged and never fail the request.
type OrderEventPublisher interface {
	PublishOrderCreated(ctx context.Context, event *models.OrderCreatedEvent) error
	PublishOrderDeleted(ctx context.Context, event *models.OrderDeletedEvent) error
}

// OrderService owns the order business rules: uuid generation, total price
// computation at creation time, existence checks, and per-order product
// enrichment via the product service.
type OrderService struct {
	store    OrderRepository
	products ProductClient
	events   OrderEventPublisher
	logger   *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(store OrderRepository, products ProductClient, events OrderEventPublisher) *OrderService {
	return &OrderService{
		store:    store,
		products: products,
		events:   events,
		logger:   util.GetLogger(),
	}
}

// CreateOrderRequest represents a request to create an order
type CreateOrderRequest struct {
	ProductUUID string `json:"productUuid" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required,min=1"`
}

// CreateOrder prices the order against the product's current unit price and
// persists it. The total price is frozen at creation time and never
// re-derived from the product's later price. A failed product lookup fails
// the whole request; nothing is persisted.
func (s *OrderService) CreateOrder(ctx context.Context, req *CreateOrderRequest) error {
	ctx, span := util.StartSpan(ctx, "OrderService.CreateOrder")
	defer span.End()

	product, err := s.products.FindProductByUUID(ctx, req.ProductUUID)
	if err != nil {
		util.OrdersFailedTotal.WithLabelValues("product_lookup").Inc()
		return err
	}

	order := &models.Order{
		UUID:        uuid.New().String(),
		ProductUUID: req.ProductUUID,
		Quantity:    req.Quantity,
		TotalPrice:  product.Price.Mul(decimal.NewFromInt(int64(req.Quantity))),
		OrderDate:   time.Now(),
		Status:      models.OrderStatusPending,
	}

	if err := s.store.CreateOrder(ctx, order); err != nil {
		util.OrdersFailedTotal.WithLabelValues("db_error").Inc()
		return fmt.Errorf("failed to create order: %w", err)
	}

	util.OrdersCreatedTotal.Inc()
	s.logger.Info("Order created",
		zap.String("order_uuid", order.UUID),
		zap.String("product_uuid", order.ProductUUID))

	event := &models.OrderCreatedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderCreated,
			Timestamp: time.Now(),
		},
		OrderUUID:   order.UUID,
		ProductUUID: order.ProductUUID,
		Quantity:    order.Quantity,
		TotalPrice:  order.TotalPrice,
	}
	if err := s.events.PublishOrderCreated(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderCreated event", zap.Error(err))
	}

	return nil
}

// GetOrderByUUID retrieves one order and embeds the referenced product as
// it exists now. A failed product lookup fails the whole read.
func (s *OrderService) GetOrderByUUID(ctx context.Context, orderUUID string) (*models.OrderResponse, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.GetOrderByUUID")
	defer span.End()

	order, err := s.store.GetOrderByUUID(ctx, orderUUID)
	if err != nil {
		return nil, s.mapStoreErr(err)
	}

	return s.enrichOrder(ctx, order)
}

// ListOrders retrieves all orders, enriching each row with one product
// lookup. The first remote failure fails the whole list.
func (s *OrderService) ListOrders(ctx context.Context) ([]models.OrderResponse, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.ListOrders")
	defer span.End()

	orders, err := s.store.GetOrders(ctx)
	if err != nil {
		return nil, err
	}

	return s.enrichOrders(ctx, orders)
}

// ListOrdersByProductUUID retrieves all orders referencing a product,
// with the same per-row enrichment as ListOrders. An empty result is valid.
func (s *OrderService) ListOrdersByProductUUID(ctx context.Context, productUUID string) ([]models.OrderResponse, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.ListOrdersByProductUUID")
	defer span.End()

	orders, err := s.store.GetOrdersByProductUUID(ctx, productUUID)
	if err != nil {
		return nil, err
	}

	return s.enrichOrders(ctx, orders)
}

// DeleteOrderByUUID checks existence explicitly before deleting. No remote
// call is involved.
func (s *OrderService) DeleteOrderByUUID(ctx context.Context, orderUUID string) error {
	ctx, span := util.StartSpan(ctx, "OrderService.DeleteOrderByUUID")
	defer span.End()

	exists, err := s.store.OrderExistsByUUID(ctx, orderUUID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrOrderNotFound
	}

	if err := s.store.DeleteOrderByUUID(ctx, orderUUID); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	util.OrdersDeletedTotal.Inc()
	s.logger.Info("Order deleted", zap.String("order_uuid", orderUUID))

	event := &models.OrderDeletedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderDeleted,
			Timestamp: time.Now(),
		},
		OrderUUID: orderUUID,
	}
	if err := s.events.PublishOrderDeleted(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderDeleted event", zap.Error(err))
	}

	return nil
}

// enrichOrders performs one product lookup per order, sequentially.
// Rows sharing a product are not deduplicated: N rows means N calls.
func (s *OrderService) enrichOrders(ctx context.Context, orders []models.Order) ([]models.OrderResponse, error) {
	responses := make([]models.OrderResponse, 0, len(orders))
	for i := range orders {
		resp, err := s.enrichOrder(ctx, &orders[i])
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return responses, nil
}

func (s *OrderService) enrichOrder(ctx context.Context, order *models.Order) (*models.OrderResponse, error) {
	product, err := s.products.FindProductByUUID(ctx, order.ProductUUID)
	if err != nil {
		util.RemoteCallsFailedTotal.WithLabelValues("product").Inc()
		return nil, err
	}

	return &models.OrderResponse{
		UUID:       order.UUID,
		Product:    *product,
		Quantity:   order.Quantity,
		TotalPrice: order.TotalPrice,
		OrderDate:  order.OrderDate,
		Status:     order.Status,
	}, nil
}

func (s *OrderService) mapStoreErr(err error) error {
	if isNotFound(err) {
		return ErrOrderNotFound
	}
	return err
}
