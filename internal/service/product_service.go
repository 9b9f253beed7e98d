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

// ProductRepository is the persistence handle the product service operates on.
type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByUUID(ctx context.Context, uuid string) (*models.Product, error)
	GetProducts(ctx context.Context) ([]models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	ProductExistsByUUID(ctx context.Context, uuid string) (bool, error)
	DeleteProductByUUID(ctx context.Context, uuid string) error
}

// ProductEventPublisher publishes product domain events. Publish failures
// are logged and never fail the request.
type ProductEventPublisher interface {
	PublishProductCreated(ctx context.Context, event *models.ProductCreatedEvent) error
	PublishProductUpdated(ctx context.Context, event *models.ProductUpdatedEvent) error
	PublishProductDeleted(ctx context.Context, event *models.ProductDeletedEvent) error
}

// ProductService owns the product business rules: uuid generation, partial
// update merging, existence checks, and the product-with-orders composite
// built from the order service.
type ProductService struct {
	store  ProductRepository
	orders OrderClient
	events ProductEventPublisher
	logger *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(store ProductRepository, orders OrderClient, events ProductEventPublisher) *ProductService {
	return &ProductService{
		store:  store,
		orders: orders,
		events: events,
		logger: util.GetLogger(),
	}
}

// CreateProductRequest represents a request to create a product. Price is
// a pointer so the API layer can tell an absent price from a zero one.
type CreateProductRequest struct {
	ProductName string           `json:"productName"`
	Price       *decimal.Decimal `json:"price"`
}

// UpdateProductRequest represents a partial update: a present field
// overwrites the stored field, an absent field is left untouched.
type UpdateProductRequest struct {
	ProductName *string          `json:"productName"`
	Price       *decimal.Decimal `json:"price"`
}

// CreateProduct persists a new product under a freshly generated uuid.
// No remote call is involved.
func (s *ProductService) CreateProduct(ctx context.Context, req *CreateProductRequest) error {
	ctx, span := util.StartSpan(ctx, "ProductService.CreateProduct")
	defer span.End()

	product := &models.Product{
		UUID:        uuid.New().String(),
		ProductName: req.ProductName,
		Price:       *req.Price,
	}

	if err := s.store.CreateProduct(ctx, product); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	util.ProductsCreatedTotal.Inc()
	s.logger.Info("Product created",
		zap.String("product_uuid", product.UUID),
		zap.String("product_name", product.ProductName))

	event := &models.ProductCreatedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeProductCreated,
			Timestamp: time.Now(),
		},
		ProductUUID: product.UUID,
		ProductName: product.ProductName,
		Price:       product.Price,
	}
	if err := s.events.PublishProductCreated(ctx, event); err != nil {
		s.logger.Error("Failed to publish ProductCreated event", zap.Error(err))
	}

	return nil
}

// GetProductByUUID retrieves one product by its external uuid.
func (s *ProductService) GetProductByUUID(ctx context.Context, productUUID string) (*models.ProductResponse, error) {
	ctx, span := util.StartSpan(ctx, "ProductService.GetProductByUUID")
	defer span.End()

	product, err := s.store.GetProductByUUID(ctx, productUUID)
	if err != nil {
		return nil, s.mapStoreErr(err)
	}

	resp := product.Response()
	return &resp, nil
}

// ListProducts retrieves all products. An empty store yields an empty slice.
func (s *ProductService) ListProducts(ctx context.Context) ([]models.ProductResponse, error) {
	ctx, span := util.StartSpan(ctx, "ProductService.ListProducts")
	defer span.End()

	products, err := s.store.GetProducts(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]models.ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, products[i].Response())
	}
	return responses, nil
}

// UpdateProduct merges the present fields of the request into the stored
// row and persists the result. Fields absent from the request are left
// bit-for-bit unchanged.
func (s *ProductService) UpdateProduct(ctx context.Context, productUUID string, req *UpdateProductRequest) error {
	ctx, span := util.StartSpan(ctx, "ProductService.UpdateProduct")
	defer span.End()

	product, err := s.store.GetProductByUUID(ctx, productUUID)
	if err != nil {
		return s.mapStoreErr(err)
	}

	if req.ProductName != nil {
		product.ProductName = *req.ProductName
	}
	if req.Price != nil {
		product.Price = *req.Price
	}

	if err := s.store.UpdateProduct(ctx, product); err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	util.ProductsUpdatedTotal.Inc()
	s.logger.Info("Product updated", zap.String("product_uuid", productUUID))

	event := &models.ProductUpdatedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeProductUpdated,
			Timestamp: time.Now(),
		},
		ProductUUID: product.UUID,
		ProductName: product.ProductName,
		Price:       product.Price,
	}
	if err := s.events.PublishProductUpdated(ctx, event); err != nil {
		s.logger.Error("Failed to publish ProductUpdated event", zap.Error(err))
	}

	return nil
}

// DeleteProductByUUID checks existence explicitly before deleting.
func (s *ProductService) DeleteProductByUUID(ctx context.Context, productUUID string) error {
	ctx, span := util.StartSpan(ctx, "ProductService.DeleteProductByUUID")
	defer span.End()

	exists, err := s.store.ProductExistsByUUID(ctx, productUUID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrProductNotFound
	}

	if err := s.store.DeleteProductByUUID(ctx, productUUID); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	util.ProductsDeletedTotal.Inc()
	s.logger.Info("Product deleted", zap.String("product_uuid", productUUID))

	event := &models.ProductDeletedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeProductDeleted,
			Timestamp: time.Now(),
		},
		ProductUUID: productUUID,
	}
	if err := s.events.PublishProductDeleted(ctx, event); err != nil {
		s.logger.Error("Failed to publish ProductDeleted event", zap.Error(err))
	}

	return nil
}

// GetProductWithOrders resolves the local product first, then makes one
// remote call for all orders referencing it. A product with zero orders
// yields an empty order list; a failed remote call fails the whole read.
func (s *ProductService) GetProductWithOrders(ctx context.Context, productUUID string) (*models.ProductOrdersResponse, error) {
	ctx, span := util.StartSpan(ctx, "ProductService.GetProductWithOrders")
	defer span.End()

	product, err := s.GetProductByUUID(ctx, productUUID)
	if err != nil {
		return nil, err
	}

	orders, err := s.orders.FindOrdersByProductUUID(ctx, productUUID)
	if err != nil {
		util.RemoteCallsFailedTotal.WithLabelValues("order").Inc()
		return nil, err
	}
	if orders == nil {
		orders = []models.FlatOrderResponse{}
	}

	return &models.ProductOrdersResponse{
		Product: *product,
		Orders:  orders,
	}, nil
}

func (s *ProductService) mapStoreErr(err error) error {
	if isNotFound(err) {
		return ErrProductNotFound
	}
	return err
}
