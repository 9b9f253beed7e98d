package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"time"

	"shop-services/internal/models"
	"shop-services/internal/util"

	"github.com/shopspring/decimal"
)

// OrderClient fetches orders from the order service. The product service
// depends on this interface, not on a concrete transport.
type OrderClient interface {
	FindAllOrders(ctx context.Context) ([]models.FlatOrderResponse, error)
	FindOrderByUUID(ctx context.Context, uuid string) (*models.FlatOrderResponse, error)
	FindOrdersByProductUUID(ctx context.Context, productUUID string) ([]models.FlatOrderResponse, error)
}

// HTTPOrderClient implements OrderClient against the order service's REST
// API at a statically configured base address.
type HTTPOrderClient struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// NewHTTPOrderClient creates an order client with a bounded request timeout.
func NewHTTPOrderClient(baseURL string) (*HTTPOrderClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse order service url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("order service url must be absolute")
	}
	return &HTTPOrderClient{
		baseURL: parsed,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// orderPayload mirrors the order service's JSON. The order service embeds
// the full product in its responses; the cross-service shape carries only
// the product uuid, so an embedded product is flattened to its uuid.
type orderPayload struct {
	UUID        string                   `json:"uuid"`
	ProductUUID string                   `json:"productUuid"`
	Product     *models.ProductResponse `json:"product,omitempty"`
	Quantity    int                      `json:"quantity"`
	TotalPrice  decimal.Decimal          `json:"totalPrice"`
	OrderDate   time.Time                `json:"orderDate"`
	Status      string                   `json:"status"`
}

func (p *orderPayload) flatten() models.FlatOrderResponse {
	productUUID := p.ProductUUID
	if productUUID == "" && p.Product != nil {
		productUUID = p.Product.UUID
	}
	return models.FlatOrderResponse{
		UUID:        p.UUID,
		ProductUUID: productUUID,
		Quantity:    p.Quantity,
		TotalPrice:  p.TotalPrice,
		OrderDate:   p.OrderDate,
		Status:      p.Status,
	}
}

func flattenAll(payloads []orderPayload) []models.FlatOrderResponse {
	orders := make([]models.FlatOrderResponse, 0, len(payloads))
	for i := range payloads {
		orders = append(orders, payloads[i].flatten())
	}
	return orders
}

// FindAllOrders fetches every order from the order service.
func (c *HTTPOrderClient) FindAllOrders(ctx context.Context) ([]models.FlatOrderResponse, error) {
	ctx, span := util.StartSpan(ctx, "OrderClient.FindAllOrders")
	defer span.End()

	var payloads []orderPayload
	if err := doGet(ctx, c.httpClient, c.baseURL, "/api/v1/orders", &payloads); err != nil {
		return nil, err
	}
	return flattenAll(payloads), nil
}

// FindOrderByUUID fetches one order by its external uuid.
func (c *HTTPOrderClient) FindOrderByUUID(ctx context.Context, uuid string) (*models.FlatOrderResponse, error) {
	ctx, span := util.StartSpan(ctx, "OrderClient.FindOrderByUUID")
	defer span.End()

	var payload orderPayload
	if err := doGet(ctx, c.httpClient, c.baseURL, path.Join("/api/v1/orders", uuid), &payload); err != nil {
		return nil, err
	}
	order := payload.flatten()
	return &order, nil
}

// FindOrdersByProductUUID fetches all orders referencing a product uuid.
func (c *HTTPOrderClient) FindOrdersByProductUUID(ctx context.Context, productUUID string) ([]models.FlatOrderResponse, error) {
	ctx, span := util.StartSpan(ctx, "OrderClient.FindOrdersByProductUUID")
	defer span.End()

	var payloads []orderPayload
	if err := doGet(ctx, c.httpClient, c.baseURL, path.Join("/api/v1/orders/product", productUUID), &payloads); err != nil {
		return nil, err
	}
	return flattenAll(payloads), nil
}
