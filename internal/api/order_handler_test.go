package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shop-services/internal/models"
	"shop-services/internal/service"
	"shop-services/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memOrderRepo struct {
	orders []models.Order
}

func (r *memOrderRepo) CreateOrder(_ context.Context, order *models.Order) error {
	order.ID = int64(len(r.orders) + 1)
	r.orders = append(r.orders, *order)
	return nil
}

func (r *memOrderRepo) GetOrderByUUID(_ context.Context, uuid string) (*models.Order, error) {
	for i := range r.orders {
		if r.orders[i].UUID == uuid {
			o := r.orders[i]
			return &o, nil
		}
	}
	return nil, store.ErrNotFound
}

func (r *memOrderRepo) GetOrders(_ context.Context) ([]models.Order, error) {
	out := make([]models.Order, len(r.orders))
	copy(out, r.orders)
	return out, nil
}

func (r *memOrderRepo) GetOrdersByProductUUID(_ context.Context, productUUID string) ([]models.Order, error) {
	out := []models.Order{}
	for _, o := range r.orders {
		if o.ProductUUID == productUUID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *memOrderRepo) OrderExistsByUUID(_ context.Context, uuid string) (bool, error) {
	for _, o := range r.orders {
		if o.UUID == uuid {
			return true, nil
		}
	}
	return false, nil
}

func (r *memOrderRepo) DeleteOrderByUUID(_ context.Context, uuid string) error {
	for i, o := range r.orders {
		if o.UUID == uuid {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			return nil
		}
	}
	return nil
}

type memProductClient struct {
	products map[string]models.ProductResponse
	err      error
}

func (c *memProductClient) FindAllProducts(_ context.Context) ([]models.ProductResponse, error) {
	if c.err != nil {
		return nil, c.err
	}
	out := []models.ProductResponse{}
	for _, p := range c.products {
		out = append(out, p)
	}
	return out, nil
}

func (c *memProductClient) FindProductByUUID(_ context.Context, uuid string) (*models.ProductResponse, error) {
	if c.err != nil {
		return nil, c.err
	}
	p, ok := c.products[uuid]
	if !ok {
		return nil, &service.RemoteError{StatusCode: http.StatusNotFound, Message: "Product not found"}
	}
	return &p, nil
}

type discardPublisher struct{}

func (discardPublisher) PublishOrderCreated(context.Context, *models.OrderCreatedEvent) error {
	return nil
}
func (discardPublisher) PublishOrderDeleted(context.Context, *models.OrderDeletedEvent) error {
	return nil
}
func (discardPublisher) PublishProductCreated(context.Context, *models.ProductCreatedEvent) error {
	return nil
}
func (discardPublisher) PublishProductUpdated(context.Context, *models.ProductUpdatedEvent) error {
	return nil
}
func (discardPublisher) PublishProductDeleted(context.Context, *models.ProductDeletedEvent) error {
	return nil
}

func newOrderRouter() (*gin.Engine, *memOrderRepo, *memProductClient) {
	repo := &memOrderRepo{}
	client := &memProductClient{products: make(map[string]models.ProductResponse)}
	svc := service.NewOrderService(repo, client, discardPublisher{})

	router := gin.New()
	NewOrderHandler(svc).SetupRoutes(router)
	return router, repo, client
}

func performRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateOrderEndpoint(t *testing.T) {
	router, repo, client := newOrderRouter()
	client.products["p-1"] = models.ProductResponse{
		UUID:        "p-1",
		ProductName: "Widget",
		Price:       decimal.RequireFromString("9.99"),
	}

	w := performRequest(router, http.MethodPost, "/api/v1/orders", `{"productUuid":"p-1","quantity":2}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Order created successfully", w.Body.String())
	require.Len(t, repo.orders, 1)
	assert.Equal(t, "19.98", repo.orders[0].TotalPrice.String())
}

func TestCreateOrderValidationAggregatesMessages(t *testing.T) {
	router, _, _ := newOrderRouter()

	w := performRequest(router, http.MethodPost, "/api/v1/orders", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Message string   `json:"message"`
		Errors  []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Validation failed", body.Message)
	assert.Contains(t, body.Errors, "Product UUID is required")
	assert.Contains(t, body.Errors, "Quantity is required")
}

func TestCreateOrderQuantityBelowMinimum(t *testing.T) {
	router, _, _ := newOrderRouter()

	w := performRequest(router, http.MethodPost, "/api/v1/orders", `{"productUuid":"p-1","quantity":-1}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Quantity must be at least 1")
}

func TestCreateOrderRemoteNotFoundPassesThrough(t *testing.T) {
	router, repo, _ := newOrderRouter()

	w := performRequest(router, http.MethodPost, "/api/v1/orders", `{"productUuid":"missing","quantity":1}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Product not found")
	assert.Empty(t, repo.orders)
}

func TestGetOrderEndpointNotFound(t *testing.T) {
	router, _, _ := newOrderRouter()

	w := performRequest(router, http.MethodGet, "/api/v1/orders/never-created", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Order not found")
}

func TestGetOrderEndpoint(t *testing.T) {
	router, repo, client := newOrderRouter()
	client.products["p-1"] = models.ProductResponse{
		UUID:        "p-1",
		ProductName: "Widget",
		Price:       decimal.RequireFromString("9.99"),
	}
	performRequest(router, http.MethodPost, "/api/v1/orders", `{"productUuid":"p-1","quantity":2}`)

	w := performRequest(router, http.MethodGet, "/api/v1/orders/"+repo.orders[0].UUID, "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp models.OrderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Quantity)
	assert.Equal(t, "19.98", resp.TotalPrice.String())
	assert.Equal(t, "Widget", resp.Product.ProductName)
	assert.Equal(t, models.OrderStatusPending, resp.Status)
}

func TestListOrdersEndpointEmpty(t *testing.T) {
	router, _, _ := newOrderRouter()

	w := performRequest(router, http.MethodGet, "/api/v1/orders", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestListOrdersByProductEndpoint(t *testing.T) {
	router, _, client := newOrderRouter()
	client.products["p-1"] = models.ProductResponse{UUID: "p-1", Price: decimal.NewFromInt(1)}
	client.products["p-2"] = models.ProductResponse{UUID: "p-2", Price: decimal.NewFromInt(1)}
	performRequest(router, http.MethodPost, "/api/v1/orders", `{"productUuid":"p-1","quantity":1}`)
	performRequest(router, http.MethodPost, "/api/v1/orders", `{"productUuid":"p-2","quantity":1}`)

	w := performRequest(router, http.MethodGet, "/api/v1/orders/product/p-1", "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp []models.OrderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "p-1", resp[0].Product.UUID)
}

func TestListOrdersRemoteFailureStatusPassesThrough(t *testing.T) {
	router, _, client := newOrderRouter()
	client.products["p-1"] = models.ProductResponse{UUID: "p-1", Price: decimal.NewFromInt(1)}
	performRequest(router, http.MethodPost, "/api/v1/orders", `{"productUuid":"p-1","quantity":1}`)

	client.err = &service.RemoteError{StatusCode: http.StatusServiceUnavailable, Message: "product service down"}

	w := performRequest(router, http.MethodGet, "/api/v1/orders", "")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "product service down")
}

func TestDeleteOrderEndpoint(t *testing.T) {
	router, repo, client := newOrderRouter()
	client.products["p-1"] = models.ProductResponse{UUID: "p-1", Price: decimal.NewFromInt(1)}
	performRequest(router, http.MethodPost, "/api/v1/orders", `{"productUuid":"p-1","quantity":1}`)
	orderUUID := repo.orders[0].UUID

	w := performRequest(router, http.MethodDelete, "/api/v1/orders/"+orderUUID, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Order deleted successfully", w.Body.String())

	w = performRequest(router, http.MethodGet, "/api/v1/orders/"+orderUUID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteOrderEndpointNotFound(t *testing.T) {
	router, _, _ := newOrderRouter()

	w := performRequest(router, http.MethodDelete, "/api/v1/orders/never-created", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Order not found")
}
