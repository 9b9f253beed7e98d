package api

import (
	"errors"
	"net/http"
	"time"

	"shop-services/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// OrderHandler contains the order service's HTTP handlers
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order HTTP handler
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// SetupRoutes sets up the order service's HTTP routes
func (h *OrderHandler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/orders", h.createOrder)
		v1.GET("/orders", h.listOrders)
		v1.GET("/orders/:uuid", h.getOrder)
		v1.GET("/orders/product/:productUuid", h.listOrdersByProduct)
		v1.DELETE("/orders/:uuid", h.deleteOrder)
	}
}

// healthCheck handles health check requests
func (h *OrderHandler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// createOrder handles order creation
func (h *OrderHandler) createOrder(c *gin.Context) {
	var req service.CreateOrderRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationErrors(c, createOrderMessages(err))
		return
	}

	if err := h.orderService.CreateOrder(c.Request.Context(), &req); err != nil {
		writeError(c, err)
		return
	}

	c.String(http.StatusCreated, "Order created successfully")
}

// listOrders handles listing all orders
func (h *OrderHandler) listOrders(c *gin.Context) {
	orders, err := h.orderService.ListOrders(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, orders)
}

// getOrder handles get order by uuid
func (h *OrderHandler) getOrder(c *gin.Context) {
	order, err := h.orderService.GetOrderByUUID(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// listOrdersByProduct handles listing orders for one product uuid
func (h *OrderHandler) listOrdersByProduct(c *gin.Context) {
	orders, err := h.orderService.ListOrdersByProductUUID(c.Request.Context(), c.Param("productUuid"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, orders)
}

// deleteOrder handles order deletion by uuid
func (h *OrderHandler) deleteOrder(c *gin.Context) {
	if err := h.orderService.DeleteOrderByUUID(c.Request.Context(), c.Param("uuid")); err != nil {
		writeError(c, err)
		return
	}

	c.String(http.StatusOK, "Order deleted successfully")
}

// createOrderMessages translates binding failures on the create-order body
// into the aggregated message list.
func createOrderMessages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{"Invalid request body"}
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch {
		case fe.Field() == "ProductUUID":
			messages = append(messages, "Product UUID is required")
		case fe.Field() == "Quantity" && fe.Tag() == "required":
			messages = append(messages, "Quantity is required")
		case fe.Field() == "Quantity":
			messages = append(messages, "Quantity must be at least 1")
		default:
			messages = append(messages, "Invalid request body")
		}
	}
	return distinct(messages)
}
