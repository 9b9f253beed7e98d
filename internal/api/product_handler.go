package api

import (
	"net/http"
	"strings"
	"time"

	"shop-services/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ProductHandler contains the product service's HTTP handlers
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product HTTP handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// SetupRoutes sets up the product service's HTTP routes
func (h *ProductHandler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/products", h.createProduct)
		v1.GET("/products", h.listProducts)
		v1.GET("/products/:uuid", h.getProduct)
		v1.PUT("/products/:uuid", h.updateProduct)
		v1.DELETE("/products/:uuid", h.deleteProduct)
		v1.GET("/products/:uuid/orders", h.getProductWithOrders)
	}
}

// healthCheck handles health check requests
func (h *ProductHandler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// createProduct handles product creation
func (h *ProductHandler) createProduct(c *gin.Context) {
	var req service.CreateProductRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationErrors(c, []string{"Invalid request body"})
		return
	}

	if messages := validateCreateProduct(&req); len(messages) > 0 {
		writeValidationErrors(c, messages)
		return
	}

	if err := h.productService.CreateProduct(c.Request.Context(), &req); err != nil {
		writeError(c, err)
		return
	}

	c.String(http.StatusCreated, "Product created successfully")
}

// listProducts handles listing all products
func (h *ProductHandler) listProducts(c *gin.Context) {
	products, err := h.productService.ListProducts(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, products)
}

// getProduct handles get product by uuid
func (h *ProductHandler) getProduct(c *gin.Context) {
	product, err := h.productService.GetProductByUUID(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// updateProduct handles partial product update by uuid
func (h *ProductHandler) updateProduct(c *gin.Context) {
	var req service.UpdateProductRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationErrors(c, []string{"Invalid request body"})
		return
	}

	if messages := validateUpdateProduct(&req); len(messages) > 0 {
		writeValidationErrors(c, messages)
		return
	}

	if err := h.productService.UpdateProduct(c.Request.Context(), c.Param("uuid"), &req); err != nil {
		writeError(c, err)
		return
	}

	c.String(http.StatusOK, "Product updated successfully")
}

// deleteProduct handles product deletion by uuid
func (h *ProductHandler) deleteProduct(c *gin.Context) {
	if err := h.productService.DeleteProductByUUID(c.Request.Context(), c.Param("uuid")); err != nil {
		writeError(c, err)
		return
	}

	c.String(http.StatusOK, "Product deleted successfully")
}

// getProductWithOrders handles the product-with-orders composite read
func (h *ProductHandler) getProductWithOrders(c *gin.Context) {
	resp, err := h.productService.GetProductWithOrders(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// validateCreateProduct checks the create body: name non-blank, price
// present and positive. All failures are reported together.
func validateCreateProduct(req *service.CreateProductRequest) []string {
	var messages []string
	if strings.TrimSpace(req.ProductName) == "" {
		messages = append(messages, "Product Name can't be blank")
	}
	if req.Price == nil {
		messages = append(messages, "Product Price can't be null")
	} else if !req.Price.IsPositive() {
		messages = append(messages, "Product Price must be positive")
	}
	return distinct(messages)
}

// validateUpdateProduct checks the partial-update body: at least one field
// present, and any present field well-formed. The at-least-one rule is
// enforced here, before the uuid is even resolved.
func validateUpdateProduct(req *service.UpdateProductRequest) []string {
	var messages []string
	if req.ProductName == nil && req.Price == nil {
		return []string{"At least one field must be provided"}
	}
	if req.ProductName != nil && strings.TrimSpace(*req.ProductName) == "" {
		messages = append(messages, "Product Name can't be blank")
	}
	if req.Price != nil && !req.Price.IsPositive() {
		messages = append(messages, "Product Price must be positive")
	}
	return distinct(messages)
}
