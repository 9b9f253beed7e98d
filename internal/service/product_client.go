package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"shop-services/internal/models"
	"shop-services/internal/util"
)

// ProductClient fetches products from the product service. The order
// service depends on this interface, not on a concrete transport.
type ProductClient interface {
	FindAllProducts(ctx context.Context) ([]models.ProductResponse, error)
	FindProductByUUID(ctx context.Context, uuid string) (*models.ProductResponse, error)
}

// HTTPProductClient implements ProductClient against the product service's
// REST API at a statically configured base address.
type HTTPProductClient struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// NewHTTPProductClient creates a product client with a bounded request timeout.
func NewHTTPProductClient(baseURL string) (*HTTPProductClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse product service url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("product service url must be absolute")
	}
	return &HTTPProductClient{
		baseURL: parsed,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// FindAllProducts fetches every product from the product service.
func (c *HTTPProductClient) FindAllProducts(ctx context.Context) ([]models.ProductResponse, error) {
	ctx, span := util.StartSpan(ctx, "ProductClient.FindAllProducts")
	defer span.End()

	var products []models.ProductResponse
	if err := c.get(ctx, "/api/v1/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// FindProductByUUID fetches one product by its external uuid.
func (c *HTTPProductClient) FindProductByUUID(ctx context.Context, uuid string) (*models.ProductResponse, error) {
	ctx, span := util.StartSpan(ctx, "ProductClient.FindProductByUUID")
	defer span.End()

	var product models.ProductResponse
	if err := c.get(ctx, path.Join("/api/v1/products", uuid), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *HTTPProductClient) get(ctx context.Context, p string, out interface{}) error {
	return doGet(ctx, c.httpClient, c.baseURL, p, out)
}

// doGet performs one GET round-trip against a peer service. Any non-200
// response is returned as a RemoteError carrying the peer's status and
// message untranslated.
func doGet(ctx context.Context, client *http.Client, baseURL *url.URL, p string, out interface{}) error {
	endpoint := *baseURL
	endpoint.Path = path.Join(endpoint.Path, p)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return &RemoteError{
			StatusCode: resp.StatusCode,
			Message:    remoteMessage(body, resp.Status),
		}
	}

	return json.Unmarshal(body, out)
}

// remoteMessage extracts the peer's error message, falling back to the
// raw body and then the status line.
func remoteMessage(body []byte, status string) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	if msg := strings.TrimSpace(string(body)); msg != "" {
		return msg
	}
	return status
}
