package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientsValidateBaseURL(t *testing.T) {
	_, err := NewHTTPProductClient("://bad-url")
	assert.Error(t, err)

	_, err = NewHTTPProductClient("/relative")
	assert.Error(t, err)

	_, err = NewHTTPOrderClient("://bad-url")
	assert.Error(t, err)

	_, err = NewHTTPOrderClient("/relative")
	assert.Error(t, err)
}

func TestProductClientFindProductByUUID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/products/p-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"uuid":"p-1","productName":"Widget","price":"9.99"}`))
	}))
	defer srv.Close()

	client, err := NewHTTPProductClient(srv.URL)
	require.NoError(t, err)

	product, err := client.FindProductByUUID(context.Background(), "p-1")
	require.NoError(t, err)

	assert.Equal(t, "p-1", product.UUID)
	assert.Equal(t, "Widget", product.ProductName)
	assert.Equal(t, "9.99", product.Price.String())
}

func TestProductClientPropagatesRemoteNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Product not found"}`))
	}))
	defer srv.Close()

	client, err := NewHTTPProductClient(srv.URL)
	require.NoError(t, err)

	_, err = client.FindProductByUUID(context.Background(), "missing")

	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, http.StatusNotFound, remote.StatusCode)
	assert.Equal(t, "Product not found", remote.Message)
}

func TestProductClientPropagatesRemoteServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("something broke"))
	}))
	defer srv.Close()

	client, err := NewHTTPProductClient(srv.URL)
	require.NoError(t, err)

	_, err = client.FindProductByUUID(context.Background(), "p-1")

	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, http.StatusInternalServerError, remote.StatusCode)
	assert.Equal(t, "something broke", remote.Message)
}

func TestProductClientFindAllProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/products", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"uuid":"p-1","productName":"A","price":"1"},{"uuid":"p-2","productName":"B","price":"2"}]`))
	}))
	defer srv.Close()

	client, err := NewHTTPProductClient(srv.URL)
	require.NoError(t, err)

	products, err := client.FindAllProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "p-2", products[1].UUID)
}

func TestOrderClientFindOrdersByProductUUID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/orders/product/p-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"uuid":"o-1","productUuid":"p-1","quantity":2,"totalPrice":"19.98","orderDate":"2024-05-01T10:00:00Z","status":"PENDING"}]`))
	}))
	defer srv.Close()

	client, err := NewHTTPOrderClient(srv.URL)
	require.NoError(t, err)

	orders, err := client.FindOrdersByProductUUID(context.Background(), "p-1")
	require.NoError(t, err)

	require.Len(t, orders, 1)
	assert.Equal(t, "o-1", orders[0].UUID)
	assert.Equal(t, "p-1", orders[0].ProductUUID)
	assert.Equal(t, 2, orders[0].Quantity)
	assert.Equal(t, "19.98", orders[0].TotalPrice.String())
}

func TestOrderClientFlattensEmbeddedProduct(t *testing.T) {
	// The order service embeds the full product in its responses; the
	// client reduces it to the product uuid.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"uuid":"o-1","quantity":1,"totalPrice":"9.99","orderDate":"2024-05-01T10:00:00Z","status":"PENDING","product":{"uuid":"p-9","productName":"Widget","price":"9.99"}}]`))
	}))
	defer srv.Close()

	client, err := NewHTTPOrderClient(srv.URL)
	require.NoError(t, err)

	orders, err := client.FindOrdersByProductUUID(context.Background(), "p-9")
	require.NoError(t, err)

	require.Len(t, orders, 1)
	assert.Equal(t, "p-9", orders[0].ProductUUID)
	assert.Equal(t, "9.99", orders[0].TotalPrice.String())
}

func TestOrderClientEmptyOrderList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client, err := NewHTTPOrderClient(srv.URL)
	require.NoError(t, err)

	orders, err := client.FindOrdersByProductUUID(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderClientConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client, err := NewHTTPOrderClient(srv.URL)
	require.NoError(t, err)

	_, err = client.FindAllOrders(context.Background())
	assert.Error(t, err)
}
