package woocommerce

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"catsync/internal/logger"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logger.Logger {
	return logger.New("error")
}

func TestListCategories_QueryAuthOverPlainHTTP(t *testing.T) {
	var gotReq *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = r.Clone(r.Context())
		json.NewEncoder(w).Encode([]Category{{ID: 5, Name: "Keyboards", Slug: "keyboards"}})
	}))
	defer server.Close()

	client := NewClient(server.URL, "ck_test", "cs_test", 5*time.Second, testLogger())

	categories, err := client.ListCategories(2, 50)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, int64(5), categories[0].ID)

	require.NotNil(t, gotReq)
	assert.Equal(t, "/wp-json/wc/v3/products/categories", gotReq.URL.Path)
	query := gotReq.URL.Query()
	assert.Equal(t, "2", query.Get("page"))
	assert.Equal(t, "50", query.Get("per_page"))
	// Plain HTTP carries credentials in the query string.
	assert.Equal(t, "ck_test", query.Get("consumer_key"))
	assert.Equal(t, "cs_test", query.Get("consumer_secret"))
	assert.Empty(t, gotReq.Header.Get("Authorization"))
}

func TestListProducts_BasicAuthOverTLS(t *testing.T) {
	var gotReq *http.Request
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = r.Clone(r.Context())
		json.NewEncoder(w).Encode([]Product{{ID: 7, Name: "Mug"}})
	}))
	defer server.Close()

	client := NewClient(server.URL, "ck_test", "cs_test", 5*time.Second, testLogger())
	client.httpClient = server.Client()

	products, err := client.ListProducts(1, 100, "publish")
	require.NoError(t, err)
	require.Len(t, products, 1)

	require.NotNil(t, gotReq)
	expected := "Basic " + base64.StdEncoding.EncodeToString([]byte("ck_test:cs_test"))
	assert.Equal(t, expected, gotReq.Header.Get("Authorization"))
	query := gotReq.URL.Query()
	assert.Equal(t, "publish", query.Get("status"))
	// Credentials must stay out of the query string over TLS.
	assert.Empty(t, query.Get("consumer_key"))
}

func TestGetProduct(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wp-json/wc/v3/products/42", r.URL.Path)
		json.NewEncoder(w).Encode(Product{ID: 42, Name: "Desk", Type: "variable", Variations: []int64{1, 2}})
	}))
	defer server.Close()

	client := NewClient(server.URL, "ck", "cs", 5*time.Second, testLogger())

	product, err := client.GetProduct(42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), product.ID)
	assert.Equal(t, "variable", product.Type)
	assert.Equal(t, []int64{1, 2}, product.Variations)
}

func TestListVariations(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wp-json/wc/v3/products/42/variations", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		json.NewEncoder(w).Encode([]Variation{{ID: 1001, Price: "19.99"}})
	}))
	defer server.Close()

	client := NewClient(server.URL, "ck", "cs", 5*time.Second, testLogger())

	variations, err := client.ListVariations(42, 100)
	require.NoError(t, err)
	require.Len(t, variations, 1)
	assert.Equal(t, int64(1001), variations[0].ID)
}

func TestNonSuccessResponseReturnsAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"code":"woocommerce_rest_cannot_view"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "ck", "cs", 5*time.Second, testLogger())

	_, err := client.ListProducts(1, 100, "publish")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Contains(t, apiErr.Body, "woocommerce_rest_cannot_view")
}
