package woocommerce

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"catsync/internal/logger"
)

// APIError is returned for any non-2xx response from the WooCommerce API.
// The raw body is kept for diagnostics.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API request failed: %d - %s", e.Status, e.Body)
}

type Client struct {
	baseURL        string
	consumerKey    string
	consumerSecret string
	httpClient     *http.Client
	logger         *logger.Logger
}

func NewClient(storeURL, consumerKey, consumerSecret string, timeout time.Duration, logger *logger.Logger) *Client {
	return &Client{
		baseURL:        strings.TrimRight(storeURL, "/") + "/wp-json/wc/v3",
		consumerKey:    consumerKey,
		consumerSecret: consumerSecret,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// ListCategories fetches one page of product categories.
func (c *Client) ListCategories(page, perPage int) ([]Category, error) {
	query := url.Values{}
	query.Set("page", fmt.Sprintf("%d", page))
	query.Set("per_page", fmt.Sprintf("%d", perPage))

	var categories []Category
	if err := c.get("/products/categories", query, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// ListProducts fetches one page of products filtered by status.
func (c *Client) ListProducts(page, perPage int, status string) ([]Product, error) {
	query := url.Values{}
	query.Set("page", fmt.Sprintf("%d", page))
	query.Set("per_page", fmt.Sprintf("%d", perPage))
	if status != "" {
		query.Set("status", status)
	}

	var products []Product
	if err := c.get("/products", query, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct fetches a single product by its WooCommerce id.
func (c *Client) GetProduct(productID int64) (*Product, error) {
	var product Product
	if err := c.get(fmt.Sprintf("/products/%d", productID), url.Values{}, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// ListVariations fetches the variations of a variable product.
func (c *Client) ListVariations(productID int64, perPage int) ([]Variation, error) {
	query := url.Values{}
	query.Set("per_page", fmt.Sprintf("%d", perPage))

	var variations []Variation
	if err := c.get(fmt.Sprintf("/products/%d/variations", productID), query, &variations); err != nil {
		return nil, err
	}
	return variations, nil
}

func (c *Client) get(path string, query url.Values, out interface{}) error {
	req, err := http.NewRequest("GET", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	// Query-string credentials are only safe on plain HTTP setups where
	// Basic auth is rejected by WooCommerce; over TLS the header is used.
	if strings.HasPrefix(c.baseURL, "https://") {
		token := base64.StdEncoding.EncodeToString([]byte(c.consumerKey + ":" + c.consumerSecret))
		req.Header.Set("Authorization", "Basic "+token)
	} else {
		query.Set("consumer_key", c.consumerKey)
		query.Set("consumer_secret", c.consumerSecret)
	}
	req.Header.Set("Content-Type", "application/json")
	req.URL.RawQuery = query.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{Status: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
