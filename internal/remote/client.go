// Package remote implements the catalog store API client. The remote
// API owns all persistence; this package only moves records over HTTP
// and normalizes failures into catalog.NetworkError values.
package remote

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/minhtran/catalog-admin/internal/catalog"
)

// Client talks to the product catalog REST API.
type Client struct {
	http *resty.Client
}

// Options configures a Client.
type Options struct {
	// BaseURL is the API root, e.g. https://api.escuelajs.co/api/v1.
	BaseURL string

	// Timeout bounds each round trip. Zero means no timeout: a stalled
	// request stays pending until the caller's context cancels it.
	Timeout time.Duration

	// Debug enables resty request/response dumping.
	Debug bool
}

// NewClient builds a client for the given API root. Requests are not
// retried automatically; all retries are user-initiated upstream. Each
// outbound request carries an X-Request-ID for correlation with the
// remote side's logs.
func NewClient(opts Options) *Client {
	httpClient := resty.New().
		SetBaseURL(opts.BaseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	if opts.Timeout > 0 {
		httpClient.SetTimeout(opts.Timeout)
	}
	if opts.Debug {
		httpClient.SetDebug(true)
	}

	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		req.SetHeader("X-Request-ID", uuid.NewString())
		return nil
	})

	return &Client{http: httpClient}
}

// ListProducts fetches the full product list.
func (c *Client) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	var products []catalog.Product
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&products).
		Get("/products")
	if err := wrap("list products", resp, err); err != nil {
		return nil, err
	}
	return products, nil
}

// ListCategories fetches the category reference list.
func (c *Client) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	var categories []catalog.Category
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&categories).
		Get("/categories")
	if err := wrap("list categories", resp, err); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateProduct submits a new product and returns the created record
// with its assigned id.
func (c *Client) CreateProduct(ctx context.Context, in catalog.ProductInput) (catalog.Product, error) {
	var created catalog.Product
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(in).
		SetResult(&created).
		Post("/products")
	if err := wrap("create product", resp, err); err != nil {
		return catalog.Product{}, err
	}
	return created, nil
}

// UpdateProduct replaces the product with the given id and returns the
// updated record.
func (c *Client) UpdateProduct(ctx context.Context, id int, in catalog.ProductInput) (catalog.Product, error) {
	var updated catalog.Product
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(in).
		SetResult(&updated).
		Put(fmt.Sprintf("/products/%d", id))
	if err := wrap("update product", resp, err); err != nil {
		return catalog.Product{}, err
	}
	return updated, nil
}

// wrap folds transport failures and non-2xx responses into a
// catalog.NetworkError; the store stays untouched upstream when one is
// returned.
func wrap(op string, resp *resty.Response, err error) error {
	if err != nil {
		return &catalog.NetworkError{Op: op, Err: err}
	}
	if resp.IsError() {
		return &catalog.NetworkError{Op: op, StatusCode: resp.StatusCode()}
	}
	return nil
}
