// Package catalog is the REST client for product and category reads, fronted
// by the TTL cache, plus the admin writes that invalidate it. All cached
// entries live under the "products" and "categories" logical prefixes so a
// mutation can force the next read to refetch.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/CaiqueAzevedo65/Luxus-Brecho-sub001/internal/cache"
	"github.com/CaiqueAzevedo65/Luxus-Brecho-sub001/internal/domain"
	apperrors "github.com/CaiqueAzevedo65/Luxus-Brecho-sub001/pkg/errors"
	"github.com/CaiqueAzevedo65/Luxus-Brecho-sub001/pkg/httpclient"
	"github.com/CaiqueAzevedo65/Luxus-Brecho-sub001/pkg/logger"
	"github.com/CaiqueAzevedo65/Luxus-Brecho-sub001/pkg/slug"
	"github.com/CaiqueAzevedo65/Luxus-Brecho-sub001/pkg/validator"
)

const (
	defaultPage     = 1
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListParams controls product listing reads.
type ListParams struct {
	Page     int
	PageSize int
	Category string
	Query    string
}

func (p ListParams) normalized() ListParams {
	if p.Page < 1 {
		p.Page = defaultPage
	}
	if p.PageSize < 1 {
		p.PageSize = defaultPageSize
	}
	if p.PageSize > maxPageSize {
		p.PageSize = maxPageSize
	}
	return p
}

// cacheKey derives a stable storage key for one listing read. Category and
// query are user text, so they are slugified before entering the key.
func (p ListParams) cacheKey() string {
	return fmt.Sprintf("products_page_%d_size_%d_cat_%s_q_%s",
		p.Page, p.PageSize, slug.Generate(p.Category), slug.Generate(p.Query))
}

// ProductInput is the payload for admin product writes.
type ProductInput struct {
	Titulo    string  `json:"titulo" validate:"required,min=1,max=200"`
	Preco     float64 `json:"preco" validate:"required,gt=0"`
	Descricao string  `json:"descricao" validate:"required"`
	Categoria string  `json:"categoria" validate:"required"`
	Imagem    string  `json:"imagem" validate:"required"`
}

// Client talks to the Luxus REST backend.
type Client struct {
	baseURL string
	http    httpclient.Doer
	cache   *cache.Manager
	logger  *slog.Logger
}

// New creates a catalog client. Reads go through the cache manager; admin
// writes bypass it and invalidate the affected prefixes.
func New(baseURL string, httpc httpclient.Doer, cm *cache.Manager, log *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    httpc,
		cache:   cm,
		logger:  log,
	}
}

// ListProducts returns one page of products, serving from cache when a live
// entry exists.
func (c *Client) ListProducts(ctx context.Context, params ListParams) (*ProductPage, error) {
	params = params.normalized()
	key := params.cacheKey()

	var page ProductPage
	if c.cache.Get(ctx, key, &page) {
		return &page, nil
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(params.Page))
	q.Set("page_size", strconv.Itoa(params.PageSize))
	if params.Category != "" {
		q.Set("categoria", params.Category)
	}
	if params.Query != "" {
		q.Set("q", params.Query)
	}

	var wire listResponse
	if err := c.getJSON(ctx, "/products?"+q.Encode(), "list products", &wire); err != nil {
		return nil, err
	}

	page = ProductPage{
		Products: make([]domain.Product, 0, len(wire.Items)),
		Page:     wire.Pagination.Page,
		PageSize: wire.Pagination.PageSize,
		Total:    wire.Pagination.Total,
	}
	for _, item := range wire.Items {
		page.Products = append(page.Products, item.toDomain())
	}

	c.cache.Set(ctx, key, page, 0)
	return &page, nil
}

// ListByCategory returns one page of products in the given category.
func (c *Client) ListByCategory(ctx context.Context, category string, params ListParams) (*ProductPage, error) {
	params.Category = category
	return c.ListProducts(ctx, params)
}

// Search returns products matching a free-text query.
func (c *Client) Search(ctx context.Context, query string, params ListParams) (*ProductPage, error) {
	params.Query = query
	return c.ListProducts(ctx, params)
}

// Featured returns the first page of products, limited to limit entries.
func (c *Client) Featured(ctx context.Context, limit int) ([]domain.Product, error) {
	page, err := c.ListProducts(ctx, ListParams{Page: 1, PageSize: limit})
	if err != nil {
		return nil, err
	}
	return page.Products, nil
}

// GetProduct returns a single product by id, serving from cache when a live
// entry exists.
func (c *Client) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	key := fmt.Sprintf("products_%d", id)

	var p domain.Product
	if c.cache.Get(ctx, key, &p) {
		return &p, nil
	}

	var wire productDTO
	if err := c.getJSON(ctx, fmt.Sprintf("/products/%d", id), "get product", &wire); err != nil {
		return nil, err
	}

	p = wire.toDomain()
	c.cache.Set(ctx, key, p, 0)
	return &p, nil
}

// CategorySummaries returns the category aggregates for listing pages.
func (c *Client) CategorySummaries(ctx context.Context) ([]CategorySummary, error) {
	const key = "categories_summary"

	var summaries []CategorySummary
	if c.cache.Get(ctx, key, &summaries) {
		return summaries, nil
	}

	var wire []categorySummaryDTO
	if err := c.getJSON(ctx, "/categories/summary", "category summary", &wire); err != nil {
		return nil, err
	}

	summaries = make([]CategorySummary, 0, len(wire))
	for _, d := range wire {
		summaries = append(summaries, d.toDomain())
	}

	c.cache.Set(ctx, key, summaries, 0)
	return summaries, nil
}

// CreateProduct creates a product and invalidates the products prefix so the
// next listing read refetches.
func (c *Client) CreateProduct(ctx context.Context, input ProductInput) (*domain.Product, error) {
	if err := validator.Validate(input); err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}

	body, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("marshal product input: %w", err)
	}

	resp, err := c.http.Post(ctx, c.baseURL+"/products", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, httpclient.ParseResponseError(resp, "create product")
	}

	var wire productDTO
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("decode created product: %w", err)
	}

	c.cache.InvalidateByPrefix(ctx, "products")
	p := wire.toDomain()

	logger.WithContext(ctx, c.logger).InfoContext(ctx, "product created",
		slog.Int64("product_id", p.ID),
	)
	return &p, nil
}

// UpdateProduct updates a product and invalidates the products prefix.
func (c *Client) UpdateProduct(ctx context.Context, id int64, input ProductInput) (*domain.Product, error) {
	if err := validator.Validate(input); err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}

	body, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("marshal product input: %w", err)
	}

	resp, err := c.http.Put(ctx, fmt.Sprintf("%s/products/%d", c.baseURL, id), "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, httpclient.ParseResponseError(resp, "update product")
	}

	var wire productDTO
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("decode updated product: %w", err)
	}

	c.cache.InvalidateByPrefix(ctx, "products")
	p := wire.toDomain()

	logger.WithContext(ctx, c.logger).InfoContext(ctx, "product updated",
		slog.Int64("product_id", id),
	)
	return &p, nil
}

// DeleteProduct deletes a product and invalidates the products prefix.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	resp, err := c.http.Delete(ctx, fmt.Sprintf("%s/products/%d", c.baseURL, id))
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return httpclient.ParseResponseError(resp, "delete product")
	}

	c.cache.InvalidateByPrefix(ctx, "products")

	logger.WithContext(ctx, c.logger).InfoContext(ctx, "product deleted",
		slog.Int64("product_id", id),
	)
	return nil
}

// getJSON performs a cached-path GET and decodes the 200 response into dest.
func (c *Client) getJSON(ctx context.Context, path, operation string, dest any) error {
	start := time.Now()
	resp, err := c.http.Get(ctx, c.baseURL+path)
	if err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return httpclient.ParseResponseError(resp, operation)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%s: decode response: %w", operation, err)
	}

	c.logger.DebugContext(ctx, "backend read",
		slog.String("path", path),
		slog.Duration("elapsed", time.Since(start)),
	)
	return nil
}
