package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/orderflow-io/orderflow/pkg/dto"
	"github.com/orderflow-io/orderflow/pkg/httpclient"
)

type ProductClient struct {
	log     *slog.Logger
	http    *httpclient.Client
	baseURL string
	cache   *Cache
}

func NewProductClient(log *slog.Logger, http *httpclient.Client, baseURL string, cache *Cache) *ProductClient {
	return &ProductClient{
		log:     log,
		http:    http,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		cache:   cache,
	}
}

// GetProductByID fetches the full product record.
func (c *ProductClient) GetProductByID(ctx context.Context, productID string) (dto.Product, error) {
	var product dto.Product
	cacheKey := "product:" + productID
	if c.cache.Get(ctx, cacheKey, &product) {
		return product, nil
	}

	endpoint := fmt.Sprintf("%s/api/v1/products/%s", c.baseURL, url.PathEscape(productID))
	if err := c.http.GetJSON(ctx, endpoint, &product); err != nil {
		return dto.Product{}, err
	}
	c.cache.Set(ctx, cacheKey, product)
	return product, nil
}

// GetProductIDBySKU resolves a product id from its SKU, the product's
// natural key.
func (c *ProductClient) GetProductIDBySKU(ctx context.Context, sku string) (string, error) {
	var productID string
	endpoint := fmt.Sprintf("%s/api/v1/products/sku/%s", c.baseURL, url.PathEscape(sku))
	if err := c.http.GetJSON(ctx, endpoint, &productID); err != nil {
		return "", err
	}
	return productID, nil
}

// AddProduct sends the product for get-or-insert and returns its id.
func (c *ProductClient) AddProduct(ctx context.Context, product dto.Product) (string, error) {
	c.log.Info("calling product service", "op", "AddProduct", "sku", product.SKU)

	var productID string
	endpoint := c.baseURL + "/api/v1/products"
	if err := c.http.PostJSON(ctx, endpoint, product, &productID); err != nil {
		return "", err
	}
	return productID, nil
}
