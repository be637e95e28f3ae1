// Package gateway holds the HTTP clients for the buyer, product and
// counter services. Not-found and call-failed are always distinct
// results; nothing is swallowed into a nil.
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

// ErrNotFound reports that the remote service answered 404 for the
// requested entity.
var ErrNotFound = httpclient.ErrNotFound

type BuyerClient struct {
	log     *slog.Logger
	http    *httpclient.Client
	baseURL string
	cache   *Cache
}

func NewBuyerClient(log *slog.Logger, http *httpclient.Client, baseURL string, cache *Cache) *BuyerClient {
	return &BuyerClient{
		log:     log,
		http:    http,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		cache:   cache,
	}
}

// GetBuyerByID fetches the full buyer record.
func (c *BuyerClient) GetBuyerByID(ctx context.Context, buyerID string) (dto.Buyer, error) {
	var buyer dto.Buyer
	cacheKey := "buyer:" + buyerID
	if c.cache.Get(ctx, cacheKey, &buyer) {
		return buyer, nil
	}

	endpoint := fmt.Sprintf("%s/api/v1/buyers/%s", c.baseURL, url.PathEscape(buyerID))
	if err := c.http.GetJSON(ctx, endpoint, &buyer); err != nil {
		return dto.Buyer{}, err
	}
	c.cache.Set(ctx, cacheKey, buyer)
	return buyer, nil
}

// GetBuyerIDByDocumentNumber resolves a buyer id from its document
// number, the buyer's natural key.
func (c *BuyerClient) GetBuyerIDByDocumentNumber(ctx context.Context, documentNumber string) (string, error) {
	var buyerID string
	endpoint := fmt.Sprintf("%s/api/v1/buyers/documentnumber/%s", c.baseURL, url.PathEscape(documentNumber))
	if err := c.http.GetJSON(ctx, endpoint, &buyerID); err != nil {
		return "", err
	}
	return buyerID, nil
}

// AddBuyer sends the buyer for get-or-insert and returns its id. The
// remote service returns the existing id when the document number is
// already registered.
func (c *BuyerClient) AddBuyer(ctx context.Context, buyer dto.Buyer) (string, error) {
	c.log.Info("calling buyer service", "op", "AddBuyer", "document_number", buyer.DocumentNumber)

	var buyerID string
	endpoint := c.baseURL + "/api/v1/buyers"
	if err := c.http.PostJSON(ctx, endpoint, buyer, &buyerID); err != nil {
		return "", err
	}
	return buyerID, nil
}
