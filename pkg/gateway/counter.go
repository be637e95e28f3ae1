package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/orderflow-io/orderflow/pkg/httpclient"
)

type CounterClient struct {
	log     *slog.Logger
	http    *httpclient.Client
	baseURL string
}

func NewCounterClient(log *slog.Logger, http *httpclient.Client, baseURL string) *CounterClient {
	return &CounterClient{
		log:     log,
		http:    http,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// NextValue asks the counter service for the next value of the named
// sequence. Every call consumes a value; results are never cached.
func (c *CounterClient) NextValue(ctx context.Context, sequenceName string) (int, error) {
	c.log.Info("calling counter service", "sequence", sequenceName)

	var resp struct {
		Value int `json:"value"`
	}
	endpoint := fmt.Sprintf("%s/api/v1/counters/%s/next", c.baseURL, url.PathEscape(sequenceName))
	if err := c.http.PostJSON(ctx, endpoint, struct{}{}, &resp); err != nil {
		return 0, err
	}
	return resp.Value, nil
}
