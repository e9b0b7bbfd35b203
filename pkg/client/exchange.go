package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jdscolam/mndp-firebase-auth/internal/api"
)

// Exchange trades credential for a signed token. group is optional.
// The credential is sent in the Authorization header, not in the URL.
func (c *Client) Exchange(ctx context.Context, credential, group string) (*api.ExchangeResponse, string, error) {
	query := url.Values{}
	if group != "" {
		query.Set(api.GroupParam, group)
	}
	header := http.Header{}
	header.Set("Authorization", "Bearer "+credential)

	var result api.ExchangeResponse
	correlationID, err := c.get(ctx, c.url(c.exchangeRoute, query), header, &result)
	if err != nil {
		return nil, correlationID, err
	}
	return &result, correlationID, nil
}
