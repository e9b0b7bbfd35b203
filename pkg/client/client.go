// Package client is a Go client for the mndpauth gateway.
package client

import (
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

type Client struct {
	baseURL       string
	exchangeRoute string
	adminToken    string
	httpClient    *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithExchangeRoute overrides the path of the exchange endpoint.
func WithExchangeRoute(route string) Option {
	return func(c *Client) {
		c.exchangeRoute = route
	}
}

// WithAdminToken sets the bearer token sent to admin routes.
func WithAdminToken(token string) Option {
	return func(c *Client) {
		c.adminToken = token
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		exchangeRoute: "/auth",
		httpClient:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) url(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}
