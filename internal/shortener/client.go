// Package shortener submits long URLs to a dwz-style shortening endpoint.
package shortener

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	// DefaultEndpoint is Baidu's short URL service.
	DefaultEndpoint = "http://dwz.cn/create.php"
	// DefaultService is the name used in "no response from" messages.
	DefaultService = "dwz.cn"
)

// Client posts URLs to a single shortening endpoint.
type Client struct {
	http     *resty.Client
	endpoint string
	service  string
}

// Option configures a Client.
type Option func(*Client)

// WithService overrides the service name shown in error messages.
func WithService(name string) Option {
	return func(c *Client) {
		if name != "" {
			c.service = name
		}
	}
}

// WithTimeout bounds each request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.SetTimeout(d)
		}
	}
}

// WithHTTPClient makes the client send requests through hc.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = resty.NewWithClient(hc)
	}
}

// NewClient returns a client for endpoint. The service name defaults to the
// endpoint host.
func NewClient(endpoint string, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c := &Client{
		http:     resty.New(),
		endpoint: endpoint,
		service:  serviceName(endpoint),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the URL requests are posted to.
func (c *Client) Endpoint() string { return c.endpoint }

// Service returns the service name used in error messages.
func (c *Client) Service() string { return c.service }

// Shorten posts fullURL as the form field "url" and interprets the answer.
// Every failure is one of NetworkError, EmptyResponseError, ServiceError or
// ErrEmptyShortURL.
func (c *Client) Shorten(ctx context.Context, fullURL string) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		SetFormData(map[string]string{"url": fullURL}).
		Post(c.endpoint)
	if err != nil {
		return "", &NetworkError{Err: err}
	}
	return Interpret(resp.Body(), c.service)
}

func serviceName(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return DefaultService
	}
	return u.Host
}
