package client

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/msclient/internal/client/metrics"
	"github.com/dmitrijs2005/msclient/internal/logging"
)

const defaultTimeout = 10 * time.Second

// RequestOptions customise a single gateway call. Method defaults to GET.
// Header values override the gateway defaults key by key. Body, when
// non-nil, is sent JSON-encoded.
type RequestOptions struct {
	Method string
	Header http.Header
	Body   any
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client. Its Timeout is used
// unless WithTimeout is applied afterwards; hc itself is never modified.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds every single attempt.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		if d > 0 {
			hc := *c.http
			hc.Timeout = d
			c.http = &hc
		}
	}
}

func WithRetryPolicy(p RetryPolicy) Option {
	return func(c *HTTPClient) {
		c.retry = p
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) {
		if l != nil {
			c.logger = l
		}
	}
}

func WithMetrics(m *metrics.Gateway) Option {
	return func(c *HTTPClient) {
		c.metrics = m
	}
}
