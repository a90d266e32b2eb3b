package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/dmitrijs2005/msclient/internal/client/metrics"
	"github.com/dmitrijs2005/msclient/internal/common"
	"github.com/dmitrijs2005/msclient/internal/logging"
)

const (
	classPublic    = "public"
	classProtected = "protected"

	maxResponseBytes = 4 << 20
	maxErrorBody     = 512
)

// HTTPClient is the request gateway. It is safe for concurrent use.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	retry   RetryPolicy
	logger  logging.Logger
	metrics *metrics.Gateway
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a gateway for baseURL. tokens may be nil, in which
// case every protected call fails with ErrAuthRequired.
func NewHTTPClient(baseURL string, tokens TokenSource, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		tokens:  tokens,
		retry:   DefaultRetryPolicy(),
		logger:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchPublic sends an unauthenticated request and decodes a 2xx JSON body
// into out (nil discards it). Non-2xx replies fail with *HTTPError.
func (c *HTTPClient) FetchPublic(ctx context.Context, endpoint string, opts RequestOptions, out any) error {
	return c.do(ctx, classPublic, endpoint, opts, "", out)
}

// FetchProtected is FetchPublic with a bearer token. Without a token it
// returns ErrAuthRequired before anything is sent. A 401 for an expired
// token surfaces as *HTTPError; there is no automatic refresh.
func (c *HTTPClient) FetchProtected(ctx context.Context, endpoint string, opts RequestOptions, out any) error {
	token, ok := c.token(ctx)
	if !ok {
		c.metrics.ObserveRejected()
		c.logger.Debug(ctx, "protected call without token", "endpoint", endpoint)
		return ErrAuthRequired
	}
	return c.do(ctx, classProtected, endpoint, opts, token, out)
}

func (c *HTTPClient) token(ctx context.Context) (string, bool) {
	if c.tokens == nil {
		return "", false
	}
	token, ok := c.tokens.Token(ctx)
	return token, ok && token != ""
}

func (c *HTTPClient) do(ctx context.Context, class, endpoint string, opts RequestOptions, token string, out any) error {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var body []byte
	if opts.Body != nil {
		b, err := json.Marshal(opts.Body)
		if err != nil {
			return fmt.Errorf("%w: encode body: %v", ErrInvalidRequest, err)
		}
		body = b
	}

	requestID := uuid.NewString()
	log := c.logger.With("request_id", requestID, "method", method, "endpoint", endpoint)

	var payload []byte
	attempt := 0

	err := retry.Do(ctx, c.retry.backoff(method), func(ctx context.Context) error {
		attempt++
		if attempt > 1 {
			c.metrics.ObserveRetry(class)
		}

		req, err := c.newRequest(ctx, method, endpoint, opts.Header, body, token, requestID)
		if err != nil {
			return err
		}

		start := time.Now()
		resp, err := c.http.Do(req)
		if err != nil {
			c.metrics.ObserveAttempt(class, method, 0, time.Since(start))
			log.Debug(ctx, "api attempt failed", "attempt", attempt, "error", err)
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return retry.RetryableError(err)
		}

		p, readErr := readBody(resp)
		c.metrics.ObserveAttempt(class, method, resp.StatusCode, time.Since(start))
		log.Debug(ctx, "api attempt", "attempt", attempt, "status", resp.StatusCode, "duration", time.Since(start))

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			httpErr := &HTTPError{Status: resp.StatusCode, Body: truncate(string(p), maxErrorBody)}
			if retryableStatus(resp.StatusCode) {
				return retry.RetryableError(httpErr)
			}
			return httpErr
		}
		if readErr != nil {
			return retry.RetryableError(readErr)
		}

		payload = p
		return nil
	})
	if err != nil {
		return c.classify(ctx, err)
	}

	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrMalformedResponse, method, endpoint, err)
	}
	return nil
}

func (c *HTTPClient) newRequest(ctx context.Context, method, endpoint string, header http.Header, body []byte, token, requestID string) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeader, requestID)
	if token != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerScheme+" "+token)
	}
	for key, values := range header {
		req.Header.Del(key)
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	return req, nil
}

// classify maps what is left after retries onto the package errors.
func (c *HTTPClient) classify(ctx context.Context, err error) error {
	var httpErr *HTTPError
	switch {
	case errors.As(err, &httpErr),
		errors.Is(err, ErrInvalidRequest):
		return err
	case ctx.Err() != nil:
		return ctx.Err()
	default:
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
}

func readBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return b, fmt.Errorf("read body: %w", err)
	}
	return b, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
