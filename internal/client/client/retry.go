package client

import (
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"
)

const defaultInitialBackoff = 200 * time.Millisecond

// RetryPolicy bounds how often a failed attempt is repeated. Backoff grows
// exponentially from InitialBackoff with 10% jitter, capped at MaxBackoff
// when set. MaxRetries counts repeats, so 0 means a single attempt.
type RetryPolicy struct {
	MaxRetries     uint64
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:     2,
		InitialBackoff: defaultInitialBackoff,
		MaxBackoff:     2 * time.Second,
	}
}

// backoff builds a fresh go-retry backoff; they are stateful, one per call.
func (p RetryPolicy) backoff(method string) retry.Backoff {
	base := p.InitialBackoff
	if base <= 0 {
		base = defaultInitialBackoff
	}

	b := retry.NewExponential(base)
	b = retry.WithJitterPercent(10, b)
	if p.MaxBackoff > 0 {
		b = retry.WithCappedDuration(p.MaxBackoff, b)
	}

	maxRetries := p.MaxRetries
	if !idempotent(method) {
		maxRetries = 0
	}
	return retry.WithMaxRetries(maxRetries, b)
}

func idempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	default:
		return false
	}
}

func retryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}
