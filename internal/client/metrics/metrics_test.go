package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateway_ObserveAttempt(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewGateway(reg)

	m.ObserveAttempt("public", "GET", 200, 10*time.Millisecond)
	m.ObserveAttempt("public", "GET", 200, 20*time.Millisecond)
	m.ObserveAttempt("protected", "GET", 0, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("public", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("protected", "GET", "error")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.RequestDuration))
}

func TestGateway_RetriesAndRejections(t *testing.T) {
	m := NewGateway(prometheus.NewRegistry())

	m.ObserveRetry("public")
	m.ObserveRetry("public")
	m.ObserveRejected()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RetriesTotal.WithLabelValues("public")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RejectedTotal))
}

func TestGateway_NilIsNoop(t *testing.T) {
	var m *Gateway
	m.ObserveAttempt("public", "GET", 200, time.Second)
	m.ObserveRetry("public")
	m.ObserveRejected()
}

func TestHandler_ServesRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewGateway(reg)
	m.ObserveRejected()

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "msclient_gateway_auth_required_total 1")
}
