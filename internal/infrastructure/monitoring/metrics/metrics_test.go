package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequest(t *testing.T) {
	m := New("test")

	m.ObserveRequest("GET", "/api/v1/stats", "200", 15*time.Millisecond)
	m.ObserveRequest("GET", "/api/v1/stats", "200", 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/v1/stats", "200")))
}

func TestObserveReload(t *testing.T) {
	m := New("test")

	m.ObserveReload(ReloadSuccess, 12, 30)
	m.ObserveReload(ReloadFailure, 0, 0)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.reloads.WithLabelValues(ReloadSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reloads.WithLabelValues(ReloadFailure)))
	assert.Equal(t, 12.0, testutil.ToFloat64(m.snapshotProducts))
	assert.Equal(t, 30.0, testutil.ToFloat64(m.snapshotSupplier))
}

func TestAddScored(t *testing.T) {
	m := New("test")
	m.AddScored(3)
	m.AddScored(4)
	assert.Equal(t, 7.0, testutil.ToFloat64(m.productsScored))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRequest("GET", "/", "200", time.Second)
		m.ObserveReload(ReloadSuccess, 1, 1)
		m.AddScored(1)
	})
}

func TestHandler(t *testing.T) {
	m := New("bluepin")
	m.AddScored(1)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "bluepin_analysis_products_scored_total 1")
}
