package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func value(t *testing.T, m prometheus.Metric) float64 {
	t.Helper()
	var out dto.Metric
	require.NoError(t, m.Write(&out))
	if out.Counter != nil {
		return out.GetCounter().GetValue()
	}
	return out.GetGauge().GetValue()
}

func TestEndpointLabel(t *testing.T) {
	assert.Equal(t, "/api/v1/enquiries/:id/assign/:id", endpointLabel("/api/v1/enquiries/12/assign/7"))
	assert.Equal(t, "/api/v1/enquiries/:id", endpointLabel("/api/v1/enquiries/12"))
	assert.Equal(t, "/api/v1/enquiries/hot-leads", endpointLabel("/api/v1/enquiries/hot-leads"))
}

func TestPrometheusMiddlewareCountsStatus(t *testing.T) {
	h := PrometheusMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	before := value(t, httpRequestsTotal.WithLabelValues(http.MethodGet, "/probe/:id", "418"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/probe/5", nil))
	after := value(t, httpRequestsTotal.WithLabelValues(http.MethodGet, "/probe/:id", "418"))

	assert.Equal(t, before+1, after)
}

func TestRecordFollowUpScanKeepsGaugeOnError(t *testing.T) {
	RecordFollowUpScan(4, nil)
	RecordFollowUpScan(9, assert.AnError)
	assert.Equal(t, float64(4), value(t, followUpsDue))
}
