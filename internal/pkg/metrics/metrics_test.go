package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.WorkRecordWritten("create")
		m.QuotaRejected()
		m.ObserveLineAmount("hourly", 100)
		m.SalaryTransition("paid")
	})
	assert.Nil(t, m.Registry())
}

func TestCountersIncrement(t *testing.T) {
	m := New("test")

	m.WorkRecordWritten("create")
	m.WorkRecordWritten("create")
	m.WorkRecordWritten("delete")
	m.QuotaRejected()
	m.SalaryTransition("paid")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.workRecordWrites.WithLabelValues("create")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.workRecordWrites.WithLabelValues("delete")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.quotaRejections))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.salaryTransitions.WithLabelValues("paid")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New("test")
	m.QuotaRejected()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "test_quota_rejections_total 1"))
}
