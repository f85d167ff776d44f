package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the payroll instruments. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	workRecordWrites  *prometheus.CounterVec
	quotaRejections   prometheus.Counter
	lineAmounts       *prometheus.HistogramVec
	salaryTransitions *prometheus.CounterVec
}

func New(namespace string) *Metrics {
	if namespace == "" {
		namespace = "payroll"
	}

	m := &Metrics{
		registry: prometheus.NewRegistry(),
		workRecordWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "work_record_writes_total",
			Help:      "Work record mutations by operation.",
		}, []string{"operation"}),
		quotaRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quota_rejections_total",
			Help:      "Work record writes rejected because a work item quota would be exceeded.",
		}),
		lineAmounts: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "line_total_amount",
			Help:      "Computed work record totals in minor currency units.",
			Buckets:   prometheus.ExponentialBuckets(10000, 4, 10),
		}, []string{"calculation_type"}),
		salaryTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "salary_transitions_total",
			Help:      "Monthly salary lifecycle events.",
		}, []string{"event"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.workRecordWrites,
		m.quotaRejections,
		m.lineAmounts,
		m.salaryTransitions,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) WorkRecordWritten(operation string) {
	if m == nil {
		return
	}
	m.workRecordWrites.WithLabelValues(operation).Inc()
}

func (m *Metrics) QuotaRejected() {
	if m == nil {
		return
	}
	m.quotaRejections.Inc()
}

func (m *Metrics) ObserveLineAmount(calculationType string, amount int64) {
	if m == nil {
		return
	}
	m.lineAmounts.WithLabelValues(calculationType).Observe(float64(amount))
}

func (m *Metrics) SalaryTransition(event string) {
	if m == nil {
		return
	}
	m.salaryTransitions.WithLabelValues(event).Inc()
}
