package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics 查询管道指标；nil 值可安全调用，所有方法都不做任何事
type Metrics struct {
	QueriesTotal  *prometheus.CounterVec
	StoreErrors   prometheus.Counter
	QueryDuration *prometheus.HistogramVec
}

// New 在 reg 上注册指标，测试中传入 prometheus.NewRegistry()
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		QueriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fleetquery_queries_total",
				Help: "Total number of answered questions by intent",
			},
			[]string{"intent"},
		),
		StoreErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "fleetquery_store_errors_total",
				Help: "Total number of failed store round trips",
			},
		),
		QueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fleetquery_query_duration_seconds",
				Help:    "Duration of answering a question in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"intent"},
		),
	}
}

// ObserveQuery 记录一次回答
func (m *Metrics) ObserveQuery(intent string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.QueriesTotal.WithLabelValues(intent).Inc()
	m.QueryDuration.WithLabelValues(intent).Observe(elapsed.Seconds())
}

// StoreError 记录一次存储失败
func (m *Metrics) StoreError() {
	if m == nil {
		return
	}
	m.StoreErrors.Inc()
}
