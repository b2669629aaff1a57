// Package metrics описывает Prometheus метрики relay сервера.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "docsync"

// Compaction results
const (
	CompactionRequested = "requested"
	CompactionApplied   = "applied"
	CompactionExpired   = "expired"
	CompactionRejected  = "rejected"
)

// Metrics набор метрик relay. Регистрируется в переданном Registerer,
// поэтому тесты могут создавать независимые экземпляры.
type Metrics struct {
	registry        *prometheus.Registry
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	syncRooms       prometheus.Histogram
	recordsIn       *prometheus.CounterVec
	recordsOut      prometheus.Counter
	compactions     *prometheus.CounterVec
	prunedRecords   prometheus.Counter
	presenceEntries prometheus.Gauge
	rateLimited     prometheus.Counter
}

// New создает метрики в собственном реестре
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests by route, method and status",
			},
			[]string{"route", "method", "code"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		syncRooms: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "relay",
				Name:      "sync_rooms",
				Help:      "Number of rooms per sync request",
				Buckets:   []float64{1, 2, 4, 8, 16, 32},
			},
		),
		recordsIn: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "relay",
				Name:      "records_received_total",
				Help:      "Total number of records appended to room logs by kind",
			},
			[]string{"kind"},
		),
		recordsOut: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "relay",
				Name:      "records_sent_total",
				Help:      "Total number of records returned to clients",
			},
		),
		compactions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "relay",
				Name:      "compactions_total",
				Help:      "Compaction lifecycle events by result",
			},
			[]string{"result"},
		),
		prunedRecords: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "relay",
				Name:      "pruned_handshakes_total",
				Help:      "Total number of expired handshake records removed",
			},
		),
		presenceEntries: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "relay",
				Name:      "presence_entries",
				Help:      "Number of live presence entries across rooms",
			},
		),
		rateLimited: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "rate_limited_total",
				Help:      "Total number of requests rejected by rate limiting",
			},
		),
	}
}

// Handler отдает метрики в формате Prometheus
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Gatherer нужен тестам для чтения значений
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// ObserveHTTP учитывает обработанный HTTP запрос
func (m *Metrics) ObserveHTTP(route, method string, code int, d time.Duration) {
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(d.Seconds())
}

// ObserveSync учитывает sync запрос с rooms комнатами
func (m *Metrics) ObserveSync(rooms int) {
	m.syncRooms.Observe(float64(rooms))
}

// RecordsReceived учитывает принятые записи типа kind
func (m *Metrics) RecordsReceived(kind string, n int) {
	m.recordsIn.WithLabelValues(kind).Add(float64(n))
}

// RecordsSent учитывает отправленные клиенту записи
func (m *Metrics) RecordsSent(n int) {
	m.recordsOut.Add(float64(n))
}

// Compaction учитывает событие компакции
func (m *Metrics) Compaction(result string) {
	m.compactions.WithLabelValues(result).Inc()
}

// HandshakesPruned учитывает удаленные handshake записи
func (m *Metrics) HandshakesPruned(n int64) {
	m.prunedRecords.Add(float64(n))
}

// SetPresenceEntries задает число живых presence записей
func (m *Metrics) SetPresenceEntries(n int) {
	m.presenceEntries.Set(float64(n))
}

// RateLimited учитывает отклоненный запрос
func (m *Metrics) RateLimited() {
	m.rateLimited.Inc()
}
