// metrics — prometheus-метрики пересборки индекса, загрузки страниц и HTTP API.
// Все методы безопасны для nil-получателя: сервис можно собрать без метрик.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "tenders"

// Результаты пересборки.
const (
	RebuildOK       = "ok"
	RebuildFailed   = "failed"
	RebuildCanceled = "canceled"
)

// Результаты загрузки страницы.
const (
	PageOK      = "ok"
	PageDisk    = "disk"
	PageFailed  = "failed"
	PageDropped = "dropped"
)

// Metrics — набор коллекторов сервиса.
type Metrics struct {
	rebuilds        *prometheus.CounterVec
	rebuildDuration prometheus.Histogram
	pages           *prometheus.CounterVec
	pageDuration    prometheus.Histogram

	snapshotTenders     prometheus.Gauge
	snapshotDegraded    prometheus.Gauge
	snapshotFailedPages prometheus.Gauge
	snapshotBuiltAt     prometheus.Gauge

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// New создаёт коллекторы и регистрирует их в reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		rebuilds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "index",
			Name:      "rebuilds_total",
			Help:      "Index rebuilds by result.",
		}, []string{"result"}),
		rebuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "index",
			Name:      "rebuild_duration_seconds",
			Help:      "Duration of index rebuilds.",
			Buckets:   []float64{0.5, 1, 5, 10, 30, 60, 120, 300, 600},
		}),
		pages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "source",
			Name:      "page_fetches_total",
			Help:      "Source page fetches by result.",
		}, []string{"result"}),
		pageDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "source",
			Name:      "page_fetch_duration_seconds",
			Help:      "Duration of single source page requests.",
			Buckets:   prometheus.DefBuckets,
		}),
		snapshotTenders: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "snapshot",
			Name:      "tenders",
			Help:      "Tenders in the published snapshot.",
		}),
		snapshotDegraded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "snapshot",
			Name:      "degraded",
			Help:      "1 if the published snapshot misses source pages.",
		}),
		snapshotFailedPages: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "snapshot",
			Name:      "failed_pages",
			Help:      "Source pages dropped from the published snapshot.",
		}),
		snapshotBuiltAt: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "snapshot",
			Name:      "built_timestamp_seconds",
			Help:      "Unix time the published snapshot was built.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"method", "route", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		m.rebuilds, m.rebuildDuration,
		m.pages, m.pageDuration,
		m.snapshotTenders, m.snapshotDegraded, m.snapshotFailedPages, m.snapshotBuiltAt,
		m.httpRequests, m.httpDuration,
	)

	return m
}

// RebuildFinished учитывает завершённую пересборку.
func (m *Metrics) RebuildFinished(result string, took time.Duration) {
	if m == nil {
		return
	}

	m.rebuilds.WithLabelValues(result).Inc()
	m.rebuildDuration.Observe(took.Seconds())
}

// PageFetched учитывает исход загрузки одной страницы.
func (m *Metrics) PageFetched(result string) {
	if m == nil {
		return
	}

	m.pages.WithLabelValues(result).Inc()
}

// ObservePageRequest учитывает длительность запроса страницы к источнику.
func (m *Metrics) ObservePageRequest(took time.Duration) {
	if m == nil {
		return
	}

	m.pageDuration.Observe(took.Seconds())
}

// SnapshotPublished обновляет gauges опубликованного снапшота.
func (m *Metrics) SnapshotPublished(tenders, failedPages int, builtAt time.Time) {
	if m == nil {
		return
	}

	m.snapshotTenders.Set(float64(tenders))
	m.snapshotFailedPages.Set(float64(failedPages))
	m.snapshotBuiltAt.Set(float64(builtAt.Unix()))

	if failedPages > 0 {
		m.snapshotDegraded.Set(1)
	} else {
		m.snapshotDegraded.Set(0)
	}
}

// ObserveHTTP учитывает обработанный HTTP-запрос.
// route — шаблон маршрута chi, а не сырой путь.
func (m *Metrics) ObserveHTTP(method, route string, code int, took time.Duration) {
	if m == nil {
		return
	}

	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(took.Seconds())
}
