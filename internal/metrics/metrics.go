package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nduyhai/nodestatus/internal/clusterstatus"
)

const namespace = "nodestatus"

type Collectors struct {
	registry *prometheus.Registry

	fetchTotal    *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
	nodesReported *prometheus.GaugeVec
	lastSnapshot  prometheus.Gauge
}

func New() *Collectors {
	c := &Collectors{
		registry: prometheus.NewRegistry(),
		fetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_total",
			Help:      "Status script runs by query and result.",
		}, []string{"node_type", "partition_type", "result"}),
		fetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Wall time of one status script run.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
		}, []string{"node_type", "partition_type"}),
		nodesReported: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "nodes_reported",
			Help:      "Records returned by the last successful run of each query.",
		}, []string{"node_type", "partition_type"}),
		lastSnapshot: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_snapshot_timestamp_seconds",
			Help:      "Start time of the last full fetch.",
		}),
	}

	c.registry.MustRegister(
		c.fetchTotal,
		c.fetchDuration,
		c.nodesReported,
		c.lastSnapshot,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

func (c *Collectors) ObserveResult(r clusterstatus.FetchResult) {
	nodeType, partition := r.Query.Type.String(), r.Query.Partition.String()

	result := "success"
	if r.Failed() {
		result = "failure"
	} else {
		c.nodesReported.WithLabelValues(nodeType, partition).Set(float64(len(r.Records)))
	}
	c.fetchTotal.WithLabelValues(nodeType, partition, result).Inc()
	c.fetchDuration.WithLabelValues(nodeType, partition).Observe(r.Duration.Seconds())
}

func (c *Collectors) ObserveSnapshot(s clusterstatus.Snapshot) {
	c.lastSnapshot.Set(float64(s.StartedAt.UnixNano()) / 1e9)
}

func (c *Collectors) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collectors) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
