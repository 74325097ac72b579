// Package metrics exposes build counters and timings of the Voronoi builder
// as Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "voronoi"

// Build results used as the result label of builds_total.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Collector owns a private registry so several collectors can live in one
// process. All methods are safe on a nil receiver.
type Collector struct {
	registry   *prometheus.Registry
	sites      prometheus.Counter
	edges      prometheus.Counter
	chunkBuild prometheus.Histogram
	merge      *prometheus.HistogramVec
	builds     *prometheus.CounterVec
}

func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		sites: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sites_total",
			Help:      "Sites passed to the builder.",
		}),
		edges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "edges_total",
			Help:      "Edges in finished diagrams.",
		}),
		chunkBuild: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "chunk_build_seconds",
			Help:      "Time spent sweeping one chunk.",
			Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 10),
		}),
		merge: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "merge_seconds",
			Help:      "Time spent merging two partial diagrams.",
			Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 10),
		}, []string{"round"}),
		builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "builds_total",
			Help:      "Finished builds by result.",
		}, []string{"result"}),
	}
	c.registry.MustRegister(c.sites, c.edges, c.chunkBuild, c.merge, c.builds)
	return c
}

func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

func (c *Collector) ObserveSites(n int) {
	if c == nil {
		return
	}
	c.sites.Add(float64(n))
}

func (c *Collector) ObserveEdges(n int) {
	if c == nil {
		return
	}
	c.edges.Add(float64(n))
}

func (c *Collector) ObserveChunk(d time.Duration) {
	if c == nil {
		return
	}
	c.chunkBuild.Observe(d.Seconds())
}

// ObserveMerge records one merge of the given reduction round, counted from 1.
func (c *Collector) ObserveMerge(round int, d time.Duration) {
	if c == nil {
		return
	}
	c.merge.WithLabelValues(strconv.Itoa(round)).Observe(d.Seconds())
}

func (c *Collector) ObserveBuild(err error) {
	if c == nil {
		return
	}
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	c.builds.WithLabelValues(result).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
