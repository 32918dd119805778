// Package metrics records tree builds in a Prometheus registry that can be
// written to a node exporter textfile.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/smasonuk/bsptree"
)

const (
	sceneLabel    = "scene"
	selectorLabel = "selector"
)

// Registry holds the build collectors. The zero value is not usable; call
// New.
type Registry struct {
	registry *prometheus.Registry

	builds        *prometheus.CounterVec
	buildErrors   *prometheus.CounterVec
	buildDuration *prometheus.HistogramVec
	inputs        *prometheus.GaugeVec
	polygons      *prometheus.GaugeVec
	splits        *prometheus.GaugeVec
	depth         *prometheus.GaugeVec
	nodes         *prometheus.GaugeVec
}

func New() *Registry {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	labels := []string{sceneLabel, selectorLabel}

	return &Registry{
		registry: reg,
		builds: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bsptree_builds_total",
			Help: "The number of trees built.",
		}, labels),
		buildErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bsptree_build_errors_total",
			Help: "The number of builds that failed.",
		}, labels),
		buildDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bsptree_build_duration_seconds",
			Help:    "The time to build a tree.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, labels),
		inputs: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "bsptree_input_shapes",
			Help: "The number of shapes given to the last build.",
		}, labels),
		polygons: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "bsptree_polygons",
			Help: "The number of polygons stored by the last build.",
		}, labels),
		splits: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "bsptree_splits",
			Help: "The number of polygons split by the last build.",
		}, labels),
		depth: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "bsptree_depth",
			Help: "The depth of the last built tree.",
		}, labels),
		nodes: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "bsptree_nodes",
			Help: "The number of nodes of the last built tree.",
		}, labels),
	}
}

// Observe records a successful build.
func (r *Registry) Observe(scene, selector string, stats bsptree.Stats) {
	labels := prometheus.Labels{sceneLabel: scene, selectorLabel: selector}

	r.builds.With(labels).Inc()
	r.buildDuration.With(labels).Observe(stats.Duration.Seconds())
	r.inputs.With(labels).Set(float64(stats.Input))
	r.polygons.With(labels).Set(float64(stats.Polygons))
	r.splits.With(labels).Set(float64(stats.Splits))
	r.depth.With(labels).Set(float64(stats.Depth))
	r.nodes.With(labels).Set(float64(stats.Nodes))
}

// ObserveError records a failed build.
func (r *Registry) ObserveError(scene, selector string) {
	r.buildErrors.With(prometheus.Labels{sceneLabel: scene, selectorLabel: selector}).Inc()
}

// Gatherer exposes the registry, for instance to promhttp.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes the current values in the text exposition format.
// The file is replaced atomically.
func (r *Registry) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
