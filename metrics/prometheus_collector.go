package metrics

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements the MetricsCollector contract with prometheus vectors
// registered on a caller-supplied registerer.
type PrometheusCollector struct {
	mu         sync.Mutex
	registerer prometheus.Registerer
	histograms map[string]*prometheus.HistogramVec
	counters   map[string]*prometheus.CounterVec
	gauges     map[string]*prometheus.GaugeVec
	dropped    prometheus.Counter
}

// NewPrometheusCollector creates a PrometheusCollector which registers its instruments on registerer.
func NewPrometheusCollector(registerer prometheus.Registerer) *PrometheusCollector {
	dropped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "metrics_dropped_observations_total",
		Help: "Observations which could not be recorded, e.g. because of inconsistent label names",
	})
	_ = registerer.Register(dropped)

	return &PrometheusCollector{
		registerer: registerer,
		histograms: make(map[string]*prometheus.HistogramVec),
		counters:   make(map[string]*prometheus.CounterVec),
		gauges:     make(map[string]*prometheus.GaugeVec),
		dropped:    dropped,
	}
}

// RecordDuration observes the duration in seconds.
func (c *PrometheusCollector) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	vec, ok := c.histograms[metric]
	if !ok {
		vec = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{Name: metric, Help: "Duration of " + metric, Buckets: prometheus.DefBuckets},
			labelNames(labels),
		)
		vec, ok = register(c.registerer, vec)
		if !ok {
			c.dropped.Inc()
			return
		}

		c.histograms[metric] = vec
	}

	observer, err := vec.GetMetricWith(labels)
	if err != nil {
		c.dropped.Inc()
		return
	}

	observer.Observe(duration.Seconds())
}

// IncrementCounter adds one to the counter.
func (c *PrometheusCollector) IncrementCounter(metric string, labels map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	vec, ok := c.counters[metric]
	if !ok {
		vec = prometheus.NewCounterVec(prometheus.CounterOpts{Name: metric, Help: "Count of " + metric}, labelNames(labels))
		vec, ok = register(c.registerer, vec)
		if !ok {
			c.dropped.Inc()
			return
		}

		c.counters[metric] = vec
	}

	counter, err := vec.GetMetricWith(labels)
	if err != nil {
		c.dropped.Inc()
		return
	}

	counter.Inc()
}

// RecordValue sets the gauge to value.
func (c *PrometheusCollector) RecordValue(metric string, value float64, labels map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	vec, ok := c.gauges[metric]
	if !ok {
		vec = prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: metric, Help: "Current value of " + metric}, labelNames(labels))
		vec, ok = register(c.registerer, vec)
		if !ok {
			c.dropped.Inc()
			return
		}

		c.gauges[metric] = vec
	}

	gauge, err := vec.GetMetricWith(labels)
	if err != nil {
		c.dropped.Inc()
		return
	}

	gauge.Set(value)
}

// register registers vec, or returns the identical vector which is already registered.
func register[V prometheus.Collector](registerer prometheus.Registerer, vec V) (V, bool) {
	err := registerer.Register(vec)
	if err == nil {
		return vec, true
	}

	var alreadyRegistered prometheus.AlreadyRegisteredError
	if errors.As(err, &alreadyRegistered) {
		if existing, ok := alreadyRegistered.ExistingCollector.(V); ok {
			return existing, true
		}
	}

	return vec, false
}

func labelNames(labels map[string]string) []string {
	names := make([]string, 0, len(labels))
	for name := range labels {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}
