// Package metrics exports the metrics of the lending Service and the postgres journal to Prometheus.
//
// PrometheusCollector satisfies lending.MetricsCollector and postgresengine.MetricsCollector:
//   - RecordDuration -> Histogram (seconds)
//   - IncrementCounter -> Counter
//   - RecordValue -> Gauge
//
// Instruments are created on first use, one vector per metric name, with the label names of that
// first call. Later calls for the same metric with other label names are dropped.
package metrics
