package metrics_test

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/lending"
	"github.com/AntonStoeckl/library-lending-go/metrics"
	. "github.com/AntonStoeckl/library-lending-go/testutil/helper" //nolint:revive
)

func Test_PrometheusCollector_IncrementCounter(t *testing.T) {
	// arrange
	registry := prometheus.NewRegistry()
	collector := metrics.NewPrometheusCollector(registry)
	labels := map[string]string{"operation": "checkout", "status": "success"}

	// act
	collector.IncrementCounter("lending_operation_calls_total", labels)
	collector.IncrementCounter("lending_operation_calls_total", labels)
	collector.IncrementCounter("lending_operation_calls_total", map[string]string{"operation": "checkout", "status": "failure"})

	// assert
	expected := `
# HELP lending_operation_calls_total Count of lending_operation_calls_total
# TYPE lending_operation_calls_total counter
lending_operation_calls_total{operation="checkout",status="failure"} 1
lending_operation_calls_total{operation="checkout",status="success"} 2
`
	assert.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), "lending_operation_calls_total"))
}

func Test_PrometheusCollector_RecordValue(t *testing.T) {
	// arrange
	registry := prometheus.NewRegistry()
	collector := metrics.NewPrometheusCollector(registry)

	// act
	collector.RecordValue("lending_active_loans", 3, nil)
	collector.RecordValue("lending_active_loans", 2, nil)

	// assert
	expected := `
# HELP lending_active_loans Current value of lending_active_loans
# TYPE lending_active_loans gauge
lending_active_loans 2
`
	assert.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), "lending_active_loans"))
}

func Test_PrometheusCollector_RecordDuration(t *testing.T) {
	// arrange
	registry := prometheus.NewRegistry()
	collector := metrics.NewPrometheusCollector(registry)

	// act
	collector.RecordDuration("eventstore_query_duration_seconds", 20*time.Millisecond, map[string]string{"operation": "query"})
	collector.RecordDuration("eventstore_query_duration_seconds", 40*time.Millisecond, map[string]string{"operation": "query"})

	// assert
	count, err := testutil.GatherAndCount(registry, "eventstore_query_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count, "one series")
}

func Test_PrometheusCollector_DropsInconsistentLabels(t *testing.T) {
	// arrange
	registry := prometheus.NewRegistry()
	collector := metrics.NewPrometheusCollector(registry)
	collector.IncrementCounter("lending_operation_calls_total", map[string]string{"operation": "checkout"})

	// act
	collector.IncrementCounter("lending_operation_calls_total", map[string]string{"status": "success"})

	// assert
	expected := `
# HELP metrics_dropped_observations_total Observations which could not be recorded, e.g. because of inconsistent label names
# TYPE metrics_dropped_observations_total counter
metrics_dropped_observations_total 1
`
	assert.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), "metrics_dropped_observations_total"))
}

func Test_PrometheusCollector_CollectsServiceMetrics(t *testing.T) {
	// arrange
	registry := prometheus.NewRegistry()
	collector := metrics.NewPrometheusCollector(registry)
	service := GivenServiceWithItems(t, GivenItems(), lending.WithMetrics(collector), lending.WithClock(GivenClockAtDayZero()))
	member := service.RegisterMember("Alice Smith")

	// act
	GivenCheckedOut(t, service, member.ID, "978-0134685991")
	service.Checkout(member.ID, "978-0134685991")

	// assert
	calls, err := testutil.GatherAndCount(registry, lending.OperationCallsMetric)
	require.NoError(t, err)
	assert.Equal(t, 4, calls, "add_item, register_member, checkout success, checkout failure")

	expected := `
# HELP lending_active_loans Current value of lending_active_loans
# TYPE lending_active_loans gauge
lending_active_loans 1
`
	assert.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), lending.ActiveLoansMetric))
}
