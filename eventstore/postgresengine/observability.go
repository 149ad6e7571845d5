package postgresengine

import (
	"math"
	"time"
)

const (
	metricQueryDuration        = "eventstore_query_duration_seconds"
	metricAppendDuration       = "eventstore_append_duration_seconds"
	metricEventsAppended       = "eventstore_events_appended_total"
	metricConcurrencyConflicts = "eventstore_concurrency_conflicts_total"
	metricDatabaseErrors       = "eventstore_database_errors_total"
	labelOperation             = "operation"
	labelErrorType             = "error_type"
	errorTypeQuery             = "query"
	errorTypeScan              = "scan"
	errorTypeExec              = "exec"
)

// logQueryWithDuration logs SQL queries with execution time at debug level if the logger is configured.
func (es EventStore) logQueryWithDuration(sqlQuery string, action string, duration time.Duration) {
	if es.logger != nil {
		es.logger.Debug(logMsgSQLExecuted+action, logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery)
	}
}

// logOperation logs operational information at info level if the logger is configured.
func (es EventStore) logOperation(action string, args ...any) {
	if es.logger != nil {
		es.logger.Info(logMsgOperation+action, args...)
	}
}

// logError logs at error level if the logger is configured.
func (es EventStore) logError(message string, err error, args ...any) {
	if es.logger != nil {
		es.logger.Error(message, append([]any{logAttrError, err.Error()}, args...)...)
	}
}

func (es EventStore) recordDuration(metric string, operation string, duration time.Duration) {
	if es.metrics != nil {
		es.metrics.RecordDuration(metric, duration, map[string]string{labelOperation: operation})
	}
}

func (es EventStore) incrementCounter(metric string, labels map[string]string) {
	if es.metrics != nil {
		es.metrics.IncrementCounter(metric, labels)
	}
}

func (es EventStore) recordDatabaseError(operation string, errorType string) {
	es.incrementCounter(metricDatabaseErrors, map[string]string{labelOperation: operation, labelErrorType: errorType})
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
