package lending

import (
	"time"
)

const (
	// OperationDurationMetric tracks the duration of Service operations.
	OperationDurationMetric = "lending_operation_duration_seconds"

	// OperationCallsMetric counts Service operations by operation and status.
	OperationCallsMetric = "lending_operation_calls_total"

	// ActiveLoansMetric reports the number of active loans after each mutation.
	ActiveLoansMetric = "lending_active_loans"

	// StatusSuccess labels an applied operation.
	StatusSuccess = "success"

	// StatusFailure labels a rejected operation.
	StatusFailure = "failure"

	operationAddItem         = "add_item"
	operationRegisterMember  = "register_member"
	operationCheckout        = "checkout"
	operationReturnItem      = "return_item"
	operationCorrectLoanDate = "correct_loan_date"

	labelOperation = "operation"
	labelStatus    = "status"
	labelReason    = "reason"

	logMsgItemAdded         = "item added to catalog"
	logMsgItemRejected      = "item rejected by catalog"
	logMsgMemberRegistered  = "member registered"
	logMsgCheckedOut        = "item checked out"
	logMsgCheckoutRejected  = "checkout rejected"
	logMsgReturned          = "item returned"
	logMsgReturnRejected    = "return rejected"
	logMsgLoanDateCorrected = "loan date corrected"
	logMsgCorrectionFailed  = "loan date correction rejected"
	logMsgTitleSearch       = "title search"
	logAttrItemID           = "item_id"
	logAttrMemberID         = "member_id"
	logAttrLoanID           = "loan_id"
	logAttrDueDate          = "due_date"
	logAttrReason           = "reason"
	logAttrTitle            = "title"
	logAttrQuery            = "query"
	logAttrHits             = "hits"
)

// Logger interface for operational logging of the Service. *slog.Logger satisfies it.
//
// Info level: applied operations
// Warn level: operations rejected by business rules
// Debug level: queries.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// MetricsCollector interface for collecting Service performance and operational metrics.
type MetricsCollector interface {
	RecordDuration(metric string, duration time.Duration, labels map[string]string)
	IncrementCounter(metric string, labels map[string]string)
	RecordValue(metric string, value float64, labels map[string]string)
}

// observe records the metrics of one finished operation if a collector is configured.
func (s *Service) observe(operation string, start time.Time, result Result) {
	if s.metrics == nil {
		return
	}

	status := StatusSuccess
	if !result.Succeeded() {
		status = StatusFailure
	}

	labels := map[string]string{
		labelOperation: operation,
		labelStatus:    status,
		labelReason:    string(result.Reason),
	}

	s.metrics.RecordDuration(OperationDurationMetric, time.Since(start), labels)
	s.metrics.IncrementCounter(OperationCallsMetric, labels)
	s.metrics.RecordValue(ActiveLoansMetric, float64(s.ledger.Len()), nil)
}

func (s *Service) logInfo(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}

func (s *Service) logWarn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}

func (s *Service) logDebug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
