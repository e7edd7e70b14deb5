package sms

import "fmt"

// RejectCode identifies why a message was declined by the pipeline. These
// are routine, high-frequency outcomes, not faults.
type RejectCode string

const (
	RejectPromotionalSender RejectCode = "PROMOTIONAL_SENDER"
	RejectSpamContent       RejectCode = "SPAM_CONTENT"
	RejectLowConfidence     RejectCode = "LOW_CONFIDENCE"
	RejectNotTransactional  RejectCode = "NOT_TRANSACTIONAL"
	RejectNoAmount          RejectCode = "NO_AMOUNT"
	RejectNoAccountAnchor   RejectCode = "NO_ACCOUNT_ANCHOR"
	RejectNoUser            RejectCode = "NO_USER"
)

// RejectError is a structured, expected rejection. Callers surface it as
// {success:false, error:reason}; it is never treated as a storage fault.
type RejectError struct {
	Code    RejectCode
	Message string
}

func (e *RejectError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func rejectf(code RejectCode, format string, args ...any) *RejectError {
	return &RejectError{Code: code, Message: fmt.Sprintf(format, args...)}
}
