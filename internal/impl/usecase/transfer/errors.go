package impl_transfer

import (
	"errors"
	"fmt"

	domain_transfer "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/domain/transfer"
	"github.com/google/uuid"
)

var ErrInvalidInput = errors.New("invalid input data")

// Steps named in OrchestrationError.
const (
	StepCompliance = "compliance"
	StepRate       = "rate"
	StepQuote      = "quote"
	StepTransfer   = "transfer"
	StepPersist    = "persist"
)

// Stable error codes surfaced to callers. Policy outcomes use the
// compliance verdict code instead.
const (
	CodeComplianceUnavailable = "COMPLIANCE_UNAVAILABLE"
	CodeRateUnavailable       = "RATE_UNAVAILABLE"
	CodeSchemeUnavailable     = "SCHEME_UNAVAILABLE"
	CodeSchemeRejected        = "SCHEME_REJECTED"
	CodeQuoteExpired          = "QUOTE_EXPIRED"
	CodeTransferAborted       = "TRANSFER_ABORTED"
	CodeCancelled             = "CANCELLED"
	CodePersistenceFailed     = "PERSISTENCE_FAILED"
)

// OrchestrationError is the single typed failure of one run. Cause keeps the
// raw dependency error for logs; UserMessage never includes it.
type OrchestrationError struct {
	TransferID uuid.UUID
	Status     domain_transfer.Status
	Step       string
	Code       string
	Reason     string
	Cause      error
}

func (e *OrchestrationError) Error() string {
	msg := fmt.Sprintf("transfer %s failed at %s with %s", e.TransferID, e.Step, e.Code)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *OrchestrationError) Unwrap() error { return e.Cause }

// Retryable reports whether re-running the whole orchestration can succeed
// without human action.
func (e *OrchestrationError) Retryable() bool {
	switch e.Code {
	case CodeComplianceUnavailable, CodeRateUnavailable, CodeSchemeUnavailable,
		CodeSchemeRejected, CodeQuoteExpired, CodeCancelled, CodePersistenceFailed:
		return true
	}
	return false
}

// ReuseTransferID reports whether a retry must keep the same transfer id,
// because the scheme may already hold a transfer under it.
func (e *OrchestrationError) ReuseTransferID() bool {
	if e.Code == CodePersistenceFailed {
		return true
	}
	return e.Step == StepTransfer && (e.Code == CodeSchemeUnavailable || e.Code == CodeCancelled)
}

func (e *OrchestrationError) UserMessage() string {
	switch e.Status {
	case domain_transfer.StatusDenied:
		return "Transfer denied: " + e.Reason
	case domain_transfer.StatusManualReviewPending:
		return "Transfer is pending compliance review: " + e.Reason
	}

	switch e.Code {
	case CodeComplianceUnavailable:
		return "Compliance screening is temporarily unavailable. Please try again."
	case CodeRateUnavailable:
		return "No exchange rate is available for this currency pair right now. Please try again later."
	case CodeSchemeUnavailable:
		return "The payment network is temporarily unavailable. Please try again."
	case CodeSchemeRejected:
		return "The payment network declined this transfer."
	case CodeQuoteExpired:
		return "The quote expired before the transfer could be sent. Please start again."
	case CodeTransferAborted:
		return "The transfer was aborted by the payment network. No funds were moved."
	case CodeCancelled:
		return "The transfer was cancelled before completion."
	case CodePersistenceFailed:
		return "The transfer outcome could not be recorded. Please check its status before retrying."
	}
	return "The transfer could not be completed."
}
