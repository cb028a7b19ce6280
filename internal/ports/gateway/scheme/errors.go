package port_scheme

import (
	"errors"
	"fmt"
)

var (
	ErrSchemeUnavailable = errors.New("scheme: hub unavailable")
	ErrSchemeRejected    = errors.New("scheme: request rejected")
	ErrQuoteExpired      = errors.New("scheme: quote expired before transfer")
)

// Codes used for rejections raised on this side of the wire.
const (
	CodeMissingCondition    = "MISSING_CONDITION"
	CodeMalformedResponse   = "MALFORMED_RESPONSE"
	CodeUnroutableCurrency  = "UNROUTABLE_CURRENCY"
	CodeDuplicateTransferID = "DUPLICATE_TRANSFER_ID"
	CodeInvalidState        = "INVALID_TRANSFER_STATE"
)

// RejectedError is a protocol-level negative answer. It matches
// ErrSchemeRejected under errors.Is.
type RejectedError struct {
	Code        string
	Description string
}

func Rejected(code, description string) *RejectedError {
	return &RejectedError{Code: code, Description: description}
}

func (e *RejectedError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("scheme: rejected with code %s", e.Code)
	}
	return fmt.Sprintf("scheme: rejected with code %s: %s", e.Code, e.Description)
}

func (e *RejectedError) Is(target error) bool { return target == ErrSchemeRejected }
