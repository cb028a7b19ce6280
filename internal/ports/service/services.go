package port_service

import (
	"context"

	domain_money "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/domain/money"
	domain_transfer "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/domain/transfer"
	"github.com/shopspring/decimal"
)

type Decision string

const (
	DecisionAllow        Decision = "ALLOW"
	DecisionDeny         Decision = "DENY"
	DecisionManualReview Decision = "MANUAL_REVIEW"
)

// Verdict codes.
const (
	CodeAmountBelowMinimum = "AMOUNT_BELOW_MINIMUM"
	CodeAmountAboveMaximum = "AMOUNT_ABOVE_MAXIMUM"
	CodeKYCNotVerified     = "KYC_NOT_VERIFIED"
	CodeAMLFlagged         = "AML_FLAGGED"
	CodeAMLUnderReview     = "AML_UNDER_REVIEW"
)

type Verdict struct {
	Decision Decision
	Code     string
	Reason   string
}

func Allow() Verdict { return Verdict{Decision: DecisionAllow} }

func Deny(code, reason string) Verdict {
	return Verdict{Decision: DecisionDeny, Code: code, Reason: reason}
}

func ManualReview(code, reason string) Verdict {
	return Verdict{Decision: DecisionManualReview, Code: code, Reason: reason}
}

type ComplianceGate interface {
	Check(ctx context.Context, req domain_transfer.TransferRequest) (Verdict, error)
}

type RateResolver interface {
	Resolve(ctx context.Context, from, to domain_money.Currency) (domain_money.ExchangeRate, error)
}

type FeeCalculator interface {
	Compute(amount decimal.Decimal, currency domain_money.Currency, hasConversion bool) domain_money.FeeBreakdown
}
