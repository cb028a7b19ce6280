package impl_compliance

import (
	"context"
	"errors"
	"fmt"

	domain_transfer "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/domain/transfer"
	port_compliance "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/ports/gateway/compliance"
	port_service "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/ports/service"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var ErrScreeningUnavailable = errors.New("compliance: screening service unavailable")

// Limits bound a single transfer amount, inclusive on both ends.
type Limits struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

func DefaultLimits() Limits {
	return Limits{Min: decimal.NewFromInt(1), Max: decimal.NewFromInt(10000)}
}

type Gate struct {
	limits   Limits
	screener port_compliance.Screener
	bypass   bool
	log      logrus.FieldLogger
}

// NewGate builds the gate. With bypassScreening set, KYC and AML checks are
// skipped and only the amount limits apply; it exists for sandbox runs.
func NewGate(limits Limits, screener port_compliance.Screener, bypassScreening bool, log logrus.FieldLogger) *Gate {
	g := &Gate{
		limits:   limits,
		screener: screener,
		bypass:   bypassScreening,
		log:      log.WithField("component", "compliance_gate"),
	}
	if bypassScreening {
		g.log.Warn("KYC/AML screening is BYPASSED")
	}
	return g
}

// Check runs amount limits, KYC and AML in that order and stops at the first
// failing check. A screener error is returned as an error, not a denial.
func (g *Gate) Check(ctx context.Context, req domain_transfer.TransferRequest) (port_service.Verdict, error) {
	amount := req.Amount()

	if amount.LessThan(g.limits.Min) {
		return port_service.Deny(port_service.CodeAmountBelowMinimum,
			fmt.Sprintf("amount %s is below the minimum of %s", amount.StringFixed(2), g.limits.Min.StringFixed(2))), nil
	}
	if amount.GreaterThan(g.limits.Max) {
		return port_service.Deny(port_service.CodeAmountAboveMaximum,
			fmt.Sprintf("amount %s exceeds the maximum of %s", amount.StringFixed(2), g.limits.Max.StringFixed(2))), nil
	}

	if g.bypass {
		return port_service.Allow(), nil
	}

	kyc, err := g.screener.KYCStatus(ctx, req.SenderID())
	if err != nil {
		return port_service.Verdict{}, fmt.Errorf("%w: kyc: %w", ErrScreeningUnavailable, err)
	}
	if kyc != port_compliance.KYCVerified {
		return port_service.Deny(port_service.CodeKYCNotVerified, "sender identity is not verified"), nil
	}

	aml, err := g.screener.ScreenAML(ctx, req)
	if err != nil {
		return port_service.Verdict{}, fmt.Errorf("%w: aml: %w", ErrScreeningUnavailable, err)
	}
	switch aml {
	case port_compliance.AMLClear:
		return port_service.Allow(), nil
	case port_compliance.AMLUnderReview:
		return port_service.ManualReview(port_service.CodeAMLUnderReview, "transfer is held for compliance review"), nil
	case port_compliance.AMLFlagged:
		return port_service.Deny(port_service.CodeAMLFlagged, "transfer was flagged by sanctions screening"), nil
	default:
		return port_service.Verdict{}, fmt.Errorf("%w: aml: unknown status %q", ErrScreeningUnavailable, aml)
	}
}
