package port_compliance

import (
	"context"

	domain_transfer "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/domain/transfer"
)

type KYCStatus string

const (
	KYCVerified   KYCStatus = "verified"
	KYCPending    KYCStatus = "pending"
	KYCRejected   KYCStatus = "rejected"
	KYCUnverified KYCStatus = "unverified"
)

type AMLStatus string

const (
	AMLClear       AMLStatus = "clear"
	AMLFlagged     AMLStatus = "flagged"
	AMLUnderReview AMLStatus = "under_review"
)

// Screener is the external KYC/AML decisioning collaborator. Only its
// verdicts are consumed here.
type Screener interface {
	KYCStatus(ctx context.Context, senderID string) (KYCStatus, error)
	ScreenAML(ctx context.Context, req domain_transfer.TransferRequest) (AMLStatus, error)
}
