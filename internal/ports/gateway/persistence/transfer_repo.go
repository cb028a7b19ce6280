package port_persistence

import (
	"context"
	"errors"

	domain_transfer "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/domain/transfer"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("persistence: not found")

// TransferResultRepository stores results append-only: every Save records a
// new observation and never rewrites an earlier one.
type TransferResultRepository interface {
	Save(ctx context.Context, result *domain_transfer.TransferResult) error
	GetByID(ctx context.Context, transferID uuid.UUID) (*domain_transfer.TransferResult, error)
	ListBySender(ctx context.Context, senderID string, limit int) ([]*domain_transfer.TransferResult, error)
}
