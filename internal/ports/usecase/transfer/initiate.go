package port_transfer

import (
	"context"

	domain_transfer "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/domain/transfer"
	"github.com/google/uuid"
)

type InitiateTransferUseCase interface {
	Execute(ctx context.Context, req domain_transfer.TransferRequest) (*domain_transfer.TransferResult, error)
}

type GetTransferUseCase interface {
	Get(ctx context.Context, transferID uuid.UUID) (*domain_transfer.TransferResult, error)
	ListBySender(ctx context.Context, senderID string, limit int) ([]*domain_transfer.TransferResult, error)
}
