package impl_transfer

import (
	"context"
	"fmt"
	"strings"

	domain_transfer "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/domain/transfer"
	port_persistence "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/ports/gateway/persistence"
	"github.com/google/uuid"
)

type GetTransferUsecaseImpl struct {
	repo port_persistence.TransferResultRepository
}

func NewGetTransferUsecaseImpl(repo port_persistence.TransferResultRepository) *GetTransferUsecaseImpl {
	return &GetTransferUsecaseImpl{repo: repo}
}

// Get returns the latest recorded result for a transfer. Missing transfers
// surface as port_persistence.ErrNotFound.
func (u *GetTransferUsecaseImpl) Get(ctx context.Context, transferID uuid.UUID) (*domain_transfer.TransferResult, error) {
	if transferID == uuid.Nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, domain_transfer.ErrInvalidTransferID)
	}
	return u.repo.GetByID(ctx, transferID)
}

func (u *GetTransferUsecaseImpl) ListBySender(ctx context.Context, senderID string, limit int) ([]*domain_transfer.TransferResult, error) {
	senderID = strings.TrimSpace(senderID)
	if senderID == "" {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, domain_transfer.ErrMissingSenderID)
	}
	return u.repo.ListBySender(ctx, senderID, limit)
}
