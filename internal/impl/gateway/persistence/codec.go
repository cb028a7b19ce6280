package impl_persistence

import (
	"encoding/json"
	"fmt"

	domain_transfer "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/domain/transfer"
)

// DefaultListLimit caps ListBySender when the caller passes no limit.
const DefaultListLimit = 50

func EncodeResult(r *domain_transfer.TransferResult) ([]byte, error) {
	raw, err := json.Marshal(r.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("encode result %s: %w", r.TransferID(), err)
	}
	return raw, nil
}

func DecodeResult(raw []byte) (*domain_transfer.TransferResult, error) {
	var snap domain_transfer.ResultSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}
	return domain_transfer.FromSnapshot(snap)
}

func NormalizeLimit(limit int) int {
	if limit <= 0 || limit > 500 {
		return DefaultListLimit
	}
	return limit
}
