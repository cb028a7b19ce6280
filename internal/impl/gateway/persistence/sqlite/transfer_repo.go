package impl_sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	domain_transfer "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/domain/transfer"
	impl_persistence "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/impl/gateway/persistence"
	port_persistence "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/ports/gateway/persistence"
	"github.com/google/uuid"
)

type TransferResultRepo struct {
	db *sql.DB
}

func NewTransferResultRepo(db *sql.DB) *TransferResultRepo {
	return &TransferResultRepo{db: db}
}

func (r *TransferResultRepo) Save(ctx context.Context, result *domain_transfer.TransferResult) error {
	raw, err := impl_persistence.EncodeResult(result)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO transfer_results (transfer_id, sender_id, status, observed_at, snapshot)
		VALUES (?,?,?,?,?)`,
		result.TransferID().String(),
		result.Request().SenderID(),
		string(result.Status()),
		result.LastObservedAt().UTC().Format(time.RFC3339Nano),
		string(raw),
	)
	if err != nil {
		return fmt.Errorf("insert transfer result: %w", err)
	}
	return nil
}

func (r *TransferResultRepo) GetByID(ctx context.Context, transferID uuid.UUID) (*domain_transfer.TransferResult, error) {
	var raw string
	err := r.db.QueryRowContext(ctx,
		`SELECT snapshot FROM transfer_results WHERE transfer_id = ? ORDER BY seq DESC LIMIT 1`,
		transferID.String(),
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, port_persistence.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get transfer result: %w", err)
	}
	return impl_persistence.DecodeResult([]byte(raw))
}

func (r *TransferResultRepo) ListBySender(ctx context.Context, senderID string, limit int) ([]*domain_transfer.TransferResult, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT snapshot FROM transfer_results t
		WHERE sender_id = ?
		  AND seq = (SELECT MAX(seq) FROM transfer_results WHERE transfer_id = t.transfer_id)
		ORDER BY seq DESC
		LIMIT ?`,
		senderID, impl_persistence.NormalizeLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("list transfer results: %w", err)
	}
	defer rows.Close()

	var out []*domain_transfer.TransferResult
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan transfer result: %w", err)
		}
		res, err := impl_persistence.DecodeResult([]byte(raw))
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}
