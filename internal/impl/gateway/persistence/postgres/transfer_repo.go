package impl_postgres

import (
	"context"
	"errors"
	"fmt"

	domain_transfer "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/domain/transfer"
	impl_persistence "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/impl/gateway/persistence"
	port_persistence "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/ports/gateway/persistence"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS transfer_results (
	seq         BIGSERIAL PRIMARY KEY,
	transfer_id UUID NOT NULL,
	sender_id   TEXT NOT NULL,
	status      TEXT NOT NULL,
	observed_at TIMESTAMPTZ NOT NULL,
	snapshot    JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transfer_results_transfer ON transfer_results (transfer_id, seq DESC);
CREATE INDEX IF NOT EXISTS idx_transfer_results_sender ON transfer_results (sender_id, seq DESC);
`

type Store struct {
	Db *pgxpool.Pool
}

func NewStore(ctx context.Context, connString string) (*Store, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to apply schema: %w", err)
	}

	return &Store{Db: pool}, nil
}

func (s *Store) Close() {
	s.Db.Close()
}

// TransferResultRepo appends one row per observation; reads return the
// newest row for a transfer.
type TransferResultRepo struct {
	db *pgxpool.Pool
}

func NewTransferResultRepo(s *Store) *TransferResultRepo {
	return &TransferResultRepo{db: s.Db}
}

func (r *TransferResultRepo) Save(ctx context.Context, result *domain_transfer.TransferResult) error {
	raw, err := impl_persistence.EncodeResult(result)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO transfer_results (transfer_id, sender_id, status, observed_at, snapshot)
		VALUES ($1, $2, $3, $4, $5)`,
		result.TransferID(),
		result.Request().SenderID(),
		string(result.Status()),
		result.LastObservedAt(),
		string(raw),
	)
	if err != nil {
		return fmt.Errorf("insert transfer result: %w", err)
	}
	return nil
}

func (r *TransferResultRepo) GetByID(ctx context.Context, transferID uuid.UUID) (*domain_transfer.TransferResult, error) {
	var raw []byte
	err := r.db.QueryRow(ctx,
		`SELECT snapshot FROM transfer_results WHERE transfer_id = $1 ORDER BY seq DESC LIMIT 1`,
		transferID,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, port_persistence.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get transfer result: %w", err)
	}
	return impl_persistence.DecodeResult(raw)
}

func (r *TransferResultRepo) ListBySender(ctx context.Context, senderID string, limit int) ([]*domain_transfer.TransferResult, error) {
	rows, err := r.db.Query(ctx,
		`SELECT snapshot FROM (
			SELECT DISTINCT ON (transfer_id) seq, snapshot
			FROM transfer_results
			WHERE sender_id = $1
			ORDER BY transfer_id, seq DESC
		) latest
		ORDER BY seq DESC
		LIMIT $2`,
		senderID, impl_persistence.NormalizeLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("list transfer results: %w", err)
	}
	defer rows.Close()

	var out []*domain_transfer.TransferResult
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan transfer result: %w", err)
		}
		res, err := impl_persistence.DecodeResult(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}
