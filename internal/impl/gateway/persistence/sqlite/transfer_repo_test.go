package impl_sqlite_test

import (
	"context"
	"testing"
	"time"

	domain_money "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/domain/money"
	domain_transfer "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/domain/transfer"
	impl_sqlite "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/impl/gateway/persistence/sqlite"
	port_persistence "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/ports/gateway/persistence"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 1, 9, 12, 0, 0, 0, time.UTC)

func newRepo(t *testing.T) *impl_sqlite.TransferResultRepo {
	t.Helper()
	db, err := impl_sqlite.InitDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return impl_sqlite.NewTransferResultRepo(db)
}

func result(t *testing.T, sender string, status domain_transfer.Status, at time.Time) *domain_transfer.TransferResult {
	t.Helper()
	req, err := domain_transfer.NewRequest(domain_transfer.RequestParams{
		SenderID:       sender,
		ReceiverID:     "+254700000001",
		Amount:         decimal.NewFromInt(100),
		SourceCurrency: "USD",
		TargetCurrency: "USD",
	})
	require.NoError(t, err)

	res, err := domain_transfer.NewResult(domain_transfer.ResultParams{
		TransferID: uuid.New(),
		Status:     status,
		Stage:      domain_transfer.StageComplianceChecked,
		Request:    req,
		Fees:       domain_money.NewFeeBreakdown("USD", decimal.RequireFromString("1"), decimal.Zero, decimal.RequireFromString("0.5")),
		Now:        at,
	})
	require.NoError(t, err)
	return res
}

func TestTransferResultRepo_SaveAndGet(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	res := result(t, "user-1", domain_transfer.StatusManualReviewPending, now)

	require.NoError(t, repo.Save(ctx, res))

	got, err := repo.GetByID(ctx, res.TransferID())
	require.NoError(t, err)
	assert.Equal(t, res.TransferID(), got.TransferID())
	assert.Equal(t, domain_transfer.StatusManualReviewPending, got.Status())
	assert.Equal(t, "1.50", got.Fees().Total.StringFixed(2))
	assert.Equal(t, "user-1", got.Request().SenderID())
}

func TestTransferResultRepo_NotFound(t *testing.T) {
	_, err := newRepo(t).GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, port_persistence.ErrNotFound)
}

func TestTransferResultRepo_LatestObservationWins(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	pending := result(t, "user-1", domain_transfer.StatusManualReviewPending, now)
	require.NoError(t, repo.Save(ctx, pending))

	later, err := pending.Observe(domain_transfer.StatusDenied, now.Add(time.Hour), "review rejected")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, later))

	got, err := repo.GetByID(ctx, pending.TransferID())
	require.NoError(t, err)
	assert.Equal(t, domain_transfer.StatusDenied, got.Status())
	assert.Len(t, got.Observations(), 2)
}

func TestTransferResultRepo_ListBySender(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	a := result(t, "user-1", domain_transfer.StatusCommitted, now)
	b := result(t, "user-1", domain_transfer.StatusDenied, now.Add(time.Minute))
	other := result(t, "user-2", domain_transfer.StatusCommitted, now)
	for _, r := range []*domain_transfer.TransferResult{a, b, other} {
		require.NoError(t, repo.Save(ctx, r))
	}
	bLater, _ := b.Observe(domain_transfer.StatusDenied, now.Add(2*time.Minute), "re-screened")
	require.NoError(t, repo.Save(ctx, bLater))

	list, err := repo.ListBySender(ctx, "user-1", 10)
	require.NoError(t, err)
	require.Len(t, list, 2, "one entry per transfer")
	assert.Equal(t, b.TransferID(), list[0].TransferID())
	assert.Len(t, list[0].Observations(), 2)
	assert.Equal(t, a.TransferID(), list[1].TransferID())

	list, err = repo.ListBySender(ctx, "user-1", 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
