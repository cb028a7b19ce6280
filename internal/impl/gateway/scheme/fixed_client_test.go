package impl_scheme_test

import (
	"context"
	"testing"
	"time"

	domain_transfer "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/domain/transfer"
	impl_scheme "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/impl/gateway/scheme"
	gwmocks "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/ports/gateway/mocks"
	port_scheme "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/ports/gateway/scheme"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newFixedClient(t *testing.T) *impl_scheme.FixedClient {
	t.Helper()
	ctrl := gomock.NewController(t)

	ids := gwmocks.NewMockIDGenerator(ctrl)
	ids.EXPECT().NewUUID().DoAndReturn(uuid.New).AnyTimes()

	clock := gwmocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(now).AnyTimes()

	return impl_scheme.NewFixedClient(directory(), ids, clock)
}

func TestFixedClient_RequestQuote(t *testing.T) {
	c := newFixedClient(t)

	q, err := c.RequestQuote(context.Background(), quoteRequest())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, q.QuoteID)
	assert.NotEqual(t, q.QuoteID, q.TransactionID)
	assert.Equal(t, "500.00 USD", q.TransferAmount.String())
	assert.Equal(t, "425.00 EUR", q.PayeeReceiveAmount.String())
	assert.True(t, q.PayeeFee.Amount.IsZero())
	assert.Equal(t, impl_scheme.SynthesizeCondition(transferID), q.Condition)
	assert.NotEmpty(t, q.ILPPacket)
	assert.True(t, q.Defaulted)

	again, err := c.RequestQuote(context.Background(), quoteRequest())
	require.NoError(t, err)
	assert.NotEqual(t, q.QuoteID, again.QuoteID, "every quote gets fresh ids")
	assert.Equal(t, q.Condition, again.Condition, "condition is deterministic per transfer id")
}

func TestFixedClient_ExecuteTransferIsIdempotent(t *testing.T) {
	c := newFixedClient(t)
	msg := transferMessage()

	first, err := c.ExecuteTransfer(context.Background(), msg)
	require.NoError(t, err)

	second, err := c.ExecuteTransfer(context.Background(), msg)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, domain_transfer.TransferStateCommitted, first.State)
	assert.NotEmpty(t, first.Fulfilment)
	assert.Equal(t, 1, c.Movements())
}

func TestFixedClient_ConflictingReplayIsRejected(t *testing.T) {
	c := newFixedClient(t)
	msg := transferMessage()

	_, err := c.ExecuteTransfer(context.Background(), msg)
	require.NoError(t, err)

	msg.Amount.Amount = msg.Amount.Amount.Add(msg.Amount.Amount)
	_, err = c.ExecuteTransfer(context.Background(), msg)

	var rej *port_scheme.RejectedError
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, port_scheme.CodeDuplicateTransferID, rej.Code)
	assert.Equal(t, 1, c.Movements())
}

func TestFixedClient_ExpiredAndAborted(t *testing.T) {
	t.Run("expired quote", func(t *testing.T) {
		msg := transferMessage()
		msg.Expiration = now.Add(-time.Second)

		_, err := newFixedClient(t).ExecuteTransfer(context.Background(), msg)
		assert.ErrorIs(t, err, port_scheme.ErrQuoteExpired)
	})

	t.Run("configured abort", func(t *testing.T) {
		c := newFixedClient(t).WithOutcome(domain_transfer.TransferStateAborted)

		st, err := c.ExecuteTransfer(context.Background(), transferMessage())
		require.NoError(t, err)
		assert.Equal(t, domain_transfer.TransferStateAborted, st.State)
		assert.Empty(t, st.Fulfilment)
	})
}

func TestHashTransferMessage(t *testing.T) {
	a := transferMessage()
	b := transferMessage()
	assert.Equal(t, impl_scheme.HashTransferMessage(a), impl_scheme.HashTransferMessage(b))

	b.Condition = "other"
	assert.NotEqual(t, impl_scheme.HashTransferMessage(a), impl_scheme.HashTransferMessage(b))
}
