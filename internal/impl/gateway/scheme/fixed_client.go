package impl_scheme

import (
	"context"
	"encoding/base64"
	"sync"

	domain_money "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/domain/money"
	domain_transfer "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/domain/transfer"
	port_platform "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/ports/gateway/platform"
	port_scheme "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/ports/gateway/scheme"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type storedTransfer struct {
	fingerprint string
	transfer    domain_transfer.SchemeTransfer
}

// FixedClient answers quotes and transfers locally with canned data. It is
// meant for sandbox runs and tests and is refused in production.
//
// Quotes carry no expiration and no hub condition, so the orchestrator's
// default window and a synthesized condition apply. Transfers are stored by
// id: replaying the same id and payload returns the stored outcome.
type FixedClient struct {
	dir   port_scheme.Directory
	ids   port_platform.IDGenerator
	clock port_platform.Clock
	state domain_transfer.TransferState

	mu        sync.Mutex
	transfers map[uuid.UUID]storedTransfer
}

func NewFixedClient(dir port_scheme.Directory, ids port_platform.IDGenerator, clock port_platform.Clock) *FixedClient {
	return &FixedClient{
		dir:       dir,
		ids:       ids,
		clock:     clock,
		state:     domain_transfer.TransferStateCommitted,
		transfers: make(map[uuid.UUID]storedTransfer),
	}
}

// WithOutcome makes every new transfer end in the given state.
func (c *FixedClient) WithOutcome(state domain_transfer.TransferState) *FixedClient {
	c.state = state
	return c
}

func (c *FixedClient) RequestQuote(ctx context.Context, req port_scheme.QuoteRequest) (domain_transfer.Quote, error) {
	if err := ctx.Err(); err != nil {
		return domain_transfer.Quote{}, err
	}
	if _, err := c.dir.Destination(req.TargetCurrency); err != nil {
		return domain_transfer.Quote{}, err
	}

	return domain_transfer.Quote{
		QuoteID:            c.ids.NewUUID(),
		TransactionID:      c.ids.NewUUID(),
		TransferAmount:     req.Amount,
		PayeeReceiveAmount: domain_money.New(domain_money.Round(req.TargetAmount), req.TargetCurrency),
		PayeeFee:           domain_money.New(decimal.Zero, req.TargetCurrency),
		Condition:          SynthesizeCondition(req.TransferID),
		ILPPacket:          base64.RawURLEncoding.EncodeToString([]byte("ilp:" + req.TransferID.String())),
		Defaulted:          true,
	}, nil
}

func (c *FixedClient) ExecuteTransfer(ctx context.Context, msg port_scheme.TransferMessage) (domain_transfer.SchemeTransfer, error) {
	if err := ctx.Err(); err != nil {
		return domain_transfer.SchemeTransfer{}, err
	}
	if expired(msg, c.clock.Now()) {
		return domain_transfer.SchemeTransfer{}, port_scheme.ErrQuoteExpired
	}
	if _, err := c.dir.Destination(msg.TargetCurrency); err != nil {
		return domain_transfer.SchemeTransfer{}, err
	}

	fp := HashTransferMessage(msg)

	c.mu.Lock()
	defer c.mu.Unlock()

	if prev, ok := c.transfers[msg.TransferID]; ok {
		if prev.fingerprint != fp {
			return domain_transfer.SchemeTransfer{}, port_scheme.Rejected(port_scheme.CodeDuplicateTransferID,
				"transfer id already used with a different payload")
		}
		return prev.transfer, nil
	}

	st := domain_transfer.SchemeTransfer{
		TransferID:  msg.TransferID,
		State:       c.state,
		CompletedAt: c.clock.Now(),
	}
	if st.State == domain_transfer.TransferStateCommitted {
		st.Fulfilment = synthesizeFulfilment(msg.TransferID)
	}

	c.transfers[msg.TransferID] = storedTransfer{fingerprint: fp, transfer: st}
	return st, nil
}

// Movements reports how many distinct transfers were settled.
func (c *FixedClient) Movements() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.transfers)
}
