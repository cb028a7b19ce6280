package port_scheme

import (
	"context"
	"time"

	domain_money "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/domain/money"
	domain_transfer "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/domain/transfer"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuoteRequest asks the scheme for a quote on behalf of one transfer attempt.
// Rate and TargetAmount travel as protocol extensions so the payee side can
// check the conversion independently.
type QuoteRequest struct {
	TransferID uuid.UUID

	PayerID         string
	PayerName       string
	PayerPhone      string
	PayeeIdentifier string
	PayeeName       string
	PayeePhone      string

	Amount         domain_money.Money
	TargetCurrency domain_money.Currency
	TargetAmount   decimal.Decimal
	Rate           domain_money.ExchangeRate
	Note           string
}

// TransferMessage is the settlement instruction built from an accepted quote.
// TransferID is the idempotency key: retries of one logical attempt reuse it.
type TransferMessage struct {
	TransferID     uuid.UUID
	QuoteID        uuid.UUID
	Amount         domain_money.Money
	TargetCurrency domain_money.Currency
	Condition      string
	ILPPacket      string
	Expiration     time.Time
}

type Client interface {
	RequestQuote(ctx context.Context, req QuoteRequest) (domain_transfer.Quote, error)
	ExecuteTransfer(ctx context.Context, msg TransferMessage) (domain_transfer.SchemeTransfer, error)
}
