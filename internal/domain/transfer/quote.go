package domain_transfer

import (
	"time"

	domain_money "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/domain/money"
	"github.com/google/uuid"
)

// Quote is the scheme's answer to a quote request. It is valid until
// Expiration and is consumed by at most one transfer.
type Quote struct {
	QuoteID            uuid.UUID          `json:"quote_id"`
	TransactionID      uuid.UUID          `json:"transaction_id"`
	TransferAmount     domain_money.Money `json:"transfer_amount"`
	PayeeReceiveAmount domain_money.Money `json:"payee_receive_amount"`
	PayeeFee           domain_money.Money `json:"payee_fee"`
	Expiration         time.Time          `json:"expiration"`
	Condition          string             `json:"condition"`
	ILPPacket          string             `json:"ilp_packet"`

	// Defaulted is set when the scheme supplied no expiration and the
	// orchestrator's fixed window applies.
	Defaulted bool `json:"defaulted,omitempty"`
}

func (q Quote) Expired(now time.Time) bool {
	return !q.Expiration.IsZero() && !now.Before(q.Expiration)
}

// SchemeTransfer is the scheme's terminal record for one transfer id.
type SchemeTransfer struct {
	TransferID  uuid.UUID     `json:"transfer_id"`
	State       TransferState `json:"state"`
	Fulfilment  string        `json:"fulfilment,omitempty"`
	CompletedAt time.Time     `json:"completed_at"`
}
