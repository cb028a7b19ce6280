package domain_transfer

import (
	"time"

	domain_money "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/domain/money"
	"github.com/google/uuid"
)

type DomainEvent interface {
	EventName() string
	OccurredAt() time.Time
	AggregateID() uuid.UUID
}

type TransferCommitted struct {
	At         time.Time          `json:"at"`
	TransferID uuid.UUID          `json:"transfer_id"`
	SenderID   string             `json:"sender_id"`
	Amount     domain_money.Money `json:"amount"`
	Received   domain_money.Money `json:"received"`
}

func (e TransferCommitted) EventName() string { return "transfer.committed" }

func (e TransferCommitted) OccurredAt() time.Time { return e.At }

func (e TransferCommitted) AggregateID() uuid.UUID { return e.TransferID }

type TransferAborted struct {
	At         time.Time `json:"at"`
	TransferID uuid.UUID `json:"transfer_id"`
	SenderID   string    `json:"sender_id"`
}

func (e TransferAborted) EventName() string { return "transfer.aborted" }

func (e TransferAborted) OccurredAt() time.Time { return e.At }

func (e TransferAborted) AggregateID() uuid.UUID { return e.TransferID }

type TransferDenied struct {
	At         time.Time `json:"at"`
	TransferID uuid.UUID `json:"transfer_id"`
	SenderID   string    `json:"sender_id"`
	Code       string    `json:"code"`
	Reason     string    `json:"reason"`
}

func (e TransferDenied) EventName() string { return "transfer.denied" }

func (e TransferDenied) OccurredAt() time.Time { return e.At }

func (e TransferDenied) AggregateID() uuid.UUID { return e.TransferID }

type ManualReviewRequested struct {
	At         time.Time `json:"at"`
	TransferID uuid.UUID `json:"transfer_id"`
	SenderID   string    `json:"sender_id"`
	Code       string    `json:"code"`
	Reason     string    `json:"reason"`
}

func (e ManualReviewRequested) EventName() string { return "transfer.manual_review_requested" }

func (e ManualReviewRequested) OccurredAt() time.Time { return e.At }

func (e ManualReviewRequested) AggregateID() uuid.UUID { return e.TransferID }

type TransferFailed struct {
	At         time.Time `json:"at"`
	TransferID uuid.UUID `json:"transfer_id"`
	SenderID   string    `json:"sender_id"`
	Status     Status    `json:"status"`
	Code       string    `json:"code"`
	Stage      Stage     `json:"stage"`
}

func (e TransferFailed) EventName() string { return "transfer.failed" }

func (e TransferFailed) OccurredAt() time.Time { return e.At }

func (e TransferFailed) AggregateID() uuid.UUID { return e.TransferID }

// QuoteAbandoned is raised when a run is cancelled between quoting and
// transfer execution, so operators can reconcile the orphaned quote.
type QuoteAbandoned struct {
	At         time.Time `json:"at"`
	TransferID uuid.UUID `json:"transfer_id"`
	QuoteID    uuid.UUID `json:"quote_id"`
	Expiration time.Time `json:"expiration"`
	Reason     string    `json:"reason"`
}

func (e QuoteAbandoned) EventName() string { return "quote.abandoned" }

func (e QuoteAbandoned) OccurredAt() time.Time { return e.At }

func (e QuoteAbandoned) AggregateID() uuid.UUID { return e.TransferID }
