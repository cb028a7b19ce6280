package domain_transfer

import (
	"time"

	domain_money "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/domain/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ResultSnapshot is the serialized form of a TransferResult, used for
// storage and API responses.
type ResultSnapshot struct {
	TransferID uuid.UUID `json:"transfer_id"`
	Status     Status    `json:"status"`
	Stage      Stage     `json:"stage"`

	SenderID       string                `json:"sender_id"`
	SenderName     string                `json:"sender_name,omitempty"`
	SenderPhone    string                `json:"sender_phone,omitempty"`
	ReceiverID     string                `json:"receiver_id"`
	ReceiverName   string                `json:"receiver_name,omitempty"`
	ReceiverPhone  string                `json:"receiver_phone,omitempty"`
	Amount         decimal.Decimal       `json:"amount"`
	SourceCurrency domain_money.Currency `json:"source_currency"`
	TargetCurrency domain_money.Currency `json:"target_currency"`
	Description    string                `json:"description,omitempty"`

	ExchangeRate    *domain_money.ExchangeRate `json:"exchange_rate,omitempty"`
	Quote           *Quote                     `json:"quote,omitempty"`
	Transfer        *SchemeTransfer            `json:"transfer,omitempty"`
	Fees            domain_money.FeeBreakdown  `json:"fees"`
	ConvertedAmount domain_money.Money         `json:"converted_amount"`

	EstimatedDelivery string `json:"estimated_delivery,omitempty"`
	FailureCode       string `json:"failure_code,omitempty"`
	FailureReason     string `json:"failure_reason,omitempty"`

	CreatedAt    time.Time     `json:"created_at"`
	Observations []Observation `json:"observations"`
}

func (r *TransferResult) Snapshot() ResultSnapshot {
	req := r.request
	return ResultSnapshot{
		TransferID:        r.transferID,
		Status:            r.status,
		Stage:             r.stage,
		SenderID:          req.SenderID(),
		SenderName:        req.SenderName(),
		SenderPhone:       req.SenderPhone(),
		ReceiverID:        req.ReceiverID(),
		ReceiverName:      req.ReceiverName(),
		ReceiverPhone:     req.ReceiverPhone(),
		Amount:            req.Amount(),
		SourceCurrency:    req.SourceCurrency(),
		TargetCurrency:    req.TargetCurrency(),
		Description:       req.Description(),
		ExchangeRate:      copyPtr(r.rate),
		Quote:             copyPtr(r.quote),
		Transfer:          copyPtr(r.transfer),
		Fees:              r.fees,
		ConvertedAmount:   r.convertedAmount,
		EstimatedDelivery: r.estimatedDelivery,
		FailureCode:       r.failureCode,
		FailureReason:     r.failureReason,
		CreatedAt:         r.createdAt,
		Observations:      r.Observations(),
	}
}

// FromSnapshot rebuilds a result read back from storage.
func FromSnapshot(s ResultSnapshot) (*TransferResult, error) {
	if s.TransferID == uuid.Nil {
		return nil, ErrInvalidTransferID
	}

	if !s.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	if len(s.Observations) == 0 {
		return nil, ErrMissingObservation
	}

	req, err := NewRequest(RequestParams{
		TransferID:     s.TransferID,
		SenderID:       s.SenderID,
		SenderName:     s.SenderName,
		SenderPhone:    s.SenderPhone,
		ReceiverID:     s.ReceiverID,
		ReceiverName:   s.ReceiverName,
		ReceiverPhone:  s.ReceiverPhone,
		Amount:         s.Amount,
		SourceCurrency: string(s.SourceCurrency),
		TargetCurrency: string(s.TargetCurrency),
		Description:    s.Description,
	})
	if err != nil {
		return nil, err
	}

	obs := make([]Observation, len(s.Observations))
	copy(obs, s.Observations)

	return &TransferResult{
		transferID:        s.TransferID,
		status:            s.Status,
		stage:             s.Stage,
		request:           req,
		rate:              copyPtr(s.ExchangeRate),
		quote:             copyPtr(s.Quote),
		transfer:          copyPtr(s.Transfer),
		fees:              s.Fees,
		convertedAmount:   s.ConvertedAmount,
		estimatedDelivery: s.EstimatedDelivery,
		failureCode:       s.FailureCode,
		failureReason:     s.FailureReason,
		createdAt:         s.CreatedAt,
		observations:      obs,
	}, nil
}
