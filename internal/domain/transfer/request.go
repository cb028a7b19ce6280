package domain_transfer

import (
	"strings"
	"unicode/utf8"

	domain_money "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/domain/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const maxDescriptionLen = 128

// TransferRequest is a validated "send money abroad" instruction.
type TransferRequest struct {
	transferID uuid.UUID

	senderID      string
	senderName    string
	senderPhone   string
	receiverID    string
	receiverName  string
	receiverPhone string

	amount         decimal.Decimal
	sourceCurrency domain_money.Currency
	targetCurrency domain_money.Currency
	description    string
}

type RequestParams struct {
	// TransferID is optional. A caller retrying the same logical transfer
	// passes the id of the earlier attempt.
	TransferID uuid.UUID

	SenderID      string
	SenderName    string
	SenderPhone   string
	ReceiverID    string
	ReceiverName  string
	ReceiverPhone string

	Amount         decimal.Decimal
	SourceCurrency string
	TargetCurrency string
	Description    string
}

func NewRequest(p RequestParams) (TransferRequest, error) {
	sender := strings.TrimSpace(p.SenderID)
	if sender == "" {
		return TransferRequest{}, ErrMissingSenderID
	}

	receiver := strings.TrimSpace(p.ReceiverID)
	if receiver == "" {
		return TransferRequest{}, ErrMissingReceiverID
	}

	if !p.Amount.IsPositive() || !p.Amount.Equal(domain_money.Round(p.Amount)) {
		return TransferRequest{}, ErrInvalidAmount
	}

	src, err := domain_money.ParseCurrency(p.SourceCurrency)
	if err != nil {
		return TransferRequest{}, ErrInvalidCurrency
	}

	dst, err := domain_money.ParseCurrency(p.TargetCurrency)
	if err != nil {
		return TransferRequest{}, ErrInvalidCurrency
	}

	desc := strings.TrimSpace(p.Description)
	if utf8.RuneCountInString(desc) > maxDescriptionLen {
		return TransferRequest{}, ErrDescriptionTooLong
	}

	return TransferRequest{
		transferID:     p.TransferID,
		senderID:       sender,
		senderName:     strings.TrimSpace(p.SenderName),
		senderPhone:    strings.TrimSpace(p.SenderPhone),
		receiverID:     receiver,
		receiverName:   strings.TrimSpace(p.ReceiverName),
		receiverPhone:  strings.TrimSpace(p.ReceiverPhone),
		amount:         p.Amount,
		sourceCurrency: src,
		targetCurrency: dst,
		description:    desc,
	}, nil
}

// Validate re-checks what NewRequest enforces. A zero value fails.
func (r TransferRequest) Validate() error {
	_, err := NewRequest(r.Params())
	return err
}

// WithTransferID returns a copy bound to the given transfer id.
func (r TransferRequest) WithTransferID(id uuid.UUID) TransferRequest {
	r.transferID = id
	return r
}

// Params returns the request as constructor input.
func (r TransferRequest) Params() RequestParams {
	return RequestParams{
		TransferID:     r.transferID,
		SenderID:       r.senderID,
		SenderName:     r.senderName,
		SenderPhone:    r.senderPhone,
		ReceiverID:     r.receiverID,
		ReceiverName:   r.receiverName,
		ReceiverPhone:  r.receiverPhone,
		Amount:         r.amount,
		SourceCurrency: string(r.sourceCurrency),
		TargetCurrency: string(r.targetCurrency),
		Description:    r.description,
	}
}

func (r TransferRequest) IsCrossCurrency() bool { return r.sourceCurrency != r.targetCurrency }

func (r TransferRequest) SourceMoney() domain_money.Money {
	return domain_money.New(r.amount, r.sourceCurrency)
}

func (r TransferRequest) TransferID() uuid.UUID { return r.transferID }

func (r TransferRequest) SenderID() string { return r.senderID }

func (r TransferRequest) SenderName() string { return r.senderName }

func (r TransferRequest) SenderPhone() string { return r.senderPhone }

func (r TransferRequest) ReceiverID() string { return r.receiverID }

func (r TransferRequest) ReceiverName() string { return r.receiverName }

func (r TransferRequest) ReceiverPhone() string { return r.receiverPhone }

func (r TransferRequest) Amount() decimal.Decimal { return r.amount }

func (r TransferRequest) SourceCurrency() domain_money.Currency { return r.sourceCurrency }

func (r TransferRequest) TargetCurrency() domain_money.Currency { return r.targetCurrency }

func (r TransferRequest) Description() string { return r.description }
