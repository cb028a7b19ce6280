package domain_transfer

import (
	"strings"
	"time"

	domain_money "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/domain/money"
	"github.com/google/uuid"
)

// Observation records a status seen for a transfer at a point in time.
type Observation struct {
	Status Status    `json:"status"`
	At     time.Time `json:"at"`
	Note   string    `json:"note,omitempty"`
}

// TransferResult is the outcome of one orchestration run. It is never
// mutated once built; later status changes produce a new value via Observe.
type TransferResult struct {
	transferID uuid.UUID
	status     Status
	stage      Stage

	request         TransferRequest
	rate            *domain_money.ExchangeRate
	quote           *Quote
	transfer        *SchemeTransfer
	fees            domain_money.FeeBreakdown
	convertedAmount domain_money.Money

	estimatedDelivery string
	failureCode       string
	failureReason     string

	createdAt    time.Time
	observations []Observation
}

type ResultParams struct {
	TransferID        uuid.UUID
	Status            Status
	Stage             Stage
	Request           TransferRequest
	Rate              *domain_money.ExchangeRate
	Quote             *Quote
	Transfer          *SchemeTransfer
	Fees              domain_money.FeeBreakdown
	ConvertedAmount   domain_money.Money
	EstimatedDelivery string
	FailureCode       string
	FailureReason     string
	Now               time.Time

	// History holds observations from earlier runs under the same transfer
	// id. They precede the observation this run adds.
	History []Observation
}

func NewResult(p ResultParams) (*TransferResult, error) {
	if p.TransferID == uuid.Nil {
		return nil, ErrInvalidTransferID
	}

	if !p.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	if p.Transfer != nil && !p.Transfer.State.Valid() {
		return nil, ErrInvalidState
	}

	if p.Now.IsZero() {
		p.Now = time.Now().UTC()
	}

	observations := make([]Observation, 0, len(p.History)+1)
	observations = append(observations, p.History...)
	observations = append(observations, Observation{Status: p.Status, At: p.Now, Note: "orchestration"})

	createdAt := p.Now
	if len(p.History) > 0 {
		createdAt = p.History[0].At
	}

	r := &TransferResult{
		transferID:        p.TransferID,
		status:            p.Status,
		stage:             p.Stage,
		request:           p.Request.WithTransferID(p.TransferID),
		rate:              copyPtr(p.Rate),
		quote:             copyPtr(p.Quote),
		transfer:          copyPtr(p.Transfer),
		fees:              p.Fees,
		convertedAmount:   p.ConvertedAmount,
		estimatedDelivery: p.EstimatedDelivery,
		failureCode:       p.FailureCode,
		failureReason:     strings.TrimSpace(p.FailureReason),
		createdAt:         createdAt,
		observations:      observations,
	}

	return r, nil
}

// Observe returns a copy of the result carrying a newer status observation.
// The receiver is left untouched.
func (r *TransferResult) Observe(status Status, at time.Time, note string) (*TransferResult, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	if at.IsZero() {
		at = time.Now().UTC()
	}

	next := *r
	next.status = status
	next.observations = make([]Observation, len(r.observations), len(r.observations)+1)
	copy(next.observations, r.observations)
	next.observations = append(next.observations, Observation{Status: status, At: at, Note: strings.TrimSpace(note)})

	return &next, nil
}

// OutcomeEvent returns the domain event describing this result's status.
func (r *TransferResult) OutcomeEvent() DomainEvent {
	at := r.LastObservedAt()
	switch r.status {
	case StatusCommitted:
		return TransferCommitted{At: at, TransferID: r.transferID, SenderID: r.request.SenderID(), Amount: r.request.SourceMoney(), Received: r.convertedAmount}
	case StatusAborted:
		return TransferAborted{At: at, TransferID: r.transferID, SenderID: r.request.SenderID()}
	case StatusDenied:
		return TransferDenied{At: at, TransferID: r.transferID, SenderID: r.request.SenderID(), Code: r.failureCode, Reason: r.failureReason}
	case StatusManualReviewPending:
		return ManualReviewRequested{At: at, TransferID: r.transferID, SenderID: r.request.SenderID(), Code: r.failureCode, Reason: r.failureReason}
	default:
		return TransferFailed{At: at, TransferID: r.transferID, SenderID: r.request.SenderID(), Status: r.status, Code: r.failureCode, Stage: r.stage}
	}
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func (r *TransferResult) TransferID() uuid.UUID { return r.transferID }

func (r *TransferResult) Status() Status { return r.status }

func (r *TransferResult) Stage() Stage { return r.stage }

func (r *TransferResult) Request() TransferRequest { return r.request }

func (r *TransferResult) Rate() (domain_money.ExchangeRate, bool) {
	if r.rate == nil {
		return domain_money.ExchangeRate{}, false
	}
	return *r.rate, true
}

func (r *TransferResult) Quote() (Quote, bool) {
	if r.quote == nil {
		return Quote{}, false
	}
	return *r.quote, true
}

func (r *TransferResult) Transfer() (SchemeTransfer, bool) {
	if r.transfer == nil {
		return SchemeTransfer{}, false
	}
	return *r.transfer, true
}

func (r *TransferResult) Fees() domain_money.FeeBreakdown { return r.fees }

func (r *TransferResult) ConvertedAmount() domain_money.Money { return r.convertedAmount }

func (r *TransferResult) EstimatedDelivery() string { return r.estimatedDelivery }

func (r *TransferResult) FailureCode() string { return r.failureCode }

func (r *TransferResult) FailureReason() string { return r.failureReason }

func (r *TransferResult) CreatedAt() time.Time { return r.createdAt }

func (r *TransferResult) Observations() []Observation {
	out := make([]Observation, len(r.observations))
	copy(out, r.observations)
	return out
}

func (r *TransferResult) LastObservedAt() time.Time {
	return r.observations[len(r.observations)-1].At
}
