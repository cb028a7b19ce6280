package impl_transfer

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain_money "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/domain/money"
	domain_transfer "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/domain/transfer"
	"github.com/PedroCamargo-dev/cross-border-transfers-service/internal/ports/gateway/messaging"
	port_persistence "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/ports/gateway/persistence"
	port_platform "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/ports/gateway/platform"
	port_scheme "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/ports/gateway/scheme"
	port_service "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/ports/service"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	deliveryInstant = "Instant"
	deliveryMinutes = "Within minutes"
)

type Config struct {
	// QuoteWindow is applied to quotes the scheme returned without an
	// expiration.
	QuoteWindow time.Duration

	// PersistTimeout bounds the final save, which runs detached from the
	// caller's context so cancelled runs are still recorded.
	PersistTimeout time.Duration

	EventsTopic string
	Producer    string
}

func DefaultConfig() Config {
	return Config{
		QuoteWindow:    5 * time.Minute,
		PersistTimeout: 5 * time.Second,
		EventsTopic:    "transfers.events",
		Producer:       "cross-border-transfers-service",
	}
}

type InitiateTransferUsecaseImpl struct {
	gate      port_service.ComplianceGate
	rates     port_service.RateResolver
	fees      port_service.FeeCalculator
	scheme    port_scheme.Client
	repo      port_persistence.TransferResultRepository
	publisher messaging.Publisher
	clock     port_platform.Clock
	ids       port_platform.IDGenerator
	log       logrus.FieldLogger
	cfg       Config
}

func NewInitiateTransferUsecaseImpl(
	gate port_service.ComplianceGate,
	rates port_service.RateResolver,
	fees port_service.FeeCalculator,
	scheme port_scheme.Client,
	repo port_persistence.TransferResultRepository,
	publisher messaging.Publisher,
	clock port_platform.Clock,
	ids port_platform.IDGenerator,
	log logrus.FieldLogger,
	cfg Config,
) *InitiateTransferUsecaseImpl {
	if cfg.QuoteWindow <= 0 {
		cfg.QuoteWindow = DefaultConfig().QuoteWindow
	}
	if cfg.PersistTimeout <= 0 {
		cfg.PersistTimeout = DefaultConfig().PersistTimeout
	}
	return &InitiateTransferUsecaseImpl{
		gate:      gate,
		rates:     rates,
		fees:      fees,
		scheme:    scheme,
		repo:      repo,
		publisher: publisher,
		clock:     clock,
		ids:       ids,
		log:       log.WithField("component", "orchestrator"),
		cfg:       cfg,
	}
}

// attempt holds what one run has accumulated so far.
type attempt struct {
	ctx   context.Context
	log   logrus.FieldLogger
	id    uuid.UUID
	req   domain_transfer.TransferRequest
	stage domain_transfer.Stage

	// resumed is set when the caller supplied the transfer id, so earlier
	// runs may already be on record.
	resumed bool

	fees      domain_money.FeeBreakdown
	rate      *domain_money.ExchangeRate
	converted domain_money.Money
	quote     *domain_transfer.Quote
	transfer  *domain_transfer.SchemeTransfer
}

// Execute runs one transfer through validation, compliance, rate resolution,
// quoting and settlement. Any run that gets past validation returns a
// persisted result; the error is an *OrchestrationError unless the transfer
// committed and was recorded.
func (u *InitiateTransferUsecaseImpl) Execute(ctx context.Context, req domain_transfer.TransferRequest) (*domain_transfer.TransferResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	id := req.TransferID()
	resumed := id != uuid.Nil
	if !resumed {
		id = u.ids.NewUUID()
	}
	req = req.WithTransferID(id)

	a := &attempt{
		ctx:     ctx,
		id:      id,
		req:     req,
		stage:   domain_transfer.StageValidating,
		resumed: resumed,
		log:     u.log.WithFields(logrus.Fields{"transfer_id": id, "sender_id": req.SenderID()}),
		fees:    u.fees.Compute(req.Amount(), req.SourceCurrency(), req.IsCrossCurrency()),
	}

	a.log.WithFields(logrus.Fields{
		"amount":          req.Amount().String(),
		"source_currency": req.SourceCurrency(),
		"target_currency": req.TargetCurrency(),
	}).Info("transfer orchestration started")

	var verdict port_service.Verdict
	err := u.step(a, StepCompliance, func(ctx context.Context) (err error) {
		verdict, err = u.gate.Check(ctx, req)
		return err
	})
	if err != nil {
		return u.dependencyFailure(a, StepCompliance, domain_transfer.StatusComplianceUnavailable, CodeComplianceUnavailable, err)
	}

	switch verdict.Decision {
	case port_service.DecisionAllow:
	case port_service.DecisionDeny:
		return u.policyOutcome(a, domain_transfer.StatusDenied, verdict)
	case port_service.DecisionManualReview:
		return u.policyOutcome(a, domain_transfer.StatusManualReviewPending, verdict)
	default:
		return u.dependencyFailure(a, StepCompliance, domain_transfer.StatusComplianceUnavailable, CodeComplianceUnavailable,
			fmt.Errorf("unknown compliance decision %q", verdict.Decision))
	}
	a.stage = domain_transfer.StageComplianceChecked

	rate := domain_money.Identity(req.SourceCurrency(), u.clock.Now())
	if req.IsCrossCurrency() {
		err := u.step(a, StepRate, func(ctx context.Context) (err error) {
			rate, err = u.rates.Resolve(ctx, req.SourceCurrency(), req.TargetCurrency())
			return err
		})
		if err != nil {
			return u.dependencyFailure(a, StepRate, domain_transfer.StatusRateUnavailable, CodeRateUnavailable, err)
		}
	}
	a.rate = &rate
	a.converted = domain_money.New(domain_money.Round(rate.Convert(req.Amount())), req.TargetCurrency())
	a.stage = domain_transfer.StageRateResolved

	var quote domain_transfer.Quote
	err = u.step(a, StepQuote, func(ctx context.Context) (err error) {
		quote, err = u.scheme.RequestQuote(ctx, port_scheme.QuoteRequest{
			TransferID:      id,
			PayerID:         req.SenderID(),
			PayerName:       req.SenderName(),
			PayerPhone:      req.SenderPhone(),
			PayeeIdentifier: req.ReceiverID(),
			PayeeName:       req.ReceiverName(),
			PayeePhone:      req.ReceiverPhone(),
			Amount:          req.SourceMoney(),
			TargetCurrency:  req.TargetCurrency(),
			TargetAmount:    a.converted.Amount,
			Rate:            rate,
			Note:            req.Description(),
		})
		return err
	})
	if err != nil {
		return u.schemeFailure(a, StepQuote, err)
	}
	if quote.Expiration.IsZero() {
		quote.Expiration = u.clock.Now().Add(u.cfg.QuoteWindow)
		quote.Defaulted = true
	}
	a.quote = &quote
	a.stage = domain_transfer.StageQuoted

	if err := ctx.Err(); err != nil {
		u.abandonQuote(a, err)
		return u.finish(a, domain_transfer.StatusCancelled, &OrchestrationError{
			Step:  StepTransfer,
			Code:  CodeCancelled,
			Cause: err,
		})
	}

	if quote.Expired(u.clock.Now()) {
		return u.finish(a, domain_transfer.StatusSchemeFailed, &OrchestrationError{
			Step:  StepTransfer,
			Code:  CodeQuoteExpired,
			Cause: port_scheme.ErrQuoteExpired,
		})
	}

	amount := quote.TransferAmount
	if amount.IsZero() {
		amount = req.SourceMoney()
	}

	var st domain_transfer.SchemeTransfer
	err = u.step(a, StepTransfer, func(ctx context.Context) (err error) {
		st, err = u.scheme.ExecuteTransfer(ctx, port_scheme.TransferMessage{
			TransferID:     id,
			QuoteID:        quote.QuoteID,
			Amount:         amount,
			TargetCurrency: req.TargetCurrency(),
			Condition:      quote.Condition,
			ILPPacket:      quote.ILPPacket,
			Expiration:     quote.Expiration,
		})
		return err
	})
	if err != nil {
		if ctx.Err() != nil {
			a.log.WithError(err).Warn("cancelled while transfer was in flight, outcome unknown")
		}
		return u.schemeFailure(a, StepTransfer, err)
	}
	a.transfer = &st
	a.stage = domain_transfer.StageTransferred

	if st.State == domain_transfer.TransferStateAborted {
		return u.finish(a, domain_transfer.StatusAborted, &OrchestrationError{
			Step: StepTransfer,
			Code: CodeTransferAborted,
		})
	}

	a.stage = domain_transfer.StageCompleted
	return u.finish(a, domain_transfer.StatusCommitted, nil)
}

func (u *InitiateTransferUsecaseImpl) step(a *attempt, name string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(a.ctx)
	elapsed := time.Since(start)

	stepDuration.WithLabelValues(name).Observe(elapsed.Seconds())

	entry := a.log.WithFields(logrus.Fields{"step": name, "elapsed_ms": elapsed.Milliseconds()})
	if err != nil {
		entry.WithError(err).Info("step failed")
		return err
	}
	entry.Info("step completed")
	return nil
}

func (u *InitiateTransferUsecaseImpl) policyOutcome(a *attempt, status domain_transfer.Status, v port_service.Verdict) (*domain_transfer.TransferResult, error) {
	return u.finish(a, status, &OrchestrationError{
		Step:   StepCompliance,
		Code:   v.Code,
		Reason: v.Reason,
	})
}

// dependencyFailure maps a collaborator error to its terminal status, unless
// the caller's context ended first.
func (u *InitiateTransferUsecaseImpl) dependencyFailure(a *attempt, step string, status domain_transfer.Status, code string, err error) (*domain_transfer.TransferResult, error) {
	if a.ctx.Err() != nil {
		return u.finish(a, domain_transfer.StatusCancelled, &OrchestrationError{Step: step, Code: CodeCancelled, Cause: err})
	}
	return u.finish(a, status, &OrchestrationError{Step: step, Code: code, Cause: err})
}

func (u *InitiateTransferUsecaseImpl) schemeFailure(a *attempt, step string, err error) (*domain_transfer.TransferResult, error) {
	code := CodeSchemeUnavailable
	switch {
	case errors.Is(err, port_scheme.ErrQuoteExpired):
		code = CodeQuoteExpired
	case errors.Is(err, port_scheme.ErrSchemeRejected):
		code = CodeSchemeRejected
		var rej *port_scheme.RejectedError
		if errors.As(err, &rej) {
			a.log.WithFields(logrus.Fields{"step": step, "scheme_code": rej.Code}).Warn("scheme rejected request")
		}
	}
	return u.dependencyFailure(a, step, domain_transfer.StatusSchemeFailed, code, err)
}

func (u *InitiateTransferUsecaseImpl) abandonQuote(a *attempt, cause error) {
	q := a.quote
	a.log.WithFields(logrus.Fields{
		"quote_id":   q.QuoteID,
		"expiration": q.Expiration,
	}).WithError(cause).Warn("abandoned quote")

	abandonedQuotesTotal.Inc()

	u.publish(context.WithoutCancel(a.ctx), a.log, domain_transfer.QuoteAbandoned{
		At:         u.clock.Now(),
		TransferID: a.id,
		QuoteID:    q.QuoteID,
		Expiration: q.Expiration,
		Reason:     "run cancelled before transfer",
	})
}

// finish builds the terminal result, records it and announces it. oe is nil
// only for a committed run.
func (u *InitiateTransferUsecaseImpl) finish(a *attempt, status domain_transfer.Status, oe *OrchestrationError) (*domain_transfer.TransferResult, error) {
	p := domain_transfer.ResultParams{
		TransferID:      a.id,
		Status:          status,
		Stage:           a.stage,
		Request:         a.req,
		Rate:            a.rate,
		Quote:           a.quote,
		Transfer:        a.transfer,
		Fees:            a.fees,
		ConvertedAmount: a.converted,
		Now:             u.clock.Now(),
	}

	if status == domain_transfer.StatusCommitted {
		p.EstimatedDelivery = deliveryMinutes
		if !a.req.IsCrossCurrency() {
			p.EstimatedDelivery = deliveryInstant
		}
	}

	if oe != nil {
		oe.TransferID = a.id
		oe.Status = status
		p.FailureCode = oe.Code
		p.FailureReason = oe.Reason
		if p.FailureReason == "" {
			p.FailureReason = oe.UserMessage()
		}
	}

	detached := context.WithoutCancel(a.ctx)
	if a.resumed {
		p.History = u.history(detached, a)
	}

	res, err := domain_transfer.NewResult(p)
	if err != nil {
		return nil, fmt.Errorf("build transfer result: %w", err)
	}

	saveErr := u.step(&attempt{ctx: detached, log: a.log}, StepPersist, func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, u.cfg.PersistTimeout)
		defer cancel()
		return u.repo.Save(ctx, res)
	})
	if saveErr != nil {
		a.log.WithError(saveErr).Error("failed to persist transfer result")
		if oe == nil {
			oe = &OrchestrationError{
				TransferID: a.id,
				Status:     status,
				Step:       StepPersist,
				Code:       CodePersistenceFailed,
				Cause:      saveErr,
			}
		}
	}

	u.publish(detached, a.log, res.OutcomeEvent())
	orchestrationsTotal.WithLabelValues(string(status)).Inc()

	entry := a.log.WithFields(logrus.Fields{"status": status, "stage": a.stage})
	if oe == nil {
		entry.Info("transfer orchestration finished")
		return res, nil
	}

	entry = entry.WithFields(logrus.Fields{"code": oe.Code, "step": oe.Step})
	switch status {
	case domain_transfer.StatusDenied, domain_transfer.StatusManualReviewPending, domain_transfer.StatusAborted:
		entry.Info("transfer orchestration finished")
	default:
		entry.WithError(oe.Cause).Warn("transfer orchestration failed")
	}
	return res, oe
}

// history returns the observations recorded by earlier runs of the same
// transfer. A lookup failure starts the history over rather than failing the
// run.
func (u *InitiateTransferUsecaseImpl) history(ctx context.Context, a *attempt) []domain_transfer.Observation {
	ctx, cancel := context.WithTimeout(ctx, u.cfg.PersistTimeout)
	defer cancel()

	prev, err := u.repo.GetByID(ctx, a.id)
	if errors.Is(err, port_persistence.ErrNotFound) {
		return nil
	}
	if err != nil {
		a.log.WithError(err).Warn("could not load earlier runs, history starts over")
		return nil
	}
	return prev.Observations()
}
