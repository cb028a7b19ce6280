package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	domain_money "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/domain/money"
	domain_transfer "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/domain/transfer"
	impl_fxrate "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/impl/fxrate"
	impl_pricing "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/impl/usecase/pricing"
	impl_transfer "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/impl/usecase/transfer"
	port_persistence "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/ports/gateway/persistence"
	port_pricing "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/ports/usecase/pricing"
	port_transfer "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/ports/usecase/transfer"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const maxBodyBytes = 64 << 10

// Error codes that do not come from the orchestrator.
const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeNotFound       = "NOT_FOUND"
	CodeInternal       = "INTERNAL_ERROR"
)

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	initiate  port_transfer.InitiateTransferUseCase
	transfers port_transfer.GetTransferUseCase
	pricing   port_pricing.PricingUseCase
	log       logrus.FieldLogger
}

type createTransferRequest struct {
	SenderID       string          `json:"sender_id"`
	SenderName     string          `json:"sender_name"`
	SenderPhone    string          `json:"sender_phone"`
	ReceiverID     string          `json:"receiver_id"`
	ReceiverName   string          `json:"receiver_name"`
	ReceiverPhone  string          `json:"receiver_phone"`
	Amount         decimal.Decimal `json:"amount"`
	SourceCurrency string          `json:"source_currency"`
	TargetCurrency string          `json:"target_currency"`
	Description    string          `json:"description"`
}

type errorResponse struct {
	Code      string                          `json:"code"`
	Message   string                          `json:"message"`
	Retryable bool                            `json:"retryable,omitempty"`
	Transfer  *domain_transfer.ResultSnapshot `json:"transfer,omitempty"`
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// CreateTransfer handles POST /api/v1/transfers. A uuid Idempotency-Key is
// used as the transfer id so a client retry reaches the same transfer.
func (h *Handlers) CreateTransfer(w http.ResponseWriter, r *http.Request) {
	var body createTransferRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, CodeInvalidRequest, "Malformed JSON body")
		return
	}

	var transferID uuid.UUID
	if key := strings.TrimSpace(r.Header.Get("Idempotency-Key")); key != "" {
		id, err := uuid.Parse(key)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, CodeInvalidRequest, "Idempotency-Key must be a UUID")
			return
		}
		transferID = id
	}

	req, err := domain_transfer.NewRequest(domain_transfer.RequestParams{
		TransferID:     transferID,
		SenderID:       body.SenderID,
		SenderName:     body.SenderName,
		SenderPhone:    body.SenderPhone,
		ReceiverID:     body.ReceiverID,
		ReceiverName:   body.ReceiverName,
		ReceiverPhone:  body.ReceiverPhone,
		Amount:         body.Amount,
		SourceCurrency: body.SourceCurrency,
		TargetCurrency: body.TargetCurrency,
		Description:    body.Description,
	})
	if err != nil {
		respondWithError(w, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return
	}

	res, err := h.initiate.Execute(r.Context(), req)
	if err == nil {
		w.Header().Set("Location", "/api/v1/transfers/"+res.TransferID().String())
		respondWithJSON(w, http.StatusCreated, res.Snapshot())
		return
	}

	if errors.Is(err, impl_transfer.ErrInvalidInput) {
		respondWithError(w, http.StatusBadRequest, CodeInvalidRequest, "Invalid transfer request")
		return
	}

	var oe *impl_transfer.OrchestrationError
	if !errors.As(err, &oe) {
		h.log.WithError(err).Error("transfer orchestration returned an unexpected error")
		respondWithError(w, http.StatusInternalServerError, CodeInternal, "Internal Server Error")
		return
	}

	resp := errorResponse{Code: oe.Code, Message: oe.UserMessage(), Retryable: oe.Retryable()}
	if res != nil {
		snap := res.Snapshot()
		resp.Transfer = &snap
		w.Header().Set("Location", "/api/v1/transfers/"+res.TransferID().String())
	}
	respondWithJSON(w, httpStatusFor(oe), resp)
}

func (h *Handlers) GetTransfer(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, CodeInvalidRequest, "Transfer id must be a UUID")
		return
	}

	res, err := h.transfers.Get(r.Context(), id)
	switch {
	case errors.Is(err, port_persistence.ErrNotFound):
		respondWithError(w, http.StatusNotFound, CodeNotFound, "Transfer not found")
		return
	case err != nil:
		h.log.WithError(err).WithField("transfer_id", id).Error("failed to load transfer")
		respondWithError(w, http.StatusInternalServerError, CodeInternal, "Internal Server Error")
		return
	}

	respondWithJSON(w, http.StatusOK, res.Snapshot())
}

// ListTransfers handles GET /api/v1/transfers?sender_id=&limit=.
func (h *Handlers) ListTransfers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondWithError(w, http.StatusBadRequest, CodeInvalidRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	results, err := h.transfers.ListBySender(r.Context(), q.Get("sender_id"), limit)
	switch {
	case errors.Is(err, impl_transfer.ErrInvalidInput):
		respondWithError(w, http.StatusBadRequest, CodeInvalidRequest, "sender_id is required")
		return
	case err != nil:
		h.log.WithError(err).Error("failed to list transfers")
		respondWithError(w, http.StatusInternalServerError, CodeInternal, "Internal Server Error")
		return
	}

	out := make([]domain_transfer.ResultSnapshot, 0, len(results))
	for _, res := range results {
		out = append(out, res.Snapshot())
	}
	respondWithJSON(w, http.StatusOK, map[string]any{"transfers": out})
}

// GetRate handles GET /api/v1/rates?from=&to=.
func (h *Handlers) GetRate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rate, err := h.pricing.GetExchangeRate(r.Context(), q.Get("from"), q.Get("to"))
	if err != nil {
		h.pricingError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, rate)
}

// GetFees handles GET /api/v1/fees?amount=&from=&to=.
func (h *Handlers) GetFees(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	amount, err := domain_money.ParseAmount(q.Get("amount"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, CodeInvalidRequest, "amount must be a decimal number")
		return
	}

	quote, err := h.pricing.CalculateFees(r.Context(), amount, q.Get("from"), q.Get("to"))
	if err != nil {
		h.pricingError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, quote)
}

func (h *Handlers) pricingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, impl_pricing.ErrInvalidInput):
		respondWithError(w, http.StatusBadRequest, CodeInvalidRequest, "from and to must be 3-letter currency codes and amount must be positive")
	case errors.Is(err, impl_fxrate.ErrRateUnavailable):
		respondWithError(w, http.StatusServiceUnavailable, impl_transfer.CodeRateUnavailable, "No exchange rate is available for this currency pair right now.")
	default:
		h.log.WithError(err).Error("pricing lookup failed")
		respondWithError(w, http.StatusInternalServerError, CodeInternal, "Internal Server Error")
	}
}

// httpStatusFor maps an orchestration outcome to the response status.
func httpStatusFor(oe *impl_transfer.OrchestrationError) int {
	switch oe.Code {
	case impl_transfer.CodeQuoteExpired:
		return http.StatusConflict
	case impl_transfer.CodePersistenceFailed:
		return http.StatusInternalServerError
	}

	switch oe.Status {
	case domain_transfer.StatusDenied:
		return http.StatusUnprocessableEntity
	case domain_transfer.StatusManualReviewPending:
		return http.StatusAccepted
	case domain_transfer.StatusRateUnavailable, domain_transfer.StatusComplianceUnavailable, domain_transfer.StatusCancelled:
		return http.StatusServiceUnavailable
	case domain_transfer.StatusSchemeFailed, domain_transfer.StatusAborted:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func respondWithError(w http.ResponseWriter, status int, code, message string) {
	respondWithJSON(w, status, errorResponse{Code: code, Message: message})
}

func respondWithJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}
