package impl_scheme

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	domain_money "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/domain/money"
	domain_transfer "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/domain/transfer"
	port_platform "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/ports/gateway/platform"
	port_scheme "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/ports/gateway/scheme"
	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const maxErrorBody = 4 << 10

type HTTPConfig struct {
	BaseURL   string
	Directory port_scheme.Directory

	// Production turns a missing quote condition into a rejection instead of
	// synthesizing one.
	Production bool

	QuoteTimeout    time.Duration
	TransferTimeout time.Duration

	// TransferRetries is how many times a transport failure on the transfer
	// call is retried with the same transfer id.
	TransferRetries uint64
	RetryBackoff    time.Duration
}

func DefaultHTTPConfig(baseURL string, dir port_scheme.Directory) HTTPConfig {
	return HTTPConfig{
		BaseURL:         baseURL,
		Directory:       dir,
		QuoteTimeout:    15 * time.Second,
		TransferTimeout: 30 * time.Second,
		TransferRetries: 2,
		RetryBackoff:    200 * time.Millisecond,
	}
}

// HTTPClient talks to an interoperability hub that answers quote and
// transfer posts synchronously.
type HTTPClient struct {
	cfg   HTTPConfig
	http  *http.Client
	ids   port_platform.IDGenerator
	clock port_platform.Clock
	log   logrus.FieldLogger
}

func NewHTTPClient(cfg HTTPConfig, httpClient *http.Client, ids port_platform.IDGenerator, clock port_platform.Clock, log logrus.FieldLogger) *HTTPClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &HTTPClient{
		cfg:   cfg,
		http:  httpClient,
		ids:   ids,
		clock: clock,
		log:   log.WithField("component", "scheme_http"),
	}
}

func (c *HTTPClient) RequestQuote(ctx context.Context, req port_scheme.QuoteRequest) (domain_transfer.Quote, error) {
	dest, err := c.cfg.Directory.Destination(req.TargetCurrency)
	if err != nil {
		return domain_transfer.Quote{}, err
	}

	quoteID := c.ids.NewUUID()
	transactionID := c.ids.NewUUID()

	body := quoteRequestBody{
		QuoteID:       quoteID.String(),
		TransactionID: transactionID.String(),
		Payee:         newParty(req.PayeeIdentifier, req.PayeeName, req.PayeePhone, dest),
		Payer:         newParty(req.PayerID, req.PayerName, req.PayerPhone, c.cfg.Directory.Source()),
		AmountType:    "SEND",
		Amount:        toWireMoney(req.Amount),
		TransactionType: transactionType{
			Scenario:      "TRANSFER",
			Initiator:     "PAYER",
			InitiatorType: "CONSUMER",
		},
		Note: req.Note,
		ExtensionList: extensionList{Extension: []extension{
			{Key: extFXRate, Value: req.Rate.Rate.String()},
			{Key: extFXProvider, Value: req.Rate.Provider},
			{Key: extTargetCurrency, Value: string(req.TargetCurrency)},
			{Key: extTargetAmount, Value: req.TargetAmount.StringFixed(domain_money.MinorUnits)},
			{Key: extTransferID, Value: req.TransferID.String()},
		}},
	}

	callCtx, cancel := context.WithTimeout(ctx, c.cfg.QuoteTimeout)
	defer cancel()

	var resp quoteResponseBody
	if err := c.post(callCtx, "/quotes", contentTypeQuotes, dest, body, &resp); err != nil {
		return domain_transfer.Quote{}, err
	}

	return c.decodeQuote(req, quoteID, transactionID, resp)
}

func (c *HTTPClient) decodeQuote(req port_scheme.QuoteRequest, quoteID, transactionID uuid.UUID, resp quoteResponseBody) (domain_transfer.Quote, error) {
	if resp.TransferAmount == nil {
		return domain_transfer.Quote{}, port_scheme.Rejected(port_scheme.CodeMalformedResponse, "quote response has no transferAmount")
	}
	transferAmount, err := fromWireMoney(*resp.TransferAmount)
	if err != nil {
		return domain_transfer.Quote{}, err
	}

	receive := domain_money.New(req.TargetAmount, req.TargetCurrency)
	if resp.PayeeReceiveAmount != nil {
		if receive, err = fromWireMoney(*resp.PayeeReceiveAmount); err != nil {
			return domain_transfer.Quote{}, err
		}
	}

	fee := domain_money.New(decimal.Zero, req.TargetCurrency)
	if resp.PayeeFspFee != nil {
		if fee, err = fromWireMoney(*resp.PayeeFspFee); err != nil {
			return domain_transfer.Quote{}, err
		}
	}

	q := domain_transfer.Quote{
		QuoteID:            quoteID,
		TransactionID:      transactionID,
		TransferAmount:     transferAmount,
		PayeeReceiveAmount: receive,
		PayeeFee:           fee,
		Condition:          resp.Condition,
		ILPPacket:          resp.IlpPacket,
	}

	if resp.Expiration == "" {
		q.Defaulted = true
	} else {
		exp, err := time.Parse(time.RFC3339Nano, resp.Expiration)
		if err != nil {
			return domain_transfer.Quote{}, port_scheme.Rejected(port_scheme.CodeMalformedResponse, "quote expiration is not RFC 3339")
		}
		q.Expiration = exp.UTC()
	}

	if q.Condition == "" {
		if c.cfg.Production {
			return domain_transfer.Quote{}, port_scheme.Rejected(port_scheme.CodeMissingCondition, "quote response carries no condition")
		}
		c.log.WithField("transfer_id", req.TransferID).Warn("quote has no condition, synthesizing one")
		q.Condition = SynthesizeCondition(req.TransferID)
	}

	return q, nil
}

func (c *HTTPClient) ExecuteTransfer(ctx context.Context, msg port_scheme.TransferMessage) (domain_transfer.SchemeTransfer, error) {
	if expired(msg, c.clock.Now()) {
		return domain_transfer.SchemeTransfer{}, port_scheme.ErrQuoteExpired
	}

	dest, err := c.cfg.Directory.Destination(msg.TargetCurrency)
	if err != nil {
		return domain_transfer.SchemeTransfer{}, err
	}

	body := transferRequestBody{
		TransferID: msg.TransferID.String(),
		PayerFsp:   c.cfg.Directory.Source(),
		PayeeFsp:   dest,
		Amount:     toWireMoney(msg.Amount),
		IlpPacket:  msg.ILPPacket,
		Condition:  msg.Condition,
		Expiration: msg.Expiration.UTC().Format(time.RFC3339Nano),
		ExtensionList: extensionList{Extension: []extension{
			{Key: extQuoteID, Value: msg.QuoteID.String()},
			{Key: extTargetCurrency, Value: string(msg.TargetCurrency)},
		}},
	}

	var resp transferResponseBody
	backoff := retry.WithMaxRetries(c.cfg.TransferRetries, retry.NewExponential(c.cfg.RetryBackoff))

	attempt := 0
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if expired(msg, c.clock.Now()) {
			return port_scheme.ErrQuoteExpired
		}

		callCtx, cancel := context.WithTimeout(ctx, c.cfg.TransferTimeout)
		defer cancel()

		err := c.post(callCtx, "/transfers", contentTypeTransfers, dest, body, &resp)
		if err != nil && errors.Is(err, port_scheme.ErrSchemeUnavailable) && ctx.Err() == nil {
			c.log.WithFields(logrus.Fields{
				"transfer_id": msg.TransferID,
				"attempt":     attempt,
			}).WithError(err).Warn("transfer call failed, retrying with same transfer id")
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		return domain_transfer.SchemeTransfer{}, err
	}

	state := domain_transfer.TransferState(strings.ToUpper(resp.TransferState))
	if !state.Valid() {
		return domain_transfer.SchemeTransfer{}, port_scheme.Rejected(port_scheme.CodeInvalidState,
			fmt.Sprintf("hub answered transferState %q", resp.TransferState))
	}

	completed := c.clock.Now()
	if resp.CompletedTimestamp != "" {
		if ts, err := time.Parse(time.RFC3339Nano, resp.CompletedTimestamp); err == nil {
			completed = ts.UTC()
		}
	}

	return domain_transfer.SchemeTransfer{
		TransferID:  msg.TransferID,
		State:       state,
		Fulfilment:  resp.Fulfilment,
		CompletedAt: completed,
	}, nil
}

// post sends one FSPIOP-style request and decodes a 2xx answer into out.
// Transport failures, timeouts and 5xx answers are ErrSchemeUnavailable;
// 4xx answers are rejections.
func (c *HTTPClient) post(ctx context.Context, path, contentType, destination string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("scheme: encode %s: %w", path, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("scheme: build %s: %w", path, err)
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Accept", contentType)
	httpReq.Header.Set("Date", c.clock.Now().UTC().Format(http.TimeFormat))
	httpReq.Header.Set(headerSource, c.cfg.Directory.Source())
	httpReq.Header.Set(headerDestination, destination)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %w", port_scheme.ErrSchemeUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%w: %s answered %d", port_scheme.ErrSchemeUnavailable, path, resp.StatusCode)
	case resp.StatusCode >= 400:
		return decodeRejection(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %w", port_scheme.ErrSchemeUnavailable, ctx.Err())
		}
		return port_scheme.Rejected(port_scheme.CodeMalformedResponse, "undecodable "+path+" response")
	}
	return nil
}

func decodeRejection(resp *http.Response) error {
	var eb errorResponseBody
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err := json.Unmarshal(raw, &eb); err != nil || eb.ErrorInformation.ErrorCode == "" {
		return port_scheme.Rejected(fmt.Sprintf("HTTP_%d", resp.StatusCode), http.StatusText(resp.StatusCode))
	}
	return port_scheme.Rejected(eb.ErrorInformation.ErrorCode, eb.ErrorInformation.ErrorDescription)
}

func fromWireMoney(m wireMoney) (domain_money.Money, error) {
	cur, err := domain_money.ParseCurrency(m.Currency)
	if err != nil {
		return domain_money.Money{}, port_scheme.Rejected(port_scheme.CodeMalformedResponse, "bad currency "+m.Currency)
	}
	amount, err := domain_money.ParseAmount(m.Amount)
	if err != nil {
		return domain_money.Money{}, port_scheme.Rejected(port_scheme.CodeMalformedResponse, "bad amount "+m.Amount)
	}
	return domain_money.New(amount, cur), nil
}

func expired(msg port_scheme.TransferMessage, now time.Time) bool {
	return !msg.Expiration.IsZero() && !now.Before(msg.Expiration)
}
