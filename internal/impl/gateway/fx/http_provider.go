package impl_fx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	domain_money "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/domain/money"
	port_fx "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/ports/gateway/fx"
	port_platform "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/ports/gateway/platform"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const HTTPProviderName = "live"

type HTTPConfig struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
}

func DefaultHTTPConfig(baseURL string) HTTPConfig {
	return HTTPConfig{
		BaseURL:           baseURL,
		Timeout:           5 * time.Second,
		RequestsPerSecond: 5,
		Burst:             10,
	}
}

// HTTPProvider fetches rates from a "latest rates" style endpoint:
//
//	GET {base}/latest?base=USD&symbols=EUR -> {"base":"USD","date":"...","rates":{"EUR":"0.85"}}
//
// Rate values may be JSON numbers or strings; both are parsed as decimals
// from their literal text.
type HTTPProvider struct {
	cfg     HTTPConfig
	http    *http.Client
	limiter *rate.Limiter
	clock   port_platform.Clock
	log     logrus.FieldLogger
}

func NewHTTPProvider(cfg HTTPConfig, httpClient *http.Client, clock port_platform.Clock, log logrus.FieldLogger) *HTTPProvider {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &HTTPProvider{
		cfg:     cfg,
		http:    httpClient,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		clock:   clock,
		log:     log.WithField("component", "fx_http"),
	}
}

func (p *HTTPProvider) Name() string { return HTTPProviderName }

type latestResponse struct {
	Base  string                     `json:"base"`
	Date  string                     `json:"date"`
	Rates map[string]json.RawMessage `json:"rates"`
}

func (p *HTTPProvider) Rate(ctx context.Context, from, to domain_money.Currency) (domain_money.ExchangeRate, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return domain_money.ExchangeRate{}, fmt.Errorf("%w: rate limiter: %w", port_fx.ErrRateNotFound, err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	q := url.Values{}
	q.Set("base", string(from))
	q.Set("symbols", string(to))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.BaseURL+"/latest?"+q.Encode(), nil)
	if err != nil {
		return domain_money.ExchangeRate{}, fmt.Errorf("fx: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := p.http.Do(req)
	if err != nil {
		return domain_money.ExchangeRate{}, fmt.Errorf("%w: %w", port_fx.ErrRateNotFound, err)
	}
	defer resp.Body.Close()

	p.log.WithFields(logrus.Fields{
		"from":       from,
		"to":         to,
		"status":     resp.StatusCode,
		"elapsed_ms": time.Since(start).Milliseconds(),
	}).Debug("rate provider answered")

	if resp.StatusCode != http.StatusOK {
		return domain_money.ExchangeRate{}, fmt.Errorf("%w: provider status %d", port_fx.ErrRateNotFound, resp.StatusCode)
	}

	var body latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain_money.ExchangeRate{}, fmt.Errorf("%w: malformed payload: %w", port_fx.ErrRateNotFound, err)
	}

	raw, ok := body.Rates[string(to)]
	if !ok {
		return domain_money.ExchangeRate{}, fmt.Errorf("%w: %s/%s", port_fx.ErrRateNotFound, from, to)
	}

	r, err := decimal.NewFromString(strings.Trim(string(raw), `"`))
	if err != nil || !r.IsPositive() {
		return domain_money.ExchangeRate{}, fmt.Errorf("%w: unusable rate %s for %s/%s", port_fx.ErrRateNotFound, raw, from, to)
	}

	return domain_money.ExchangeRate{
		From:      from,
		To:        to,
		Rate:      r,
		Timestamp: p.clock.Now(),
		Provider:  HTTPProviderName,
	}, nil
}
