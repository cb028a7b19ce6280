package impl_fxrate

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain_money "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/domain/money"
	port_fx "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/ports/gateway/fx"
	port_platform "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/ports/gateway/platform"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

var ErrRateUnavailable = errors.New("fxrate: no rate available in either direction")

type Options struct {
	// CacheTTL bounds how long a fetched rate is served from memory. Zero
	// disables caching.
	CacheTTL  time.Duration
	CacheSize int

	// LookupTimeout bounds one provider round-trip.
	LookupTimeout time.Duration

	// DefaultFallback returns a 1.0 rate when nothing else is available.
	// Never enable it in production.
	DefaultFallback bool
}

func DefaultOptions() Options {
	return Options{
		CacheTTL:      time.Minute,
		CacheSize:     256,
		LookupTimeout: 5 * time.Second,
	}
}

// Resolver answers rate lookups with precedence direct > inverted > default.
type Resolver struct {
	provider port_fx.RateProvider
	clock    port_platform.Clock
	log      logrus.FieldLogger
	opts     Options

	cache *expirable.LRU[string, domain_money.ExchangeRate]
	group singleflight.Group
}

func NewResolver(provider port_fx.RateProvider, clock port_platform.Clock, log logrus.FieldLogger, opts Options) *Resolver {
	r := &Resolver{
		provider: provider,
		clock:    clock,
		log:      log.WithField("component", "fx_resolver"),
		opts:     opts,
	}
	if opts.CacheTTL > 0 {
		size := opts.CacheSize
		if size <= 0 {
			size = 256
		}
		r.cache = expirable.NewLRU[string, domain_money.ExchangeRate](size, nil, opts.CacheTTL)
	}
	return r
}

func (r *Resolver) Resolve(ctx context.Context, from, to domain_money.Currency) (domain_money.ExchangeRate, error) {
	if from == to {
		return domain_money.Identity(from, r.clock.Now()), nil
	}

	rate, err := r.lookup(ctx, from, to)
	if err == nil {
		return rate, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return domain_money.ExchangeRate{}, ctxErr
	}
	r.log.WithFields(logrus.Fields{"from": from, "to": to}).WithError(err).Warn("direct rate unavailable, trying inverse")

	inverse, err := r.lookup(ctx, to, from)
	if err == nil {
		return inverse.Invert(), nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return domain_money.ExchangeRate{}, ctxErr
	}
	r.log.WithFields(logrus.Fields{"from": to, "to": from}).WithError(err).Warn("inverse rate unavailable")

	if r.opts.DefaultFallback {
		r.log.WithFields(logrus.Fields{"from": from, "to": to}).
			Warn("no rate in either direction; returning DEFAULT rate 1.0, converted amounts are not priced")
		return domain_money.ExchangeRate{
			From:      from,
			To:        to,
			Rate:      decimal.NewFromInt(1),
			Timestamp: r.clock.Now(),
			Provider:  domain_money.ProviderDefault,
		}, nil
	}

	return domain_money.ExchangeRate{}, fmt.Errorf("%w: %s/%s", ErrRateUnavailable, from, to)
}

// lookup returns a cached or freshly fetched rate for one direction.
// Concurrent misses for the same pair share one provider call, but every
// caller stops waiting as soon as its own context is done.
func (r *Resolver) lookup(ctx context.Context, from, to domain_money.Currency) (domain_money.ExchangeRate, error) {
	key := string(from) + "/" + string(to)

	if r.cache != nil {
		if rate, ok := r.cache.Get(key); ok {
			return rate, nil
		}
	}

	ch := r.group.DoChan(key, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.lookupTimeout())
		defer cancel()

		rate, err := r.provider.Rate(fetchCtx, from, to)
		if err != nil {
			return nil, err
		}
		if rate.From != from || rate.To != to || !rate.Rate.IsPositive() {
			return nil, fmt.Errorf("%w: malformed rate %s/%s=%s", port_fx.ErrRateNotFound, rate.From, rate.To, rate.Rate)
		}
		if rate.Timestamp.IsZero() {
			rate.Timestamp = r.clock.Now()
		}
		if rate.Provider == "" {
			rate.Provider = r.provider.Name()
		}
		if r.cache != nil {
			r.cache.Add(key, rate)
		}
		return rate, nil
	})

	select {
	case <-ctx.Done():
		return domain_money.ExchangeRate{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return domain_money.ExchangeRate{}, res.Err
		}
		return res.Val.(domain_money.ExchangeRate), nil
	}
}

func (r *Resolver) lookupTimeout() time.Duration {
	if r.opts.LookupTimeout <= 0 {
		return 5 * time.Second
	}
	return r.opts.LookupTimeout
}
