package impl_fxrate_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	domain_money "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/domain/money"
	impl_fxrate "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/impl/fxrate"
	port_fx "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/ports/gateway/fx"
	gwmocks "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/ports/gateway/mocks"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var fetchedAt = time.Date(2026, 1, 9, 12, 0, 0, 0, time.UTC)

func rate(from, to domain_money.Currency, r string) domain_money.ExchangeRate {
	return domain_money.ExchangeRate{From: from, To: to, Rate: decimal.RequireFromString(r), Timestamp: fetchedAt, Provider: "static"}
}

func newResolver(t *testing.T, opts impl_fxrate.Options) (*impl_fxrate.Resolver, *gwmocks.MockRateProvider, *gwmocks.MockClock, *logtest.Hook) {
	t.Helper()
	ctrl := gomock.NewController(t)

	provider := gwmocks.NewMockRateProvider(ctrl)
	provider.EXPECT().Name().Return("static").AnyTimes()

	clock := gwmocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(fetchedAt.Add(time.Hour)).AnyTimes()

	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	return impl_fxrate.NewResolver(provider, clock, logger, opts), provider, clock, hook
}

func TestResolver_SameCurrencyNeverCallsProvider(t *testing.T) {
	r, provider, _, _ := newResolver(t, impl_fxrate.DefaultOptions())
	provider.EXPECT().Rate(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	got, err := r.Resolve(context.Background(), "USD", "USD")
	require.NoError(t, err)

	assert.True(t, got.Rate.Equal(decimal.NewFromInt(1)))
	assert.Equal(t, domain_money.ProviderDirect, got.Provider)
	assert.False(t, got.IsConversion())
}

func TestResolver_DirectRateIsCachedWithOriginalTimestamp(t *testing.T) {
	r, provider, _, _ := newResolver(t, impl_fxrate.DefaultOptions())
	provider.EXPECT().Rate(gomock.Any(), domain_money.Currency("USD"), domain_money.Currency("EUR")).
		Return(rate("USD", "EUR", "0.85"), nil).
		Times(1)

	for i := 0; i < 3; i++ {
		got, err := r.Resolve(context.Background(), "USD", "EUR")
		require.NoError(t, err)
		assert.True(t, got.Rate.Equal(decimal.RequireFromString("0.85")))
		assert.Equal(t, "static", got.Provider)
		assert.True(t, got.Timestamp.Equal(fetchedAt), "cached rate must keep its fetch time")
	}
}

func TestResolver_FallsBackToInverse(t *testing.T) {
	r, provider, _, _ := newResolver(t, impl_fxrate.DefaultOptions())
	gomock.InOrder(
		provider.EXPECT().Rate(gomock.Any(), domain_money.Currency("USD"), domain_money.Currency("EUR")).
			Return(domain_money.ExchangeRate{}, port_fx.ErrRateNotFound),
		provider.EXPECT().Rate(gomock.Any(), domain_money.Currency("EUR"), domain_money.Currency("USD")).
			Return(rate("EUR", "USD", "1.25"), nil),
	)

	got, err := r.Resolve(context.Background(), "USD", "EUR")
	require.NoError(t, err)

	assert.Equal(t, domain_money.Currency("USD"), got.From)
	assert.Equal(t, domain_money.Currency("EUR"), got.To)
	assert.True(t, got.Rate.Equal(decimal.RequireFromString("0.8")), "got %s", got.Rate)
	assert.Equal(t, domain_money.ProviderInverted, got.Provider)

	// the inverse direction is now cached and answered directly
	back, err := r.Resolve(context.Background(), "EUR", "USD")
	require.NoError(t, err)
	assert.True(t, back.Rate.Mul(got.Rate).Equal(decimal.NewFromInt(1)))
}

func TestResolver_MalformedRateCountsAsUnavailable(t *testing.T) {
	r, provider, _, _ := newResolver(t, impl_fxrate.DefaultOptions())
	provider.EXPECT().Rate(gomock.Any(), domain_money.Currency("USD"), domain_money.Currency("KES")).
		Return(rate("USD", "KES", "0"), nil)
	provider.EXPECT().Rate(gomock.Any(), domain_money.Currency("KES"), domain_money.Currency("USD")).
		Return(rate("KES", "USD", "0.008"), nil)

	got, err := r.Resolve(context.Background(), "USD", "KES")
	require.NoError(t, err)
	assert.Equal(t, domain_money.ProviderInverted, got.Provider)
	assert.True(t, got.Rate.Equal(decimal.NewFromInt(125)), "got %s", got.Rate)
}

func TestResolver_Unavailable(t *testing.T) {
	r, provider, _, _ := newResolver(t, impl_fxrate.DefaultOptions())
	provider.EXPECT().Rate(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain_money.ExchangeRate{}, errors.New("timeout")).
		Times(2)

	_, err := r.Resolve(context.Background(), "USD", "NGN")
	assert.ErrorIs(t, err, impl_fxrate.ErrRateUnavailable)
}

func TestResolver_DefaultFallbackIsLoudAndNotCached(t *testing.T) {
	opts := impl_fxrate.DefaultOptions()
	opts.DefaultFallback = true
	r, provider, _, hook := newResolver(t, opts)
	provider.EXPECT().Rate(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain_money.ExchangeRate{}, port_fx.ErrRateNotFound).
		Times(4)

	for i := 0; i < 2; i++ {
		got, err := r.Resolve(context.Background(), "USD", "ZAR")
		require.NoError(t, err)
		assert.Equal(t, domain_money.ProviderDefault, got.Provider)
		assert.True(t, got.Rate.Equal(decimal.NewFromInt(1)))
		assert.True(t, got.Timestamp.Equal(fetchedAt.Add(time.Hour)))
	}

	last := hook.LastEntry()
	require.NotNil(t, last)
	assert.Equal(t, logrus.WarnLevel, last.Level)
	assert.Contains(t, last.Message, "DEFAULT")
}

func TestResolver_HonorsCallerCancellation(t *testing.T) {
	r, provider, _, _ := newResolver(t, impl_fxrate.DefaultOptions())

	release := make(chan struct{})
	defer close(release)
	provider.EXPECT().Rate(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, from, to domain_money.Currency) (domain_money.ExchangeRate, error) {
			<-release
			return rate(from, to, "0.85"), nil
		}).
		AnyTimes()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := r.Resolve(ctx, "USD", "EUR")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestResolver_ConcurrentMissesShareOneFetch(t *testing.T) {
	r, provider, _, _ := newResolver(t, impl_fxrate.DefaultOptions())

	release := make(chan struct{})
	provider.EXPECT().Rate(gomock.Any(), domain_money.Currency("USD"), domain_money.Currency("EUR")).
		DoAndReturn(func(ctx context.Context, from, to domain_money.Currency) (domain_money.ExchangeRate, error) {
			<-release
			return rate(from, to, "0.85"), nil
		}).
		Times(1)

	const callers = 16
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Resolve(context.Background(), "USD", "EUR")
			errs <- err
		}()
	}

	time.Sleep(10 * time.Millisecond)
	close(release)
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}
