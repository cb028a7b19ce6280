package impl_fx_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	domain_money "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/domain/money"
	impl_fx "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/impl/gateway/fx"
	port_fx "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/ports/gateway/fx"
	gwmocks "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/ports/gateway/mocks"
	"github.com/shopspring/decimal"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var now = time.Date(2026, 1, 9, 12, 0, 0, 0, time.UTC)

func fixedClock(t *testing.T) *gwmocks.MockClock {
	t.Helper()
	clock := gwmocks.NewMockClock(gomock.NewController(t))
	clock.EXPECT().Now().Return(now).AnyTimes()
	return clock
}

func TestParseStaticRates(t *testing.T) {
	rates, err := impl_fx.ParseStaticRates("USD:EUR=0.85, eur:gbp=0.86,")
	require.NoError(t, err)
	assert.Len(t, rates, 2)
	assert.True(t, rates[[2]domain_money.Currency{"EUR", "GBP"}].Equal(decimal.RequireFromString("0.86")))

	for _, bad := range []string{"USD-EUR=0.85", "USDEUR", "USD:EURO=1", "USD:EUR=-1", "USD:EUR=abc"} {
		_, err := impl_fx.ParseStaticRates(bad)
		assert.Error(t, err, bad)
	}
}

func TestStaticTable_Rate(t *testing.T) {
	table := impl_fx.NewStaticTable(map[[2]domain_money.Currency]decimal.Decimal{
		{"USD", "EUR"}: decimal.RequireFromString("0.85"),
	}, fixedClock(t))

	got, err := table.Rate(context.Background(), "USD", "EUR")
	require.NoError(t, err)
	assert.Equal(t, impl_fx.StaticProviderName, got.Provider)
	assert.True(t, got.Timestamp.Equal(now))

	_, err = table.Rate(context.Background(), "EUR", "USD")
	assert.ErrorIs(t, err, port_fx.ErrRateNotFound, "static table never inverts on its own")
}

func TestHTTPProvider_Rate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/latest", r.URL.Path)
		switch r.URL.Query().Get("base") + "/" + r.URL.Query().Get("symbols") {
		case "USD/EUR":
			_, _ = w.Write([]byte(`{"base":"USD","rates":{"EUR":0.85}}`))
		case "USD/KES":
			_, _ = w.Write([]byte(`{"base":"USD","rates":{"KES":"129.50"}}`))
		case "USD/NGN":
			_, _ = w.Write([]byte(`{"base":"USD","rates":{}}`))
		case "USD/ZAR":
			_, _ = w.Write([]byte(`not json`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	logger, _ := logtest.NewNullLogger()
	p := impl_fx.NewHTTPProvider(impl_fx.DefaultHTTPConfig(srv.URL), srv.Client(), fixedClock(t), logger)

	got, err := p.Rate(context.Background(), "USD", "EUR")
	require.NoError(t, err)
	assert.Equal(t, "0.85", got.Rate.String())
	assert.Equal(t, impl_fx.HTTPProviderName, got.Provider)

	got, err = p.Rate(context.Background(), "USD", "KES")
	require.NoError(t, err)
	assert.True(t, got.Rate.Equal(decimal.RequireFromString("129.5")))

	for _, to := range []domain_money.Currency{"NGN", "ZAR", "GBP"} {
		_, err := p.Rate(context.Background(), "USD", to)
		assert.ErrorIs(t, err, port_fx.ErrRateNotFound, string(to))
	}
}

func TestHTTPProvider_TimeoutIsUnavailable(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	cfg := impl_fx.DefaultHTTPConfig(srv.URL)
	cfg.Timeout = 20 * time.Millisecond
	logger, _ := logtest.NewNullLogger()

	_, err := impl_fx.NewHTTPProvider(cfg, srv.Client(), fixedClock(t), logger).Rate(context.Background(), "USD", "EUR")
	assert.ErrorIs(t, err, port_fx.ErrRateNotFound)
}
