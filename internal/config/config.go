// Package config loads service configuration from the environment. A .env
// file is read first when present.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	domain_money "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/domain/money"
	impl_fx "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/impl/gateway/fx"
	impl_screening "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/impl/gateway/screening"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const (
	EnvProduction = "production"
	EnvSandbox    = "sandbox"

	SchemeHTTP  = "http"
	SchemeFixed = "fixed"

	FXHTTP   = "http"
	FXStatic = "static"

	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

var ErrProductionGuard = errors.New("config: setting not allowed in production")

type Config struct {
	Env      string
	Port     string
	LogLevel string

	MinAmount decimal.Decimal
	MaxAmount decimal.Decimal

	ServiceFeeRate  decimal.Decimal
	ExchangeFeeRate decimal.Decimal
	NetworkFeeFlat  decimal.Decimal

	Scheme SchemeConfig
	FX     FXConfig

	ComplianceBypass   bool
	ScreeningDefault   impl_screening.Verdicts
	ScreeningOverrides map[string]impl_screening.Verdicts

	StoreDriver string
	DBSource    string

	// KafkaBroker empty means events are only logged.
	KafkaBroker string
	KafkaTopic  string
}

type SchemeConfig struct {
	Client          string
	BaseURL         string
	SourceID        string
	Participants    map[domain_money.Currency]string
	QuoteTimeout    time.Duration
	TransferTimeout time.Duration
	QuoteWindow     time.Duration
}

type FXConfig struct {
	Provider          string
	BaseURL           string
	StaticRates       map[[2]domain_money.Currency]decimal.Decimal
	Timeout           time.Duration
	RequestsPerSecond float64
	CacheTTL          time.Duration
	DefaultFallback   bool
}

func (c *Config) IsProduction() bool { return c.Env == EnvProduction }

// Load reads the environment once at startup. The returned value is never
// mutated afterwards.
func Load() (*Config, error) {
	_ = godotenv.Load()

	env := strings.ToLower(getEnv("ENVIRONMENT", ""))
	if env == "" {
		env = EnvSandbox
	}
	if env != EnvProduction && env != EnvSandbox {
		return nil, fmt.Errorf("config: ENVIRONMENT must be %s or %s, got %q", EnvProduction, EnvSandbox, env)
	}

	l := loader{}
	cfg := &Config{
		Env:      env,
		Port:     getEnv("SERVER_PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		MinAmount:       l.decimal("MIN_TRANSACTION_AMOUNT", "1"),
		MaxAmount:       l.decimal("MAX_TRANSACTION_AMOUNT", "10000"),
		ServiceFeeRate:  l.decimal("SERVICE_FEE_RATE", "0.01"),
		ExchangeFeeRate: l.decimal("EXCHANGE_FEE_RATE", "0.005"),
		NetworkFeeFlat:  l.decimal("NETWORK_FEE_FLAT", "0.50"),

		Scheme: SchemeConfig{
			Client:          strings.ToLower(getEnv("SCHEME_CLIENT", SchemeFixed)),
			BaseURL:         getEnv("SCHEME_BASE_URL", ""),
			SourceID:        getEnv("SOURCE_PARTICIPANT_ID", "payer-fsp"),
			Participants:    l.participants("PARTICIPANTS", "USD=dfsp-usd,EUR=dfsp-eur,GBP=dfsp-gbp,KES=dfsp-kes"),
			QuoteTimeout:    l.duration("SCHEME_QUOTE_TIMEOUT", 15*time.Second),
			TransferTimeout: l.duration("SCHEME_TRANSFER_TIMEOUT", 30*time.Second),
			QuoteWindow:     l.duration("QUOTE_EXPIRATION_WINDOW", 5*time.Minute),
		},

		FX: FXConfig{
			Provider:          strings.ToLower(getEnv("FX_PROVIDER", FXStatic)),
			BaseURL:           getEnv("FX_BASE_URL", ""),
			StaticRates:       l.rates("FX_STATIC_RATES", "USD:EUR=0.92,USD:GBP=0.79,USD:KES=129.50,EUR:GBP=0.86"),
			Timeout:           l.duration("FX_TIMEOUT", 5*time.Second),
			RequestsPerSecond: l.float("FX_REQUESTS_PER_SECOND", 5),
			CacheTTL:          l.duration("FX_CACHE_TTL", 60*time.Second),
			DefaultFallback:   l.bool("FX_DEFAULT_FALLBACK", false),
		},

		ComplianceBypass:   l.bool("COMPLIANCE_BYPASS", false),
		ScreeningOverrides: l.overrides("SCREENING_OVERRIDES", ""),

		StoreDriver: strings.ToLower(getEnv("STORE_DRIVER", StoreSQLite)),
		DBSource:    getEnv("DB_SOURCE", ""),

		KafkaBroker: getEnv("KAFKA_BROKER", ""),
		KafkaTopic:  getEnv("KAFKA_TOPIC", "transfers.events"),
	}

	// Unknown senders are unverified in production; sandbox lets everyone through.
	defaultVerdicts := "verified:clear"
	if env == EnvProduction {
		defaultVerdicts = "unverified:clear"
	}
	cfg.ScreeningDefault = l.verdicts("SCREENING_DEFAULT", defaultVerdicts)

	if err := errors.Join(l.errs...); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error

	if !c.MinAmount.IsPositive() || c.MaxAmount.LessThan(c.MinAmount) {
		errs = append(errs, fmt.Errorf("config: transaction limits must satisfy 0 < MIN <= MAX, got %s..%s", c.MinAmount, c.MaxAmount))
	}
	if c.ServiceFeeRate.IsNegative() || c.ExchangeFeeRate.IsNegative() || c.NetworkFeeFlat.IsNegative() {
		errs = append(errs, errors.New("config: fee schedule must not be negative"))
	}

	switch c.Scheme.Client {
	case SchemeHTTP:
		if c.Scheme.BaseURL == "" {
			errs = append(errs, errors.New("config: SCHEME_BASE_URL is required for the http scheme client"))
		}
	case SchemeFixed:
	default:
		errs = append(errs, fmt.Errorf("config: unknown SCHEME_CLIENT %q", c.Scheme.Client))
	}
	if len(c.Scheme.Participants) == 0 {
		errs = append(errs, errors.New("config: PARTICIPANTS must list at least one currency"))
	}

	switch c.FX.Provider {
	case FXHTTP:
		if c.FX.BaseURL == "" {
			errs = append(errs, errors.New("config: FX_BASE_URL is required for the http rate provider"))
		}
	case FXStatic:
	default:
		errs = append(errs, fmt.Errorf("config: unknown FX_PROVIDER %q", c.FX.Provider))
	}

	switch c.StoreDriver {
	case StorePostgres:
		if c.DBSource == "" {
			errs = append(errs, errors.New("config: DB_SOURCE environment variable is required for postgres"))
		}
	case StoreSQLite:
	default:
		errs = append(errs, fmt.Errorf("config: unknown STORE_DRIVER %q", c.StoreDriver))
	}

	if c.IsProduction() {
		if c.Scheme.Client == SchemeFixed {
			errs = append(errs, fmt.Errorf("%w: SCHEME_CLIENT=fixed", ErrProductionGuard))
		}
		if c.FX.DefaultFallback {
			errs = append(errs, fmt.Errorf("%w: FX_DEFAULT_FALLBACK=true", ErrProductionGuard))
		}
		if c.ComplianceBypass {
			errs = append(errs, fmt.Errorf("%w: COMPLIANCE_BYPASS=true", ErrProductionGuard))
		}
	}

	return errors.Join(errs...)
}

// getEnv returns the environment variable value or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// loader collects parse errors so one Load reports every bad variable.
type loader struct {
	errs []error
}

func (l *loader) fail(key, raw string, err error) {
	l.errs = append(l.errs, fmt.Errorf("config: %s=%q: %w", key, raw, err))
}

func (l *loader) decimal(key, def string) decimal.Decimal {
	raw := getEnv(key, def)
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		l.fail(key, raw, err)
	}
	return d
}

func (l *loader) duration(key string, def time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		l.fail(key, raw, err)
		return def
	}
	return d
}

func (l *loader) float(key string, def float64) float64 {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		l.fail(key, raw, err)
		return def
	}
	return f
}

func (l *loader) bool(key string, def bool) bool {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		l.fail(key, raw, err)
		return def
	}
	return b
}

// participants reads "USD=dfsp-usd,EUR=dfsp-eur".
func (l *loader) participants(key, def string) map[domain_money.Currency]string {
	raw := getEnv(key, def)
	out := make(map[domain_money.Currency]string)
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		code, id, ok := strings.Cut(item, "=")
		if !ok || strings.TrimSpace(id) == "" {
			l.fail(key, raw, fmt.Errorf("entry %q is not CURRENCY=PARTICIPANT", item))
			continue
		}
		c, err := domain_money.ParseCurrency(code)
		if err != nil {
			l.fail(key, raw, err)
			continue
		}
		out[c] = strings.TrimSpace(id)
	}
	return out
}

func (l *loader) rates(key, def string) map[[2]domain_money.Currency]decimal.Decimal {
	raw := getEnv(key, def)
	out, err := impl_fx.ParseStaticRates(raw)
	if err != nil {
		l.fail(key, raw, err)
	}
	return out
}

func (l *loader) verdicts(key, def string) impl_screening.Verdicts {
	raw := getEnv(key, def)
	v, err := impl_screening.ParseVerdicts(raw)
	if err != nil {
		l.fail(key, raw, err)
	}
	return v
}

func (l *loader) overrides(key, def string) map[string]impl_screening.Verdicts {
	raw := getEnv(key, def)
	out, err := impl_screening.ParseOverrides(raw)
	if err != nil {
		l.fail(key, raw, err)
	}
	return out
}
