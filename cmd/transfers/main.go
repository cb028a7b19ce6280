package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PedroCamargo-dev/cross-border-transfers-service/internal/api"
	"github.com/PedroCamargo-dev/cross-border-transfers-service/internal/config"
	impl_compliance "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/impl/compliance"
	impl_fee "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/impl/fee"
	impl_fxrate "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/impl/fxrate"
	impl_fx "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/impl/gateway/fx"
	impl_messaging "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/impl/gateway/messaging"
	impl_postgres "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/impl/gateway/persistence/postgres"
	impl_sqlite "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/impl/gateway/persistence/sqlite"
	impl_platform "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/impl/gateway/platform"
	impl_scheme "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/impl/gateway/scheme"
	impl_screening "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/impl/gateway/screening"
	impl_pricing "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/impl/usecase/pricing"
	impl_transfer "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/impl/usecase/transfer"
	port_fx "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/ports/gateway/fx"
	"github.com/PedroCamargo-dev/cross-border-transfers-service/internal/ports/gateway/messaging"
	port_persistence "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/ports/gateway/persistence"
	port_platform "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/ports/gateway/platform"
	port_scheme "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/ports/gateway/scheme"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	log := impl_platform.NewLogger(cfg.LogLevel, cfg.IsProduction())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.WithError(err).Fatal("service stopped with error")
	}
	log.Info("service stopped")
}

func run(ctx context.Context, cfg *config.Config, log *logrus.Logger) error {
	clock := impl_platform.SystemClock{}
	ids := impl_platform.UUIDGenerator{}

	repo, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	publisher, closePublisher, err := openPublisher(cfg, log)
	if err != nil {
		return err
	}
	defer closePublisher()

	provider := rateProvider(cfg, clock, log)
	rates := impl_fxrate.NewResolver(provider, clock, log, impl_fxrate.Options{
		CacheTTL:        cfg.FX.CacheTTL,
		CacheSize:       impl_fxrate.DefaultOptions().CacheSize,
		LookupTimeout:   cfg.FX.Timeout,
		DefaultFallback: cfg.FX.DefaultFallback,
	})

	fees := impl_fee.NewCalculator(impl_fee.Schedule{
		ServiceRate:  cfg.ServiceFeeRate,
		ExchangeRate: cfg.ExchangeFeeRate,
		NetworkFlat:  cfg.NetworkFeeFlat,
	})

	screener := impl_screening.NewDirectory(cfg.ScreeningDefault, cfg.ScreeningOverrides)
	gate := impl_compliance.NewGate(impl_compliance.Limits{Min: cfg.MinAmount, Max: cfg.MaxAmount}, screener, cfg.ComplianceBypass, log)

	dir := port_scheme.NewDirectory(cfg.Scheme.SourceID, cfg.Scheme.Participants)
	scheme := schemeClient(cfg, dir, ids, clock, log)

	orchestrator := impl_transfer.NewInitiateTransferUsecaseImpl(gate, rates, fees, scheme, repo, publisher, clock, ids, log,
		impl_transfer.Config{
			QuoteWindow:    cfg.Scheme.QuoteWindow,
			PersistTimeout: impl_transfer.DefaultConfig().PersistTimeout,
			EventsTopic:    cfg.KafkaTopic,
			Producer:       impl_transfer.DefaultConfig().Producer,
		})

	router := api.NewRouter(
		orchestrator,
		impl_transfer.NewGetTransferUsecaseImpl(repo),
		impl_pricing.NewPricingUsecaseImpl(rates, fees),
		log,
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.WithFields(logrus.Fields{
			"port":          cfg.Port,
			"environment":   cfg.Env,
			"scheme_client": cfg.Scheme.Client,
			"fx_provider":   cfg.FX.Provider,
			"store":         cfg.StoreDriver,
			"currencies":    dir.Currencies(),
		}).Info("HTTP server listening")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func openStore(ctx context.Context, cfg *config.Config) (port_persistence.TransferResultRepository, func(), error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		store, err := impl_postgres.NewStore(ctx, cfg.DBSource)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to connect to database: %w", err)
		}
		return impl_postgres.NewTransferResultRepo(store), store.Close, nil
	default:
		dsn := cfg.DBSource
		if dsn == "" {
			dsn = "transfers.db"
		}
		db, err := impl_sqlite.InitDB(dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to init sqlite: %w", err)
		}
		return impl_sqlite.NewTransferResultRepo(db), func() { db.Close() }, nil
	}
}

func openPublisher(cfg *config.Config, log logrus.FieldLogger) (messaging.Publisher, func(), error) {
	if cfg.KafkaBroker == "" {
		log.Warn("KAFKA_BROKER not set, outcome events are only logged")
		return impl_messaging.NewLogPublisher(log), func() {}, nil
	}
	p, err := impl_messaging.NewKafkaPublisher(cfg.KafkaBroker, log)
	if err != nil {
		return nil, nil, err
	}
	return p, p.Close, nil
}

func rateProvider(cfg *config.Config, clock port_platform.Clock, log logrus.FieldLogger) port_fx.RateProvider {
	if cfg.FX.Provider == config.FXHTTP {
		hc := impl_fx.DefaultHTTPConfig(cfg.FX.BaseURL)
		hc.Timeout = cfg.FX.Timeout
		hc.RequestsPerSecond = cfg.FX.RequestsPerSecond
		return impl_fx.NewHTTPProvider(hc, nil, clock, log)
	}
	return impl_fx.NewStaticTable(cfg.FX.StaticRates, clock)
}

func schemeClient(cfg *config.Config, dir port_scheme.Directory, ids port_platform.IDGenerator, clock port_platform.Clock, log logrus.FieldLogger) port_scheme.Client {
	if cfg.Scheme.Client == config.SchemeHTTP {
		hc := impl_scheme.DefaultHTTPConfig(cfg.Scheme.BaseURL, dir)
		hc.Production = cfg.IsProduction()
		hc.QuoteTimeout = cfg.Scheme.QuoteTimeout
		hc.TransferTimeout = cfg.Scheme.TransferTimeout
		return impl_scheme.NewHTTPClient(hc, nil, ids, clock, log)
	}
	log.Warn("using the fixed-response scheme client, no money moves")
	return impl_scheme.NewFixedClient(dir, ids, clock)
}
