package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/clickchain/settlement/internal/adapter"
	"github.com/clickchain/settlement/internal/config"
	"github.com/clickchain/settlement/internal/domain"
	"github.com/clickchain/settlement/internal/events"
	"github.com/clickchain/settlement/internal/exchange"
	"github.com/clickchain/settlement/internal/lock"
	"github.com/clickchain/settlement/internal/logger"
	"github.com/clickchain/settlement/internal/node"
	"github.com/clickchain/settlement/internal/providers/jetstream"
	"github.com/clickchain/settlement/internal/store"
	"github.com/clickchain/settlement/internal/wallet"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

const lockTTL = 10 * time.Minute

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadWalletConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Create context cancelled on shutdown signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "wallet",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Wallet")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}

	// Initialize store
	dataStore := store.NewPGStore(db)

	redisClient := adapter.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)

	// Connect to NATS: the wallet both dispatches withdrawal jobs and
	// consumes them
	natsConfig := jetstream.Config{
		URL:            cfg.NATS.URL,
		StreamName:     cfg.NATS.StreamName,
		ConsumerName:   cfg.NATS.ConsumerName,
		MaxReconnects:  cfg.NATS.MaxReconnects,
		ReconnectWait:  cfg.NATS.ReconnectWait,
		ConnectionName: cfg.NATS.ConnectionName,
		AckWait:        cfg.NATS.AckWait,
		MaxDeliver:     cfg.NATS.MaxDeliver,
	}
	publisher, err := jetstream.NewPublisher(natsConfig, adapter.NewNatsJetStream(), adapter.NewJSON())
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err))
	}
	defer publisher.Close()
	subscriber, err := jetstream.NewSubscriber(natsConfig, adapter.NewNatsJetStream(), adapter.NewJSON())
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create NATS subscriber", zap.Error(err))
	}
	defer subscriber.Close()

	recorder := events.NewRecorder(dataStore, publisher)
	clock := adapter.NewClock()
	nodeClient := node.NewClient(adapter.NewHTTPClient(cfg.Node.RequestTimeout), cfg.Node)
	rateReader := exchange.NewCachedReader(
		exchange.NewHTTPReader(adapter.NewHTTPClient(cfg.Exchange.RequestTimeout), cfg.Exchange),
		redisClient,
		cfg.Exchange.CacheTTL,
	)

	// The balance checks run once per invocation, guarded by the job lock;
	// the withdrawal consumer then runs until shutdown
	jobLock := lock.NewRedisLock(redisClient, lockTTL)
	lease, err := jobLock.TryAcquire(ctx, "wallet")
	switch {
	case errors.Is(err, domain.ErrLockBusy):
		logger.InfoCtx(ctx, "Another wallet run holds the lock, skipping balance checks")
	case err != nil:
		logger.FatalCtx(ctx, "Failed to acquire job lock", zap.Error(err))
	default:
		manager := wallet.NewColdWalletManager(dataStore, nodeClient, clock, recorder, cfg.ColdWallet)
		if err := manager.Run(ctx); err != nil {
			logger.ErrorCtx(ctx, err)
		}

		checker := wallet.NewWithdrawalChecker(dataStore, rateReader, publisher, recorder,
			cfg.Exchange.Currency, cfg.Withdrawal)
		if err := checker.Run(ctx); err != nil {
			logger.ErrorCtx(ctx, err)
		}

		if err := lease.Release(context.Background()); err != nil {
			logger.Error(err)
		}
	}

	// Consume withdrawal jobs until shutdown
	sender := wallet.NewWithdrawalSender(dataStore, nodeClient, subscriber)
	if err := sender.Run(ctx); err != nil {
		logger.ErrorCtx(ctx, err)
		logger.Flush(2 * time.Second)
		os.Exit(1)
	}

	logger.InfoCtx(ctx, "Wallet stopped")
}
