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

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/clickchain/settlement/internal/adapter"
	"github.com/clickchain/settlement/internal/config"
	"github.com/clickchain/settlement/internal/domain"
	"github.com/clickchain/settlement/internal/events"
	"github.com/clickchain/settlement/internal/lock"
	"github.com/clickchain/settlement/internal/logger"
	"github.com/clickchain/settlement/internal/node"
	"github.com/clickchain/settlement/internal/payout"
	"github.com/clickchain/settlement/internal/providers/jetstream"
	"github.com/clickchain/settlement/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

const lockTTL = 30 * time.Minute

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadDisburserConfig(*configFile, *envPath)
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
			"service": "disburser",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Disburser")

	joiningFeeDecay, err := decimal.NewFromString(cfg.Payout.JoiningFeeDecay)
	if err != nil {
		logger.FatalCtx(ctx, "Invalid payout.joining_fee_decay", zap.Error(err))
	}

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

	// One run at a time across all instances; two disbursers sending the same
	// batches is the one failure mode the state machine cannot fully absorb
	redisClient := adapter.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	jobLock := lock.NewRedisLock(redisClient, lockTTL)
	lease, err := jobLock.TryAcquire(ctx, "disburser")
	if errors.Is(err, domain.ErrLockBusy) {
		logger.InfoCtx(ctx, "Another disburser run holds the lock, exiting")
		return
	}
	if err != nil {
		logger.FatalCtx(ctx, "Failed to acquire job lock", zap.Error(err))
	}

	// Connect to NATS for dashboard events
	publisher, err := jetstream.NewPublisher(jetstream.Config{
		URL:            cfg.NATS.URL,
		StreamName:     cfg.NATS.StreamName,
		MaxReconnects:  cfg.NATS.MaxReconnects,
		ReconnectWait:  cfg.NATS.ReconnectWait,
		ConnectionName: cfg.NATS.ConnectionName,
	}, adapter.NewNatsJetStream(), adapter.NewJSON())
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err))
	}
	recorder := events.NewRecorder(dataStore, publisher)

	clock := adapter.NewClock()
	nodeClient := node.NewClient(adapter.NewHTTPClient(cfg.Node.RequestTimeout), cfg.Node)

	batcher := payout.NewBatcher(dataStore, clock, payout.BatcherConfig{
		BatchLimit:       cfg.Payout.BatchLimit,
		JoiningFeePeriod: cfg.Payout.JoiningFeePeriod,
		JoiningFeeDecay:  joiningFeeDecay,
	})
	sender := payout.NewSender(dataStore, nodeClient, recorder)

	runErr := batcher.Run(ctx)
	if runErr == nil {
		runErr = sender.Run(ctx)
	}

	// Explicit cleanup: a failed run still releases the lock before exiting
	if err := lease.Release(context.Background()); err != nil {
		logger.Error(err)
	}
	publisher.Close()

	if runErr != nil {
		logger.ErrorCtx(ctx, runErr)
		logger.Flush(2 * time.Second)
		os.Exit(1)
	}

	logger.InfoCtx(ctx, "Disburser run finished")
}
