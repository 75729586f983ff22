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
	"github.com/clickchain/settlement/internal/demand"
	"github.com/clickchain/settlement/internal/domain"
	"github.com/clickchain/settlement/internal/events"
	"github.com/clickchain/settlement/internal/exchange"
	"github.com/clickchain/settlement/internal/license"
	"github.com/clickchain/settlement/internal/lock"
	"github.com/clickchain/settlement/internal/logger"
	"github.com/clickchain/settlement/internal/match"
	"github.com/clickchain/settlement/internal/node"
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
	cfg, err := config.LoadMatcherConfig(*configFile, *envPath)
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
			"service": "matcher",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Matcher")

	// Fee coefficient fallbacks, validated at startup
	defaultLicenseRate, defaultOperatorRate, _, err := cfg.Fee.Rates()
	if err != nil {
		logger.FatalCtx(ctx, "Invalid fee configuration", zap.Error(err))
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

	// One run at a time across all instances
	redisClient := adapter.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	jobLock := lock.NewRedisLock(redisClient, lockTTL)
	lease, err := jobLock.TryAcquire(ctx, "matcher")
	if errors.Is(err, domain.ErrLockBusy) {
		logger.InfoCtx(ctx, "Another matcher run holds the lock, exiting")
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

	// Initialize adapters and clients
	clock := adapter.NewClock()
	nodeClient := node.NewClient(adapter.NewHTTPClient(cfg.Node.RequestTimeout), cfg.Node)
	demandClient := demand.NewClient(adapter.NewHTTPClient(cfg.Demand.RequestTimeout))
	licenseReader := license.NewReader(adapter.NewHTTPClient(cfg.License.RequestTimeout), clock, cfg.License)
	rateReader := exchange.NewCachedReader(
		exchange.NewHTTPReader(adapter.NewHTTPClient(cfg.Exchange.RequestTimeout), cfg.Exchange),
		redisClient,
		cfg.Exchange.CacheTTL,
	)

	matcher := match.NewMatcher(dataStore, demandClient, licenseReader, rateReader, clock, recorder,
		func(licenseAddress domain.AccountAddress) match.FeeSender {
			return match.NewLicenseFeeSender(dataStore, nodeClient, recorder, licenseAddress)
		},
		match.Config{
			TryOutWindow:        cfg.Match.TryOutWindow,
			PageLimit:           cfg.Demand.PageLimit,
			WorkerPoolSize:      cfg.Worker.WorkerPoolSize,
			WorkerQueueSize:     cfg.Worker.WorkerQueueSize,
			Currency:            cfg.Exchange.Currency,
			DefaultLicenseRate:  defaultLicenseRate,
			DefaultOperatorRate: defaultOperatorRate,
		})

	runErr := matcher.Run(ctx)

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

	logger.InfoCtx(ctx, "Matcher run finished")
}
