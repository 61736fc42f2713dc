package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.temporal.io/sdk/client"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/chainpass/ticketing/internal/adapter"
	"github.com/chainpass/ticketing/internal/config"
	"github.com/chainpass/ticketing/internal/ledger"
	"github.com/chainpass/ticketing/internal/logger"
	"github.com/chainpass/ticketing/internal/messaging"
	"github.com/chainpass/ticketing/internal/metrics"
	"github.com/chainpass/ticketing/internal/notification"
	"github.com/chainpass/ticketing/internal/providers/jetstream"
	temporal "github.com/chainpass/ticketing/internal/providers/temporal"
	"github.com/chainpass/ticketing/internal/qrcode"
	"github.com/chainpass/ticketing/internal/registration"
	"github.com/chainpass/ticketing/internal/store"
	"github.com/chainpass/ticketing/internal/sweeper"
	"github.com/chainpass/ticketing/internal/ticket"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadSweeperConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Service:         "sweeper",
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Sweeper")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	dataStore := store.NewPGStore(db)
	clock := adapter.NewClock()
	jcs := adapter.NewJCS()

	// The sweeper shares the API's ledger budget when Redis is configured
	var redisClient adapter.RedisClient
	if cfg.Redis.Addr != "" {
		redisClient = adapter.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("Failed to close Redis client", zap.Error(err))
			}
		}()
	}
	throttle, err := ledger.NewThrottle(cfg.Ledger.Throttle, redisClient, clock)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to initialize ledger throttle", zap.Error(err))
	}
	defer throttle.Close()

	// Connect to the ledger. Promotion never transfers, so no organizer key is needed.
	algodClient, err := adapter.NewAlgodClient(cfg.Ledger.AlgodURL, cfg.Ledger.AlgodToken)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create algod client", zap.Error(err))
	}
	indexerClient, err := adapter.NewIndexerClient(cfg.Ledger.IndexerURL, cfg.Ledger.IndexerToken)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create indexer client", zap.Error(err))
	}
	chain, err := ledger.NewAlgorandLedger(algodClient, indexerClient, ledger.Config{
		MaxRetryElapsed: cfg.Ledger.MaxRetryElapsed,
		Throttle:        throttle,
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to initialize ledger", zap.Error(err))
	}
	directory := ledger.NewEventDirectory(chain, cfg.Ledger.EventsAppID, ledger.DirectoryConfig{
		TTL:         cfg.Ledger.Directory.TTL,
		StaleWindow: cfg.Ledger.Directory.StaleWindow,
	}, clock)

	// Connect to Temporal so promoted attendees get their ticket email
	temporalClient, err := client.Dial(client.Options{
		HostPort:  cfg.Temporal.HostPort,
		Namespace: cfg.Temporal.Namespace,
		Logger:    temporal.NewZapLoggerAdapter(logger.Default()),
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to Temporal", zap.Error(err), zap.String("host_port", cfg.Temporal.HostPort))
	}
	defer temporalClient.Close()
	logger.InfoCtx(ctx, "Connected to Temporal", zap.String("namespace", cfg.Temporal.Namespace))
	dispatcher := notification.NewTemporalDispatcher(temporalClient, cfg.Temporal.NotificationTaskQueue)

	publisher := messaging.NewNoopPublisher()
	if cfg.NATS.URL != "" {
		publisher, err = jetstream.NewPublisher(ctx, jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			SubjectPrefix:  cfg.NATS.SubjectPrefix,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
		}, adapter.NewNatsJetStream(), clock)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err), zap.String("url", cfg.NATS.URL))
		}
	}
	defer publisher.Close()

	// The sweeper never issues tickets itself, the notification worker signs them
	registrationService := registration.NewService(
		dataStore, directory, chain,
		ticket.NewUnavailableSigner(nil),
		qrcode.NewCodec(jcs, qrcode.DefaultImageSize),
		dispatcher, publisher, clock,
		metrics.NewRecorder(prometheus.NewRegistry()),
		registration.Config{ConfirmationRounds: cfg.Ledger.ConfirmationRounds},
	)

	ownershipSweeper := sweeper.NewOwnershipSweeper(sweeper.OwnershipSweeperConfig{
		Interval:       cfg.OwnershipSweeper.Interval,
		BatchSize:      cfg.OwnershipSweeper.BatchSize,
		WorkerPoolSize: cfg.OwnershipSweeper.Worker.WorkerPoolSize,
	}, dataStore, registrationService, clock)

	logger.InfoCtx(ctx, "Initialized ownership sweeper",
		zap.Duration("interval", cfg.OwnershipSweeper.Interval),
		zap.Int("batch_size", cfg.OwnershipSweeper.BatchSize),
		zap.Int("worker_pool_size", cfg.OwnershipSweeper.Worker.WorkerPoolSize),
	)

	// Start the sweeper in a goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := ownershipSweeper.Start(ctx); err != nil {
			errChan <- err
		}
	}()

	// Wait for interrupt signal or error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errChan:
		logger.ErrorCtx(ctx, err)
	}

	// Cancel context to stop the sweeper
	cancel()

	// Give the sweeper time to shut down gracefully
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer shutdownCancel()

	if err := ownershipSweeper.Stop(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err)
	}

	logger.InfoCtx(shutdownCtx, "Sweeper stopped")
}
