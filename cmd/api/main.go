package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.temporal.io/sdk/client"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/chainpass/ticketing/internal/adapter"
	"github.com/chainpass/ticketing/internal/api/middleware"
	"github.com/chainpass/ticketing/internal/api/rest"
	"github.com/chainpass/ticketing/internal/api/server"
	"github.com/chainpass/ticketing/internal/checkin"
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
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Service:         "api-server",
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting ticketing API")

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

	// Initialize adapters
	clock := adapter.NewClock()
	jcs := adapter.NewJCS()
	encoder := ticket.NewEncoder(jcs)
	codec := qrcode.NewCodec(jcs, qrcode.DefaultImageSize)

	// Ticket signing. The API still serves verification and check-in without a key.
	var signer ticket.Signer
	if cfg.Signing.PrivateKey == "" {
		logger.WarnCtx(ctx, "Ticket signing key not configured, ticket issuance is disabled")
		signer = ticket.NewUnavailableSigner(nil)
	} else {
		signer, err = ticket.NewSigner(cfg.Signing.PrivateKey, encoder)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to load ticket signing key", zap.Error(err))
		}
	}

	trustedKeys := slices.Clone(cfg.Signing.PublicKeys)
	if current := signer.PublicKey(); current != "" && !slices.Contains(trustedKeys, current) {
		trustedKeys = append(trustedKeys, current)
	}
	verifier, err := ticket.NewVerifier(trustedKeys, encoder)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to load ticket verification keys", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Loaded ticket keys", zap.Int("trusted_keys", len(verifier.PublicKeys())))

	// Redis backs the public rate limits and the shared ledger budget
	var redisClient adapter.RedisClient
	var limiter adapter.RedisRateLimiter
	if cfg.Redis.Addr != "" {
		redisClient = adapter.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := redisClient.Ping(ctx); err != nil {
			logger.FatalCtx(ctx, "Failed to connect to Redis", zap.Error(err), zap.String("addr", cfg.Redis.Addr))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("Failed to close Redis client", zap.Error(err))
			}
		}()
		limiter = redisClient.RateLimiter()
		logger.InfoCtx(ctx, "Connected to Redis", zap.String("addr", cfg.Redis.Addr))
	} else {
		logger.WarnCtx(ctx, "Redis address not configured, rate limiting is disabled")
	}

	// Connect to the ledger
	throttle, err := ledger.NewThrottle(cfg.Ledger.Throttle, redisClient, clock)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to initialize ledger throttle", zap.Error(err))
	}
	defer throttle.Close()

	algodClient, err := adapter.NewAlgodClient(cfg.Ledger.AlgodURL, cfg.Ledger.AlgodToken)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create algod client", zap.Error(err), zap.String("algod_url", cfg.Ledger.AlgodURL))
	}
	indexerClient, err := adapter.NewIndexerClient(cfg.Ledger.IndexerURL, cfg.Ledger.IndexerToken)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create indexer client", zap.Error(err), zap.String("indexer_url", cfg.Ledger.IndexerURL))
	}
	chain, err := ledger.NewAlgorandLedger(algodClient, indexerClient, ledger.Config{
		OrganizerMnemonic: cfg.Ledger.OrganizerMnemonic,
		MaxRetryElapsed:   cfg.Ledger.MaxRetryElapsed,
		Throttle:          throttle,
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to initialize ledger", zap.Error(err))
	}
	directory := ledger.NewEventDirectory(chain, cfg.Ledger.EventsAppID, ledger.DirectoryConfig{
		TTL:         cfg.Ledger.Directory.TTL,
		StaleWindow: cfg.Ledger.Directory.StaleWindow,
	}, clock)
	logger.InfoCtx(ctx, "Initialized ledger", zap.Uint64("events_app_id", cfg.Ledger.EventsAppID))

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewRecorder(registry)

	// Domain events
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
		logger.InfoCtx(ctx, "Connected to NATS", zap.String("stream", cfg.NATS.StreamName))
	} else {
		logger.WarnCtx(ctx, "NATS URL not configured, domain events will not be published")
	}
	defer publisher.Close()

	// Email
	httpClient := adapter.NewHTTPClient(cfg.Notification.RequestTimeout, adapter.RetryPolicy{})
	sender, err := notification.NewResendSender(httpClient, notification.ResendConfig{
		APIURL:     cfg.Notification.ResendAPIURL,
		APIKey:     cfg.Notification.ResendAPIKey,
		AudienceID: cfg.Notification.AudienceID,
	})
	if err != nil {
		if cfg.Notification.Dispatcher == "inline" {
			logger.FatalCtx(ctx, "Inline ticket emails need an email provider", zap.Error(err))
		}
		logger.WarnCtx(ctx, "Email provider not configured, custom emails are disabled", zap.Error(err))
		sender = notification.NewUnavailableSender(err)
	}
	mailer := notification.NewMailer(signer, codec, sender, clock, notification.MailerConfig{
		FromAddress: cfg.Notification.FromAddress,
	})

	var dispatcher notification.Dispatcher
	switch cfg.Notification.Dispatcher {
	case "temporal":
		// Connect to Temporal with logger integration
		temporalClient, err := client.Dial(client.Options{
			HostPort:  cfg.Temporal.HostPort,
			Namespace: cfg.Temporal.Namespace,
			Logger:    temporal.NewZapLoggerAdapter(logger.Default()),
		})
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to Temporal", zap.Error(err))
		}
		defer temporalClient.Close()
		logger.InfoCtx(ctx, "Connected to Temporal", zap.String("host_port", cfg.Temporal.HostPort))

		dispatcher = notification.NewTemporalDispatcher(temporalClient, cfg.Temporal.NotificationTaskQueue)
	default:
		dispatcher = notification.NewInlineDispatcher(mailer, notification.InlineConfig{
			PoolSize:  cfg.Notification.Worker.WorkerPoolSize,
			QueueSize: cfg.Notification.Worker.WorkerQueueSize,
			Timeout:   cfg.Notification.RequestTimeout,
		})
	}
	defer dispatcher.Close()

	// Core services
	registrationService := registration.NewService(
		dataStore, directory, chain, signer, codec, dispatcher, publisher, clock, recorder,
		registration.Config{
			RequireOnchainBox:  cfg.Registration.RequireOnchainBox,
			ConfirmationRounds: cfg.Ledger.ConfirmationRounds,
			SubmissionDelay:    cfg.Ledger.SubmissionDelay,
		})

	sessions := checkin.NewSessionManager(
		directory, chain, codec, verifier, dataStore, publisher, clock, recorder,
		checkin.SessionConfig{
			RegistrantCacheTTL: cfg.Checkin.RegistrantCacheTTL,
			ScanCooldown:       cfg.Checkin.ScanCooldown,
			IdleTimeout:        cfg.Checkin.SessionIdleTimeout,
			RedemptionMode:     cfg.Checkin.RedemptionMode,
		})
	go sessions.Run(ctx)


	// Create server config
	serverConfig := server.Config{
		Debug:          cfg.Debug,
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:    time.Duration(cfg.Server.IdleTimeout) * time.Second,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		IPFSGateway:    cfg.URI.IPFSGateway,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.APIKeys,
		},
		PublicRateLimit: middleware.RateLimitConfig{
			RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
			Burst:             cfg.RateLimit.Burst,
		},
		ScanRateLimit: middleware.RateLimitConfig{
			RequestsPerMinute: cfg.RateLimit.ScanRequestsPerMinute,
			Burst:             cfg.RateLimit.Burst,
		},
	}

	srv := server.New(serverConfig, rest.Dependencies{
		Registration: registrationService,
		Sessions:     sessions,
		Directory:    directory,
		Signer:       signer,
		Verifier:     verifier,
		Codec:        codec,
		Mailer:       mailer,
		Clock:        clock,
	}, limiter, registry)

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err, zap.String("component", "server"))
	}

	logger.Info("API server stopped")
}
