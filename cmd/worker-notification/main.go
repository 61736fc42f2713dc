package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/interceptor"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/chainpass/ticketing/internal/adapter"
	"github.com/chainpass/ticketing/internal/config"
	"github.com/chainpass/ticketing/internal/logger"
	"github.com/chainpass/ticketing/internal/notification"
	temporal "github.com/chainpass/ticketing/internal/providers/temporal"
	"github.com/chainpass/ticketing/internal/qrcode"
	"github.com/chainpass/ticketing/internal/store"
	"github.com/chainpass/ticketing/internal/ticket"
	"github.com/chainpass/ticketing/internal/workflows"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadNotificationWorkerConfig(*configFile, *envPath)
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
		Service:         "worker-notification",
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Worker Notification")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database")

	dataStore := store.NewPGStore(db)
	clock := adapter.NewClock()
	jcs := adapter.NewJCS()

	// Tickets are signed here, right before they are emailed
	signer, err := ticket.NewSigner(cfg.Signing.PrivateKey, ticket.NewEncoder(jcs))
	if err != nil {
		logger.FatalCtx(ctx, "Failed to load ticket signing key", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Loaded ticket signing key", zap.String("public_key", signer.PublicKey()))

	httpClient := adapter.NewHTTPClient(cfg.Notification.RequestTimeout, adapter.RetryPolicy{})
	sender, err := notification.NewResendSender(httpClient, notification.ResendConfig{
		APIURL:     cfg.Notification.ResendAPIURL,
		APIKey:     cfg.Notification.ResendAPIKey,
		AudienceID: cfg.Notification.AudienceID,
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to initialize email provider", zap.Error(err))
	}
	mailer := notification.NewMailer(signer, qrcode.NewCodec(jcs, qrcode.DefaultImageSize), sender, clock, notification.MailerConfig{
		FromAddress: cfg.Notification.FromAddress,
	})

	executor := workflows.NewExecutor(dataStore, mailer)

	// Connect to Temporal with logger integration
	temporalClient, err := client.Dial(client.Options{
		HostPort:  cfg.Temporal.HostPort,
		Namespace: cfg.Temporal.Namespace,
		Logger:    temporal.NewZapLoggerAdapter(logger.Default()),
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to Temporal", zap.Error(err), zap.String("host_port", cfg.Temporal.HostPort))
	}
	defer temporalClient.Close()

	logger.InfoCtx(ctx, "Connected to Temporal",
		zap.String("host_port", cfg.Temporal.HostPort),
		zap.String("namespace", cfg.Temporal.Namespace),
	)

	temporalWorker := worker.New(temporalClient,
		cfg.Temporal.NotificationTaskQueue,
		worker.Options{
			MaxConcurrentActivityExecutionSize: cfg.Temporal.MaxConcurrentActivityExecutionSize,
			WorkerActivitiesPerSecond:          cfg.Temporal.WorkerActivitiesPerSecond,
			Interceptors: []interceptor.WorkerInterceptor{
				temporal.NewSentryActivityInterceptor(),
			},
		})

	workerNotification := workflows.NewWorkerNotification(executor)

	// Register workflows
	temporalWorker.RegisterWorkflowWithOptions(workerNotification.DeliverTicketEmail, workflow.RegisterOptions{
		Name: notification.TicketEmailWorkflowName,
	})
	logger.InfoCtx(ctx, "Registered notification workflows")

	// Register activities
	temporalWorker.RegisterActivity(executor.LoadTicketRecipient)
	temporalWorker.RegisterActivity(executor.SendTicketEmail)
	temporalWorker.RegisterActivity(executor.AddAudienceContact)
	logger.InfoCtx(ctx, "Registered notification activities")

	if err := temporalWorker.Start(); err != nil {
		logger.FatalCtx(ctx, "Failed to start Temporal worker", zap.Error(err))
	}

	logger.InfoCtx(ctx, "Worker Notification started successfully",
		zap.String("task_queue", cfg.Temporal.NotificationTaskQueue),
	)

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logger.InfoCtx(ctx, "Shutting down Worker Notification...")
	temporalWorker.Stop()
	logger.InfoCtx(ctx, "Worker Notification stopped")
}
