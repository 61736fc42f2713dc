package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alitto/pond/v2"
	"go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.uber.org/zap"

	"github.com/chainpass/ticketing/internal/logger"
	"github.com/chainpass/ticketing/internal/providers/temporal"
)

// TicketEmailWorkflowName is the registered name of the ticket email workflow
const TicketEmailWorkflowName = "DeliverTicketEmail"

// Dispatcher hands an approved attendee's ticket email off for delivery.
// Dispatch returns once the work is queued; delivery failures never reach the caller.
//
//go:generate mockgen -source=dispatcher.go -destination=../mocks/dispatcher.go -package=mocks -mock_names=Dispatcher=MockDispatcher
type Dispatcher interface {
	// DispatchTicketEmail queues delivery of the ticket email for req
	DispatchTicketEmail(ctx context.Context, req TicketEmailRequest) error

	// Close waits for queued work owned by the dispatcher
	Close()
}

// TicketEmailWorkflowID is the id of the ticket email workflow of a request.
// One request has at most one running delivery.
func TicketEmailWorkflowID(requestID uint64) string {
	return fmt.Sprintf("ticket-email-%d", requestID)
}

type temporalDispatcher struct {
	orchestrator temporal.TemporalOrchestrator
	taskQueue    string
}

// NewTemporalDispatcher creates a Dispatcher that starts a durable workflow per email
func NewTemporalDispatcher(orchestrator temporal.TemporalOrchestrator, taskQueue string) Dispatcher {
	return &temporalDispatcher{orchestrator: orchestrator, taskQueue: taskQueue}
}

func (d *temporalDispatcher) DispatchTicketEmail(ctx context.Context, req TicketEmailRequest) error {
	options := client.StartWorkflowOptions{
		ID:                       TicketEmailWorkflowID(req.RequestID),
		TaskQueue:                d.taskQueue,
		WorkflowExecutionTimeout: 24 * time.Hour,
		WorkflowIDReusePolicy:    enums.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE_FAILED_ONLY,
	}

	run, err := d.orchestrator.ExecuteWorkflow(ctx, options, TicketEmailWorkflowName, req)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			logger.InfoCtx(ctx, "Ticket email already dispatched", zap.String("workflow_id", options.ID))
			return nil
		}
		return fmt.Errorf("failed to start ticket email workflow: %w", err)
	}

	logger.InfoCtx(ctx, "Dispatched ticket email",
		zap.String("workflow_id", run.GetID()),
		zap.String("run_id", run.GetRunID()),
	)

	return nil
}

func (d *temporalDispatcher) Close() {}

// InlineConfig sizes the in-process delivery pool
type InlineConfig struct {
	PoolSize  int
	QueueSize int
	Timeout   time.Duration
}

type inlineDispatcher struct {
	mailer  Mailer
	pool    pond.Pool
	timeout time.Duration
}

// NewInlineDispatcher creates a Dispatcher that sends from a bounded in-process pool.
// Queued emails are lost if the process exits, which is why Temporal is the default.
func NewInlineDispatcher(mailer Mailer, config InlineConfig) Dispatcher {
	if config.PoolSize <= 0 {
		config.PoolSize = 4
	}
	if config.QueueSize <= 0 {
		config.QueueSize = 256
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}

	return &inlineDispatcher{
		mailer:  mailer,
		pool:    pond.NewPool(config.PoolSize, pond.WithQueueSize(config.QueueSize)),
		timeout: config.Timeout,
	}
}

func (d *inlineDispatcher) DispatchTicketEmail(ctx context.Context, req TicketEmailRequest) error {
	// the request context ends with the HTTP call, the send must outlive it
	sendCtx := context.WithoutCancel(ctx)

	_, ok := d.pool.TrySubmit(func() {
		ctx, cancel := context.WithTimeout(sendCtx, d.timeout)
		defer cancel()

		if _, err := d.mailer.SendTicketEmail(ctx, req); err != nil {
			logger.ErrorCtx(ctx, fmt.Errorf("failed to send ticket email: %w", err),
				zap.Uint64("request_id", req.RequestID))
			return
		}

		if err := d.mailer.AddContact(ctx, req.Email); err != nil {
			logger.WarnCtx(ctx, "Failed to add audience contact",
				zap.Uint64("request_id", req.RequestID),
				zap.Error(err))
		}
	})
	if !ok {
		return fmt.Errorf("ticket email queue is full")
	}

	return nil
}

func (d *inlineDispatcher) Close() {
	logger.Info("Draining ticket email pool",
		zap.Uint64("waiting", d.pool.WaitingTasks()),
		zap.Uint64("completed", d.pool.CompletedTasks()))
	d.pool.StopAndWait()
}
