package workflows

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"

	"github.com/chainpass/ticketing/internal/logger"
	"github.com/chainpass/ticketing/internal/notification"
)

// DeliverTicketEmail loads the current recipient of an approved request, emails the ticket
// and adds the attendee to the audience. The approval is final by the time this runs, so a
// failed delivery only fails the workflow.
func (w *workerNotification) DeliverTicketEmail(ctx workflow.Context, req notification.TicketEmailRequest) error {
	logger.InfoWf(ctx, "Starting ticket email delivery",
		zap.Uint64("requestID", req.RequestID),
		zap.Uint64("eventID", req.EventID))

	lookupCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 15 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval: 2 * time.Second,
			MaximumAttempts: 3,
		},
	})

	var recipient *TicketRecipient
	if err := workflow.ExecuteActivity(lookupCtx, w.executor.LoadTicketRecipient, req.RequestID).Get(lookupCtx, &recipient); err != nil {
		return err
	}
	if recipient == nil {
		logger.InfoWf(ctx, "No ticket recipient, skipping delivery",
			zap.Uint64("requestID", req.RequestID))
		return nil
	}

	req.Email = recipient.Email
	if recipient.AssetID != 0 {
		req.AssetID = recipient.AssetID
	}
	if recipient.WalletAddress != "" {
		req.WalletAddress = recipient.WalletAddress
	}

	// Temporal retries the send with exponential backoff: 10s, 20s, 40s, ... capped at 5m
	sendCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    10 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    5 * time.Minute,
			MaximumAttempts:    10,
		},
	})

	var messageID string
	if err := workflow.ExecuteActivity(sendCtx, w.executor.SendTicketEmail, req).Get(sendCtx, &messageID); err != nil {
		logger.ErrorWf(ctx, err, zap.Uint64("requestID", req.RequestID))
		return err
	}

	contactCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 15 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval: 5 * time.Second,
			MaximumAttempts: 3,
		},
	})
	if err := workflow.ExecuteActivity(contactCtx, w.executor.AddAudienceContact, req.Email).Get(contactCtx, nil); err != nil {
		logger.WarnWf(ctx, "Failed to add audience contact",
			zap.Uint64("requestID", req.RequestID),
			zap.Error(err))
	}

	logger.InfoWf(ctx, "Ticket email delivered",
		zap.Uint64("requestID", req.RequestID),
		zap.String("messageID", messageID))

	return nil
}
