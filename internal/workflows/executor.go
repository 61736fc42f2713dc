package workflows

import (
	"context"
	"errors"
	"fmt"

	"go.temporal.io/sdk/temporal"
	"go.uber.org/zap"

	"github.com/chainpass/ticketing/internal/domain"
	"github.com/chainpass/ticketing/internal/logger"
	"github.com/chainpass/ticketing/internal/notification"
	"github.com/chainpass/ticketing/internal/store"
)

// TicketRecipient is the current contact data of an approved request
type TicketRecipient struct {
	Email         string `json:"email"`
	WalletAddress string `json:"walletAddress"`
	AssetID       uint64 `json:"assetId"`
}

// Executor defines the activities of the notification worker
//
//go:generate mockgen -source=executor.go -destination=../mocks/executor_notification.go -package=mocks -mock_names=Executor=MockNotificationExecutor
type Executor interface {
	// LoadTicketRecipient returns the recipient of an approved request.
	// It returns nil when the request is gone, not approved or has no email on file.
	LoadTicketRecipient(ctx context.Context, requestID uint64) (*TicketRecipient, error)

	// SendTicketEmail signs a ticket and emails it, returning the provider message id
	SendTicketEmail(ctx context.Context, req notification.TicketEmailRequest) (string, error)

	// AddAudienceContact adds the attendee to the mailing audience
	AddAudienceContact(ctx context.Context, email string) error
}

type executor struct {
	store  store.Store
	mailer notification.Mailer
}

// NewExecutor creates a new executor instance
func NewExecutor(store store.Store, mailer notification.Mailer) Executor {
	return &executor{
		store:  store,
		mailer: mailer,
	}
}

func (e *executor) LoadTicketRecipient(ctx context.Context, requestID uint64) (*TicketRecipient, error) {
	request, err := e.store.GetRegistrationRequest(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to load registration request: %w", err)
	}
	if request == nil {
		logger.WarnCtx(ctx, "Registration request not found", zap.Uint64("request_id", requestID))
		return nil, nil
	}
	if request.Status != domain.RequestStatusApproved || request.Email == "" {
		logger.InfoCtx(ctx, "Registration request has no ticket recipient",
			zap.Uint64("request_id", requestID),
			zap.String("status", string(request.Status)),
			zap.Bool("has_email", request.Email != ""))
		return nil, nil
	}

	recipient := &TicketRecipient{
		Email:         request.Email,
		WalletAddress: request.WalletAddress,
	}
	if request.AssetID != nil {
		recipient.AssetID = *request.AssetID
	}

	return recipient, nil
}

func (e *executor) SendTicketEmail(ctx context.Context, req notification.TicketEmailRequest) (string, error) {
	messageID, err := e.mailer.SendTicketEmail(ctx, req)
	if err != nil {
		// retrying cannot fix missing keys or bad input
		if errors.Is(err, domain.ErrConfiguration) ||
			errors.Is(err, domain.ErrValidation) ||
			errors.Is(err, domain.ErrMalformedPayload) {
			return "", temporal.NewNonRetryableApplicationError(err.Error(), "TicketEmailInvalid", err)
		}
		return "", err
	}

	return messageID, nil
}

func (e *executor) AddAudienceContact(ctx context.Context, email string) error {
	return e.mailer.AddContact(ctx, email)
}
