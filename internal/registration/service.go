package registration

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/algorand/go-algorand-sdk/v2/types"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/chainpass/ticketing/internal/adapter"
	"github.com/chainpass/ticketing/internal/domain"
	"github.com/chainpass/ticketing/internal/ledger"
	"github.com/chainpass/ticketing/internal/logger"
	"github.com/chainpass/ticketing/internal/messaging"
	"github.com/chainpass/ticketing/internal/metrics"
	"github.com/chainpass/ticketing/internal/notification"
	"github.com/chainpass/ticketing/internal/qrcode"
	"github.com/chainpass/ticketing/internal/store"
	"github.com/chainpass/ticketing/internal/store/schema"
	"github.com/chainpass/ticketing/internal/ticket"
)

// DefaultSubmissionDelay separates consecutive transfers of an approval batch
const DefaultSubmissionDelay = 20 * time.Millisecond

// SubmitInput is an attendee's request for a ticket
type SubmitInput struct {
	EventID       uint64
	WalletAddress string
	Email         string
}

// SubmitResult is the request a submission resolved to
type SubmitResult struct {
	Request *schema.RegistrationRequest
	// Created is false when an active request for the same event and wallet already existed
	Created bool
}

// IssuedTicket is a signed ticket with its QR code rendered as a data URL
type IssuedTicket struct {
	Ticket ticket.SignedTicket
	QRCode string
}

// Service is the registration state machine.
//
//	pending --approve--> approved
//	pending --reject---> rejected
//
// approved and rejected are terminal.
//
//go:generate mockgen -source=service.go -destination=../mocks/registration_service.go -package=mocks -mock_names=Service=MockRegistrationService
type Service interface {
	// Submit validates capacity and creates a pending request
	Submit(ctx context.Context, input SubmitInput) (*SubmitResult, error)

	// Approve transfers a ticket to each pending requester, one at a time in input order,
	// and marks a request approved only once its transfer is confirmed
	Approve(ctx context.Context, requestIDs []uint64) []Outcome

	// Reject marks each pending request rejected without touching the ledger
	Reject(ctx context.Context, requestIDs []uint64) []Outcome

	// UpdateNotes replaces the admin notes of a request. The status is never changed.
	UpdateNotes(ctx context.Context, requestID uint64, notes string) (*store.RegistrationRequestWithEmail, error)

	// LatestRequest returns the newest request of a wallet for an event
	LatestRequest(ctx context.Context, eventID uint64, walletAddress string) (*schema.RegistrationRequest, error)

	// ListRequests returns requests for organizers, newest first, with the total count
	ListRequests(ctx context.Context, filter store.RegistrationRequestFilter) ([]*store.RegistrationRequestWithEmail, uint64, error)

	// CheckOwnership compares one request with the ledger and repairs what can be repaired
	CheckOwnership(ctx context.Context, request *store.RegistrationRequestWithEmail) (Finding, error)

	// Reconcile runs CheckOwnership over every live request, optionally of one event
	Reconcile(ctx context.Context, eventID *uint64) (*ReconcileReport, error)

	// IssueTicket signs a fresh ticket for the wallet's approved request
	IssueTicket(ctx context.Context, eventID uint64, walletAddress string) (*IssuedTicket, error)
}

// Config holds configuration for the registration service
type Config struct {
	// RequireOnchainBox makes Submit demand the requester's registrant box
	RequireOnchainBox bool

	// ConfirmationRounds bounds each transfer's confirmation wait
	ConfirmationRounds uint64

	// SubmissionDelay is the pause between transfers in one approval batch
	SubmissionDelay time.Duration
}

type service struct {
	store      store.Store
	directory  ledger.EventDirectory
	ledger     ledger.Ledger
	signer     ticket.Signer
	codec      qrcode.Codec
	dispatcher notification.Dispatcher
	publisher  messaging.Publisher
	clock      adapter.Clock
	metrics    *metrics.Recorder
	config     Config

	// asset ids never change once a ticket application is created
	assetMu  sync.RWMutex
	assetIDs map[uint64]uint64

	// approvals keeps one approval per request running in this process
	approvals singleflight.Group
}

// NewService creates a registration service
func NewService(
	store store.Store,
	directory ledger.EventDirectory,
	l ledger.Ledger,
	signer ticket.Signer,
	codec qrcode.Codec,
	dispatcher notification.Dispatcher,
	publisher messaging.Publisher,
	clock adapter.Clock,
	recorder *metrics.Recorder,
	config Config,
) Service {
	if config.ConfirmationRounds == 0 {
		config.ConfirmationRounds = domain.DEFAULT_CONFIRMATION_ROUNDS
	}
	if config.SubmissionDelay < 0 {
		config.SubmissionDelay = 0
	}

	return &service{
		store:      store,
		directory:  directory,
		ledger:     l,
		signer:     signer,
		codec:      codec,
		dispatcher: dispatcher,
		publisher:  publisher,
		clock:      clock,
		metrics:    recorder,
		config:     config,
		assetIDs:   make(map[uint64]uint64),
	}
}

// ValidateWallet normalizes a ledger address and checks its checksum
func ValidateWallet(address string) (string, error) {
	normalized := store.NormalizeWallet(address)
	if normalized == "" {
		return "", fmt.Errorf("%w: wallet address is required", domain.ErrValidation)
	}
	if _, err := types.DecodeAddress(normalized); err != nil {
		return "", fmt.Errorf("%w: invalid wallet address", domain.ErrValidation)
	}
	return normalized, nil
}

func (s *service) Submit(ctx context.Context, input SubmitInput) (*SubmitResult, error) {
	wallet, err := ValidateWallet(input.WalletAddress)
	if err != nil {
		return nil, err
	}

	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email address", domain.ErrValidation)
	}

	// the registered count must be current, so the cache is bypassed
	event, err := s.directory.GetFresh(ctx, input.EventID)
	if err != nil {
		return nil, err
	}

	// Capacity is checked before anything is written
	if !event.HasCapacity() {
		s.metrics.RegistrationSubmitted(input.EventID, "capacity_exceeded")
		return nil, fmt.Errorf("%w: %d of %d seats taken", domain.ErrCapacityExceeded, event.RegisteredCount, event.MaxParticipants)
	}

	assetID, err := s.ticketAssetID(ctx, event)
	if err != nil {
		return nil, err
	}

	if s.config.RequireOnchainBox {
		addr, _ := types.DecodeAddress(wallet)
		_, err := s.ledger.ReadBox(ctx, event.TicketAppID, addr[:])
		if errors.Is(err, domain.ErrBoxNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrRegistrationNotOnChain, wallet)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read registrant box: %w", err)
		}
	}

	request, created, err := s.store.CreateRegistrationRequest(ctx, store.CreateRegistrationRequestInput{
		EventID:       input.EventID,
		WalletAddress: wallet,
		Email:         email,
		AssetID:       &assetID,
		RequestedAt:   s.clock.Now(),
	})
	if err != nil {
		return nil, err
	}

	if !created {
		s.metrics.RegistrationSubmitted(input.EventID, "existing")
		logger.InfoCtx(ctx, "Returning existing registration request",
			zap.Uint64("request_id", request.RequestID),
			zap.String("status", string(request.Status)))
		return &SubmitResult{Request: request, Created: false}, nil
	}

	s.metrics.RegistrationSubmitted(input.EventID, "created")
	logger.InfoCtx(ctx, "Created registration request",
		zap.Uint64("request_id", request.RequestID),
		zap.Uint64("event_id", input.EventID),
		zap.String("wallet", wallet))

	s.publish(ctx, domain.TicketEventRegistrationSubmitted, &request.RequestID, request.EventID, wallet, assetID, "")

	return &SubmitResult{Request: request, Created: true}, nil
}

func (s *service) UpdateNotes(ctx context.Context, requestID uint64, notes string) (*store.RegistrationRequestWithEmail, error) {
	if err := s.store.UpdateRegistrationRequestNotes(ctx, requestID, notes); err != nil {
		return nil, err
	}

	request, err := s.store.GetRegistrationRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, fmt.Errorf("%w: %d", domain.ErrRequestNotFound, requestID)
	}

	return request, nil
}

func (s *service) LatestRequest(ctx context.Context, eventID uint64, walletAddress string) (*schema.RegistrationRequest, error) {
	wallet, err := ValidateWallet(walletAddress)
	if err != nil {
		return nil, err
	}

	request, err := s.store.GetLatestRegistrationRequest(ctx, eventID, wallet)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, fmt.Errorf("%w: no request for event %d", domain.ErrRequestNotFound, eventID)
	}

	return request, nil
}

func (s *service) ListRequests(ctx context.Context, filter store.RegistrationRequestFilter) ([]*store.RegistrationRequestWithEmail, uint64, error) {
	for _, status := range filter.Statuses {
		if !domain.IsValidRequestStatus(status) {
			return nil, 0, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, status)
		}
	}

	return s.store.ListRegistrationRequests(ctx, filter)
}

func (s *service) IssueTicket(ctx context.Context, eventID uint64, walletAddress string) (*IssuedTicket, error) {
	request, err := s.LatestRequest(ctx, eventID, walletAddress)
	if err != nil {
		return nil, err
	}
	if request.Status != domain.RequestStatusApproved {
		return nil, fmt.Errorf("%w: request %d is %s", domain.ErrTicketNotIssuable, request.RequestID, request.Status)
	}

	event, err := s.directory.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}

	assetID, err := s.requestAssetID(ctx, request.AssetID, event)
	if err != nil {
		return nil, err
	}

	payload := ticket.NewPayload(
		assetID,
		request.WalletAddress,
		ticket.StringEventID(strconv.FormatUint(eventID, 10)),
		event.Name,
		s.clock.Now(),
	)

	signed, err := s.signer.Issue(payload)
	if err != nil {
		return nil, err
	}

	qr, err := s.codec.EncodeDataURL(signed)
	if err != nil {
		return nil, err
	}

	return &IssuedTicket{Ticket: signed, QRCode: qr}, nil
}

// ticketAssetID reads the ticket asset id from the event's ticket application
func (s *service) ticketAssetID(ctx context.Context, event domain.EventConfig) (uint64, error) {
	s.assetMu.RLock()
	assetID, ok := s.assetIDs[event.TicketAppID]
	s.assetMu.RUnlock()
	if ok {
		return assetID, nil
	}

	if event.TicketAppID == 0 {
		return 0, fmt.Errorf("%w: event %d has no ticket application", domain.ErrConfiguration, event.EventID)
	}

	assetID, err := s.ledger.GlobalUint(ctx, event.TicketAppID, domain.ASSET_ID_GLOBAL_KEY)
	if err != nil {
		return 0, fmt.Errorf("failed to read ticket asset id: %w", err)
	}
	if assetID == 0 {
		return 0, fmt.Errorf("%w: event %d has no ticket asset", domain.ErrConfiguration, event.EventID)
	}

	s.assetMu.Lock()
	s.assetIDs[event.TicketAppID] = assetID
	s.assetMu.Unlock()

	return assetID, nil
}

// requestAssetID prefers the asset recorded on the request
func (s *service) requestAssetID(ctx context.Context, recorded *uint64, event domain.EventConfig) (uint64, error) {
	if recorded != nil && *recorded != 0 {
		return *recorded, nil
	}
	return s.ticketAssetID(ctx, event)
}

// publish emits a domain event. Broker failures are logged and never fail the operation.
func (s *service) publish(ctx context.Context, eventType domain.TicketEventType, requestID *uint64, eventID uint64, wallet string, assetID uint64, txID string) {
	event := &domain.TicketEvent{
		Type:          eventType,
		EventID:       strconv.FormatUint(eventID, 10),
		WalletAddress: wallet,
		AssetID:       assetID,
		TxID:          txID,
		OccurredAt:    s.clock.Now().UTC(),
	}
	if requestID != nil {
		event.RequestID = *requestID
	}

	if err := s.publisher.PublishTicketEvent(ctx, event); err != nil {
		logger.WarnCtx(ctx, "Failed to publish ticket event",
			zap.String("type", string(eventType)),
			zap.Error(err))
	}
}
