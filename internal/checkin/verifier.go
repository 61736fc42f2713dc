package checkin

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/chainpass/ticketing/internal/adapter"
	"github.com/chainpass/ticketing/internal/domain"
	"github.com/chainpass/ticketing/internal/logger"
	"github.com/chainpass/ticketing/internal/messaging"
	"github.com/chainpass/ticketing/internal/metrics"
	"github.com/chainpass/ticketing/internal/qrcode"
	"github.com/chainpass/ticketing/internal/registrants"
	"github.com/chainpass/ticketing/internal/store"
	"github.com/chainpass/ticketing/internal/ticket"
)

// Reason is a machine readable cause attached to a non-success decision
type Reason string

const (
	ReasonMalformedPayload  Reason = "malformed_payload"
	ReasonMissingAddress    Reason = "missing_address"
	ReasonWrongEvent        Reason = "wrong_event"
	ReasonNotRegistered     Reason = "not_registered"
	ReasonLookupFailed      Reason = "lookup_failed"
	ReasonSignatureInvalid  Reason = "signature_invalid"
	ReasonUnsigned          Reason = "unsigned"
	ReasonAlreadyCheckedIn  Reason = "already_checked_in"
	ReasonRedemptionFailure Reason = "redemption_not_recorded"
)

const (
	msgMalformed      = "Invalid QR code format. This doesn't appear to be a valid ticket."
	msgMissingAddress = "Invalid ticket QR code. Missing wallet address."
	msgNotRegistered  = "Invalid ticket! This user is not registered for this event."
	msgVerified       = "Valid ticket! User is registered for this event. Signature verified."
	msgUnverified     = "Valid ticket! User is registered for this event. Signature verification failed, proceed with caution."
	msgUnsigned       = "Valid ticket! User is registered for this event. Ticket is not signed, proceed with caution."
)

// Decision is the admit or deny verdict for one scan
type Decision struct {
	Status           domain.ScanStatus      `json:"status"`
	Admitted         bool                   `json:"admitted"`
	Message          string                 `json:"message"`
	Reason           Reason                 `json:"reason,omitempty"`
	EventID          uint64                 `json:"eventId"`
	TicketEventID    string                 `json:"ticketEventId,omitempty"`
	WalletAddress    string                 `json:"walletAddress,omitempty"`
	AssetID          uint64                 `json:"assetId,omitempty"`
	Signature        domain.SignatureStatus `json:"signature,omitempty"`
	Format           ticket.FormatKind      `json:"format,omitempty"`
	Source           registrants.Source     `json:"source,omitempty"`
	FirstCheckedInAt *time.Time             `json:"firstCheckedInAt,omitempty"`
	ScannedAt        time.Time              `json:"scannedAt"`
}

// Verifier decides whether a scanned ticket admits its holder to one event
//
//go:generate mockgen -source=verifier.go -destination=../mocks/checkin_verifier.go -package=mocks -mock_names=Verifier=MockCheckinVerifier
type Verifier interface {
	// Scan never fails. Every problem with the presented ticket becomes an error decision
	// so the scanning loop keeps running.
	Scan(ctx context.Context, raw string) Decision
}

// Config holds configuration for a check-in verifier
type Config struct {
	// EventID is the event doors are open for
	EventID uint64

	// SessionID is recorded with each admission
	SessionID string

	// RedemptionMode controls repeated admissions of the same wallet
	RedemptionMode domain.RedemptionMode
}

type verifier struct {
	codec       qrcode.Codec
	signatures  ticket.Verifier
	registrants registrants.Cache
	store       store.Store
	publisher   messaging.Publisher
	clock       adapter.Clock
	metrics     *metrics.Recorder
	config      Config
}

// NewVerifier creates a check-in verifier. The registrant cache is owned by the caller
// and normally lives as long as one check-in session.
func NewVerifier(
	codec qrcode.Codec,
	signatures ticket.Verifier,
	cache registrants.Cache,
	store store.Store,
	publisher messaging.Publisher,
	clock adapter.Clock,
	recorder *metrics.Recorder,
	config Config,
) Verifier {
	if !domain.IsValidRedemptionMode(config.RedemptionMode) {
		config.RedemptionMode = domain.RedemptionModeFlag
	}

	return &verifier{
		codec:       codec,
		signatures:  signatures,
		registrants: cache,
		store:       store,
		publisher:   publisher,
		clock:       clock,
		metrics:     recorder,
		config:      config,
	}
}

func (v *verifier) Scan(ctx context.Context, raw string) Decision {
	decision := v.scan(ctx, raw)
	v.metrics.Scanned(v.config.EventID, decision.Status, decision.Signature)

	logger.InfoCtx(ctx, "Ticket scanned",
		zap.Uint64("event_id", decision.EventID),
		zap.String("session_id", v.config.SessionID),
		zap.String("status", string(decision.Status)),
		zap.String("reason", string(decision.Reason)),
		zap.String("signature", string(decision.Signature)),
		zap.String("wallet", decision.WalletAddress))

	return decision
}

func (v *verifier) scan(ctx context.Context, raw string) Decision {
	decision := Decision{
		EventID:   v.config.EventID,
		ScannedAt: v.clock.Now().UTC(),
	}

	format, err := v.codec.Decode(raw)
	if err != nil {
		return deny(decision, ReasonMalformedPayload, msgMalformed)
	}

	t := ticket.Normalize(format)
	decision.Format = t.Format
	decision.WalletAddress = t.Payload.UserAddress
	decision.AssetID = t.Payload.AssetID
	decision.TicketEventID = t.Payload.EventID.String()

	if t.Payload.UserAddress == "" {
		return deny(decision, ReasonMissingAddress, msgMissingAddress)
	}

	decision.Signature = v.verifySignature(ctx, t)

	if id, err := strconv.ParseUint(decision.TicketEventID, 10, 64); err == nil && id != v.config.EventID {
		return deny(decision, ReasonWrongEvent, fmt.Sprintf("Invalid ticket! This ticket is for event %d.", id))
	}

	registrant, source, found, err := v.registrants.Lookup(ctx, t.Payload.UserAddress)
	if err != nil {
		logger.WarnCtx(ctx, "Registrant lookup failed",
			zap.String("wallet", t.Payload.UserAddress),
			zap.Error(err))
		return deny(decision, ReasonLookupFailed, fmt.Sprintf("Failed to verify registration: %v", err))
	}
	if !found {
		return deny(decision, ReasonNotRegistered, msgNotRegistered)
	}

	decision.Source = source
	decision.WalletAddress = store.NormalizeWallet(registrant.Address)
	decision.Admitted = true

	switch decision.Signature {
	case domain.SignatureStatusVerified:
		decision.Status = domain.ScanStatusSuccess
		decision.Message = msgVerified
	case domain.SignatureStatusUnverified:
		decision.Status = domain.ScanStatusWarning
		decision.Reason = ReasonSignatureInvalid
		decision.Message = msgUnverified
	default:
		decision.Status = domain.ScanStatusWarning
		decision.Reason = ReasonUnsigned
		decision.Message = msgUnsigned
	}

	return v.redeem(ctx, decision, t)
}

// verifySignature never denies. A bad or missing signature only lowers the trust signal.
func (v *verifier) verifySignature(ctx context.Context, t ticket.NormalizedTicket) domain.SignatureStatus {
	if !t.Signed() {
		return domain.SignatureStatusUnsigned
	}
	if v.signatures == nil {
		return domain.SignatureStatusUnverified
	}

	ok, err := v.signatures.Verify(t.Payload, t.Signature)
	if err != nil {
		logger.DebugCtx(ctx, "Signature could not be checked", zap.Error(err))
		return domain.SignatureStatusUnverified
	}
	if !ok {
		return domain.SignatureStatusUnverified
	}
	return domain.SignatureStatusVerified
}

// redeem records the first admission of the wallet
func (v *verifier) redeem(ctx context.Context, decision Decision, t ticket.NormalizedTicket) Decision {
	if v.config.RedemptionMode == domain.RedemptionModeOff {
		v.publishCheckIn(ctx, decision)
		return decision
	}

	// a normalized ticket always marshals
	payload, _ := json.Marshal(t)

	checkIn, created, err := v.store.CreateCheckIn(ctx, store.CreateCheckInInput{
		EventID:         v.config.EventID,
		WalletAddress:   decision.WalletAddress,
		AssetID:         decision.AssetID,
		SignatureStatus: decision.Signature,
		SessionID:       v.config.SessionID,
		ScanPayload:     datatypes.JSON(payload),
		CheckedInAt:     decision.ScannedAt,
	})
	if err != nil {
		// the holder is registered, a database outage must not stop the doors
		logger.ErrorCtx(ctx, fmt.Errorf("failed to record check-in: %w", err),
			zap.Uint64("event_id", v.config.EventID),
			zap.String("wallet", decision.WalletAddress))
		decision.Status = domain.ScanStatusWarning
		decision.Reason = ReasonRedemptionFailure
		decision.Message += " Check-in could not be recorded."
		return decision
	}

	if created {
		v.publishCheckIn(ctx, decision)
		return decision
	}

	first := checkIn.CheckedInAt.UTC()
	decision.FirstCheckedInAt = &first
	decision.Reason = ReasonAlreadyCheckedIn

	if v.config.RedemptionMode == domain.RedemptionModeReject {
		decision.Admitted = false
		decision.Status = domain.ScanStatusError
		decision.Message = fmt.Sprintf("Ticket already used! First checked in at %s.", first.Format(time.RFC3339))
		return decision
	}

	decision.Status = domain.ScanStatusWarning
	decision.Message = fmt.Sprintf("Ticket already checked in at %s. Proceed with caution.", first.Format(time.RFC3339))
	return decision
}

func (v *verifier) publishCheckIn(ctx context.Context, decision Decision) {
	err := v.publisher.PublishTicketEvent(ctx, &domain.TicketEvent{
		Type:          domain.TicketEventTicketCheckedIn,
		EventID:       strconv.FormatUint(v.config.EventID, 10),
		WalletAddress: decision.WalletAddress,
		AssetID:       decision.AssetID,
		OccurredAt:    decision.ScannedAt,
	})
	if err != nil {
		logger.WarnCtx(ctx, "Failed to publish check-in event", zap.Error(err))
	}
}

func deny(d Decision, reason Reason, message string) Decision {
	d.Status = domain.ScanStatusError
	d.Admitted = false
	d.Reason = reason
	d.Message = message
	return d
}
