package notification

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/chainpass/ticketing/internal/adapter"
	"github.com/chainpass/ticketing/internal/logger"
	"github.com/chainpass/ticketing/internal/qrcode"
	"github.com/chainpass/ticketing/internal/ticket"
)

// TicketEmailRequest identifies an approved attendee to send a ticket to
type TicketEmailRequest struct {
	RequestID     uint64    `json:"requestId"`
	EventID       uint64    `json:"eventId"`
	EventName     string    `json:"eventName"`
	Location      string    `json:"location,omitempty"`
	StartTime     time.Time `json:"startTime,omitempty"`
	WalletAddress string    `json:"walletAddress"`
	Email         string    `json:"email"`
	AssetID       uint64    `json:"assetId"`
}

// Mailer composes and sends ticket and organizer emails
//
//go:generate mockgen -source=mailer.go -destination=../mocks/mailer.go -package=mocks -mock_names=Mailer=MockMailer
type Mailer interface {
	// SendTicketEmail issues a freshly signed ticket for req and emails its QR code
	SendTicketEmail(ctx context.Context, req TicketEmailRequest) (string, error)

	// SendCustomEmail sends an organizer written message
	SendCustomEmail(ctx context.Context, to []string, subject, html string) (string, error)

	// AddContact adds an attendee to the mailing audience
	AddContact(ctx context.Context, address string) error
}

// MailerConfig holds sender identity
type MailerConfig struct {
	FromAddress string
}

type mailer struct {
	signer ticket.Signer
	codec  qrcode.Codec
	sender Sender
	clock  adapter.Clock
	config MailerConfig
}

// NewMailer creates a Mailer
func NewMailer(signer ticket.Signer, codec qrcode.Codec, sender Sender, clock adapter.Clock, config MailerConfig) Mailer {
	return &mailer{
		signer: signer,
		codec:  codec,
		sender: sender,
		clock:  clock,
		config: config,
	}
}

func (m *mailer) SendTicketEmail(ctx context.Context, req TicketEmailRequest) (string, error) {
	payload := ticket.NewPayload(
		req.AssetID,
		req.WalletAddress,
		ticket.StringEventID(strconv.FormatUint(req.EventID, 10)),
		req.EventName,
		m.clock.Now(),
	)

	signed, err := m.signer.Issue(payload)
	if err != nil {
		return "", fmt.Errorf("failed to issue ticket: %w", err)
	}

	png, err := m.codec.Encode(signed)
	if err != nil {
		return "", fmt.Errorf("failed to render ticket QR code: %w", err)
	}

	data := TicketEmailData{
		EventName:     req.EventName,
		EventID:       strconv.FormatUint(req.EventID, 10),
		WalletAddress: req.WalletAddress,
		AssetID:       req.AssetID,
		Location:      req.Location,
	}
	if !req.StartTime.IsZero() {
		data.StartsAt = req.StartTime.UTC().Format("Mon, 02 Jan 2006 15:04 MST")
	}

	email, err := ComposeTicketEmail(m.config.FromAddress, req.Email, data, png)
	if err != nil {
		return "", err
	}

	messageID, err := m.sender.Send(ctx, email)
	if err != nil {
		return "", err
	}

	logger.InfoCtx(ctx, "Sent ticket email",
		zap.Uint64("request_id", req.RequestID),
		zap.Uint64("event_id", req.EventID),
		zap.String("message_id", messageID),
	)

	return messageID, nil
}

func (m *mailer) SendCustomEmail(ctx context.Context, to []string, subject, html string) (string, error) {
	email, err := ComposeCustomEmail(m.config.FromAddress, to, subject, html)
	if err != nil {
		return "", err
	}

	return m.sender.Send(ctx, email)
}

func (m *mailer) AddContact(ctx context.Context, address string) error {
	return m.sender.AddContact(ctx, address)
}
