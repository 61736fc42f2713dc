package notification

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"strings"

	"github.com/chainpass/ticketing/internal/domain"
)

const (
	// QRContentID is the inline attachment id the ticket email body references as cid:qrcode
	QRContentID = "qrcode"

	// QRAttachmentName is the filename of the ticket QR attachment
	QRAttachmentName = "ticket-qr.png"
)

// Attachment is an email attachment with base64 content.
// ContentID makes it an inline image addressable from the HTML body.
type Attachment struct {
	Filename    string `json:"filename"`
	Content     string `json:"content"`
	ContentType string `json:"content_type,omitempty"`
	ContentID   string `json:"content_id,omitempty"`
}

// Email is a ready to send message
type Email struct {
	From        string       `json:"from"`
	To          []string     `json:"to"`
	Subject     string       `json:"subject"`
	HTML        string       `json:"html"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// TicketEmailData is what the ticket email template renders
type TicketEmailData struct {
	EventName     string
	EventID       string
	WalletAddress string
	AssetID       uint64
	Location      string
	StartsAt      string
}

var ticketEmailTemplate = template.Must(template.New("ticket").Parse(`<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif; color: #1f2937;">
    <h2>Your ticket for {{.EventName}} is confirmed</h2>
    <p>Your registration has been approved and your ticket has been sent to your wallet.</p>
    {{- if .StartsAt}}
    <p><strong>When:</strong> {{.StartsAt}}</p>
    {{- end}}
    {{- if .Location}}
    <p><strong>Where:</strong> {{.Location}}</p>
    {{- end}}
    <p>Show this QR code at the entrance:</p>
    <img src="cid:` + QRContentID + `" alt="Ticket QR code" width="300" height="300" />
    <p style="font-size: 12px; color: #6b7280;">
      Wallet: {{.WalletAddress}}<br />
      Ticket asset: {{.AssetID}}<br />
      Event: {{.EventID}}
    </p>
  </body>
</html>
`))

// TicketSubject is the subject line of the ticket confirmation email
func TicketSubject(eventName string) string {
	return fmt.Sprintf("Your Ticket for %s is Confirmed!", eventName)
}

// ComposeTicketEmail renders the confirmation email with the QR PNG attached inline
func ComposeTicketEmail(from, to string, data TicketEmailData, qrPNG []byte) (Email, error) {
	if strings.TrimSpace(to) == "" {
		return Email{}, fmt.Errorf("%w: ticket email has no recipient", domain.ErrValidation)
	}
	if len(qrPNG) == 0 {
		return Email{}, fmt.Errorf("%w: ticket email has no QR image", domain.ErrValidation)
	}

	var body bytes.Buffer
	if err := ticketEmailTemplate.Execute(&body, data); err != nil {
		return Email{}, fmt.Errorf("failed to render ticket email: %w", err)
	}

	return Email{
		From:    from,
		To:      []string{to},
		Subject: TicketSubject(data.EventName),
		HTML:    body.String(),
		Attachments: []Attachment{{
			Filename:    QRAttachmentName,
			Content:     base64.StdEncoding.EncodeToString(qrPNG),
			ContentType: "image/png",
			ContentID:   QRContentID,
		}},
	}, nil
}

// ComposeCustomEmail builds an organizer written message
func ComposeCustomEmail(from string, to []string, subject, html string) (Email, error) {
	if len(to) == 0 {
		return Email{}, fmt.Errorf("%w: email has no recipients", domain.ErrValidation)
	}
	if strings.TrimSpace(subject) == "" || strings.TrimSpace(html) == "" {
		return Email{}, fmt.Errorf("%w: email subject and body are required", domain.ErrValidation)
	}

	return Email{From: from, To: to, Subject: subject, HTML: html}, nil
}
