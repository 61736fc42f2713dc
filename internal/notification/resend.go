package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/chainpass/ticketing/internal/adapter"
	"github.com/chainpass/ticketing/internal/domain"
)

// DefaultResendAPIURL is the Resend REST endpoint
const DefaultResendAPIURL = "https://api.resend.com"

// Sender delivers emails through a transactional email provider
//
//go:generate mockgen -source=resend.go -destination=../mocks/email_sender.go -package=mocks -mock_names=Sender=MockEmailSender
type Sender interface {
	// Send delivers email and returns the provider's message id
	Send(ctx context.Context, email Email) (string, error)

	// AddContact adds address to the configured audience. It is a no-op without an audience.
	AddContact(ctx context.Context, address string) error
}

// ResendConfig holds Resend API configuration
type ResendConfig struct {
	APIURL     string
	APIKey     string
	AudienceID string
}

type resendSender struct {
	httpClient adapter.HTTPClient
	config     ResendConfig
}

// NewResendSender creates a Sender backed by the Resend REST API.
// It fails with domain.ErrConfiguration when no API key is set.
func NewResendSender(httpClient adapter.HTTPClient, config ResendConfig) (Sender, error) {
	if strings.TrimSpace(config.APIKey) == "" {
		return nil, fmt.Errorf("%w: resend api key is not configured", domain.ErrConfiguration)
	}
	if config.APIURL == "" {
		config.APIURL = DefaultResendAPIURL
	}
	config.APIURL = strings.TrimSuffix(config.APIURL, "/")

	return &resendSender{httpClient: httpClient, config: config}, nil
}

type resendSendResponse struct {
	ID string `json:"id"`
}

func (r *resendSender) headers() map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + r.config.APIKey,
	}
}

func (r *resendSender) Send(ctx context.Context, email Email) (string, error) {
	body, err := json.Marshal(email)
	if err != nil {
		return "", fmt.Errorf("failed to marshal email: %w", err)
	}

	respBody, err := r.httpClient.PostJSON(ctx, r.config.APIURL+"/emails", r.headers(), body)
	if err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}

	var resp resendSendResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("failed to decode send response: %w", err)
	}

	return resp.ID, nil
}

func (r *resendSender) AddContact(ctx context.Context, address string) error {
	if r.config.AudienceID == "" {
		return nil
	}

	body, err := json.Marshal(map[string]interface{}{
		"email":        address,
		"unsubscribed": false,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal contact: %w", err)
	}

	endpoint := fmt.Sprintf("%s/audiences/%s/contacts", r.config.APIURL, url.PathEscape(r.config.AudienceID))
	if _, err := r.httpClient.PostJSON(ctx, endpoint, r.headers(), body); err != nil {
		return fmt.Errorf("failed to add contact: %w", err)
	}

	return nil
}

// unavailableSender stands in when no email provider is configured
type unavailableSender struct {
	cause error
}

// NewUnavailableSender returns a Sender whose every send fails with cause
func NewUnavailableSender(cause error) Sender {
	if cause == nil {
		cause = fmt.Errorf("%w: email provider is not configured", domain.ErrConfiguration)
	}
	return &unavailableSender{cause: cause}
}

func (s *unavailableSender) Send(context.Context, Email) (string, error) {
	return "", s.cause
}

func (s *unavailableSender) AddContact(context.Context, string) error {
	return s.cause
}
