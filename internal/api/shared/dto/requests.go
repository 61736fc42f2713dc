package dto

import (
	"fmt"
	"strings"

	"github.com/chainpass/ticketing/internal/api/shared/constants"
	apierrors "github.com/chainpass/ticketing/internal/api/shared/errors"
	"github.com/chainpass/ticketing/internal/ticket"
)

// SubmitRegistrationRequest represents the request body for requesting a ticket
type SubmitRegistrationRequest struct {
	WalletAddress string `json:"walletAddress"`
	Email         string `json:"email"`
}

// Validate validates the request body
func (r *SubmitRegistrationRequest) Validate() error {
	if strings.TrimSpace(r.WalletAddress) == "" {
		return apierrors.NewValidationError("walletAddress is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		return apierrors.NewValidationError("email is required")
	}
	return nil
}

// ReviewRequestsRequest represents the request body for approving or rejecting requests
type ReviewRequestsRequest struct {
	RequestIDs []uint64 `json:"requestIds"`
}

// Validate validates the request body
func (r *ReviewRequestsRequest) Validate() error {
	if len(r.RequestIDs) == 0 {
		return apierrors.NewValidationError("requestIds is required")
	}

	if len(r.RequestIDs) > constants.MAX_REQUEST_IDS_PER_BATCH {
		return apierrors.NewValidationError(fmt.Sprintf("maximum %d request ids allowed", constants.MAX_REQUEST_IDS_PER_BATCH))
	}

	for _, id := range r.RequestIDs {
		if id == 0 {
			return apierrors.NewValidationError("request ids must be positive")
		}
	}

	return nil
}

// UpdateNotesRequest represents the request body for editing admin notes
type UpdateNotesRequest struct {
	Notes string `json:"notes"`
}

// Validate validates the request body
func (r *UpdateNotesRequest) Validate() error {
	if len(r.Notes) > constants.MAX_NOTES_LENGTH {
		return apierrors.NewValidationError(fmt.Sprintf("notes must be at most %d characters", constants.MAX_NOTES_LENGTH))
	}
	return nil
}

// SignTicketRequest represents the request body for signing an arbitrary ticket
type SignTicketRequest struct {
	AssetID     uint64         `json:"assetId"`
	UserAddress string         `json:"userAddress"`
	EventID     ticket.EventID `json:"eventId"`
	EventName   string         `json:"eventName"`
}

// Validate validates the request body
func (r *SignTicketRequest) Validate() error {
	var missing []string
	if r.AssetID == 0 {
		missing = append(missing, "assetId")
	}
	if strings.TrimSpace(r.UserAddress) == "" {
		missing = append(missing, "userAddress")
	}
	if r.EventID.IsZero() {
		missing = append(missing, "eventId")
	}
	if strings.TrimSpace(r.EventName) == "" {
		missing = append(missing, "eventName")
	}

	if len(missing) > 0 {
		return apierrors.NewBadRequestError("Missing required fields", missing...)
	}
	return nil
}

// CustomEmailRequest represents the request body for an organizer written email
type CustomEmailRequest struct {
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Validate validates the request body
func (r *CustomEmailRequest) Validate() error {
	if len(r.To) == 0 {
		return apierrors.NewValidationError("to is required")
	}
	if len(r.To) > constants.MAX_CUSTOM_EMAIL_RECIPIENT {
		return apierrors.NewValidationError(fmt.Sprintf("maximum %d recipients allowed", constants.MAX_CUSTOM_EMAIL_RECIPIENT))
	}
	if strings.TrimSpace(r.Subject) == "" {
		return apierrors.NewValidationError("subject is required")
	}
	if strings.TrimSpace(r.HTML) == "" {
		return apierrors.NewValidationError("html is required")
	}
	return nil
}

// ScanRequest carries the text decoded from a QR image by the camera
type ScanRequest struct {
	Data string `json:"data"`
}

// Validate validates the request body
func (r *ScanRequest) Validate() error {
	if r.Data == "" {
		return apierrors.NewValidationError("data is required")
	}
	return nil
}
