package dto

import (
	"time"

	"github.com/chainpass/ticketing/internal/domain"
	"github.com/chainpass/ticketing/internal/registration"
	"github.com/chainpass/ticketing/internal/store"
	"github.com/chainpass/ticketing/internal/store/schema"
	"github.com/chainpass/ticketing/internal/ticket"
)

// EventResponse is an event from the on-chain registry
type EventResponse struct {
	EventID         uint64    `json:"eventId"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	CreatorAddress  string    `json:"creatorAddress"`
	ImageURL        string    `json:"imageUrl"`
	Cost            uint64    `json:"cost"`
	MaxParticipants uint64    `json:"maxParticipants"`
	RegisteredCount uint64    `json:"registeredCount"`
	Available       uint64    `json:"available"`
	Location        string    `json:"location"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	TicketAppID     uint64    `json:"ticketAppId"`
}

// MapEventToDTO maps an event config to its response, resolving the image through gateway
func MapEventToDTO(e domain.EventConfig, gateway string) EventResponse {
	return EventResponse{
		EventID:         e.EventID,
		Name:            e.Name,
		Category:        e.Category,
		CreatorAddress:  e.CreatorAddress,
		ImageURL:        e.ImageURL(gateway),
		Cost:            e.Cost,
		MaxParticipants: e.MaxParticipants,
		RegisteredCount: e.RegisteredCount,
		Available:       e.Available(),
		Location:        e.Location,
		StartTime:       e.StartTime,
		EndTime:         e.EndTime,
		TicketAppID:     e.TicketAppID,
	}
}

// EventListResponse represents a list of events
type EventListResponse struct {
	Events []EventResponse `json:"events"`
}

// RegistrationRequestResponse is a registration request as seen by attendees and organizers.
// Email is only filled for organizer listings.
type RegistrationRequestResponse struct {
	RequestID     uint64               `json:"requestId"`
	EventID       uint64               `json:"eventId"`
	WalletAddress string               `json:"walletAddress"`
	Email         string               `json:"email,omitempty"`
	Status        domain.RequestStatus `json:"status"`
	RequestedAt   time.Time            `json:"requestedAt"`
	ReviewedAt    *time.Time           `json:"reviewedAt,omitempty"`
	AdminNotes    *string              `json:"adminNotes,omitempty"`
	AssetID       *uint64              `json:"assetId,omitempty"`
	TransferTxID  *string              `json:"transferTxId,omitempty"`
}

// MapRequestToDTO maps a stored request to its response
func MapRequestToDTO(r *schema.RegistrationRequest) RegistrationRequestResponse {
	return RegistrationRequestResponse{
		RequestID:     r.RequestID,
		EventID:       r.EventID,
		WalletAddress: r.WalletAddress,
		Status:        r.Status,
		RequestedAt:   r.RequestedAt,
		ReviewedAt:    r.ReviewedAt,
		AdminNotes:    r.AdminNotes,
		AssetID:       r.AssetID,
		TransferTxID:  r.TransferTxID,
	}
}

// MapRequestWithEmailToDTO maps a stored request and its requester's email
func MapRequestWithEmailToDTO(r *store.RegistrationRequestWithEmail) RegistrationRequestResponse {
	resp := MapRequestToDTO(&r.RegistrationRequest)
	resp.Email = r.Email
	return resp
}

// SubmitRegistrationResponse is returned after a ticket request.
// Created is false when an active request already existed.
type SubmitRegistrationResponse struct {
	Request RegistrationRequestResponse `json:"request"`
	Created bool                        `json:"created"`
}

// RegistrationRequestListResponse represents a page of registration requests
type RegistrationRequestListResponse struct {
	Requests []RegistrationRequestResponse `json:"requests"`
	Total    uint64                        `json:"total"`
	Offset   uint64                        `json:"offset"`
}

// ReviewResponse reports every request of an approve or reject batch
type ReviewResponse struct {
	Results   []registration.Outcome `json:"results"`
	Succeeded int                    `json:"succeeded"`
	Failed    int                    `json:"failed"`
}

// NewReviewResponse counts outcomes
func NewReviewResponse(outcomes []registration.Outcome) ReviewResponse {
	resp := ReviewResponse{Results: outcomes}
	for _, o := range outcomes {
		if o.Success {
			resp.Succeeded++
		} else {
			resp.Failed++
		}
	}
	return resp
}

// TicketResponse is a signed ticket with its QR image
type TicketResponse struct {
	Success   bool           `json:"success"`
	QRCode    string         `json:"qrCode"`
	Payload   ticket.Payload `json:"payload"`
	Signature string         `json:"signature"`
}

// PublicKeysResponse lists the keys tickets may be verified against.
// Current is the key new tickets are signed with, empty when signing is disabled.
type PublicKeysResponse struct {
	Current string   `json:"current,omitempty"`
	Keys    []string `json:"keys"`
}

// EmailSentResponse reports an accepted email
type EmailSentResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status string `json:"status"`
}
