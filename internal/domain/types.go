package domain

import (
	"strings"
	"time"
)

// RequestStatus represents the lifecycle state of a registration request
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// IsValidRequestStatus checks if a request status is valid
func IsValidRequestStatus(status RequestStatus) bool {
	return status == RequestStatusPending ||
		status == RequestStatusApproved ||
		status == RequestStatusRejected
}

// IsTerminal reports whether no further transitions are allowed from the status
func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusApproved || s == RequestStatusRejected
}

// ScanStatus is the operator-facing result of a check-in scan
type ScanStatus string

const (
	// ScanStatusSuccess means admitted with a verified signature
	ScanStatusSuccess ScanStatus = "success"
	// ScanStatusWarning means admitted but the ticket could not be authenticated or was already used
	ScanStatusWarning ScanStatus = "warning"
	// ScanStatusError means denied
	ScanStatusError ScanStatus = "error"
)

// SignatureStatus is the trust signal attached to a scanned ticket
type SignatureStatus string

const (
	SignatureStatusVerified   SignatureStatus = "verified"
	SignatureStatusUnverified SignatureStatus = "unverified"
	SignatureStatusUnsigned   SignatureStatus = "unsigned"
)

// RedemptionMode controls how repeated admissions of the same ticket are handled
type RedemptionMode string

const (
	// RedemptionModeOff keeps check-in read-only
	RedemptionModeOff RedemptionMode = "off"
	// RedemptionModeFlag admits a repeated ticket with a warning
	RedemptionModeFlag RedemptionMode = "flag"
	// RedemptionModeReject denies a repeated ticket
	RedemptionModeReject RedemptionMode = "reject"
)

// IsValidRedemptionMode checks if a redemption mode is valid
func IsValidRedemptionMode(mode RedemptionMode) bool {
	return mode == RedemptionModeOff ||
		mode == RedemptionModeFlag ||
		mode == RedemptionModeReject
}

// EventConfig is the on-chain event descriptor stored in the events registry application
type EventConfig struct {
	EventID         uint64    `json:"eventId"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	CreatorAddress  string    `json:"creatorAddress"`
	ImageRef        string    `json:"imageRef"`
	Cost            uint64    `json:"cost"`
	MaxParticipants uint64    `json:"maxParticipants"`
	Location        string    `json:"location"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	RegisteredCount uint64    `json:"registeredCount"`
	TicketAppID     uint64    `json:"ticketAppId"`
}

// Available returns the number of remaining seats
func (e EventConfig) Available() uint64 {
	if e.RegisteredCount >= e.MaxParticipants {
		return 0
	}
	return e.MaxParticipants - e.RegisteredCount
}

// HasCapacity reports whether another registration fits
func (e EventConfig) HasCapacity() bool {
	return e.RegisteredCount < e.MaxParticipants
}

// ImageURL resolves an ipfs:// image reference through the given gateway
func (e EventConfig) ImageURL(gateway string) string {
	if !strings.HasPrefix(e.ImageRef, IPFS_URI_SCHEME) {
		return e.ImageRef
	}
	if gateway == "" {
		gateway = DEFAULT_IPFS_GATEWAY
	}
	if !strings.HasSuffix(gateway, "/") {
		gateway += "/"
	}
	return gateway + strings.TrimPrefix(e.ImageRef, IPFS_URI_SCHEME)
}

// Registrant is an address recorded in an event's ticket application boxes
type Registrant struct {
	Address string `json:"address"`
	Email   string `json:"email,omitempty"`
}

// SameAddress compares two ledger addresses case-insensitively
func SameAddress(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// TicketEventType represents the type of a published ticketing event
type TicketEventType string

const (
	TicketEventRegistrationSubmitted TicketEventType = "registration.submitted"
	TicketEventRegistrationApproved  TicketEventType = "registration.approved"
	TicketEventRegistrationRejected  TicketEventType = "registration.rejected"
	TicketEventTicketCheckedIn       TicketEventType = "ticket.checked_in"
)

// TicketEvent is a domain event published to the message broker
type TicketEvent struct {
	ID            string          `json:"id"`
	Type          TicketEventType `json:"type"`
	EventID       string          `json:"eventId"`
	RequestID     uint64          `json:"requestId,omitempty"`
	WalletAddress string          `json:"walletAddress"`
	AssetID       uint64          `json:"assetId,omitempty"`
	TxID          string          `json:"txId,omitempty"`
	OccurredAt    time.Time       `json:"occurredAt"`
}
