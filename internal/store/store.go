package store

import (
	"context"
	"time"

	"gorm.io/datatypes"

	"github.com/chainpass/ticketing/internal/domain"
	"github.com/chainpass/ticketing/internal/store/schema"
)

// CreateRegistrationRequestInput holds a new pending request and the requester's contact
type CreateRegistrationRequestInput struct {
	EventID       uint64
	WalletAddress string
	Email         string
	AssetID       *uint64
	RequestedAt   time.Time
}

// RegistrationRequestFilter narrows ListRegistrationRequests
type RegistrationRequestFilter struct {
	EventID       *uint64
	WalletAddress string
	Statuses      []domain.RequestStatus
	Limit         int
	Offset        uint64
}

// ApproveRequestInput marks a pending request approved
type ApproveRequestInput struct {
	RequestID    uint64
	AssetID      uint64
	TransferTxID *string
	ReviewedAt   time.Time
}

// CreateCheckInInput records an admission
type CreateCheckInInput struct {
	EventID         uint64
	WalletAddress   string
	AssetID         uint64
	SignatureStatus domain.SignatureStatus
	SessionID       string
	ScanPayload     datatypes.JSON
	CheckedInAt     time.Time
}

// RegistrationRequestWithEmail is a request joined with the requester's email
type RegistrationRequestWithEmail struct {
	schema.RegistrationRequest
	Email string `gorm:"column:email"`
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// GetUserByWallet retrieves the directory entry for a wallet, nil when unknown
	GetUserByWallet(ctx context.Context, walletAddress string) (*schema.User, error)

	// CreateRegistrationRequest upserts the requester's email and inserts a pending request.
	// When a pending or approved request already exists for the event and wallet it is
	// returned instead and created is false.
	CreateRegistrationRequest(ctx context.Context, input CreateRegistrationRequestInput) (request *schema.RegistrationRequest, created bool, err error)

	// GetRegistrationRequest retrieves a request with the requester's email, nil when not found
	GetRegistrationRequest(ctx context.Context, requestID uint64) (*RegistrationRequestWithEmail, error)

	// GetLatestRegistrationRequest retrieves the most recent request of a wallet for an event, nil when none
	GetLatestRegistrationRequest(ctx context.Context, eventID uint64, walletAddress string) (*schema.RegistrationRequest, error)

	// ListRegistrationRequests returns requests newest first and the total matching count
	ListRegistrationRequests(ctx context.Context, filter RegistrationRequestFilter) ([]*RegistrationRequestWithEmail, uint64, error)

	// MarkRegistrationRequestApproved moves a pending request to approved.
	// It reports false when the request was not pending.
	MarkRegistrationRequestApproved(ctx context.Context, input ApproveRequestInput) (bool, error)

	// RecordTransferSubmission stores the ticket transfer submitted for a pending request
	// so a later approval can follow it up instead of sending another.
	// It reports false when the request was not pending.
	RecordTransferSubmission(ctx context.Context, requestID, assetID uint64, txID string) (bool, error)

	// MarkRegistrationRequestRejected moves a pending request to rejected.
	// It reports false when the request was not pending.
	MarkRegistrationRequestRejected(ctx context.Context, requestID uint64, reviewedAt time.Time) (bool, error)

	// UpdateRegistrationRequestNotes replaces the admin notes without touching the status
	UpdateRegistrationRequestNotes(ctx context.Context, requestID uint64, notes string) error

	// CreateCheckIn records the first admission of a wallet to an event.
	// When one exists already it is returned and created is false.
	CreateCheckIn(ctx context.Context, input CreateCheckInInput) (checkIn *schema.CheckIn, created bool, err error)

	// GetCheckIn retrieves the admission of a wallet to an event, nil when none
	GetCheckIn(ctx context.Context, eventID uint64, walletAddress string) (*schema.CheckIn, error)

	// SetKeyValue sets a key-value pair in the key-value store
	SetKeyValue(ctx context.Context, key string, value string) error

	// GetKeyValue retrieves a value by key, empty when absent
	GetKeyValue(ctx context.Context, key string) (string, error)
}
