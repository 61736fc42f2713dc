package schema

import (
	"time"

	"github.com/chainpass/ticketing/internal/domain"
)

// RegistrationRequest represents the registration_requests table - an attendee's request for a ticket
type RegistrationRequest struct {
	// RequestID is an auto-incrementing sequence number
	RequestID uint64 `gorm:"column:request_id;primaryKey;autoIncrement"`
	// EventID is the on-chain event id from the events registry
	EventID uint64 `gorm:"column:event_id;not null"`
	// UserID references the users row holding the requester's email
	UserID *uint64 `gorm:"column:user_id"`
	// WalletAddress is the requester's ledger address, upper case
	WalletAddress string `gorm:"column:wallet_address;not null;type:varchar(58)"`
	// Status is pending, approved or rejected. Approved and rejected are terminal.
	Status domain.RequestStatus `gorm:"column:request_status;not null;type:varchar(16);default:pending"`
	// RequestedAt is when the attendee submitted the request
	RequestedAt time.Time `gorm:"column:requested_at;not null;default:now();type:timestamptz"`
	// ReviewedAt is when the request reached a terminal state
	ReviewedAt *time.Time `gorm:"column:reviewed_at;type:timestamptz"`
	// AdminNotes are free text notes from organizers
	AdminNotes *string `gorm:"column:admin_notes;type:text"`
	// AssetID is the ticket asset assigned to the request
	AssetID *uint64 `gorm:"column:asset_id"`
	// TransferTxID is the ledger transaction that delivered the ticket.
	// On a pending request it is a submitted transfer that has not been seen confirmed yet.
	TransferTxID *string `gorm:"column:transfer_tx_id;type:varchar(64)"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the RegistrationRequest model
func (RegistrationRequest) TableName() string {
	return "registration_requests"
}
