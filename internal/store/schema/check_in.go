package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/chainpass/ticketing/internal/domain"
)

// CheckIn represents the check_ins table - the first admission of a ticket holder to an event
type CheckIn struct {
	// ID is an auto-incrementing sequence number
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// EventID is the on-chain event id
	EventID uint64 `gorm:"column:event_id;not null;uniqueIndex:idx_check_ins_event_wallet"`
	// WalletAddress is the admitted holder, upper case
	WalletAddress string `gorm:"column:wallet_address;not null;type:varchar(58);uniqueIndex:idx_check_ins_event_wallet"`
	// AssetID is the ticket asset named by the scanned payload, zero for legacy tickets
	AssetID uint64 `gorm:"column:asset_id;not null;default:0"`
	// SignatureStatus is the trust signal at admission time
	SignatureStatus domain.SignatureStatus `gorm:"column:signature_status;not null;type:varchar(16)"`
	// SessionID is the check-in session that admitted the holder
	SessionID string `gorm:"column:session_id;type:varchar(36)"`
	// ScanPayload is the normalized ticket that was presented
	ScanPayload datatypes.JSON `gorm:"column:scan_payload;type:jsonb"`
	// CheckedInAt is the time of admission
	CheckedInAt time.Time `gorm:"column:checked_in_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the CheckIn model
func (CheckIn) TableName() string {
	return "check_ins"
}
