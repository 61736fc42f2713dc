package registration

import (
	"errors"

	"github.com/chainpass/ticketing/internal/domain"
)

// Result is what happened to one request of a batch
type Result string

const (
	ResultApproved        Result = "approved"
	ResultAlreadyApproved Result = "already_approved"
	// ResultReconciled means the requester already held the asset, so no transfer was made
	ResultReconciled      Result = "reconciled"
	ResultRejected        Result = "rejected"
	ResultAlreadyRejected Result = "already_rejected"
	ResultFailed          Result = "failed"
)

// Outcome reports one request of an approve or reject batch.
// It carries enough detail for an organizer to reconcile by hand.
type Outcome struct {
	RequestID     uint64 `json:"requestId"`
	EventID       uint64 `json:"eventId,omitempty"`
	WalletAddress string `json:"walletAddress,omitempty"`
	AssetID       uint64 `json:"assetId,omitempty"`
	TxID          string `json:"txId,omitempty"`
	Result        Result `json:"result"`
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	ErrorKind     string `json:"errorKind,omitempty"`
	Err           error  `json:"-"`
}

func (o Outcome) fail(err error, message string) Outcome {
	o.Result = ResultFailed
	o.Success = false
	o.Err = err
	o.ErrorKind = ErrorKind(err)
	o.Message = message
	return o
}

func (o Outcome) succeed(result Result, message string) Outcome {
	o.Result = result
	o.Success = true
	o.Message = message
	return o
}

// ErrorKind names the category of err for API clients
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrRequestNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrEventNotFound):
		return "event_not_found"
	case errors.Is(err, domain.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, domain.ErrConfirmationTimeout):
		return "confirmation_timeout"
	case errors.Is(err, domain.ErrTransferInFlight):
		return "transfer_in_flight"
	case errors.Is(err, domain.ErrTransferRejected):
		return "transfer_rejected"
	case errors.Is(err, domain.ErrLedgerTransient):
		return "ledger_transient"
	case errors.Is(err, domain.ErrCapacityExceeded):
		return "capacity_exceeded"
	case errors.Is(err, domain.ErrConfiguration):
		return "configuration"
	case errors.Is(err, domain.ErrSigning):
		return "signing"
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrMalformedPayload):
		return "validation"
	default:
		return "internal"
	}
}

// uniqueIDs drops repeated ids and keeps first-seen order
func uniqueIDs(ids []uint64) []uint64 {
	seen := make(map[uint64]bool, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
