package ledger

import (
	"context"
)

// Box is a named value stored by an application
type Box struct {
	Name  []byte
	Value []byte
}

// Transfer moves units of an asset from the organizer account
type Transfer struct {
	AssetID  uint64
	Receiver string
	Amount   uint64
	Note     []byte

	// Lease, when set, stops any other transfer carrying the same lease from
	// confirming while this one is still valid
	Lease [32]byte
}

// TxState is what the node knows about a submitted transaction
type TxState string

const (
	TxPending   TxState = "pending"
	TxConfirmed TxState = "confirmed"
	TxRejected  TxState = "rejected"
	// TxUnknown means the node no longer tracks the transaction. It either
	// expired unconfirmed or was confirmed long enough ago to leave the pool.
	TxUnknown   TxState = "unknown"
)

// TxStatus is the state of one transaction as seen by the node
type TxStatus struct {
	TxID           string
	State          TxState
	ConfirmedRound uint64
	PoolError      string
}

// Confirmation is a transaction that has been committed to a block
type Confirmation struct {
	TxID           string
	ConfirmedRound uint64
}

// Ledger is the blockchain collaborator used by registration and check-in.
// Transient failures wrap domain.ErrLedgerTransient so callers can retry safely.
//
//go:generate mockgen -source=ledger.go -destination=../mocks/ledger.go -package=mocks -mock_names=Ledger=MockLedger
type Ledger interface {
	// ReadBoxes returns every box of an application with its value
	ReadBoxes(ctx context.Context, appID uint64) ([]Box, error)

	// ReadBox returns one box value or domain.ErrBoxNotFound
	ReadBox(ctx context.Context, appID uint64, name []byte) ([]byte, error)

	// GlobalUint reads an integer from an application's global state
	GlobalUint(ctx context.Context, appID uint64, key string) (uint64, error)

	// AssetBalance returns how many units of assetID address holds, zero when not opted in
	AssetBalance(ctx context.Context, address string, assetID uint64) (uint64, error)

	// TransferAsset signs and submits a transfer from the organizer account and returns the tx id
	TransferAsset(ctx context.Context, t Transfer) (string, error)

	// WaitForConfirmation waits at most maxRounds rounds for txID.
	// It fails with domain.ErrConfirmationTimeout when the bound is exceeded.
	WaitForConfirmation(ctx context.Context, txID string, maxRounds uint64) (Confirmation, error)

	// TransactionStatus asks the node about a previously submitted transaction without waiting
	TransactionStatus(ctx context.Context, txID string) (TxStatus, error)

	// OrganizerAddress is the account that holds undistributed tickets
	OrganizerAddress() string
}
