package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedPayload is returned when ticket data is structurally invalid
	ErrMalformedPayload = errors.New("malformed ticket payload")

	// ErrInvalidFormat is returned when scanned text is not a parseable ticket
	ErrInvalidFormat = fmt.Errorf("%w: invalid ticket format", ErrMalformedPayload)

	// ErrConfiguration is returned when a required server secret is missing
	ErrConfiguration = errors.New("configuration error")

	// ErrSigning is returned when a signature cannot be produced
	ErrSigning = errors.New("signing failed")

	// ErrVerificationFailure is returned when a signature does not match its payload
	ErrVerificationFailure = errors.New("signature verification failed")

	// ErrLedgerTransient is returned when a ledger read or write fails in a retryable way
	ErrLedgerTransient = errors.New("ledger transient error")

	// ErrConfirmationTimeout is returned when a transaction is not confirmed within the allowed rounds
	ErrConfirmationTimeout = fmt.Errorf("%w: confirmation timeout", ErrLedgerTransient)

	// ErrTransferInFlight is returned when an earlier transfer for the same ticket may still confirm
	ErrTransferInFlight = fmt.Errorf("%w: ticket transfer in flight", ErrLedgerTransient)

	// ErrTransferRejected is returned when the ledger dropped a submitted transaction
	ErrTransferRejected = errors.New("transaction rejected by ledger")

	// ErrCapacityExceeded is returned when an event has no remaining seats
	ErrCapacityExceeded = errors.New("event capacity exceeded")

	// ErrInvalidTransition is returned when a request is moved out of a terminal state
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrRequestNotFound is returned when a registration request does not exist
	ErrRequestNotFound = errors.New("registration request not found")

	// ErrEventNotFound is returned when an event is not present in the events registry
	ErrEventNotFound = errors.New("event not found")

	// ErrRegistrationNotOnChain is returned when the requester has no registrant box
	ErrRegistrationNotOnChain = errors.New("registration not found on chain")

	// ErrBoxNotFound is returned when an application box does not exist
	ErrBoxNotFound = errors.New("box not found")

	// ErrTicketNotIssuable is returned when a ticket is requested for a request that is not approved
	ErrTicketNotIssuable = errors.New("ticket not issuable")

	// ErrValidation is returned when caller input is incomplete or out of range
	ErrValidation = errors.New("validation error")

	// ErrSessionNotFound is returned when a check-in session does not exist or expired
	ErrSessionNotFound = errors.New("check-in session not found")
)
