package models

import (
	"github.com/shopspring/decimal"
)

// LamportsPerSOL is the number of lamports (minor units) in one SOL.
const LamportsPerSOL = 1_000_000_000

// LamportDecimals is the base-10 exponent between SOL and lamports.
const LamportDecimals = 9

// TransferState is the terminal state reached by a single transfer request.
type TransferState string

const (
	TransferStateValidationRejected   TransferState = "validation_rejected"
	TransferStateConfigurationMissing TransferState = "configuration_missing"
	TransferStateSenderBlocked        TransferState = "sender_blocked"
	TransferStateReceiverBlocked      TransferState = "receiver_blocked"
	TransferStateSubmitted            TransferState = "submitted"
	TransferStateSubmitFailed         TransferState = "submit_failed"
	TransferStateInternalError        TransferState = "internal_error"
)

// TransferInput is a validated transfer request.
type TransferInput struct {
	Receiver string
	Amount   decimal.Decimal
}

// TransferResult describes a transfer accepted by the ledger.
type TransferResult struct {
	TransactionID string
	Sender        string
	Receiver      string
	Amount        decimal.Decimal
	Lamports      uint64
	State         TransferState
}
