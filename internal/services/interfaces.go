package services

import (
	"context"
	"time"

	"sol-wallet/internal/dto"
	"sol-wallet/internal/models"

	"github.com/gagliardetto/solana-go"
)

// TransferServiceInterface runs a transfer request through validation, policy checks,
// signing and submission.
type TransferServiceInterface interface {
	Transfer(ctx context.Context, req *dto.TransferRequest) (*models.TransferResult, error)
}

// AddressPolicyInterface decides whether an account may take part in a transfer
type AddressPolicyInterface interface {
	IsDenied(account string) bool
}

// SignerInterface is the custodial sender credential
type SignerInterface interface {
	PublicKey() solana.PublicKey
	Sign(tx *solana.Transaction) error
}

// LedgerClientInterface is the boundary to the Solana network
type LedgerClientInterface interface {
	LatestBlockhash(ctx context.Context) (solana.Hash, error)
	Submit(ctx context.Context, tx *solana.Transaction) (string, error)
	Health(ctx context.Context) error
}

type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}

type AuditLoggerInterface interface {
	LogTransferDenied(ctx context.Context, role, account string)
	LogTransferSubmitted(ctx context.Context, transactionID, sender, receiver string, lamports uint64, durationMs int64)
	LogTransferFailed(ctx context.Context, state models.TransferState, errorMsg string, durationMs int64)
	LogValidationFailure(ctx context.Context, field string, errorMsg string)
	LogCircuitBreakerStateChange(ctx context.Context, service string, oldState, newState string)
}

type CircuitBreakerInterface interface {
	IsOpen() bool
	RecordSuccess()
	RecordFailure()
	GetState() models.CircuitBreakerState
	Reset()
	GetFailureCount() int
}
