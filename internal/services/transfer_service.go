package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sol-wallet/internal/dto"
	apperrors "sol-wallet/internal/errors"
	"sol-wallet/internal/ledger"
	"sol-wallet/internal/models"
	"sol-wallet/internal/validation"
)

const ledgerServiceName = "solana_rpc"

// ErrLedgerPanic is wrapped when the ledger path panics instead of returning an error.
var ErrLedgerPanic = errors.New("unexpected failure while submitting transaction")

// TransferError is the failure outcome of a transfer request. Code selects the HTTP
// status; Message is the short caller-facing text and Detail the optional underlying
// cause.
type TransferError struct {
	Code    apperrors.ErrorCode
	State   models.TransferState
	Message string
	Detail  string
	Err     error
}

func (e *TransferError) Error() string {
	if e.Detail != "" {
		return e.Message + ": " + e.Detail
	}
	return e.Message
}

func (e *TransferError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the status code the error maps to
func (e *TransferError) HTTPStatus() int {
	return apperrors.GetHTTPStatus(e.Code)
}

func newTransferError(code apperrors.ErrorCode, state models.TransferState, err error) *TransferError {
	return &TransferError{
		Code:    code,
		State:   state,
		Message: apperrors.GetErrorMessage(code),
		Err:     err,
	}
}

type transferService struct {
	signer             SignerInterface
	policy             AddressPolicyInterface
	ledgerClient       LedgerClientInterface
	circuitBreaker     CircuitBreakerInterface
	auditLogger        AuditLoggerInterface
	metrics            MetricsRecorderInterface
	exposeLedgerErrors bool
}

// NewTransferService wires the transfer pipeline. signer may be nil when no sender key
// is configured; every request then fails with a configuration error. circuitBreaker
// may be nil to disable fail-fast behaviour.
func NewTransferService(
	signer SignerInterface,
	policy AddressPolicyInterface,
	ledgerClient LedgerClientInterface,
	circuitBreaker CircuitBreakerInterface,
	auditLogger AuditLoggerInterface,
	metrics MetricsRecorderInterface,
	exposeLedgerErrors bool,
) TransferServiceInterface {
	return &transferService{
		signer:             signer,
		policy:             policy,
		ledgerClient:       ledgerClient,
		circuitBreaker:     circuitBreaker,
		auditLogger:        auditLogger,
		metrics:            metrics,
		exposeLedgerErrors: exposeLedgerErrors,
	}
}

func (s *transferService) Transfer(ctx context.Context, req *dto.TransferRequest) (*models.TransferResult, error) {
	startTime := time.Now()

	input, err := validation.ParseTransferRequest(req)
	if err != nil {
		return nil, s.fail(ctx, s.validationError(ctx, err), startTime)
	}

	if s.signer == nil {
		return nil, s.fail(ctx, newTransferError(
			apperrors.SystemConfigurationError,
			models.TransferStateConfigurationMissing,
			errors.New("sender private key is not configured"),
		), startTime)
	}

	sender := s.signer.PublicKey().String()

	if s.policy.IsDenied(sender) {
		s.auditLogger.LogTransferDenied(ctx, "sender", sender)
		return nil, s.fail(ctx, newTransferError(
			apperrors.TransferSenderBlacklisted,
			models.TransferStateSenderBlocked,
			nil,
		), startTime)
	}

	if s.policy.IsDenied(input.Receiver) {
		s.auditLogger.LogTransferDenied(ctx, "receiver", input.Receiver)
		return nil, s.fail(ctx, newTransferError(
			apperrors.TransferReceiverBlacklisted,
			models.TransferStateReceiverBlocked,
			nil,
		), startTime)
	}

	if s.circuitBreaker != nil && s.circuitBreaker.IsOpen() {
		transferErr := newTransferError(apperrors.TransferFailed, models.TransferStateSubmitFailed, ErrCircuitBreakerOpen)
		transferErr.Detail = ErrCircuitBreakerOpen.Error()
		return nil, s.fail(ctx, transferErr, startTime)
	}

	transactionID, lamports, err := s.submit(ctx, input)
	if err != nil {
		return nil, s.fail(ctx, s.ledgerError(err), startTime)
	}

	result := &models.TransferResult{
		TransactionID: transactionID,
		Sender:        sender,
		Receiver:      input.Receiver,
		Amount:        input.Amount,
		Lamports:      lamports,
		State:         models.TransferStateSubmitted,
	}

	duration := time.Since(startTime)
	s.auditLogger.LogTransferSubmitted(ctx, transactionID, sender, input.Receiver, lamports, duration.Milliseconds())
	s.metrics.IncrementCounter("transfers_total", map[string]string{"status": string(result.State)})
	s.metrics.RecordProcessingTime("transfer_duration_success", duration)
	s.metrics.RecordGauge("transfer_amount", float64(lamports)/models.LamportsPerSOL, nil)

	return result, nil
}

// submit builds, signs and broadcasts the transaction. The ledger is contacted for the
// signature at most once; a panic anywhere on this path is returned as an error.
func (s *transferService) submit(ctx context.Context, input *models.TransferInput) (transactionID string, lamports uint64, err error) {
	defer func() {
		if r := recover(); r != nil {
			transactionID, lamports = "", 0
			err = fmt.Errorf("%w: %v", ErrLedgerPanic, r)
		}
	}()

	lamports, err = ToLamports(input.Amount)
	if err != nil {
		return "", 0, err
	}

	callStart := time.Now()
	blockhash, err := s.ledgerClient.LatestBlockhash(ctx)
	s.metrics.RecordProcessingTime("ledger.latest_blockhash", time.Since(callStart))
	if err != nil {
		s.recordLedgerFailure(err)
		return "", 0, fmt.Errorf("failed to fetch recent blockhash: %w", err)
	}

	tx, err := BuildTransfer(s.signer.PublicKey(), input.Receiver, lamports, blockhash)
	if err != nil {
		return "", 0, err
	}

	if err := s.signer.Sign(tx); err != nil {
		return "", 0, err
	}

	callStart = time.Now()
	transactionID, err = s.ledgerClient.Submit(ctx, tx)
	s.metrics.RecordProcessingTime("ledger.send_transaction", time.Since(callStart))
	if err != nil {
		s.recordLedgerFailure(err)
		return "", 0, err
	}

	s.recordLedgerSuccess()
	return transactionID, lamports, nil
}

func (s *transferService) validationError(ctx context.Context, err error) *TransferError {
	code := apperrors.ValidationGeneral
	message := ""
	switch {
	case errors.Is(err, validation.ErrMissingField):
		code = apperrors.ValidationRequiredField
	case errors.Is(err, validation.ErrInvalidAmountFormat):
		code = apperrors.ValidationInvalidFormat
	case errors.Is(err, validation.ErrInvalidReceiverFormat):
		code = apperrors.ValidationInvalidFormat
		message = "Invalid receiver public key format."
	case errors.Is(err, validation.ErrNonPositiveAmount):
		code = apperrors.ValidationOutOfRange
	case errors.Is(err, validation.ErrAmountTooLarge):
		code = apperrors.ValidationOutOfRange
		message = "Amount is too large."
	}

	field := ""
	var fieldErr *validation.FieldError
	if errors.As(err, &fieldErr) {
		field = fieldErr.Field
	}
	s.auditLogger.LogValidationFailure(ctx, field, err.Error())

	transferErr := newTransferError(code, models.TransferStateValidationRejected, err)
	if message != "" {
		transferErr.Message = message
	}
	transferErr.Detail = err.Error()
	return transferErr
}

func (s *transferService) ledgerError(err error) *TransferError {
	var transferErr *TransferError

	var submitErr *ledger.SubmitError
	if errors.As(err, &submitErr) {
		transferErr = newTransferError(apperrors.TransferFailed, models.TransferStateSubmitFailed, err)
	} else {
		transferErr = newTransferError(apperrors.SystemInternalError, models.TransferStateInternalError, err)
	}

	if s.exposeLedgerErrors {
		transferErr.Detail = err.Error()
	}
	return transferErr
}

func (s *transferService) fail(ctx context.Context, transferErr *TransferError, startTime time.Time) *TransferError {
	duration := time.Since(startTime)

	if transferErr.State != models.TransferStateValidationRejected &&
		transferErr.State != models.TransferStateSenderBlocked &&
		transferErr.State != models.TransferStateReceiverBlocked {
		cause := transferErr.Message
		if transferErr.Err != nil {
			cause = transferErr.Err.Error()
		}
		s.auditLogger.LogTransferFailed(ctx, transferErr.State, cause, duration.Milliseconds())
	}

	s.metrics.IncrementCounter("transfers_total", map[string]string{"status": string(transferErr.State)})
	s.metrics.RecordProcessingTime("transfer_duration_failed", duration)

	return transferErr
}

func (s *transferService) recordLedgerSuccess() {
	if s.circuitBreaker != nil {
		s.circuitBreaker.RecordSuccess()
	}
}

// recordLedgerFailure counts transport faults and timeouts only. A node that answers
// with a JSON-RPC error is healthy, and a caller that went away says nothing about it.
func (s *transferService) recordLedgerFailure(err error) {
	if s.circuitBreaker == nil || ledger.IsNodeRejection(err) || errors.Is(err, context.Canceled) {
		return
	}
	s.circuitBreaker.RecordFailure()
}
