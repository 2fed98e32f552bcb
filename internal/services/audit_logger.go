package services

import (
	"context"
	"log/slog"
	"time"

	"sol-wallet/internal/models"
)

type AuditLogger struct {
	logger *slog.Logger
}

func NewAuditLogger(logger *slog.Logger) AuditLoggerInterface {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogger{
		logger: logger,
	}
}

func (al *AuditLogger) LogTransferDenied(ctx context.Context, role, account string) {
	al.logger.WarnContext(ctx, "transfer denied by address policy",
		slog.String("event_type", "transfer_denied"),
		slog.String("role", role),
		slog.String("account", account),
		slog.Time("timestamp", time.Now()),
		slog.String("correlation_id", getCorrelationID(ctx)),
	)
}

func (al *AuditLogger) LogTransferSubmitted(ctx context.Context, transactionID, sender, receiver string, lamports uint64, durationMs int64) {
	al.logger.InfoContext(ctx, "transfer submitted",
		slog.String("event_type", "transfer_submitted"),
		slog.String("transaction_id", transactionID),
		slog.String("sender", sender),
		slog.String("receiver", receiver),
		slog.Uint64("lamports", lamports),
		slog.Int64("duration_ms", durationMs),
		slog.Time("timestamp", time.Now()),
		slog.String("correlation_id", getCorrelationID(ctx)),
	)
}

func (al *AuditLogger) LogTransferFailed(ctx context.Context, state models.TransferState, errorMsg string, durationMs int64) {
	al.logger.ErrorContext(ctx, "transfer failed",
		slog.String("event_type", "transfer_failed"),
		slog.String("state", string(state)),
		slog.String("error", errorMsg),
		slog.Int64("duration_ms", durationMs),
		slog.Time("timestamp", time.Now()),
		slog.String("correlation_id", getCorrelationID(ctx)),
	)
}

func (al *AuditLogger) LogValidationFailure(ctx context.Context, field string, errorMsg string) {
	al.logger.InfoContext(ctx, "transfer request rejected",
		slog.String("event_type", "validation_failure"),
		slog.String("field", field),
		slog.String("error", errorMsg),
		slog.Time("timestamp", time.Now()),
		slog.String("correlation_id", getCorrelationID(ctx)),
	)
}

func (al *AuditLogger) LogCircuitBreakerStateChange(ctx context.Context, service string, oldState, newState string) {
	al.logger.WarnContext(ctx, "circuit breaker state change",
		slog.String("event_type", "circuit_breaker_state_change"),
		slog.String("service", service),
		slog.String("old_state", oldState),
		slog.String("new_state", newState),
		slog.Time("timestamp", time.Now()),
		slog.String("correlation_id", getCorrelationID(ctx)),
	)
}

func getCorrelationID(ctx context.Context) string {
	return models.TraceIDFromContext(ctx)
}
