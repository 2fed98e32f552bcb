package handlers

import (
	"context"
	"net/http"
	"time"

	"sol-wallet/internal/errors"
	"sol-wallet/internal/services"

	"github.com/labstack/echo/v4"
)

const healthCheckTimeout = 5 * time.Second

// HealthCheckHandler handles the health check endpoint
type HealthCheckHandler struct {
	ledgerClient services.LedgerClientInterface
}

// NewHealthCheckHandler creates a new health check handler
func NewHealthCheckHandler(ledgerClient services.LedgerClientInterface) *HealthCheckHandler {
	return &HealthCheckHandler{ledgerClient: ledgerClient}
}

// HealthCheck reports whether the configured Solana node is reachable and healthy
// @Summary Health check
// @Description Check API and Solana RPC node status
// @Tags Health
// @Produce json
// @Success 200 {object} object{status=string,time=string} "Service is healthy"
// @Failure 503 {object} errors.ErrorResponse "SYSTEM_003 - Service unavailable (ledger node unhealthy)"
// @Router /health [get]
func (h *HealthCheckHandler) HealthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	if err := h.ledgerClient.Health(ctx); err != nil {
		c.Logger().Warnf("trace_id=%s ledger health check failed: %v", getTraceID(c), err)
		return SendError(c, errors.SystemServiceUnavailable, errors.WithDetails("Ledger node unavailable"))
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
