package handlers

import (
	stderrors "errors"
	"net/http"

	"sol-wallet/internal/dto"
	"sol-wallet/internal/errors"
	"sol-wallet/internal/services"

	"github.com/labstack/echo/v4"
)

// TransferHandler handles wallet transfer requests
type TransferHandler struct {
	transferService services.TransferServiceInterface
}

// NewTransferHandler creates a new transfer handler
func NewTransferHandler(transferService services.TransferServiceInterface) *TransferHandler {
	return &TransferHandler{transferService: transferService}
}

// Transfer sends SOL from the service wallet to the requested receiver
// @Summary Transfer SOL
// @Description Validate, sign and submit a SOL transfer from the custodial wallet
// @Tags Wallet
// @Accept json
// @Produce json
// @Param request body dto.TransferRequest true "Receiver and amount in SOL"
// @Success 200 {object} dto.TransferResponse "Transaction submitted"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001..004 - Malformed body, missing field or invalid amount"
// @Failure 403 {object} errors.ErrorResponse "TRANSFER_001/002 - Sender or receiver is blacklisted"
// @Failure 500 {object} errors.ErrorResponse "TRANSFER_003 - Transaction failed, SYSTEM_001/004 - Internal or configuration error"
// @Router /wallet/transfer [post]
func (h *TransferHandler) Transfer(c echo.Context) error {
	var req dto.TransferRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	result, err := h.transferService.Transfer(c.Request().Context(), &req)
	if err != nil {
		var transferErr *services.TransferError
		if !stderrors.As(err, &transferErr) {
			return SendSystemError(c, err)
		}

		opts := []errors.ErrorOption{errors.WithMessage(transferErr.Message)}
		if transferErr.Detail != "" {
			opts = append(opts, errors.WithDetails(transferErr.Detail))
		}
		return SendError(c, transferErr.Code, opts...)
	}

	return c.JSON(http.StatusOK, dto.TransferResponse{TransactionID: result.TransactionID})
}
