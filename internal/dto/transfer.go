package dto

import "encoding/json"

// TransferRequest is the body of POST /wallet/transfer. Fields are kept raw so the
// amount may arrive either as a JSON number or as a numeric string.
type TransferRequest struct {
	ReceiverPublicKey json.RawMessage `json:"receiver_public_key" validate:"present"`
	Amount            json.RawMessage `json:"amount" validate:"present"`
}

// TransferResponse is returned when the ledger accepts the transaction
type TransferResponse struct {
	TransactionID string `json:"transaction_id"`
}
