package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationOutOfRange    ErrorCode = "VALIDATION_004"
	ValidationBodyTooLarge  ErrorCode = "VALIDATION_005"
)

// Transfer error codes (TRANSFER_*)
const (
	TransferSenderBlacklisted   ErrorCode = "TRANSFER_001"
	TransferReceiverBlacklisted ErrorCode = "TRANSFER_002"
	TransferFailed              ErrorCode = "TRANSFER_003"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemConfigurationError ErrorCode = "SYSTEM_004"
	SystemUnexpectedError    ErrorCode = "SYSTEM_005"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Validation errors
	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Missing required fields",
	ValidationInvalidFormat: "Invalid amount format.",
	ValidationOutOfRange:    "Amount must be a positive number.",
	ValidationBodyTooLarge:  "Request body too large",

	// Transfer errors
	TransferSenderBlacklisted:   "Sender address is blacklisted.",
	TransferReceiverBlacklisted: "Receiver address is blacklisted.",
	TransferFailed:              "Transaction failed",

	// System errors
	SystemInternalError:      "Internal transfer error",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemConfigurationError: "Sender private key is missing in environment.",
	SystemUnexpectedError:    "An unexpected error occurred",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}
