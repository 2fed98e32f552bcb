package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"sol-wallet/internal/dto"
	"sol-wallet/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	ErrMissingField          = errors.New("missing required field")
	ErrInvalidAmountFormat   = errors.New("invalid amount format")
	ErrNonPositiveAmount     = errors.New("amount must be a positive number")
	ErrInvalidReceiverFormat = errors.New("receiver_public_key must be a string")
	ErrAmountTooLarge        = errors.New("amount is too large")
)

// maxAmountDigits bounds the integer digits of an amount. Anything at or above
// 10^20 SOL can never be represented in lamports.
const maxAmountDigits = 20

// FieldError names the request field that failed validation. It wraps one of the
// sentinel errors above.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Err.Error())
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Validator wraps the go-playground validator with custom rules and error formatting
type Validator struct {
	validate *validator.Validate
}

var (
	instance     *Validator
	instanceOnce sync.Once
)

// GetValidator returns the singleton validator instance
func GetValidator() *Validator {
	instanceOnce.Do(func() {
		instance = NewValidator()
	})
	return instance
}

// NewValidator creates a new validator instance with custom rules and configuration
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("present", validatePresent)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Struct validates a struct against its validate tags
func (v *Validator) Struct(s interface{}) error {
	return v.validate.Struct(s)
}

// ParseTransferRequest turns the raw request into a receiver and a strictly positive amount.
// Fields are checked in order: presence of both, then the receiver type, then the amount.
func ParseTransferRequest(req *dto.TransferRequest) (*models.TransferInput, error) {
	if req == nil {
		return nil, &FieldError{Field: "receiver_public_key", Err: ErrMissingField}
	}

	if err := GetValidator().Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			return nil, &FieldError{Field: validationErrs[0].Field(), Err: ErrMissingField}
		}
		return nil, err
	}

	receiver, err := parseReceiver(req.ReceiverPublicKey)
	if err != nil {
		return nil, err
	}

	amount, err := ParseAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	return &models.TransferInput{
		Receiver: receiver,
		Amount:   amount,
	}, nil
}

// ParseAmount accepts a JSON number or a JSON string holding a decimal number.
func ParseAmount(raw json.RawMessage) (decimal.Decimal, error) {
	trimmed := bytes.TrimSpace(raw)
	if isAbsent(trimmed) {
		return decimal.Zero, &FieldError{Field: "amount", Err: ErrMissingField}
	}

	var text string
	switch trimmed[0] {
	case '"':
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return decimal.Zero, &FieldError{Field: "amount", Err: ErrInvalidAmountFormat}
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return decimal.Zero, &FieldError{Field: "amount", Err: ErrMissingField}
		}
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		text = string(trimmed)
	default:
		return decimal.Zero, &FieldError{Field: "amount", Err: ErrInvalidAmountFormat}
	}

	amount, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, &FieldError{Field: "amount", Err: ErrInvalidAmountFormat}
	}

	if !amount.IsPositive() {
		return decimal.Zero, &FieldError{Field: "amount", Err: ErrNonPositiveAmount}
	}

	if amount.NumDigits()+int(amount.Exponent()) > maxAmountDigits {
		return decimal.Zero, &FieldError{Field: "amount", Err: ErrAmountTooLarge}
	}

	return amount, nil
}

func parseReceiver(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if isAbsent(trimmed) {
		return "", &FieldError{Field: "receiver_public_key", Err: ErrMissingField}
	}
	if trimmed[0] != '"' {
		return "", &FieldError{Field: "receiver_public_key", Err: ErrInvalidReceiverFormat}
	}

	var receiver string
	if err := json.Unmarshal(trimmed, &receiver); err != nil {
		return "", &FieldError{Field: "receiver_public_key", Err: ErrInvalidReceiverFormat}
	}

	receiver = strings.TrimSpace(receiver)
	if receiver == "" {
		return "", &FieldError{Field: "receiver_public_key", Err: ErrMissingField}
	}

	return receiver, nil
}

// Custom validation functions

// validatePresent rejects absent, null and empty-string raw JSON values
func validatePresent(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Slice {
		return !field.IsZero()
	}
	return !isAbsent(bytes.TrimSpace(field.Bytes()))
}

func isAbsent(raw []byte) bool {
	return len(raw) == 0 || bytes.Equal(raw, []byte("null")) || bytes.Equal(raw, []byte(`""`))
}
