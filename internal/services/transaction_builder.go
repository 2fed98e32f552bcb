package services

import (
	"errors"
	"fmt"
	"math"
	"math/big"

	"sol-wallet/internal/models"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/shopspring/decimal"
)

var (
	ErrAmountOutOfRange = errors.New("amount exceeds the maximum lamport value")
	ErrInvalidReceiver  = errors.New("invalid receiver public key")
)

var maxLamports = decimal.NewFromBigInt(new(big.Int).SetUint64(math.MaxUint64), 0)

// maxLamportDigits is the number of decimal digits in math.MaxUint64.
const maxLamportDigits = 20

// ToLamports converts an amount of SOL to lamports. Fractions of a lamport are
// truncated toward zero, never rounded. The magnitude is checked on the digit count
// before any rescaling, so extreme exponents cost nothing.
func ToLamports(amount decimal.Decimal) (uint64, error) {
	if amount.IsNegative() {
		return 0, ErrAmountOutOfRange
	}
	if amount.IsZero() {
		return 0, nil
	}

	// lamports < 10^digits
	digits := amount.NumDigits() + int(amount.Exponent()) + models.LamportDecimals
	if digits <= 0 {
		return 0, nil
	}
	if digits > maxLamportDigits {
		return 0, ErrAmountOutOfRange
	}

	lamports := amount.Shift(models.LamportDecimals).Truncate(0)
	if lamports.GreaterThan(maxLamports) {
		return 0, ErrAmountOutOfRange
	}

	return lamports.BigInt().Uint64(), nil
}

// BuildTransfer assembles an unsigned system-program transfer paid for by sender.
func BuildTransfer(sender solana.PublicKey, receiver string, lamports uint64, blockhash solana.Hash) (*solana.Transaction, error) {
	to, err := solana.PublicKeyFromBase58(receiver)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidReceiver, err)
	}

	tx, err := solana.NewTransaction(
		[]solana.Instruction{
			system.NewTransferInstruction(lamports, sender, to).Build(),
		},
		blockhash,
		solana.TransactionPayer(sender),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build transfer transaction: %w", err)
	}

	return tx, nil
}
