// Package ledger talks to a Solana JSON-RPC node.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sol-wallet/internal/config"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
)

var (
	ErrMalformedAcknowledgment = errors.New("ledger returned no transaction signature")
	ErrMalformedBlockhash      = errors.New("ledger returned no blockhash")
	ErrUnhealthy               = errors.New("ledger node is unhealthy")
)

// SubmitError is returned when the node refuses a signed transaction or the call fails
// in transport. The message of the underlying error is preserved.
type SubmitError struct {
	Err error
}

func (e *SubmitError) Error() string {
	return e.Err.Error()
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}

// IsNodeRejection reports whether err carries a JSON-RPC error response, meaning the
// node was reached and refused this particular request.
func IsNodeRejection(err error) bool {
	var rpcErr *jsonrpc.RPCError
	return errors.As(err, &rpcErr)
}

// rpcAPI is the subset of *rpc.Client used here.
type rpcAPI interface {
	GetLatestBlockhash(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error)
	SendTransactionWithOpts(ctx context.Context, transaction *solana.Transaction, opts rpc.TransactionOpts) (solana.Signature, error)
	GetHealth(ctx context.Context) (string, error)
}

type SolanaClient struct {
	rpc           rpcAPI
	timeout       time.Duration
	commitment    rpc.CommitmentType
	skipPreflight bool
}

// NewSolanaClient creates a client for the node at cfg.URL.
func NewSolanaClient(cfg *config.LedgerConfig) *SolanaClient {
	return newSolanaClient(rpc.New(cfg.URL), cfg)
}

func newSolanaClient(api rpcAPI, cfg *config.LedgerConfig) *SolanaClient {
	return &SolanaClient{
		rpc:           api,
		timeout:       cfg.Timeout,
		commitment:    parseCommitment(cfg.Commitment),
		skipPreflight: cfg.SkipPreflight,
	}
}

// LatestBlockhash fetches a recent blockhash to anchor a new transaction.
func (c *SolanaClient) LatestBlockhash(ctx context.Context) (solana.Hash, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	result, err := c.rpc.GetLatestBlockhash(ctx, c.commitment)
	if err != nil {
		return solana.Hash{}, fmt.Errorf("failed to get latest blockhash: %w", err)
	}
	if result == nil || result.Value == nil || result.Value.Blockhash == (solana.Hash{}) {
		return solana.Hash{}, ErrMalformedBlockhash
	}

	return result.Value.Blockhash, nil
}

// Submit broadcasts a signed transaction once and returns its signature in base58.
func (c *SolanaClient) Submit(ctx context.Context, tx *solana.Transaction) (string, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	signature, err := c.rpc.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		SkipPreflight:       c.skipPreflight,
		PreflightCommitment: c.commitment,
	})
	if err != nil {
		return "", &SubmitError{Err: err}
	}
	if signature == (solana.Signature{}) {
		return "", &SubmitError{Err: ErrMalformedAcknowledgment}
	}

	return signature.String(), nil
}

// Health reports whether the node answers getHealth with "ok".
func (c *SolanaClient) Health(ctx context.Context) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	status, err := c.rpc.GetHealth(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnhealthy, err)
	}
	if status != rpc.HealthOk {
		return fmt.Errorf("%w: status %q", ErrUnhealthy, status)
	}

	return nil
}

func (c *SolanaClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

func parseCommitment(value string) rpc.CommitmentType {
	switch value {
	case "processed":
		return rpc.CommitmentProcessed
	case "confirmed":
		return rpc.CommitmentConfirmed
	default:
		return rpc.CommitmentFinalized
	}
}
