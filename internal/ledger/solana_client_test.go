package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"sol-wallet/internal/config"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
	"github.com/stretchr/testify/suite"
)

type fakeRPC struct {
	blockhash   *rpc.GetLatestBlockhashResult
	blockErr    error
	signature   solana.Signature
	sendErr     error
	health      string
	healthErr   error
	sent        []*solana.Transaction
	opts        []rpc.TransactionOpts
	commitments []rpc.CommitmentType
	deadlines   []bool
}

func (f *fakeRPC) GetLatestBlockhash(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error) {
	f.commitments = append(f.commitments, commitment)
	_, hasDeadline := ctx.Deadline()
	f.deadlines = append(f.deadlines, hasDeadline)
	return f.blockhash, f.blockErr
}

func (f *fakeRPC) SendTransactionWithOpts(ctx context.Context, transaction *solana.Transaction, opts rpc.TransactionOpts) (solana.Signature, error) {
	f.sent = append(f.sent, transaction)
	f.opts = append(f.opts, opts)
	return f.signature, f.sendErr
}

func (f *fakeRPC) GetHealth(ctx context.Context) (string, error) {
	return f.health, f.healthErr
}

type SolanaClientTestSuite struct {
	suite.Suite
	ctx    context.Context
	rpc    *fakeRPC
	client *SolanaClient
}

func TestSolanaClientTestSuite(t *testing.T) {
	suite.Run(t, new(SolanaClientTestSuite))
}

func (s *SolanaClientTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.rpc = &fakeRPC{}
	s.client = newSolanaClient(s.rpc, &config.LedgerConfig{
		Timeout:    5 * time.Second,
		Commitment: "confirmed",
	})
}

func (s *SolanaClientTestSuite) TestLatestBlockhash_Success() {
	hash := solana.Hash{9, 8, 7}
	s.rpc.blockhash = &rpc.GetLatestBlockhashResult{
		Value: &rpc.LatestBlockhashResult{Blockhash: hash},
	}

	got, err := s.client.LatestBlockhash(s.ctx)

	s.NoError(err)
	s.Equal(hash, got)
	s.Equal([]rpc.CommitmentType{rpc.CommitmentConfirmed}, s.rpc.commitments)
	s.Equal([]bool{true}, s.rpc.deadlines)
}

func (s *SolanaClientTestSuite) TestLatestBlockhash_TransportError() {
	s.rpc.blockErr = errors.New("connection refused")

	_, err := s.client.LatestBlockhash(s.ctx)

	s.ErrorContains(err, "connection refused")
}

func (s *SolanaClientTestSuite) TestLatestBlockhash_Malformed() {
	for _, result := range []*rpc.GetLatestBlockhashResult{
		nil,
		{},
		{Value: &rpc.LatestBlockhashResult{}},
	} {
		s.rpc.blockhash = result

		_, err := s.client.LatestBlockhash(s.ctx)

		s.ErrorIs(err, ErrMalformedBlockhash)
	}
}

func (s *SolanaClientTestSuite) TestSubmit_Success() {
	s.rpc.signature = solana.Signature{1, 2, 3}
	tx := &solana.Transaction{}

	id, err := s.client.Submit(s.ctx, tx)

	s.NoError(err)
	s.Equal(solana.Signature{1, 2, 3}.String(), id)
	s.Require().Len(s.rpc.sent, 1)
	s.Same(tx, s.rpc.sent[0])
	s.Equal(rpc.CommitmentConfirmed, s.rpc.opts[0].PreflightCommitment)
	s.False(s.rpc.opts[0].SkipPreflight)
}

func (s *SolanaClientTestSuite) TestSubmit_NodeError() {
	s.rpc.sendErr = errors.New("Transaction simulation failed: insufficient lamports")

	id, err := s.client.Submit(s.ctx, &solana.Transaction{})

	s.Empty(id)
	var submitErr *SubmitError
	s.Require().ErrorAs(err, &submitErr)
	s.Equal("Transaction simulation failed: insufficient lamports", err.Error())
	s.Len(s.rpc.sent, 1)
}

func (s *SolanaClientTestSuite) TestIsNodeRejection() {
	s.rpc.sendErr = &jsonrpc.RPCError{
		Code:    -32002,
		Message: "Transaction simulation failed: Attempt to debit an account but found no record of a prior credit.",
	}
	_, err := s.client.Submit(s.ctx, &solana.Transaction{})
	s.True(IsNodeRejection(err))

	s.rpc.blockErr = &jsonrpc.RPCError{Code: -32005, Message: "Node is behind"}
	_, err = s.client.LatestBlockhash(s.ctx)
	s.True(IsNodeRejection(err))

	s.rpc.sendErr = errors.New("dial tcp 127.0.0.1:8899: connect: connection refused")
	_, err = s.client.Submit(s.ctx, &solana.Transaction{})
	s.False(IsNodeRejection(err))

	s.False(IsNodeRejection(context.DeadlineExceeded))
	s.False(IsNodeRejection(&SubmitError{Err: ErrMalformedAcknowledgment}))
	s.False(IsNodeRejection(nil))
}

func (s *SolanaClientTestSuite) TestSubmit_MissingSignature() {
	id, err := s.client.Submit(s.ctx, &solana.Transaction{})

	s.Empty(id)
	var submitErr *SubmitError
	s.Require().ErrorAs(err, &submitErr)
	s.ErrorIs(err, ErrMalformedAcknowledgment)
}

func (s *SolanaClientTestSuite) TestHealth() {
	s.rpc.health = rpc.HealthOk
	s.NoError(s.client.Health(s.ctx))

	s.rpc.health = "behind"
	s.ErrorIs(s.client.Health(s.ctx), ErrUnhealthy)

	s.rpc.healthErr = errors.New("timeout")
	s.ErrorIs(s.client.Health(s.ctx), ErrUnhealthy)
}

func (s *SolanaClientTestSuite) TestNoTimeoutConfigured() {
	client := newSolanaClient(s.rpc, &config.LedgerConfig{})
	s.rpc.blockhash = &rpc.GetLatestBlockhashResult{
		Value: &rpc.LatestBlockhashResult{Blockhash: solana.Hash{1}},
	}

	_, err := client.LatestBlockhash(s.ctx)

	s.NoError(err)
	s.Equal([]bool{false}, s.rpc.deadlines)
	s.Equal([]rpc.CommitmentType{rpc.CommitmentFinalized}, s.rpc.commitments)
}

func (s *SolanaClientTestSuite) TestParseCommitment() {
	s.Equal(rpc.CommitmentProcessed, parseCommitment("processed"))
	s.Equal(rpc.CommitmentConfirmed, parseCommitment("confirmed"))
	s.Equal(rpc.CommitmentFinalized, parseCommitment("finalized"))
	s.Equal(rpc.CommitmentFinalized, parseCommitment(""))
}

func (s *SolanaClientTestSuite) TestNewSolanaClient_UsesRPCClient() {
	client := NewSolanaClient(&config.LedgerConfig{URL: "http://127.0.0.1:8899", SkipPreflight: true})

	s.NotNil(client.rpc)
	s.True(client.skipPreflight)
}
