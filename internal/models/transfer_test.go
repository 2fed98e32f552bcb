package models

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
)

type TransferModelTestSuite struct {
	suite.Suite
}

func TestTransferModelTestSuite(t *testing.T) {
	suite.Run(t, new(TransferModelTestSuite))
}

func (s *TransferModelTestSuite) TestLamportsPerSOL() {
	s.Equal(1_000_000_000, LamportsPerSOL)
}

func (s *TransferModelTestSuite) TestCircuitBreakerState_String() {
	s.Equal("closed", CircuitBreakerState(0).String())
	s.Equal("open", CircuitBreakerState(1).String())
	s.Equal("half_open", CircuitBreakerState(2).String())
	s.Equal("unknown", CircuitBreakerState(7).String())
}

func (s *TransferModelTestSuite) TestTraceIDContext() {
	s.Equal("", TraceIDFromContext(context.Background()))

	ctx := WithTraceID(context.Background(), "trace-123")
	s.Equal("trace-123", TraceIDFromContext(ctx))
}
