package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ResponseTestSuite struct {
	suite.Suite
}

func TestResponseTestSuite(t *testing.T) {
	suite.Run(t, new(ResponseTestSuite))
}

func (s *ResponseTestSuite) TestNewErrorResponse_DefaultMessage() {
	resp := NewErrorResponse(TransferSenderBlacklisted, "trace-1")

	s.Equal("Sender address is blacklisted.", resp.Error)
	s.Equal("TRANSFER_001", resp.Code)
	s.Equal("trace-1", resp.TraceID)
	s.Empty(resp.Details)
}

func (s *ResponseTestSuite) TestNewErrorResponse_WithOptions() {
	resp := NewErrorResponse(TransferFailed, "trace-2",
		WithMessage("node rejected transaction"),
		WithDetails("blockhash not found"),
	)

	s.Equal("node rejected transaction", resp.Error)
	s.Equal([]string{"blockhash not found"}, resp.Details)
}

func (s *ResponseTestSuite) TestWithMessage_EmptyKeepsDefault() {
	resp := NewErrorResponse(ValidationRequiredField, "", WithMessage(""))
	s.Equal("Missing required fields", resp.Error)
}

func (s *ResponseTestSuite) TestMarshal_ErrorIsString() {
	resp := NewErrorResponse(ValidationOutOfRange, "trace-3")

	data, err := json.Marshal(resp)
	s.Require().NoError(err)

	var decoded map[string]any
	s.Require().NoError(json.Unmarshal(data, &decoded))
	s.Equal("Amount must be a positive number.", decoded["error"])
	s.Equal("VALIDATION_004", decoded["code"])
	s.NotContains(decoded, "details")
	s.NotContains(decoded, "transaction_id")
}

func (s *ResponseTestSuite) TestWrapSystemError_HidesInternalError() {
	internal := stderrors.New("dial tcp 10.0.0.1:8899: connection refused")

	resp, err := WrapSystemError(internal, "trace-4")

	s.Equal(internal, err)
	s.Equal(string(SystemInternalError), resp.Code)
	s.NotContains(resp.Error, "connection refused")
}

func (s *ResponseTestSuite) TestGetHTTPStatus() {
	testCases := []struct {
		code     ErrorCode
		expected int
	}{
		{ValidationGeneral, http.StatusBadRequest},
		{ValidationRequiredField, http.StatusBadRequest},
		{ValidationInvalidFormat, http.StatusBadRequest},
		{ValidationOutOfRange, http.StatusBadRequest},
		{ValidationBodyTooLarge, http.StatusRequestEntityTooLarge},
		{TransferSenderBlacklisted, http.StatusForbidden},
		{TransferReceiverBlacklisted, http.StatusForbidden},
		{TransferFailed, http.StatusInternalServerError},
		{SystemConfigurationError, http.StatusInternalServerError},
		{SystemInternalError, http.StatusInternalServerError},
		{SystemServiceUnavailable, http.StatusServiceUnavailable},
		{"UNKNOWN", http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		s.Run(string(tc.code), func() {
			s.Equal(tc.expected, GetHTTPStatus(tc.code))
		})
	}
}

func (s *ResponseTestSuite) TestIsServerError() {
	s.False(NewErrorResponse(TransferReceiverBlacklisted, "").IsServerError())
	s.False(NewErrorResponse(ValidationGeneral, "").IsServerError())
	s.False(NewErrorResponse(ValidationBodyTooLarge, "").IsServerError())
	s.True(NewErrorResponse(TransferFailed, "").IsServerError())
	s.True(NewErrorResponse(SystemServiceUnavailable, "").IsServerError())
}
