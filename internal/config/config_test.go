package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) TestLoad_Defaults() {
	for _, key := range []string{
		"SOLANA_URL", "SENDER_PRIVATE_KEY", "DENYLIST", "DENYLIST_FILE", "APP_ENV",
		"SERVER_HOST", "SERVER_PORT", "LEDGER_TIMEOUT", "LEDGER_COMMITMENT",
		"LEDGER_SKIP_PREFLIGHT", "LEDGER_EXPOSE_ERRORS", "CIRCUIT_BREAKER_ENABLED",
		"CIRCUIT_BREAKER_MAX_FAILURES", "LOG_FORMAT",
	} {
		s.T().Setenv(key, "")
	}

	cfg := Load()

	s.Equal("https://api.mainnet-beta.solana.com", cfg.Ledger.URL)
	s.Equal(30*time.Second, cfg.Ledger.Timeout)
	s.Equal("finalized", cfg.Ledger.Commitment)
	s.True(cfg.Ledger.ExposeErrors)
	s.False(cfg.Ledger.SkipPreflight)
	s.Empty(cfg.Wallet.SenderPrivateKey)
	s.Empty(cfg.Denylist.Addresses)
	s.True(cfg.CircuitBreaker.Enabled)
	s.Equal(5, cfg.CircuitBreaker.MaxFailures)
	s.Equal("0.0.0.0:5000", cfg.Address())
	s.True(cfg.IsDevelopment())
	s.Equal("text", cfg.Log.Format)
}

func (s *ConfigTestSuite) TestLoad_FromEnvironment() {
	s.T().Setenv("SOLANA_URL", "http://localhost:8899")
	s.T().Setenv("LEDGER_TIMEOUT", "5s")
	s.T().Setenv("LEDGER_EXPOSE_ERRORS", "false")
	s.T().Setenv("SENDER_PRIVATE_KEY", "secret")
	s.T().Setenv("DENYLIST", " addrA, ,addrB ")
	s.T().Setenv("CIRCUIT_BREAKER_MAX_FAILURES", "2")
	s.T().Setenv("APP_ENV", "production")
	s.T().Setenv("LOG_FORMAT", "")

	cfg := Load()

	s.Equal("http://localhost:8899", cfg.Ledger.URL)
	s.Equal(5*time.Second, cfg.Ledger.Timeout)
	s.False(cfg.Ledger.ExposeErrors)
	s.Equal("secret", cfg.Wallet.SenderPrivateKey)
	s.Equal([]string{"addrA", "addrB"}, cfg.Denylist.Addresses)
	s.Equal(2, cfg.CircuitBreaker.MaxFailures)
	s.False(cfg.IsDevelopment())
	s.Equal("json", cfg.Log.Format)
}

func (s *ConfigTestSuite) TestLoad_ExplicitLogFormatWins() {
	s.T().Setenv("APP_ENV", "development")
	s.T().Setenv("LOG_FORMAT", "json")

	cfg := Load()

	s.Equal("json", cfg.Log.Format)
}

func (s *ConfigTestSuite) TestLoad_InvalidValuesFallBackToDefaults() {
	s.T().Setenv("LEDGER_TIMEOUT", "soon")
	s.T().Setenv("CIRCUIT_BREAKER_MAX_FAILURES", "many")
	s.T().Setenv("LEDGER_SKIP_PREFLIGHT", "maybe")

	cfg := Load()

	s.Equal(30*time.Second, cfg.Ledger.Timeout)
	s.Equal(5, cfg.CircuitBreaker.MaxFailures)
	s.False(cfg.Ledger.SkipPreflight)
}

func (s *ConfigTestSuite) TestLoadDenylistAddresses_NoFile() {
	cfg := DenylistConfig{Addresses: []string{"addrA"}}

	addresses, err := cfg.LoadDenylistAddresses()

	s.NoError(err)
	s.Equal([]string{"addrA"}, addresses)
}

func (s *ConfigTestSuite) TestLoadDenylistAddresses_FromYAML() {
	path := filepath.Join(s.T().TempDir(), "denylist.yaml")
	content := "addresses:\n  - addrB\n  - \"  \"\n  - addrC\n"
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o600))

	cfg := DenylistConfig{Addresses: []string{"addrA"}, File: path}

	addresses, err := cfg.LoadDenylistAddresses()

	s.NoError(err)
	s.Equal([]string{"addrA", "addrB", "addrC"}, addresses)
}

func (s *ConfigTestSuite) TestLoadDenylistAddresses_Errors() {
	dir := s.T().TempDir()

	missing := DenylistConfig{File: filepath.Join(dir, "missing.yaml")}
	_, err := missing.LoadDenylistAddresses()
	s.Error(err)

	malformedPath := filepath.Join(dir, "malformed.yaml")
	s.Require().NoError(os.WriteFile(malformedPath, []byte("addresses: [unterminated"), 0o600))
	_, err = (&DenylistConfig{File: malformedPath}).LoadDenylistAddresses()
	s.Error(err)

	noKeyPath := filepath.Join(dir, "nokey.yaml")
	s.Require().NoError(os.WriteFile(noKeyPath, []byte("other: value\n"), 0o600))
	_, err = (&DenylistConfig{File: noKeyPath}).LoadDenylistAddresses()
	s.Error(err)
}
