package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultSolanaURL = "https://api.mainnet-beta.solana.com"

type Config struct {
	Server         ServerConfig
	Ledger         LedgerConfig
	Wallet         WalletConfig
	Denylist       DenylistConfig
	CircuitBreaker CircuitBreakerConfig
	Log            LogConfig
}

type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type LedgerConfig struct {
	URL           string
	Timeout       time.Duration
	Commitment    string
	SkipPreflight bool
	ExposeErrors  bool
}

// WalletConfig holds the sender secret exactly as supplied. It must never be logged.
type WalletConfig struct {
	SenderPrivateKey string
}

type DenylistConfig struct {
	Addresses []string
	File      string
}

type CircuitBreakerConfig struct {
	Enabled         bool
	MaxFailures     int
	ResetTimeout    time.Duration
	HalfOpenMaxSucc int
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() *Config {
	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "5000"),
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Environment:     getEnv("APP_ENV", "development"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Ledger: LedgerConfig{
			URL:           getEnv("SOLANA_URL", defaultSolanaURL),
			Timeout:       getDurationEnv("LEDGER_TIMEOUT", 30*time.Second),
			Commitment:    getEnv("LEDGER_COMMITMENT", "finalized"),
			SkipPreflight: getBoolEnv("LEDGER_SKIP_PREFLIGHT", false),
			ExposeErrors:  getBoolEnv("LEDGER_EXPOSE_ERRORS", true),
		},
		Wallet: WalletConfig{
			SenderPrivateKey: os.Getenv("SENDER_PRIVATE_KEY"),
		},
		Denylist: DenylistConfig{
			Addresses: getListEnv("DENYLIST"),
			File:      getEnv("DENYLIST_FILE", ""),
		},
		CircuitBreaker: CircuitBreakerConfig{
			Enabled:         getBoolEnv("CIRCUIT_BREAKER_ENABLED", true),
			MaxFailures:     getIntEnv("CIRCUIT_BREAKER_MAX_FAILURES", 5),
			ResetTimeout:    getDurationEnv("CIRCUIT_BREAKER_RESET_TIMEOUT", 30*time.Second),
			HalfOpenMaxSucc: getIntEnv("CIRCUIT_BREAKER_HALF_OPEN_SUCCESSES", 3),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", ""),
		},
	}

	if config.Log.Format == "" {
		config.Log.Format = "json"
		if config.IsDevelopment() {
			config.Log.Format = "text"
		}
	}

	if os.Getenv("SOLANA_URL") == "" {
		log.Printf("INFO: SOLANA_URL not set, defaulting to %s", defaultSolanaURL)
	}

	return config
}

func (c *Config) Address() string {
	return c.Server.Host + ":" + c.Server.Port
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

// denylistFile is the on-disk layout of DENYLIST_FILE.
type denylistFile struct {
	Addresses []string `yaml:"addresses"`
}

// LoadDenylistAddresses returns the configured extra denylist entries: the DENYLIST
// variable followed by the addresses listed in DENYLIST_FILE, if one is set.
func (c *DenylistConfig) LoadDenylistAddresses() ([]string, error) {
	addresses := append([]string{}, c.Addresses...)
	if c.File == "" {
		return addresses, nil
	}

	data, err := os.ReadFile(c.File)
	if err != nil {
		return nil, fmt.Errorf("failed to read denylist file: %w", err)
	}

	var parsed denylistFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse denylist file: %w", err)
	}
	if parsed.Addresses == nil {
		return nil, errors.New("denylist file has no addresses key")
	}

	for _, address := range parsed.Addresses {
		if address = strings.TrimSpace(address); address != "" {
			addresses = append(addresses, address)
		}
	}

	return addresses, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getListEnv splits a comma-separated variable, dropping blank entries
func getListEnv(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
