package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"sol-wallet/internal/config"
	"sol-wallet/internal/handlers"
	"sol-wallet/internal/ledger"
	"sol-wallet/internal/models"
	"sol-wallet/internal/services"
	"sol-wallet/internal/wallet"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	cfg := config.Load()

	logger := newLogger(cfg.Log, os.Stdout)
	slog.SetDefault(logger)

	credential, err := wallet.LoadCredential(cfg.Wallet.SenderPrivateKey)
	var signer services.SignerInterface
	switch {
	case errors.Is(err, wallet.ErrCredentialMissing):
		logger.Warn("SENDER_PRIVATE_KEY is not set; transfers will be rejected")
	case err != nil:
		log.Fatalf("Failed to load sender credential: %v", err)
	default:
		signer = credential
		logger.Info("sender credential loaded", slog.Any("sender", credential))
	}

	extraDenied, err := cfg.Denylist.LoadDenylistAddresses()
	if err != nil {
		log.Fatalf("Failed to load denylist: %v", err)
	}
	denylist := services.NewDenylist(append(append([]string{}, services.DefaultDenylist...), extraDenied...)...)

	metrics := services.NewPrometheusMetrics()
	metrics.RecordGauge("denylist_size", float64(denylist.Size()), nil)

	auditLogger := services.NewAuditLogger(logger)
	ledgerClient := ledger.NewSolanaClient(&cfg.Ledger)

	var circuitBreaker services.CircuitBreakerInterface
	if cfg.CircuitBreaker.Enabled {
		circuitBreaker = services.NewCircuitBreaker(cfg.CircuitBreaker, func(from, to models.CircuitBreakerState) {
			auditLogger.LogCircuitBreakerStateChange(context.Background(), "solana_rpc", from.String(), to.String())
			metrics.RecordGauge("circuit_breaker_state", float64(to), map[string]string{"service": "solana_rpc"})
		})
	}

	transferService := services.NewTransferService(
		signer,
		denylist,
		ledgerClient,
		circuitBreaker,
		auditLogger,
		metrics,
		cfg.Ledger.ExposeErrors,
	)

	e := newServer(logger,
		handlers.NewTransferHandler(transferService),
		handlers.NewHealthCheckHandler(ledgerClient),
	)

	srv := &http.Server{
		Addr:         cfg.Address(),
		Handler:      e,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("HTTP server listening",
			slog.String("address", cfg.Address()),
			slog.String("environment", cfg.Server.Environment),
			slog.String("solana_url", cfg.Ledger.URL),
			slog.Int("denylist_size", denylist.Size()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", slog.String("error", err.Error()))
	}
	logger.Info("server stopped")
}
