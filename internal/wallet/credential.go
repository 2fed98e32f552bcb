// Package wallet holds the custodial signing credential used as transfer sender.
package wallet

import (
	"bytes"
	"crypto/ed25519"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58/base58"
)

var (
	ErrCredentialMissing = errors.New("sender private key is missing")
	ErrInvalidCredential = errors.New("sender private key is invalid")
)

// Credential is a 64-byte ed25519 keypair (seed followed by public key), the layout
// produced by solana-keygen and most wallets. The secret half never leaves this type.
type Credential struct {
	key       solana.PrivateKey
	publicKey solana.PublicKey
}

// LoadCredential decodes a base58 secret key. An empty secret yields ErrCredentialMissing.
func LoadCredential(secret string) (*Credential, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, ErrCredentialMissing
	}

	raw, err := base58.Decode(secret)
	if err != nil {
		return nil, fmt.Errorf("%w: not base58", ErrInvalidCredential)
	}

	return NewCredential(raw)
}

// NewCredential validates raw keypair bytes and takes a private copy of them.
func NewCredential(raw []byte) (*Credential, error) {
	if len(raw) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidCredential, ed25519.PrivateKeySize, len(raw))
	}

	derived := ed25519.NewKeyFromSeed(raw[:ed25519.SeedSize])
	if !bytes.Equal(derived[ed25519.SeedSize:], raw[ed25519.SeedSize:]) {
		return nil, fmt.Errorf("%w: public key does not match seed", ErrInvalidCredential)
	}

	key := make(solana.PrivateKey, len(raw))
	copy(key, raw)

	return &Credential{
		key:       key,
		publicKey: key.PublicKey(),
	}, nil
}

// PublicKey returns the sender account identifier derived from the secret key.
func (c *Credential) PublicKey() solana.PublicKey {
	return c.publicKey
}

// Sign adds the credential's signature to tx. The transaction must list the
// credential's public key as its only required signer.
func (c *Credential) Sign(tx *solana.Transaction) error {
	if tx == nil {
		return errors.New("cannot sign nil transaction")
	}

	_, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(c.publicKey) {
			return &c.key
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to sign transaction: %w", err)
	}

	return nil
}

func (c *Credential) String() string {
	return "Credential(" + c.publicKey.String() + ")"
}

func (c *Credential) GoString() string {
	return c.String()
}

// LogValue keeps slog from ever rendering key material.
func (c *Credential) LogValue() slog.Value {
	return slog.StringValue(c.publicKey.String())
}
