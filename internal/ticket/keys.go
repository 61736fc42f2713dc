package ticket

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/chainpass/ticketing/internal/domain"
)

// ParsePrivateKey decodes a hex Ed25519 private key, either a 32-byte seed or a 64-byte key
func ParsePrivateKey(keyHex string) (ed25519.PrivateKey, error) {
	keyHex = strings.TrimSpace(keyHex)
	if keyHex == "" {
		return nil, fmt.Errorf("%w: ticket signing key is not configured", domain.ErrConfiguration)
	}

	raw, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, fmt.Errorf("%w: ticket signing key is not valid hex", domain.ErrConfiguration)
	}

	switch len(raw) {
	case ed25519.SeedSize:
		return ed25519.NewKeyFromSeed(raw), nil
	case ed25519.PrivateKeySize:
		return ed25519.PrivateKey(raw), nil
	default:
		return nil, fmt.Errorf("%w: ticket signing key has %d bytes, want %d or %d",
			domain.ErrConfiguration, len(raw), ed25519.SeedSize, ed25519.PrivateKeySize)
	}
}

// ParsePublicKey decodes a hex Ed25519 public key
func ParsePublicKey(keyHex string) (ed25519.PublicKey, error) {
	raw, err := hex.DecodeString(strings.TrimSpace(keyHex))
	if err != nil {
		return nil, fmt.Errorf("%w: public key is not valid hex", domain.ErrConfiguration)
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("%w: public key has %d bytes, want %d", domain.ErrConfiguration, len(raw), ed25519.PublicKeySize)
	}

	return ed25519.PublicKey(raw), nil
}

// GenerateKey creates a new signing key and returns the hex seed and hex public key
func GenerateKey() (seedHex string, publicKeyHex string, err error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", domain.ErrSigning, err)
	}

	return hex.EncodeToString(priv.Seed()), hex.EncodeToString(pub), nil
}
