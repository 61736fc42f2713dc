package ticket

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/chainpass/ticketing/internal/domain"
)

// Verifier checks ticket signatures against a ring of trusted public keys.
// Retired keys stay in the ring so tickets issued before a rotation keep verifying.
//
//go:generate mockgen -source=verifier.go -destination=../mocks/ticket_verifier.go -package=mocks -mock_names=Verifier=MockTicketVerifier
type Verifier interface {
	// Verify re-encodes p and reports whether signatureHex was made by any trusted key.
	// An error is returned only when p itself cannot be encoded.
	Verify(p Payload, signatureHex string) (bool, error)

	// PublicKeys returns the trusted keys in hex
	PublicKeys() []string
}

type keyRingVerifier struct {
	keys    []ed25519.PublicKey
	encoder Encoder
}

// NewVerifier creates a verifier trusting the given hex public keys
func NewVerifier(publicKeysHex []string, encoder Encoder) (Verifier, error) {
	keys := make([]ed25519.PublicKey, 0, len(publicKeysHex))
	seen := make(map[string]bool)
	for _, k := range publicKeysHex {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" || seen[k] {
			continue
		}
		pub, err := ParsePublicKey(k)
		if err != nil {
			return nil, err
		}
		seen[k] = true
		keys = append(keys, pub)
	}

	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: no ticket verification keys configured", domain.ErrConfiguration)
	}

	return &keyRingVerifier{keys: keys, encoder: encoder}, nil
}

func (v *keyRingVerifier) Verify(p Payload, signatureHex string) (bool, error) {
	data, err := v.encoder.Encode(p)
	if err != nil {
		return false, err
	}

	sig, err := hex.DecodeString(strings.TrimSpace(signatureHex))
	if err != nil || len(sig) != ed25519.SignatureSize {
		return false, nil
	}

	for _, key := range v.keys {
		if ed25519.Verify(key, data, sig) {
			return true, nil
		}
	}

	return false, nil
}

func (v *keyRingVerifier) PublicKeys() []string {
	out := make([]string, len(v.keys))
	for i, k := range v.keys {
		out[i] = hex.EncodeToString(k)
	}
	return out
}
