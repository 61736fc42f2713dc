package ticket

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"

	"github.com/chainpass/ticketing/internal/domain"
)

// Signer issues signed tickets. Implementations hold the private key and must only
// be constructed inside server processes.
//
//go:generate mockgen -source=signer.go -destination=../mocks/ticket_signer.go -package=mocks -mock_names=Signer=MockTicketSigner
type Signer interface {
	// Sign returns the hex Ed25519 signature over the canonical payload bytes
	Sign(p Payload) (string, error)

	// Issue signs p and wraps it into a SignedTicket
	Issue(p Payload) (SignedTicket, error)

	// PublicKey returns the hex public key verifiers need
	PublicKey() string
}

type ed25519Signer struct {
	key     ed25519.PrivateKey
	encoder Encoder
}

// NewSigner creates an Ed25519 signer from a hex key.
// It fails with domain.ErrConfiguration when the key is absent or unusable.
func NewSigner(privateKeyHex string, encoder Encoder) (Signer, error) {
	key, err := ParsePrivateKey(privateKeyHex)
	if err != nil {
		return nil, err
	}

	return &ed25519Signer{key: key, encoder: encoder}, nil
}

func (s *ed25519Signer) Sign(p Payload) (string, error) {
	data, err := s.encoder.Encode(p)
	if err != nil {
		return "", err
	}

	sig, err := signBytes(s.key, data)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(sig), nil
}

func (s *ed25519Signer) Issue(p Payload) (SignedTicket, error) {
	sig, err := s.Sign(p)
	if err != nil {
		return SignedTicket{}, err
	}

	return SignedTicket{Payload: p, Signature: sig}, nil
}

func (s *ed25519Signer) PublicKey() string {
	pub, ok := s.key.Public().(ed25519.PublicKey)
	if !ok {
		return ""
	}
	return hex.EncodeToString(pub)
}

// signBytes converts a panic from malformed key material into domain.ErrSigning
func signBytes(key ed25519.PrivateKey, data []byte) (sig []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", domain.ErrSigning, r)
		}
	}()

	return ed25519.Sign(key, data), nil
}

// unavailableSigner stands in when no key is configured so the signing endpoint can answer
// with a configuration error instead of the process refusing to start
type unavailableSigner struct {
	cause error
}

// NewUnavailableSigner returns a Signer whose every call fails with cause
func NewUnavailableSigner(cause error) Signer {
	if cause == nil {
		cause = fmt.Errorf("%w: ticket signing key is not configured", domain.ErrConfiguration)
	}
	return &unavailableSigner{cause: cause}
}

func (s *unavailableSigner) Sign(Payload) (string, error) {
	return "", s.cause
}

func (s *unavailableSigner) Issue(Payload) (SignedTicket, error) {
	return SignedTicket{}, s.cause
}

func (s *unavailableSigner) PublicKey() string {
	return ""
}
