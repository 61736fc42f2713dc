package ticket

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/chainpass/ticketing/internal/adapter"
	"github.com/chainpass/ticketing/internal/domain"
)

// Encoder produces the canonical byte form of a payload.
//
// The canonical form is RFC 8785 (JCS) JSON of the five payload fields: keys sorted
// lexicographically, integers in decimal, strings minimally escaped, no whitespace.
// Signer and verifier both go through Encode, so any two equal payloads sign identically.
//
//go:generate mockgen -source=encoder.go -destination=../mocks/ticket_encoder.go -package=mocks -mock_names=Encoder=MockTicketEncoder
type Encoder interface {
	// Encode validates p and returns its canonical bytes
	Encode(p Payload) ([]byte, error)

	// Decode parses canonical (or any strictly shaped) payload JSON
	Decode(data []byte) (Payload, error)
}

type encoder struct {
	jcs adapter.JCS
}

// NewEncoder creates a canonical payload encoder
func NewEncoder(jcs adapter.JCS) Encoder {
	return &encoder{jcs: jcs}
}

func (e *encoder) Encode(p Payload) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	data, err := e.jcs.Canonicalize(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
	}

	return data, nil
}

func (e *encoder) Decode(data []byte) (Payload, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var p Payload
	if err := dec.Decode(&p); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
	}

	if err := p.Validate(); err != nil {
		return Payload{}, err
	}

	return p, nil
}
