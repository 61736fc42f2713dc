package adapter

import (
	"encoding/json"
	"fmt"

	"github.com/gowebpki/jcs"
)

// JCS produces RFC 8785 canonical JSON
//
//go:generate mockgen -source=jcs.go -destination=../mocks/jcs.go -package=mocks -mock_names=JCS=MockJCS
type JCS interface {
	// Transform canonicalizes an already serialized JSON document
	Transform(data []byte) ([]byte, error)

	// Canonicalize marshals v and canonicalizes the result
	Canonicalize(v interface{}) ([]byte, error)
}

// RealJCS implements JCS with github.com/gowebpki/jcs
type RealJCS struct{}

// NewJCS creates a canonicalizer
func NewJCS() JCS {
	return &RealJCS{}
}

func (j *RealJCS) Transform(data []byte) ([]byte, error) {
	return jcs.Transform(data)
}

func (j *RealJCS) Canonicalize(v interface{}) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal value: %w", err)
	}

	return jcs.Transform(raw)
}
