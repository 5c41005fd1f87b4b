package apitoken

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/credvault/internal/cryptox"
	"github.com/dmitrijs2005/credvault/internal/suites"
)

// Envelope is the parsed form of "$algoId$iv:tag:ciphertext:hashedToken$".
type Envelope struct {
	AlgoID      string
	IV          []byte
	Tag         []byte
	Ciphertext  []byte
	HashedToken []byte
}

// String serializes the envelope with base64 padding stripped.
func (e *Envelope) String() string {
	fields := []string{
		cryptox.EncodeBase64(e.IV),
		cryptox.EncodeBase64(e.Tag),
		cryptox.EncodeBase64(e.Ciphertext),
		cryptox.EncodeBase64(e.HashedToken),
	}
	return "$" + e.AlgoID + "$" + strings.Join(fields, ":") + "$"
}

// IsEnvelope reports whether a stored API key value is a sealed envelope
// rather than a plaintext token. Raw tokens are base64url and never start
// with '$'.
func IsEnvelope(s string) bool {
	return strings.HasPrefix(s, "$")
}

// ParseEnvelope splits s into its fields. Field lengths are checked against
// the suite by the caller once the identifier is resolved.
func ParseEnvelope(s string) (*Envelope, error) {
	parts := strings.Split(s, "$")
	if len(parts) != 4 || parts[0] != "" || parts[3] != "" || parts[1] == "" {
		return nil, fmt.Errorf("%w: expected $algo$data$", cryptox.ErrMalformedEnvelope)
	}

	data := strings.Split(parts[2], ":")
	if len(data) != 4 {
		return nil, fmt.Errorf("%w: expected 4 data fields, got %d", cryptox.ErrMalformedEnvelope, len(data))
	}

	var decoded [4][]byte
	for i, f := range data {
		b, err := cryptox.DecodeBase64(f)
		if err != nil {
			return nil, fmt.Errorf("%w: field %d: %v", cryptox.ErrMalformedEnvelope, i, err)
		}
		decoded[i] = b
	}

	return &Envelope{
		AlgoID:      parts[1],
		IV:          decoded[0],
		Tag:         decoded[1],
		Ciphertext:  decoded[2],
		HashedToken: decoded[3],
	}, nil
}

// check validates field lengths against spec.
func (e *Envelope) check(spec suites.Spec) error {
	switch {
	case len(e.IV) != spec.IVLength:
		return fmt.Errorf("%w: iv is %d bytes, want %d", cryptox.ErrMalformedEnvelope, len(e.IV), spec.IVLength)
	case len(e.Tag) != spec.TagLength:
		return fmt.Errorf("%w: tag is %d bytes, want %d", cryptox.ErrMalformedEnvelope, len(e.Tag), spec.TagLength)
	case len(e.HashedToken) != spec.HashLength:
		return fmt.Errorf("%w: hashed token is %d bytes, want %d", cryptox.ErrMalformedEnvelope, len(e.HashedToken), spec.HashLength)
	}
	return nil
}
