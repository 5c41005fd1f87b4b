// Package apitoken mints per-account API tokens and seals them into
// self-describing envelopes under a password-derived key.
//
// An envelope carries two independent values. The tag authenticates the
// ciphertext under the derived key and must match before anything is
// deciphered. The hashed token fingerprints the raw token so that a
// presented token can be checked without the secret and without decryption.
//
// The secret is the account password alone. The username does not take part,
// so renaming an account leaves its envelope valid, while a password change
// must re-seal the token (see Sealer.Reseal).
package apitoken

import (
	"encoding/base64"
	"fmt"

	"github.com/dmitrijs2005/credvault/internal/cryptox"
	"github.com/dmitrijs2005/credvault/internal/suites"
)

// RawTokenBytes is the entropy of a generated token.
const RawTokenBytes = 32

// NewRawToken returns a fresh token rendered as unpadded base64url.
func NewRawToken() (string, error) {
	b, err := cryptox.RandomBytes(RawTokenBytes)
	if err != nil {
		return "", fmt.Errorf("token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Sealer encrypts, decrypts and verifies envelopes. New envelopes use spec;
// existing ones are opened with whatever suite they name.
type Sealer struct {
	spec   suites.Spec
	lookup func(id string) (suites.Spec, error)
}

// NewSealer returns a Sealer writing envelopes with suiteID, or with the
// registry default when suiteID is empty.
func NewSealer(suiteID string) (*Sealer, error) {
	spec := suites.DefaultToken()
	if suiteID != "" {
		var err error
		spec, err = suites.LookupToken(suiteID)
		if err != nil {
			return nil, err
		}
	}
	return &Sealer{spec: spec, lookup: suites.LookupToken}, nil
}

// Default returns a Sealer for the registry default suite.
func Default() *Sealer {
	s, _ := NewSealer("")
	return s
}

// SuiteID reports the suite used for new envelopes.
func (s *Sealer) SuiteID() string { return s.spec.ID }

// Generate draws a new raw token and seals it under secret. The raw token is
// meant to be shown once; the envelope is what gets stored.
func (s *Sealer) Generate(secret string) (raw, envelope string, err error) {
	raw, err = NewRawToken()
	if err != nil {
		return "", "", err
	}
	envelope, err = s.Encrypt(raw, secret)
	if err != nil {
		return "", "", err
	}
	return raw, envelope, nil
}

// Encrypt seals raw under secret.
func (s *Sealer) Encrypt(raw, secret string) (string, error) {
	spec := s.spec
	if err := supported(spec); err != nil {
		return "", err
	}

	iv, err := cryptox.RandomBytes(spec.IVLength)
	if err != nil {
		return "", fmt.Errorf("iv: %w", err)
	}

	key, err := deriveKey(spec, secret, iv)
	if err != nil {
		return "", err
	}

	token := []byte(raw)
	hashed, err := cryptox.Digest(spec.HashName, spec.HashLength, iv, token)
	if err != nil {
		return "", err
	}

	ct, err := cryptox.XOR(spec.CipherName, key, iv, token)
	if err != nil {
		return "", err
	}

	tag, err := computeTag(spec, key, iv, ct)
	if err != nil {
		return "", err
	}

	e := &Envelope{AlgoID: spec.ID, IV: iv, Tag: tag, Ciphertext: ct, HashedToken: hashed}
	return e.String(), nil
}

// Decrypt opens envelope with secret. If the tag does not authenticate,
// ok is false and nothing is deciphered. Errors are reserved for envelopes
// that cannot be parsed or name an unknown or unavailable suite.
func (s *Sealer) Decrypt(envelope, secret string) (raw string, ok bool, err error) {
	e, spec, err := s.open(envelope)
	if err != nil {
		return "", false, err
	}
	if err := supported(spec); err != nil {
		return "", false, err
	}

	key, err := deriveKey(spec, secret, e.IV)
	if err != nil {
		return "", false, err
	}

	tag, err := computeTag(spec, key, e.IV, e.Ciphertext)
	if err != nil {
		return "", false, err
	}
	if !cryptox.Equal(tag, e.Tag) {
		return "", false, nil
	}

	pt, err := cryptox.XOR(spec.CipherName, key, e.IV, e.Ciphertext)
	if err != nil {
		return "", false, err
	}
	return string(pt), true, nil
}

// Verify reports whether candidate is the token sealed in envelope. It needs
// neither the secret nor a decryption.
func (s *Sealer) Verify(envelope, candidate string) (bool, error) {
	e, spec, err := s.open(envelope)
	if err != nil {
		return false, err
	}

	hashed, err := cryptox.Digest(spec.HashName, spec.HashLength, e.IV, []byte(candidate))
	if err != nil {
		return false, err
	}
	return cryptox.Equal(hashed, e.HashedToken), nil
}

// Reseal moves the token in envelope from oldSecret to newSecret, using this
// Sealer's suite for the new envelope. It fails with
// cryptox.ErrAuthenticationFailed if oldSecret does not open the envelope.
func (s *Sealer) Reseal(envelope, oldSecret, newSecret string) (string, error) {
	raw, ok, err := s.Decrypt(envelope, oldSecret)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", cryptox.ErrAuthenticationFailed
	}
	return s.Encrypt(raw, newSecret)
}

// Verify checks candidate against envelope using the registry.
func Verify(envelope, candidate string) (bool, error) {
	return Default().Verify(envelope, candidate)
}

func (s *Sealer) open(envelope string) (*Envelope, suites.Spec, error) {
	e, err := ParseEnvelope(envelope)
	if err != nil {
		return nil, suites.Spec{}, err
	}
	spec, err := s.lookup(e.AlgoID)
	if err != nil {
		return nil, suites.Spec{}, err
	}
	if err := e.check(spec); err != nil {
		return nil, suites.Spec{}, err
	}
	return e, spec, nil
}

func supported(spec suites.Spec) error {
	if !cryptox.SupportsCipher(spec.CipherName) {
		return fmt.Errorf("%w: cipher %q", cryptox.ErrUnsupportedSuite, spec.CipherName)
	}
	if _, err := cryptox.HashFunc(spec.HashName); err != nil {
		return err
	}
	if spec.KDFName != suites.KDFPBKDF2 {
		return fmt.Errorf("%w: kdf %q", cryptox.ErrUnsupportedSuite, spec.KDFName)
	}
	return nil
}

// deriveKey stretches secret over the envelope IV, so no two envelopes for
// the same secret share a key.
func deriveKey(spec suites.Spec, secret string, iv []byte) ([]byte, error) {
	key, err := cryptox.PBKDF2([]byte(secret), iv, spec.Rounds, spec.KeyLength, spec.KDFHash)
	if err != nil {
		return nil, err
	}
	if len(key) != spec.KeyLength {
		return nil, fmt.Errorf("%w: got %d, want %d", cryptox.ErrKeyDerivationMismatch, len(key), spec.KeyLength)
	}
	return key, nil
}

// computeTag binds the suite identifier and key to the ciphertext.
func computeTag(spec suites.Spec, key, iv, ct []byte) ([]byte, error) {
	return cryptox.Digest(spec.HashName, spec.TagLength, []byte(spec.ID), key, iv, ct)
}
