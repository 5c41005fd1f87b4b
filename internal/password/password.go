// Package password turns passwords into salted, iterated-hash verifier
// strings and checks candidates against them.
//
// A verifier names its own suite and round count, so records written under
// an older default keep verifying after the default moves on.
package password

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/credvault/internal/cryptox"
	"github.com/dmitrijs2005/credvault/internal/suites"
)

// Hasher creates and checks password verifiers. The zero value is not
// usable; construct with NewHasher.
type Hasher struct {
	spec   suites.Spec
	rounds int
}

// NewHasher returns a Hasher that writes new records with the given suite
// and round count. An empty suiteID selects the registry default and
// rounds <= 0 selects the suite default.
func NewHasher(suiteID string, rounds int) (*Hasher, error) {
	spec := suites.DefaultPassword()
	if suiteID != "" {
		var err error
		spec, err = suites.LookupPassword(suiteID)
		if err != nil {
			return nil, err
		}
	}
	if rounds <= 0 {
		rounds = spec.Rounds
	}
	if rounds > MaxRounds {
		return nil, fmt.Errorf("rounds %d exceed maximum %d", rounds, MaxRounds)
	}
	return &Hasher{spec: spec, rounds: rounds}, nil
}

// Default returns a Hasher using the registry default suite and rounds.
func Default() *Hasher {
	h, _ := NewHasher("", 0)
	return h
}

// SuiteID reports the suite used for new records.
func (h *Hasher) SuiteID() string { return h.spec.ID }

// Rounds reports the round count used for new records.
func (h *Hasher) Rounds() int { return h.rounds }

// Hash returns a fresh verifier for password. Two calls never return the
// same string because each draws a new salt.
func (h *Hasher) Hash(password string) (string, error) {
	salt, err := cryptox.RandomBytes(suites.SaltLength)
	if err != nil {
		return "", fmt.Errorf("salt: %w", err)
	}

	sum, err := derive(h.spec, []byte(password), salt, h.rounds)
	if err != nil {
		return "", err
	}

	r := &Record{AlgoID: h.spec.ID, Rounds: h.rounds, Salt: salt, Hash: sum}
	return r.String(), nil
}

// Verify reports whether password matches stored. A wrong password yields
// false with a nil error; only unparsable or unresolvable records fail.
func (h *Hasher) Verify(password, stored string) (bool, error) {
	r, spec, err := resolve(stored)
	if err != nil {
		return false, err
	}

	sum, err := derive(spec, []byte(password), r.Salt, r.Rounds)
	if err != nil {
		return false, err
	}
	return cryptox.Equal(sum, r.Hash), nil
}

// NeedsRehash reports whether stored was written with a suite or round
// count other than the ones this Hasher uses for new records.
func (h *Hasher) NeedsRehash(stored string) (bool, error) {
	r, _, err := resolve(stored)
	if err != nil {
		return false, err
	}
	return r.AlgoID != h.spec.ID || r.Rounds != h.rounds, nil
}

// HashContext is Hash bounded by ctx.
func (h *Hasher) HashContext(ctx context.Context, password string) (string, error) {
	return bounded(ctx, func() (string, error) { return h.Hash(password) })
}

// VerifyContext is Verify bounded by ctx. When ctx ends first the result is
// false together with ctx.Err(); an unfinished check never counts as a match.
func (h *Hasher) VerifyContext(ctx context.Context, password, stored string) (bool, error) {
	return bounded(ctx, func() (bool, error) { return h.Verify(password, stored) })
}

func resolve(stored string) (*Record, suites.Spec, error) {
	r, err := ParseRecord(stored)
	if err != nil {
		return nil, suites.Spec{}, err
	}
	spec, err := suites.LookupPassword(r.AlgoID)
	if err != nil {
		return nil, suites.Spec{}, err
	}
	if len(r.Hash) != spec.KeyLength {
		return nil, suites.Spec{}, fmt.Errorf("%w: hash is %d bytes, %s needs %d",
			cryptox.ErrMalformedRecord, len(r.Hash), spec.ID, spec.KeyLength)
	}
	return r, spec, nil
}

func derive(spec suites.Spec, password, salt []byte, rounds int) ([]byte, error) {
	var (
		sum []byte
		err error
	)
	switch spec.KDFName {
	case suites.KDFPBKDF2:
		sum, err = cryptox.PBKDF2(password, salt, rounds, spec.KeyLength, spec.HashName)
	case suites.KDFArgon2ID:
		sum, err = cryptox.Argon2ID(password, salt, rounds, spec.KeyLength)
	default:
		return nil, fmt.Errorf("%w: kdf %q", cryptox.ErrUnsupportedSuite, spec.KDFName)
	}
	if err != nil {
		return nil, err
	}
	if len(sum) != spec.KeyLength {
		return nil, fmt.Errorf("%w: got %d, want %d", cryptox.ErrKeyDerivationMismatch, len(sum), spec.KeyLength)
	}
	return sum, nil
}

func bounded[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, err
	}

	type result struct {
		v   T
		err error
	}
	ch := make(chan result, 1)
	go func() {
		v, err := fn()
		ch <- result{v, err}
	}()

	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case r := <-ch:
		return r.v, r.err
	}
}
