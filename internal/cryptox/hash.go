package cryptox

import (
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"

	"golang.org/x/crypto/blake2b"
)

// Hash names understood by NewHash.
const (
	SHA256     = "sha256"
	SHA384     = "sha384"
	SHA512     = "sha512"
	BLAKE2b512 = "blake2b512"
)

var hashes = map[string]func() hash.Hash{
	SHA256: sha256.New,
	SHA384: sha512.New384,
	SHA512: sha512.New,
	BLAKE2b512: func() hash.Hash {
		// unkeyed New512 never fails
		h, _ := blake2b.New512(nil)
		return h
	},
}

// HashFunc returns the constructor registered under name.
func HashFunc(name string) (func() hash.Hash, error) {
	f, ok := hashes[name]
	if !ok {
		return nil, fmt.Errorf("%w: hash %q", ErrUnsupportedSuite, name)
	}
	return f, nil
}

// NewHash returns a fresh hash.Hash for name.
func NewHash(name string) (hash.Hash, error) {
	f, err := HashFunc(name)
	if err != nil {
		return nil, err
	}
	return f(), nil
}

// Digest hashes the concatenation of parts with the named hash and truncates
// the result to n bytes. n larger than the digest size is an error.
func Digest(name string, n int, parts ...[]byte) ([]byte, error) {
	h, err := NewHash(name)
	if err != nil {
		return nil, err
	}
	for _, p := range parts {
		h.Write(p)
	}
	sum := h.Sum(nil)
	if n > len(sum) {
		return nil, fmt.Errorf("%w: %s yields %d bytes, %d requested", ErrUnsupportedSuite, name, len(sum), n)
	}
	return sum[:n], nil
}
