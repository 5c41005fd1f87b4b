package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/chacha20"
)

// Cipher names understood by NewStream.
const (
	ChaCha20  = "chacha20"
	AES128CTR = "aes-128-ctr"
	AES256CTR = "aes-256-ctr"
)

// chacha20IVSize is the 16-byte IV layout: 4-byte little-endian block
// counter followed by the 12-byte IETF nonce.
const chacha20IVSize = 4 + chacha20.NonceSize

// chacha20BlockSize is the ChaCha20 keystream block size in bytes
// (golang.org/x/crypto/chacha20 does not export it).
const chacha20BlockSize = 64

// NewStream returns an unauthenticated keystream for the named cipher.
// The same call with the same key and iv both encrypts and decrypts.
// A chacha20 stream panics once its 32-bit block counter is exhausted; XOR
// checks the length up front and returns ErrCounterOverflow instead.
func NewStream(name string, key, iv []byte) (cipher.Stream, error) {
	switch name {
	case ChaCha20:
		return newChaCha20(key, iv)
	case AES128CTR:
		return newAESCTR(key, iv, 16)
	case AES256CTR:
		return newAESCTR(key, iv, 32)
	default:
		return nil, fmt.Errorf("%w: cipher %q", ErrUnsupportedSuite, name)
	}
}

// SupportsCipher reports whether NewStream knows name.
func SupportsCipher(name string) bool {
	switch name {
	case ChaCha20, AES128CTR, AES256CTR:
		return true
	}
	return false
}

func newChaCha20(key, iv []byte) (cipher.Stream, error) {
	if len(key) != chacha20.KeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrKeyDerivationMismatch, len(key), chacha20.KeySize)
	}
	if len(iv) != chacha20IVSize {
		return nil, fmt.Errorf("chacha20: invalid iv size %d", len(iv))
	}

	c, err := chacha20.NewUnauthenticatedCipher(key, iv[4:])
	if err != nil {
		return nil, err
	}
	c.SetCounter(binary.LittleEndian.Uint32(iv[:4]))
	return c, nil
}

func newAESCTR(key, iv []byte, keySize int) (cipher.Stream, error) {
	if len(key) != keySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrKeyDerivationMismatch, len(key), keySize)
	}
	if len(iv) != aes.BlockSize {
		return nil, fmt.Errorf("aes-ctr: invalid iv size %d", len(iv))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewCTR(block, iv), nil
}

// XOR applies the named stream cipher to src and returns a new slice.
func XOR(name string, key, iv, src []byte) ([]byte, error) {
	if name == ChaCha20 && len(iv) == chacha20IVSize {
		blocks := (uint64(len(src)) + chacha20BlockSize - 1) / chacha20BlockSize
		if uint64(binary.LittleEndian.Uint32(iv[:4]))+blocks > 1<<32 {
			return nil, ErrCounterOverflow
		}
	}
	s, err := NewStream(name, key, iv)
	if err != nil {
		return nil, err
	}
	dst := make([]byte, len(src))
	s.XORKeyStream(dst, src)
	return dst, nil
}
