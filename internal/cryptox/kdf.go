package cryptox

import (
	"errors"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"
)

// Argon2id cost parameters that are fixed per suite; only the time cost
// travels in stored records.
const (
	Argon2Memory  uint32 = 64 * 1024
	Argon2Threads uint8  = 4
)

// PBKDF2 derives keyLen bytes from password and salt with the named hash.
func PBKDF2(password, salt []byte, rounds, keyLen int, hashName string) ([]byte, error) {
	if rounds <= 0 || keyLen <= 0 {
		return nil, errors.New("pbkdf2: rounds and key length must be positive")
	}
	h, err := HashFunc(hashName)
	if err != nil {
		return nil, err
	}
	return pbkdf2.Key(password, salt, rounds, keyLen, h), nil
}

// Argon2ID derives keyLen bytes using Argon2id with the given time cost.
func Argon2ID(password, salt []byte, rounds, keyLen int) ([]byte, error) {
	if rounds <= 0 || keyLen <= 0 {
		return nil, errors.New("argon2id: rounds and key length must be positive")
	}
	return argon2.IDKey(password, salt, uint32(rounds), Argon2Memory, Argon2Threads, uint32(keyLen)), nil
}
