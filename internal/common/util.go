package common

import (
	"regexp"
	"strings"
)

// WipeByteArray zeroes b in place. A nil slice is ignored.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

var userNameChars = regexp.MustCompile(`^[a-z0-9_-]+$`)

// NormalizeUserName lower-cases name and checks length and alphabet.
// It returns ErrorInvalidUsername when the name cannot be used.
func NormalizeUserName(name string) (string, error) {
	if len(name) < MinUserNameLength || len(name) > MaxUserNameLength {
		return "", ErrorInvalidUsername
	}
	n := strings.ToLower(strings.TrimSpace(name))
	if n != strings.ToLower(name) || !userNameChars.MatchString(n) {
		return "", ErrorInvalidUsername
	}
	return n, nil
}
