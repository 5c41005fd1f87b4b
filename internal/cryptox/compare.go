package cryptox

import "crypto/subtle"

// Equal compares two secret-derived byte slices in constant time.
// Slices of different length are never equal.
func Equal(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
