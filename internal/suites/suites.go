// Package suites is the append-only registry of algorithm suites that may
// appear in stored password records and token envelopes.
//
// Every identifier ever written to storage must stay resolvable, so entries
// are only ever added. Changing a default is done by pointing the default at
// a new entry, never by editing an existing one.
package suites

import (
	"fmt"
	"sort"

	"github.com/dmitrijs2005/credvault/internal/cryptox"
)

// Key derivation functions used by password suites.
const (
	KDFPBKDF2   = "pbkdf2"
	KDFArgon2ID = "argon2id"
)

// Spec describes one suite. Token suites set CipherName and KDFHash; password
// suites set KDFName. Rounds is the creation default for password suites and
// the fixed derivation cost for token suites.
type Spec struct {
	ID         string
	CipherName string
	HashName   string
	KDFName    string
	KDFHash    string
	IVLength   int
	KeyLength  int
	HashLength int
	TagLength  int
	Rounds     int
}

// Suite identifiers.
const (
	PasswordSHA256     = "sha256"
	PasswordSHA384     = "sha384"
	PasswordSHA512     = "sha512"
	PasswordBLAKE2b512 = "blake2b512"
	PasswordArgon2ID   = "argon2id"

	TokenChaCha20BLAKE2b = "chacha20-blake2b"
	TokenAES128CTRSHA256 = "aes128ctr-sha256"
)

// SaltLength is the salt size for new password records.
const SaltLength = 16

const defaultRounds = 32000

var passwordSuites = map[string]Spec{
	PasswordSHA256: {
		ID: PasswordSHA256, KDFName: KDFPBKDF2, HashName: cryptox.SHA256,
		KeyLength: 32, HashLength: 32, Rounds: defaultRounds,
	},
	PasswordSHA384: {
		ID: PasswordSHA384, KDFName: KDFPBKDF2, HashName: cryptox.SHA384,
		KeyLength: 48, HashLength: 48, Rounds: defaultRounds,
	},
	PasswordSHA512: {
		ID: PasswordSHA512, KDFName: KDFPBKDF2, HashName: cryptox.SHA512,
		KeyLength: 64, HashLength: 64, Rounds: defaultRounds,
	},
	PasswordBLAKE2b512: {
		ID: PasswordBLAKE2b512, KDFName: KDFPBKDF2, HashName: cryptox.BLAKE2b512,
		KeyLength: 64, HashLength: 64, Rounds: defaultRounds,
	},
	PasswordArgon2ID: {
		ID: PasswordArgon2ID, KDFName: KDFArgon2ID,
		KeyLength: 32, HashLength: 32, Rounds: 3,
	},
}

// Token suites pin their KDF parameters: they are not serialized into the
// envelope, so changing them would orphan every stored envelope.
var tokenSuites = map[string]Spec{
	TokenChaCha20BLAKE2b: {
		ID: TokenChaCha20BLAKE2b, CipherName: cryptox.ChaCha20, HashName: cryptox.BLAKE2b512,
		KDFName: KDFPBKDF2, KDFHash: cryptox.BLAKE2b512,
		IVLength: 16, KeyLength: 32, HashLength: 64, TagLength: 16, Rounds: defaultRounds,
	},
	TokenAES128CTRSHA256: {
		ID: TokenAES128CTRSHA256, CipherName: cryptox.AES128CTR, HashName: cryptox.SHA256,
		KDFName: KDFPBKDF2, KDFHash: cryptox.BLAKE2b512,
		IVLength: 16, KeyLength: 16, HashLength: 32, TagLength: 16, Rounds: defaultRounds,
	},
}

const (
	defaultPassword = PasswordBLAKE2b512
	defaultToken    = TokenChaCha20BLAKE2b
)

// LookupPassword resolves a password suite identifier.
func LookupPassword(id string) (Spec, error) {
	s, ok := passwordSuites[id]
	if !ok {
		return Spec{}, fmt.Errorf("%w: %q", cryptox.ErrUnknownAlgorithm, id)
	}
	return s, nil
}

// LookupToken resolves a token suite identifier.
func LookupToken(id string) (Spec, error) {
	s, ok := tokenSuites[id]
	if !ok {
		return Spec{}, fmt.Errorf("%w: %q", cryptox.ErrUnknownAlgorithm, id)
	}
	return s, nil
}

// DefaultPassword returns the suite used for new password records.
func DefaultPassword() Spec { return passwordSuites[defaultPassword] }

// DefaultToken returns the suite used for new envelopes.
func DefaultToken() Spec { return tokenSuites[defaultToken] }

// PasswordIDs lists the registered password suite identifiers in order.
func PasswordIDs() []string { return sortedKeys(passwordSuites) }

// TokenIDs lists the registered token suite identifiers in order.
func TokenIDs() []string { return sortedKeys(tokenSuites) }

func sortedKeys(m map[string]Spec) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
