package cryptox

import "errors"

var (
	// ErrUnknownAlgorithm is returned when an algorithm identifier is not in the registry.
	ErrUnknownAlgorithm = errors.New("unknown algorithm identifier")

	// ErrUnsupportedSuite is returned when a suite names a hash or cipher
	// that is not available in this build.
	ErrUnsupportedSuite = errors.New("unsupported suite")

	// ErrMalformedRecord is returned when a stored password record cannot be parsed.
	ErrMalformedRecord = errors.New("malformed password record")

	// ErrMalformedEnvelope is returned when a token envelope cannot be parsed.
	ErrMalformedEnvelope = errors.New("malformed token envelope")

	// ErrKeyDerivationMismatch is returned when a derived key does not have
	// the length the suite requires.
	ErrKeyDerivationMismatch = errors.New("derived key length mismatch")

	// ErrCounterOverflow is returned when a chacha20 message would run past
	// the last block of the IV's 32-bit counter.
	ErrCounterOverflow = errors.New("chacha20: counter overflow")

	// ErrAuthenticationFailed is returned by flows that cannot continue after
	// a failed tag or password check. Plain verification reports mismatch as
	// a false result instead.
	ErrAuthenticationFailed = errors.New("authentication failed")
)
