// Package cryptox wraps the primitive building blocks used by the credential
// codecs: named hash constructors, named stream ciphers, PBKDF2 and Argon2id
// key derivation, constant-time comparison, random bytes and the padding-free
// base64 form used in stored records.
//
// Primitives are addressed by name so that the suite registry can describe a
// suite as plain data. A name the runtime cannot serve yields
// ErrUnsupportedSuite rather than a silent substitute.
package cryptox
