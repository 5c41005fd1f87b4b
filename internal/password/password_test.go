package password

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/credvault/internal/cryptox"
	"github.com/dmitrijs2005/credvault/internal/suites"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fastHasher keeps the iterated hash cheap in tests.
func fastHasher(t *testing.T, suiteID string) *Hasher {
	t.Helper()
	rounds := 100
	if suiteID == suites.PasswordArgon2ID {
		rounds = 1
	}
	h, err := NewHasher(suiteID, rounds)
	require.NoError(t, err)
	return h
}

func TestHashVerify_RoundTrip(t *testing.T) {
	for _, id := range suites.PasswordIDs() {
		t.Run(id, func(t *testing.T) {
			h := fastHasher(t, id)

			stored, err := h.Hash("correct horse")
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(stored, "$"+id+":"))

			ok, err := h.Verify("correct horse", stored)
			require.NoError(t, err)
			assert.True(t, ok)

			ok, err = h.Verify("correct horsf", stored)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestHash_DefaultSuite(t *testing.T) {
	h := Default()
	assert.Equal(t, "blake2b512", h.SuiteID())
	assert.Equal(t, 32000, h.Rounds())

	stored, err := h.Hash("abc123")
	require.NoError(t, err)

	r, err := ParseRecord(stored)
	require.NoError(t, err)
	assert.Equal(t, "blake2b512", r.AlgoID)
	assert.Equal(t, 32000, r.Rounds)
	assert.Len(t, r.Salt, 16)
	assert.Len(t, r.Hash, 64)
	assert.NotContains(t, stored, "=")

	ok, err := h.Verify("abc123", stored)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestHash_FreshSalt(t *testing.T) {
	h := fastHasher(t, "")

	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	for _, s := range []string{a, b} {
		ok, err := h.Verify("same", s)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestVerify_UsesStoredRounds(t *testing.T) {
	old, err := NewHasher("sha256", 50)
	require.NoError(t, err)
	stored, err := old.Hash("pw")
	require.NoError(t, err)

	// a hasher with a different creation default still honours the record
	current, err := NewHasher("sha512", 75)
	require.NoError(t, err)
	ok, err := current.Verify("pw", stored)
	require.NoError(t, err)
	assert.True(t, ok)

	rehash, err := current.NeedsRehash(stored)
	require.NoError(t, err)
	assert.True(t, rehash)

	rehash, err = old.NeedsRehash(stored)
	require.NoError(t, err)
	assert.False(t, rehash)
}

func TestVerify_KnownRecord(t *testing.T) {
	// PBKDF2-SHA256("password", "salt", 1, 32)
	stored := "$sha256:1$c2FsdA:Eg+2z/z4syxD5yJSVsT4N6hlSMkszDVICAWYfLcL4Xs$"

	ok, err := Default().Verify("password", stored)
	require.NoError(t, err)
	assert.True(t, ok)

	padded := "$sha256:1$c2FsdA==:Eg+2z/z4syxD5yJSVsT4N6hlSMkszDVICAWYfLcL4Xs=$"
	ok, err = Default().Verify("password", padded)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerify_MalformedAndUnknown(t *testing.T) {
	good, err := fastHasher(t, "sha256").Hash("pw")
	require.NoError(t, err)
	r, err := ParseRecord(good)
	require.NoError(t, err)
	salt := cryptox.EncodeBase64(r.Salt)
	hash := cryptox.EncodeBase64(r.Hash)

	tests := []struct {
		name   string
		stored string
		want   error
	}{
		{"no leading dollar", strings.TrimPrefix(good, "$"), cryptox.ErrMalformedRecord},
		{"no trailing dollar", strings.TrimSuffix(good, "$"), cryptox.ErrMalformedRecord},
		{"empty", "", cryptox.ErrMalformedRecord},
		{"extra section", good + "x$", cryptox.ErrMalformedRecord},
		{"missing rounds", "$sha256$" + salt + ":" + hash + "$", cryptox.ErrMalformedRecord},
		{"bad rounds", "$sha256:abc$" + salt + ":" + hash + "$", cryptox.ErrMalformedRecord},
		{"zero rounds", "$sha256:0$" + salt + ":" + hash + "$", cryptox.ErrMalformedRecord},
		{"huge rounds", "$sha256:999999999$" + salt + ":" + hash + "$", cryptox.ErrMalformedRecord},
		{"one data field", "$sha256:100$" + salt + "$", cryptox.ErrMalformedRecord},
		{"three data fields", "$sha256:100$" + salt + ":" + hash + ":x$", cryptox.ErrMalformedRecord},
		{"bad base64", "$sha256:100$" + salt + ":!!!$", cryptox.ErrMalformedRecord},
		{"wrong hash length", "$sha512:100$" + salt + ":" + hash + "$", cryptox.ErrMalformedRecord},
		{"unknown algorithm", "$md5:100$" + salt + ":" + hash + "$", cryptox.ErrUnknownAlgorithm},
	}

	h := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := h.Verify("pw", tt.stored)
			require.ErrorIs(t, err, tt.want)
			assert.False(t, ok)
		})
	}
}

func TestNewHasher_Errors(t *testing.T) {
	_, err := NewHasher("rot13", 0)
	require.ErrorIs(t, err, cryptox.ErrUnknownAlgorithm)

	_, err = NewHasher("", MaxRounds+1)
	require.Error(t, err)
}

func TestVerifyContext(t *testing.T) {
	h := fastHasher(t, "")
	stored, err := h.Hash("pw")
	require.NoError(t, err)

	ok, err := h.VerifyContext(context.Background(), "pw", stored)
	require.NoError(t, err)
	assert.True(t, ok)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ok, err = h.VerifyContext(ctx, "pw", stored)
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, ok)
}

func TestVerifyContext_TimeoutNeverVerifies(t *testing.T) {
	stored := (&Record{AlgoID: "blake2b512", Rounds: 1_000_000, Salt: []byte("0123456789abcdef"), Hash: make([]byte, 64)}).String()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	ok, err := Default().VerifyContext(ctx, "pw", stored)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, ok)
}

func TestHashContext(t *testing.T) {
	h := fastHasher(t, "")
	stored, err := h.HashContext(context.Background(), "pw")
	require.NoError(t, err)

	ok, err := h.Verify("pw", stored)
	require.NoError(t, err)
	assert.True(t, ok)
}
