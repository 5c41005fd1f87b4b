package password

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/credvault/internal/cryptox"
)

// MaxRounds bounds the cost a stored record may demand from Verify.
const MaxRounds = 10_000_000

// Record is the parsed form of "$algoId:rounds$salt:hash$".
type Record struct {
	AlgoID string
	Rounds int
	Salt   []byte
	Hash   []byte
}

// String serializes the record with base64 padding stripped.
func (r *Record) String() string {
	return "$" + r.AlgoID + ":" + strconv.Itoa(r.Rounds) +
		"$" + cryptox.EncodeBase64(r.Salt) + ":" + cryptox.EncodeBase64(r.Hash) + "$"
}

// ParseRecord splits a stored verifier into its fields. It checks structure
// only; the algorithm identifier is resolved by the caller.
func ParseRecord(s string) (*Record, error) {
	parts := strings.Split(s, "$")
	if len(parts) != 4 || parts[0] != "" || parts[3] != "" {
		return nil, fmt.Errorf("%w: expected $meta$data$", cryptox.ErrMalformedRecord)
	}

	meta := strings.Split(parts[1], ":")
	if len(meta) != 2 || meta[0] == "" {
		return nil, fmt.Errorf("%w: expected algo:rounds", cryptox.ErrMalformedRecord)
	}
	rounds, err := strconv.Atoi(meta[1])
	if err != nil || rounds <= 0 || rounds > MaxRounds {
		return nil, fmt.Errorf("%w: invalid rounds %q", cryptox.ErrMalformedRecord, meta[1])
	}

	data := strings.Split(parts[2], ":")
	if len(data) != 2 {
		return nil, fmt.Errorf("%w: expected salt:hash", cryptox.ErrMalformedRecord)
	}
	salt, err := cryptox.DecodeBase64(data[0])
	if err != nil || len(salt) == 0 {
		return nil, fmt.Errorf("%w: invalid salt", cryptox.ErrMalformedRecord)
	}
	hash, err := cryptox.DecodeBase64(data[1])
	if err != nil || len(hash) == 0 {
		return nil, fmt.Errorf("%w: invalid hash", cryptox.ErrMalformedRecord)
	}

	return &Record{AlgoID: meta[0], Rounds: rounds, Salt: salt, Hash: hash}, nil
}
