package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/credvault/internal/flagx"
)

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-k bool     seal API keys in encrypted envelopes
//	-r int      password hashing rounds (0 = suite default)
//	-w int      hash timeout, seconds
//	-l string   log level
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-k", "-r", "-w", "-l"}, "-k")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")
	fs.BoolVar(&config.EncryptedTokens, "k", config.EncryptedTokens, "store api keys as encrypted envelopes")
	fs.IntVar(&config.PasswordRounds, "r", config.PasswordRounds, "password hashing rounds (0 = suite default)")
	hashTimeout := fs.Int("w", int(config.HashTimeout.Seconds()), "hash timeout (in seconds)")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
	config.HashTimeout = time.Duration(*hashTimeout) * time.Second
}
